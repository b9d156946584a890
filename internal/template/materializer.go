package template

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// DefaultDynamicMarker is the extension that marks a dynamic file.
const DefaultDynamicMarker = ".tmpl"

// OutputMapping maps output-relative slash paths to file content.
type OutputMapping map[string]string

// Paths returns the mapping keys in sorted order.
func (m OutputMapping) Paths() []string {
	return slices.Sorted(maps.Keys(m))
}

// Clone returns an independent copy of m.
func (m OutputMapping) Clone() OutputMapping {
	if m == nil {
		return OutputMapping{}
	}
	return maps.Clone(m)
}

// Result is the outcome of materializing one template directory.
type Result struct {
	Template   string            // Template ID
	Files      OutputMapping     // Final relative path to content
	Collisions []*CollisionError // Entries dropped because the path was taken
	Omitted    []string          // Dynamic files that rendered to nothing
}

// Materializer builds the output mapping for an answer record.
type Materializer struct {
	store    *Store
	renderer *Renderer
	marker   string
	logger   *slog.Logger
}

// MaterializerOption configures a Materializer.
type MaterializerOption func(*Materializer)

// WithDynamicMarker sets the extension that marks dynamic files.
func WithDynamicMarker(marker string) MaterializerOption {
	return func(m *Materializer) {
		if marker != "" {
			m.marker = marker
		}
	}
}

// WithLogger sets the logger used for collision diagnostics.
func WithLogger(logger *slog.Logger) MaterializerOption {
	return func(m *Materializer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRenderer shares a renderer, and its compiled lookup table, between
// materializers.
func WithRenderer(r *Renderer) MaterializerOption {
	return func(m *Materializer) {
		if r != nil {
			m.renderer = r
		}
	}
}

// NewMaterializer creates a Materializer reading from store.
func NewMaterializer(store *Store, opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		store:    store,
		renderer: NewRenderer(),
		marker:   DefaultDynamicMarker,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the template store the materializer reads from.
func (m *Materializer) Store() *Store {
	return m.store
}

// @MX:NOTE: [AUTO] Collisions never abort; the first file to produce a path keeps it.
// Materialize walks the template directory selected by a and returns the
// output mapping. Files are visited in lexical order. A file ending in the
// dynamic marker is rendered with a and stored without the marker, unless
// it renders to nothing. Other files are copied verbatim.
func (m *Materializer) Materialize(ctx context.Context, a *models.Answers) (*Result, error) {
	desc, err := m.store.Lookup(a)
	if err != nil {
		return nil, err
	}

	res := &Result{Template: desc.ID, Files: OutputMapping{}}
	source := make(map[string]string)

	walkErr := fs.WalkDir(desc.Dir, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			return nil
		}

		if err := validateTemplatePath(p); err != nil {
			return err
		}

		dynamic := strings.HasSuffix(p, m.marker) && len(p) > len(m.marker) && path.Base(p) != m.marker
		outPath := p
		if dynamic {
			outPath = strings.TrimSuffix(p, m.marker)
		}

		if kept, taken := source[outPath]; taken {
			collision := &CollisionError{Path: outPath, Kept: kept, Dropped: p}
			res.Collisions = append(res.Collisions, collision)
			m.logger.Warn("error copying template files", "error", collision.Error(), "kept", kept, "dropped", p)
			return nil
		}

		data, err := fs.ReadFile(desc.Dir, p)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", p, err)
		}

		if !dynamic {
			res.Files[outPath] = string(data)
			source[outPath] = p
			return nil
		}

		out, ok, err := m.renderer.Render(desc.ID+"/"+p, data, a)
		if err != nil {
			return err
		}
		if !ok {
			res.Omitted = append(res.Omitted, outPath)
			m.logger.Debug("dynamic file omitted", "path", outPath)
			return nil
		}
		res.Files[outPath] = out
		source[outPath] = p
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	m.logger.Debug("template materialized",
		"template", desc.ID,
		"files", len(res.Files),
		"collisions", len(res.Collisions),
		"omitted", len(res.Omitted))
	return res, nil
}

// validateTemplatePath rejects template paths that would escape the
// project root once joined to it.
func validateTemplatePath(p string) error {
	if !fs.ValidPath(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("%w: %q", ErrPathTraversal, p)
	}
	for part := range strings.SplitSeq(p, "/") {
		if part == ".." {
			return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, p)
		}
	}
	return nil
}
