package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/looker-open-source/create-looker-extension/internal/template"
	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// InitOptions configures a generation run.
type InitOptions struct {
	BaseDir     string // Directory the project is created in. Defaults to the working directory.
	DryRun      bool   // If true, build the output mapping but write nothing.
	SkipInstall bool   // If true, do not run the dependency installer.
}

// InitResult summarizes a generation run.
type InitResult struct {
	ProjectDir string                     // Absolute project directory.
	Template   string                     // Template ID used.
	Files      []string                   // Output-relative paths, sorted.
	Collisions []*template.CollisionError // Template entries dropped on path collisions.
	Omitted    []string                   // Dynamic files that produced no output.
	Installed  bool                       // Whether dependencies were installed.
	DryRun     bool                       // Whether the run wrote nothing.
}

// Installer installs dependencies inside a generated project.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// Initializer runs the generation pipeline.
type Initializer interface {
	// Init generates the project described by a.
	Init(ctx context.Context, a *models.Answers, opts InitOptions) (*InitResult, error)
}

// projectInitializer is the concrete implementation of Initializer.
type projectInitializer struct {
	materializer *template.Materializer
	finalizer    template.Finalizer
	writer       *Writer
	installer    Installer // May be nil; installs are then skipped.
	logger       *slog.Logger
}

// NewInitializer creates an Initializer with the given dependencies.
// A nil finalizer leaves the mapping unchanged; a nil writer writes to the
// OS filesystem.
func NewInitializer(m *template.Materializer, f template.Finalizer, w *Writer, inst Installer, logger *slog.Logger) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if f == nil {
		f = template.Identity
	}
	if w == nil {
		w = NewWriter(afero.NewOsFs(), WithWriterLogger(logger))
	}
	return &projectInitializer{
		materializer: m,
		finalizer:    f,
		writer:       w,
		installer:    inst,
		logger:       logger,
	}
}

// Init looks up the template, materializes and finalizes it, then writes
// the project under a guard and optionally installs dependencies. Any
// failure after the directory is created removes it again.
func (i *projectInitializer) Init(ctx context.Context, a *models.Answers, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := ResolveRoot(opts.BaseDir, a.ProjectName)
	if err != nil {
		return nil, err
	}

	i.logger.Info("generating extension",
		"dir", dir,
		"template", a.TemplateID(),
		"features", a.Features,
	)

	// Step 1: Materialize the template directory
	res, err := i.materializer.Materialize(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("%w: materialize template: %w", ErrInitFailed, err)
	}

	// Step 2: Finalize (pure; no I/O)
	files := i.finalizer.Finalize(res.Files.Clone(), a)

	result := &InitResult{
		ProjectDir: dir,
		Template:   res.Template,
		Files:      files.Paths(),
		Collisions: res.Collisions,
		Omitted:    res.Omitted,
		DryRun:     opts.DryRun,
	}
	if opts.DryRun {
		return result, nil
	}

	// Step 3: Acquire the project directory
	guard, err := Acquire(i.writer.Fs(), dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if relErr := guard.Release(); relErr != nil {
			i.logger.Warn("cleanup failed", "dir", dir, "error", relErr)
		}
		if !guard.Committed() {
			i.logger.Info("generation interrupted, cleaned up", "dir", dir)
		}
	}()

	// Step 4: Write files
	if err := i.writer.Write(ctx, files, dir); err != nil {
		return nil, err
	}

	// Step 5: Install dependencies
	if !opts.SkipInstall && i.installer != nil {
		if err := i.installer.Install(ctx, dir); err != nil {
			return nil, err
		}
		result.Installed = true
	}

	guard.Commit()
	i.logger.Info("extension created", "dir", dir, "files", len(result.Files))
	return result, nil
}
