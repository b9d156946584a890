package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// funcMap provides the render functions available in all dynamic files.
var funcMap = template.FuncMap{
	// packageJSON renders the project package.json for the answers.
	"packageJSON": func(a *models.Answers) (string, error) {
		b, err := PackageJSON(a)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	// json encodes v as a JSON literal, usable as a JS literal as well.
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	"appID": AppID,
	"lower": strings.ToLower,
	// embedKind is the lower-cased embed type, dashboard when unset.
	"embedKind": func(a *models.Answers) string {
		if a.EmbedType == "" {
			return strings.ToLower(models.EmbedDashboard)
		}
		return strings.ToLower(a.EmbedType)
	},
}

// Renderer compiles dynamic files once per identifier and executes them with
// an answer record. It is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewRenderer creates a Renderer with an empty lookup table.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[string]*template.Template)}
}

// Render executes the dynamic file id with a. src is compiled on the first
// call for id and reused afterwards. An output that is blank after trimming
// whitespace returns ok=false, meaning the file should not be produced.
func (r *Renderer) Render(id string, src []byte, a *models.Answers) (out string, ok bool, err error) {
	tmpl, err := r.compile(id, src)
	if err != nil {
		return "", false, &RenderError{File: id, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, a); err != nil {
		return "", false, &RenderError{File: id, Err: err}
	}

	out = buf.String()
	if strings.TrimSpace(out) == "" {
		return "", false, nil
	}
	return out, true, nil
}

// Compiled reports how many dynamic files are in the lookup table.
func (r *Renderer) Compiled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func (r *Renderer) compile(id string, src []byte) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[id]; ok {
		return tmpl, nil
	}
	tmpl, err := template.New(id).
		Funcs(funcMap).
		Option("missingkey=error").
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	r.cache[id] = tmpl
	return tmpl, nil
}
