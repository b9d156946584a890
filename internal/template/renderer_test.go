package template

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

func TestRendererRender(t *testing.T) {
	a := models.NewAnswers()
	_ = a.Set(models.KeyProjectName, "Sales Dashboard")
	_ = a.Set(models.KeyFeatures, []string{models.FeatureLookerAPI})

	tests := []struct {
		name   string
		src    string
		want   string
		wantOK bool
	}{
		{"field", "# {{.ProjectName}}", "# Sales Dashboard", true},
		{"method", `{{if .HasFeature "Looker API"}}api{{end}}`, "api", true},
		{"app_id", "{{appID .ProjectName}}", "sales_dashboard", true},
		{"json", "{{json .Features}}", `["Looker API"]`, true},
		{"embed_kind_default", "{{embedKind .}}", "dashboard", true},
		{"empty", "", "", false},
		{"whitespace", " \n\t{{if .UseEmbedSDK}}x{{end}}\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer()
			got, ok, err := r.Render(tt.name, []byte(tt.src), a)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Render() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRendererCache(t *testing.T) {
	r := NewRenderer()
	a := models.NewAnswers()
	_ = a.Set(models.KeyProjectName, "one")

	if _, _, err := r.Render("id", []byte("{{.ProjectName}}"), a); err != nil {
		t.Fatal(err)
	}
	// A second call with the same identifier reuses the compiled template.
	got, _, err := r.Render("id", []byte("ignored {{"), a)
	if err != nil {
		t.Fatalf("cached render error: %v", err)
	}
	if got != "one" {
		t.Errorf("got %q, want cached template output", got)
	}
	if r.Compiled() != 1 {
		t.Errorf("Compiled() = %d, want 1", r.Compiled())
	}
}

func TestRendererErrors(t *testing.T) {
	r := NewRenderer()
	a := models.NewAnswers()

	_, _, err := r.Render("parse", []byte("{{if}}"), a)
	if !errors.Is(err, ErrRenderFailed) {
		t.Errorf("parse error = %v, want ErrRenderFailed", err)
	}
	if r.Compiled() != 0 {
		t.Error("failed parses should not be cached")
	}

	_, _, err = r.Render("exec", []byte("{{.Missing}}"), a)
	if !errors.Is(err, ErrRenderFailed) {
		t.Errorf("exec error = %v, want ErrRenderFailed", err)
	}
}

func TestPackageJSON(t *testing.T) {
	a := models.NewAnswers()
	_ = a.Set(models.KeyProjectName, "My Extension")
	_ = a.Set(models.KeyLanguage, models.LanguageTypeScript)
	_ = a.Set(models.KeyFramework, models.FrameworkVanilla)
	_ = a.Set(models.KeyUseLookerSDK, true)

	data, err := PackageJSON(a)
	if err != nil {
		t.Fatal(err)
	}
	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if pkg.Name != "my-extension" {
		t.Errorf("name = %q", pkg.Name)
	}
	if pkg.Scripts["typecheck"] == "" {
		t.Error("typescript projects get a typecheck script")
	}
	for _, dep := range []string{"@looker/extension-sdk", "@looker/sdk", "@looker/sdk-rtl"} {
		if pkg.Dependencies[dep] == "" {
			t.Errorf("missing dependency %s", dep)
		}
	}
	if _, ok := pkg.Dependencies["react"]; ok {
		t.Error("vanilla projects must not depend on react")
	}
	for _, dep := range []string{"html-webpack-plugin", "typescript", "@babel/preset-typescript"} {
		if pkg.DevDependencies[dep] == "" {
			t.Errorf("missing dev dependency %s", dep)
		}
	}
	for name, version := range pkg.Dependencies {
		if version == "" {
			t.Errorf("%s has no version", name)
		}
	}
}

func TestDependencies_UIFramework(t *testing.T) {
	a := models.NewAnswers()
	_ = a.Set(models.KeyFramework, models.FrameworkReact)
	_ = a.Set(models.KeyUIFramework, models.UIMaterial)

	deps := Dependencies(a)
	for _, want := range []string{"@mui/material", "@emotion/react", "@emotion/styled"} {
		if !slices.Contains(deps, want) {
			t.Errorf("deps %v missing %s", deps, want)
		}
	}
	if slices.Contains(deps, "@looker/components") {
		t.Error("material projects should not pull @looker/components")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		in  string
		pkg string
		app string
	}{
		{"my-extension", "my-extension", "my_extension"},
		{"Sales  Report!", "sales-report", "sales_report"},
		{"über", "ber", "ber"},
		{"42", "42", "app_42"},
		{"***", "extension", "extension"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PackageName(tt.in); got != tt.pkg {
				t.Errorf("PackageName(%q) = %q, want %q", tt.in, got, tt.pkg)
			}
			if got := AppID(tt.in); got != tt.app {
				t.Errorf("AppID(%q) = %q, want %q", tt.in, got, tt.app)
			}
		})
	}
}
