package template

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

func testAnswers(t *testing.T, values map[models.Key]any) *models.Answers {
	t.Helper()
	a := models.NewAnswers()
	base := map[models.Key]any{
		models.KeyProjectName: "demo",
		models.KeyLanguage:    models.LanguageTypeScript,
		models.KeyFramework:   models.FrameworkVanilla,
		models.KeyFeatures:    []string{},
	}
	for k, v := range values {
		base[k] = v
	}
	for _, k := range models.Keys() {
		if v, ok := base[k]; ok {
			if err := a.Set(k, v); err != nil {
				t.Fatalf("Set(%s): %v", k, err)
			}
		}
	}
	return a
}

func staticStore() fstest.MapFS {
	return fstest.MapFS{
		"vanilla-typescript/webpack.config.js":       {Data: []byte("module.exports = {}\n")},
		"vanilla-typescript/src/index.ts":            {Data: []byte("console.log('hi')\n")},
		"vanilla-typescript/src/components/Embed.ts": {Data: []byte("export {}\n")},
		"react-javascript/src/index.js":              {Data: []byte("// react\n")},
	}
}

func TestMaterialize_StaticOnly(t *testing.T) {
	m := NewMaterializer(NewStore(staticStore()))

	res, err := m.Materialize(context.Background(), testAnswers(t, nil))
	if err != nil {
		t.Fatalf("Materialize error: %v", err)
	}

	want := []string{"src/components/Embed.ts", "src/index.ts", "webpack.config.js"}
	if got := res.Files.Paths(); !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
	if res.Files["src/index.ts"] != "console.log('hi')\n" {
		t.Errorf("content not copied verbatim: %q", res.Files["src/index.ts"])
	}
	if res.Template != "vanilla-typescript" {
		t.Errorf("Template = %q", res.Template)
	}
	if len(res.Collisions) != 0 {
		t.Errorf("unexpected collisions: %v", res.Collisions)
	}
}

func TestMaterialize_DynamicFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"react-javascript/README.md.tmpl":    {Data: []byte("# {{.ProjectName}}\n")},
		"react-javascript/src/embed.js.tmpl": {Data: []byte(`{{if .UseEmbedSDK}}embed {{embedKind .}}{{end}}`)},
		"react-javascript/blank.txt.tmpl":    {Data: []byte("  {{/* nothing */}}\n\n")},
	}
	m := NewMaterializer(NewStore(fsys))

	t.Run("rendered_and_omitted", func(t *testing.T) {
		a := testAnswers(t, map[models.Key]any{
			models.KeyFramework: models.FrameworkReact,
			models.KeyLanguage:  models.LanguageJavaScript,
		})
		res, err := m.Materialize(context.Background(), a)
		if err != nil {
			t.Fatalf("Materialize error: %v", err)
		}
		if got := res.Files["README.md"]; got != "# demo\n" {
			t.Errorf("README.md = %q", got)
		}
		if _, ok := res.Files["src/embed.js"]; ok {
			t.Error("src/embed.js should be omitted when the embed SDK is off")
		}
		if _, ok := res.Files["blank.txt"]; ok {
			t.Error("whitespace-only output should be omitted")
		}
		if !slices.Contains(res.Omitted, "src/embed.js") || !slices.Contains(res.Omitted, "blank.txt") {
			t.Errorf("Omitted = %v", res.Omitted)
		}
	})

	t.Run("rendered_with_feature", func(t *testing.T) {
		a := testAnswers(t, map[models.Key]any{
			models.KeyFramework:   models.FrameworkReact,
			models.KeyLanguage:    models.LanguageJavaScript,
			models.KeyEmbedType:   models.EmbedExplore,
			models.KeyUseEmbedSDK: true,
		})
		res, err := m.Materialize(context.Background(), a)
		if err != nil {
			t.Fatalf("Materialize error: %v", err)
		}
		if got := res.Files["src/embed.js"]; got != "embed explore" {
			t.Errorf("src/embed.js = %q", got)
		}
	})
}

func TestMaterialize_Collision(t *testing.T) {
	fsys := fstest.MapFS{
		"vanilla-typescript/README.md":      {Data: []byte("static")},
		"vanilla-typescript/README.md.tmpl": {Data: []byte("dynamic {{.ProjectName}}")},
		"vanilla-typescript/other.txt":      {Data: []byte("ok")},
	}
	m := NewMaterializer(NewStore(fsys))

	res, err := m.Materialize(context.Background(), testAnswers(t, nil))
	if err != nil {
		t.Fatalf("Materialize should not fail on collision: %v", err)
	}
	if len(res.Collisions) != 1 {
		t.Fatalf("collisions = %d, want 1", len(res.Collisions))
	}
	c := res.Collisions[0]
	if c.Path != "README.md" || c.Kept != "README.md" || c.Dropped != "README.md.tmpl" {
		t.Errorf("collision = %+v", c)
	}
	if !errors.Is(c, ErrConflictingPaths) {
		t.Error("CollisionError should wrap ErrConflictingPaths")
	}
	if c.Error() != "Conflicting paths - README.md" {
		t.Errorf("Error() = %q", c.Error())
	}
	if res.Files["README.md"] != "static" {
		t.Errorf("README.md = %q, want first-seen content", res.Files["README.md"])
	}
	if len(res.Files) != 2 {
		t.Errorf("files = %v, want 2 entries", res.Files.Paths())
	}
}

func TestMaterialize_Errors(t *testing.T) {
	t.Run("template_not_found", func(t *testing.T) {
		m := NewMaterializer(NewStore(staticStore()))
		a := testAnswers(t, map[models.Key]any{models.KeyFramework: models.FrameworkReact})
		_, err := m.Materialize(context.Background(), a)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("render_failure", func(t *testing.T) {
		fsys := fstest.MapFS{
			"vanilla-typescript/bad.txt.tmpl": {Data: []byte("{{.NoSuchField}}")},
		}
		_, err := NewMaterializer(NewStore(fsys)).Materialize(context.Background(), testAnswers(t, nil))
		if !errors.Is(err, ErrRenderFailed) {
			t.Errorf("error = %v, want ErrRenderFailed", err)
		}
		var re *RenderError
		if !errors.As(err, &re) || !strings.Contains(re.File, "bad.txt.tmpl") {
			t.Errorf("error = %v, want RenderError naming the file", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewMaterializer(NewStore(staticStore())).Materialize(ctx, testAnswers(t, nil))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestMaterialize_CustomMarker(t *testing.T) {
	fsys := fstest.MapFS{
		"vanilla-typescript/name.txt.gen": {Data: []byte("{{.ProjectName}}")},
		"vanilla-typescript/keep.tmpl":    {Data: []byte("{{literal}}")},
	}
	m := NewMaterializer(NewStore(fsys), WithDynamicMarker(".gen"))

	res, err := m.Materialize(context.Background(), testAnswers(t, nil))
	if err != nil {
		t.Fatalf("Materialize error: %v", err)
	}
	if res.Files["name.txt"] != "demo" {
		t.Errorf("name.txt = %q", res.Files["name.txt"])
	}
	if res.Files["keep.tmpl"] != "{{literal}}" {
		t.Errorf("keep.tmpl should be static with a custom marker: %q", res.Files["keep.tmpl"])
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	m := NewMaterializer(EmbeddedStore())
	a := testAnswers(t, map[models.Key]any{
		models.KeyFramework:    models.FrameworkReact,
		models.KeyFeatures:     []string{models.FeatureLookerAPI, models.FeatureLookerEmbed},
		models.KeyEmbedType:    models.EmbedLook,
		models.KeyUseEmbedSDK:  true,
		models.KeyUseLookerSDK: true,
		models.KeyUIFramework:  models.UIMaterial,
	})

	first, err := m.Materialize(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Materialize(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first.Files.Paths(), second.Files.Paths()) {
		t.Fatalf("paths differ: %v vs %v", first.Files.Paths(), second.Files.Paths())
	}
	for p, content := range first.Files {
		if second.Files[p] != content {
			t.Errorf("%s differs between runs", p)
		}
	}
}
