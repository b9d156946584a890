package template

import (
	"path"
	"strings"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// Finalizer post-processes the output mapping of one template family.
// Implementations must not perform I/O and must not modify files; they
// return a new mapping.
type Finalizer interface {
	Finalize(files OutputMapping, a *models.Answers) OutputMapping
}

// FinalizerFunc adapts a function to the Finalizer interface.
type FinalizerFunc func(files OutputMapping, a *models.Answers) OutputMapping

// Finalize calls f.
func (f FinalizerFunc) Finalize(files OutputMapping, a *models.Answers) OutputMapping {
	return f(files, a)
}

// Identity returns the mapping unchanged.
var Identity Finalizer = FinalizerFunc(func(files OutputMapping, _ *models.Answers) OutputMapping {
	return files.Clone()
})

// ManifestPath is the LookML manifest injected into every extension.
const ManifestPath = "manifest.lkml"

// DevBundleURL is the bundle served by `npm run dev:https`.
const DevBundleURL = "https://localhost:8080/bundle.js"

// Core API methods granted per feature.
var (
	lookerAPIMethods = []string{"me"}

	artifactAPIMethods = []string{
		"artifact_usage",
		"artifact_namespaces",
		"artifact_value",
		"purge_artifacts",
		"search_artifacts",
		"artifact",
		"update_artifacts",
		"delete_artifact",
	}
)

// ExtensionFinalizer finalizes the Looker extension templates: it drops
// feature files for SDKs that were not selected and injects manifest.lkml.
type ExtensionFinalizer struct {
	// BundleURL overrides DevBundleURL in the manifest.
	BundleURL string
	// ExternalAPIURLs are listed when Server Proxy Request is selected.
	ExternalAPIURLs []string
	// UserAttributes are listed when User Attribute methods are selected.
	UserAttributes []string
}

// Finalize implements Finalizer.
func (f ExtensionFinalizer) Finalize(files OutputMapping, a *models.Answers) OutputMapping {
	out := make(OutputMapping, len(files)+1)
	for p, content := range files {
		if f.prune(p, a) {
			continue
		}
		out[p] = content
	}
	out[ManifestPath] = f.Manifest(a)
	return out
}

// prune reports whether p belongs to a feature that was not selected.
func (f ExtensionFinalizer) prune(p string, a *models.Answers) bool {
	if !a.UseEmbedSDK && strings.HasPrefix(path.Base(p), "Embed.") && path.Dir(p) == "src/components" {
		return true
	}
	if !a.UseLookerSDK && strings.HasPrefix(p, "src/api/") {
		return true
	}
	return false
}

// Manifest renders the LookML manifest for a.
func (f ExtensionFinalizer) Manifest(a *models.Answers) string {
	id := AppID(a.ProjectName)
	url := f.BundleURL
	if url == "" {
		url = DevBundleURL
	}

	var methods []string
	if a.HasFeature(models.FeatureLookerAPI) || a.UseLookerSDK {
		methods = append(methods, lookerAPIMethods...)
	}
	if a.HasFeature(models.FeatureArtifactAPI) {
		methods = append(methods, artifactAPIMethods...)
	}

	var b strings.Builder
	b.WriteString("project_name: " + quote(id) + "\n\n")
	b.WriteString("application: " + id + " {\n")
	b.WriteString("  label: " + quote(a.ProjectName) + "\n")
	b.WriteString("  url: " + quote(url) + "\n")
	b.WriteString("  entitlements: {\n")
	b.WriteString("    local_storage: yes\n")
	b.WriteString("    navigation: yes\n")
	b.WriteString("    new_window: yes\n")
	b.WriteString("    new_window_external_urls: []\n")
	if a.HasFeature(models.FeatureLookerEmbed) || a.UseEmbedSDK {
		b.WriteString("    use_embeds: yes\n")
	}
	b.WriteString("    core_api_methods: " + list(methods) + "\n")
	if a.HasFeature(models.FeatureUserAttributes) {
		b.WriteString("    scoped_user_attributes: " + list(f.UserAttributes) + "\n")
		b.WriteString("    global_user_attributes: []\n")
	}
	if a.HasFeature(models.FeatureServerProxy) {
		b.WriteString("    external_api_urls: " + list(f.ExternalAPIURLs) + "\n")
	}
	b.WriteString("  }\n")
	b.WriteString("}\n")
	return b.String()
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func list(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
