package template

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// Package versions written to generated package.json files.
var packageVersions = map[string]string{
	"@looker/extension-sdk":       "^24.16.0",
	"@looker/extension-sdk-react": "^24.16.0",
	"@looker/embed-sdk":           "^2.0.0",
	"@looker/sdk":                 "^24.16.0",
	"@looker/sdk-rtl":             "^21.6.1",
	"@looker/components":          "^5.0.3",
	"styled-components":           "^5.3.11",
	"@mui/material":               "^5.15.20",
	"@emotion/react":              "^11.11.4",
	"@emotion/styled":             "^11.11.5",
	"react":                       "^18.3.1",
	"react-dom":                   "^18.3.1",
	"swr":                         "^2.2.5",
	"usehooks-ts":                 "^3.1.0",

	"webpack":                  "^5.92.0",
	"webpack-cli":              "^5.1.4",
	"webpack-dev-server":       "^5.0.4",
	"babel-loader":             "^9.1.3",
	"@babel/core":              "^7.24.7",
	"@babel/preset-env":        "^7.24.7",
	"@babel/preset-react":      "^7.24.7",
	"@babel/preset-typescript": "^7.24.7",
	"css-loader":               "^7.1.2",
	"style-loader":             "^4.0.0",
	"html-webpack-plugin":      "^5.6.0",
	"typescript":               "^5.4.5",
	"@types/react":             "^18.3.3",
	"@types/react-dom":         "^18.3.0",
	"@types/styled-components": "^5.1.34",
}

type packageManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Private         bool              `json:"private"`
	License         string            `json:"license"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Dependencies returns the runtime packages for the answers.
func Dependencies(a *models.Answers) []string {
	deps := []string{"@looker/extension-sdk"}
	if a.IsReact() {
		deps = append(deps, "react", "react-dom", "@looker/extension-sdk-react")
	}
	if a.UseRecommendedPackages {
		deps = append(deps, "swr", "usehooks-ts")
	}
	if a.UseEmbedSDK {
		deps = append(deps, "@looker/embed-sdk")
	}
	if a.UseLookerSDK {
		deps = append(deps, "@looker/sdk", "@looker/sdk-rtl")
	}
	if a.IsReact() {
		switch a.UIFramework {
		case models.UILookerComponents:
			deps = append(deps, "@looker/components", "styled-components")
		case models.UIMaterial:
			deps = append(deps, "@mui/material", "@emotion/react", "@emotion/styled")
		}
	}
	return deps
}

// DevDependencies returns the build tooling packages for the answers.
func DevDependencies(a *models.Answers) []string {
	deps := []string{
		"webpack", "webpack-cli", "webpack-dev-server",
		"babel-loader", "@babel/core", "@babel/preset-env",
		"css-loader", "style-loader",
	}
	if a.IsReact() {
		deps = append(deps, "@babel/preset-react")
	} else {
		deps = append(deps, "html-webpack-plugin")
	}
	if a.IsTypeScript() {
		deps = append(deps, "@babel/preset-typescript", "typescript")
		if a.IsReact() {
			deps = append(deps, "@types/react", "@types/react-dom")
			if a.UIFramework == models.UILookerComponents {
				deps = append(deps, "@types/styled-components")
			}
		}
	}
	return deps
}

// PackageJSON renders the package.json for a generated project.
func PackageJSON(a *models.Answers) ([]byte, error) {
	m := packageManifest{
		Name:            PackageName(a.ProjectName),
		Version:         "0.1.0",
		Description:     "Looker extension " + a.ProjectName,
		Private:         true,
		License:         "Apache-2.0",
		Scripts:         packageScripts(a),
		Dependencies:    versioned(Dependencies(a)),
		DevDependencies: versioned(DevDependencies(a)),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func packageScripts(a *models.Answers) map[string]string {
	scripts := map[string]string{
		"dev":       "webpack serve --hot --port 8080 --mode=development",
		"dev:https": "webpack serve --hot --port 8080 --server-type https --mode=development",
		"build":     "webpack --mode=production",
	}
	if a.IsTypeScript() {
		scripts["typecheck"] = "tsc --noEmit"
	}
	return scripts
}

func versioned(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = packageVersions[n]
	}
	return out
}

// PackageName converts a project name to a valid npm package name.
func PackageName(name string) string {
	return sanitize(name, '-', func(r rune) bool {
		return r == '-' || r == '.' || r == '_'
	})
}

// AppID converts a project name to a LookML application identifier.
func AppID(name string) string {
	id := sanitize(name, '_', func(r rune) bool { return r == '_' })
	if id != "" && unicode.IsDigit(rune(id[0])) {
		id = "app_" + id
	}
	return id
}

// sanitize lower-cases name, keeps ASCII letters, digits and runes accepted
// by keep, and collapses everything else into single sep runes.
func sanitize(name string, sep rune, keep func(rune) bool) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), keep(r):
			if pending && b.Len() > 0 {
				b.WriteRune(sep)
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	if b.Len() == 0 {
		return "extension"
	}
	return b.String()
}
