package models

import "slices"

// Supported template languages.
const (
	LanguageJavaScript = "javascript"
	LanguageTypeScript = "typescript"
)

// Supported frameworks. "vanilla" means no framework.
const (
	FrameworkReact   = "react"
	FrameworkVanilla = "vanilla"
)

// Selectable extension features.
const (
	FeatureLookerAPI      = "Looker API"
	FeatureArtifactAPI    = "Looker API artifact API"
	FeatureUserAttributes = "User Attribute methods"
	FeatureLookerEmbed    = "Looker Embed"
	FeatureServerProxy    = "Server Proxy Request"
)

// Embeddable content types.
const (
	EmbedDashboard = "Dashboard"
	EmbedExplore   = "Explore"
	EmbedLook      = "Look"
)

// UI framework choices for React projects.
const (
	UILookerComponents = "@looker/components"
	UIMaterial         = "@mui/material"
	UINone             = "none"
)

// Languages returns the supported languages in prompt order.
func Languages() []string {
	return []string{LanguageJavaScript, LanguageTypeScript}
}

// Frameworks returns the supported frameworks in prompt order.
func Frameworks() []string {
	return []string{FrameworkReact, FrameworkVanilla}
}

// Features returns the selectable features in prompt order.
func Features() []string {
	return []string{
		FeatureLookerAPI,
		FeatureArtifactAPI,
		FeatureUserAttributes,
		FeatureLookerEmbed,
		FeatureServerProxy,
	}
}

// EmbedTypes returns the embeddable content types in prompt order.
func EmbedTypes() []string {
	return []string{EmbedDashboard, EmbedExplore, EmbedLook}
}

// UIFrameworks returns the UI framework choices in prompt order.
func UIFrameworks() []string {
	return []string{UILookerComponents, UIMaterial, UINone}
}

// IsValidLanguage reports whether lang is a supported language value.
func IsValidLanguage(lang string) bool {
	return slices.Contains(Languages(), lang)
}

// IsValidFramework reports whether fw is a supported framework value.
func IsValidFramework(fw string) bool {
	return slices.Contains(Frameworks(), fw)
}

// IsValidFeature reports whether name is a known feature.
func IsValidFeature(name string) bool {
	return slices.Contains(Features(), name)
}
