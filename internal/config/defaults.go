package config

import (
	"slices"

	"github.com/spf13/viper"

	"github.com/looker-open-source/create-looker-extension/internal/core/project"
	"github.com/looker-open-source/create-looker-extension/internal/installer"
	"github.com/looker-open-source/create-looker-extension/internal/template"
)

// Default values, shared with the packages that consume them.
const (
	DefaultPackageManager    = installer.DefaultPackageManager
	DefaultMinVersion        = installer.DefaultMinVersion
	DefaultDynamicMarker     = template.DefaultDynamicMarker
	DefaultDocsURL           = installer.DocsURL
	DefaultBundleURL         = template.DevBundleURL
	DefaultMaxParallelWrites = project.DefaultParallelWrites
)

// NewDefaultConfig returns a Config holding only built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		PackageManager:           DefaultPackageManager,
		InstallArgs:              slices.Clone(installer.DefaultInstallArgs),
		MinPackageManagerVersion: DefaultMinVersion,
		DynamicMarker:            DefaultDynamicMarker,
		DocsURL:                  DefaultDocsURL,
		BundleURL:                DefaultBundleURL,
		MaxParallelWrites:        DefaultMaxParallelWrites,
	}
}

// setDefaults registers every key on v. Registering all keys also lets
// Unmarshal see values that only exist in the environment.
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault(KeyPackageManager, d.PackageManager)
	v.SetDefault(KeyInstallArgs, d.InstallArgs)
	v.SetDefault(KeyMinPackageManagerVersion, d.MinPackageManagerVersion)
	v.SetDefault(KeyDynamicMarker, d.DynamicMarker)
	v.SetDefault(KeyTemplateDir, d.TemplateDir)
	v.SetDefault(KeySkipInstall, d.SkipInstall)
	v.SetDefault(KeyDocsURL, d.DocsURL)
	v.SetDefault(KeyBundleURL, d.BundleURL)
	v.SetDefault(KeyMaxParallelWrites, d.MaxParallelWrites)
}
