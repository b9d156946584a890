package config

// Config holds every setting the generator reads. Keys match the YAML file
// and, upper-cased with the CLE_ prefix, the environment.
type Config struct {
	PackageManager           string   `mapstructure:"package_manager" yaml:"package_manager"`
	InstallArgs              []string `mapstructure:"install_args" yaml:"install_args"`
	MinPackageManagerVersion string   `mapstructure:"min_package_manager_version" yaml:"min_package_manager_version"`
	DynamicMarker            string   `mapstructure:"dynamic_marker" yaml:"dynamic_marker"`
	TemplateDir              string   `mapstructure:"template_dir" yaml:"template_dir"`
	SkipInstall              bool     `mapstructure:"skip_install" yaml:"skip_install"`
	DocsURL                  string   `mapstructure:"docs_url" yaml:"docs_url"`
	BundleURL                string   `mapstructure:"bundle_url" yaml:"bundle_url"`
	MaxParallelWrites        int      `mapstructure:"max_parallel_writes" yaml:"max_parallel_writes"`
}

// Keys lists every configuration key.
var Keys = []string{
	KeyPackageManager,
	KeyInstallArgs,
	KeyMinPackageManagerVersion,
	KeyDynamicMarker,
	KeyTemplateDir,
	KeySkipInstall,
	KeyDocsURL,
	KeyBundleURL,
	KeyMaxParallelWrites,
}

// Configuration keys.
const (
	KeyPackageManager           = "package_manager"
	KeyInstallArgs              = "install_args"
	KeyMinPackageManagerVersion = "min_package_manager_version"
	KeyDynamicMarker            = "dynamic_marker"
	KeyTemplateDir              = "template_dir"
	KeySkipInstall              = "skip_install"
	KeyDocsURL                  = "docs_url"
	KeyBundleURL                = "bundle_url"
	KeyMaxParallelWrites        = "max_parallel_writes"
)
