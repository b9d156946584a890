package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Dynamic token patterns that must not appear in configuration values.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[^}]+\}`),        // ${VAR}
	regexp.MustCompile(`\{\{[^}]+\}\}`),      // {{VAR}}
	regexp.MustCompile(`\$[A-Z_][A-Z0-9_]*`), // $VAR
}

// @MX:ANCHOR: [AUTO] every generation run validates its configuration here
// @MX:REASON: [AUTO] fan_in from Load and from the CLI after flag overrides
// Validate checks the configuration for correctness and returns a
// *ValidationErrors listing every problem found.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validatePackageManager(cfg)...)
	errs = append(errs, validateMinVersion(cfg.MinPackageManagerVersion)...)
	errs = append(errs, validateDynamicMarker(cfg.DynamicMarker)...)
	errs = append(errs, validateURL(KeyDocsURL, cfg.DocsURL)...)
	errs = append(errs, validateURL(KeyBundleURL, cfg.BundleURL)...)

	if cfg.MaxParallelWrites < 1 {
		errs = append(errs, ValidationError{
			Field:   KeyMaxParallelWrites,
			Message: "must be at least 1",
			Value:   cfg.MaxParallelWrites,
			Wrapped: ErrInvalidConfig,
		})
	}

	errs = append(errs, validateDynamicTokens(cfg)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validatePackageManager(cfg *Config) []ValidationError {
	var errs []ValidationError
	if cfg.PackageManager == "" || strings.ContainsAny(cfg.PackageManager, " \t/\\") {
		errs = append(errs, ValidationError{
			Field:   KeyPackageManager,
			Message: "must be a bare executable name such as npm, pnpm or yarn",
			Value:   cfg.PackageManager,
			Wrapped: ErrInvalidConfig,
		})
	}
	if len(cfg.InstallArgs) == 0 {
		errs = append(errs, ValidationError{
			Field:   KeyInstallArgs,
			Message: "must contain at least one argument",
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateMinVersion(v string) []ValidationError {
	if _, err := semver.NewVersion(v); err != nil {
		return []ValidationError{{
			Field:   KeyMinPackageManagerVersion,
			Message: "must be a semantic version",
			Value:   v,
			Wrapped: ErrInvalidConfig,
		}}
	}
	return nil
}

// validateDynamicMarker requires a file extension such as ".tmpl".
func validateDynamicMarker(marker string) []ValidationError {
	if len(marker) < 2 || !strings.HasPrefix(marker, ".") || strings.ContainsAny(marker, `/\`) {
		return []ValidationError{{
			Field:   KeyDynamicMarker,
			Message: "must be a file extension starting with a dot",
			Value:   marker,
			Wrapped: ErrInvalidConfig,
		}}
	}
	return nil
}

func validateURL(field, raw string) []ValidationError {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return []ValidationError{{
			Field:   field,
			Message: "must be an absolute http or https URL",
			Value:   raw,
			Wrapped: ErrInvalidConfig,
		}}
	}
	return nil
}

// validateDynamicTokens checks string fields for unexpanded dynamic tokens.
func validateDynamicTokens(cfg *Config) []ValidationError {
	var errs []ValidationError
	errs = append(errs, checkStringField(KeyPackageManager, cfg.PackageManager)...)
	errs = append(errs, checkStringField(KeyTemplateDir, cfg.TemplateDir)...)
	errs = append(errs, checkStringField(KeyDocsURL, cfg.DocsURL)...)
	errs = append(errs, checkStringField(KeyBundleURL, cfg.BundleURL)...)
	for _, arg := range cfg.InstallArgs {
		errs = append(errs, checkStringField(KeyInstallArgs, arg)...)
	}
	return errs
}

// checkStringField checks a single string field for dynamic token patterns.
func checkStringField(field, value string) []ValidationError {
	if value == "" {
		return nil
	}
	for _, pattern := range dynamicTokenPatterns {
		if match := pattern.FindString(value); match != "" {
			return []ValidationError{
				{
					Field:   field,
					Message: fmt.Sprintf("contains unexpanded dynamic token: %s", match),
					Value:   value,
					Wrapped: ErrDynamicToken,
				},
			}
		}
	}
	return nil
}
