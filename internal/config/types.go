// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MinCompressionLevel is flate's Huffman-only level.
	MinCompressionLevel CompressionLevel = -2
	// DefaultCompressionLevel lets flate pick its default trade-off.
	DefaultCompressionLevel CompressionLevel = -1
	// MaxCompressionLevel is flate's best compression.
	MaxCompressionLevel CompressionLevel = 9

	pathSeparators = `/\`
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputExtension is the sentinel error wrapped by InvalidOutputExtensionError.
	ErrInvalidOutputExtension = errors.New("invalid output extension")
	// ErrInvalidManifestName is the sentinel error wrapped by InvalidManifestNameError.
	ErrInvalidManifestName = errors.New("invalid manifest name")
	// ErrInvalidVersionKey is the sentinel error wrapped by InvalidVersionKeyError.
	ErrInvalidVersionKey = errors.New("invalid version key")
	// ErrInvalidScratchPrefix is the sentinel error wrapped by InvalidScratchPrefixError.
	ErrInvalidScratchPrefix = errors.New("invalid scratch prefix")
	// ErrInvalidCompressionLevel is the sentinel error wrapped by InvalidCompressionLevelError.
	ErrInvalidCompressionLevel = errors.New("invalid compression level")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	outputExtensionPattern = regexp.MustCompile(`^\.[A-Za-z0-9_]+$`)
	versionKeyPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputExtension is the extension of repackaged archives, dot included.
	OutputExtension string

	// InvalidOutputExtensionError is returned for an extension that is not a
	// dot followed by letters, digits or underscores.
	InvalidOutputExtensionError struct {
		Value OutputExtension
	}

	// ManifestName is the file name searched for inside an archive.
	ManifestName string

	// InvalidManifestNameError is returned for an empty name or one that
	// contains a path separator.
	InvalidManifestNameError struct {
		Value ManifestName
	}

	// VersionKey is the manifest field rewritten with the new version.
	VersionKey string

	// InvalidVersionKeyError is returned for a key that is not an identifier.
	InvalidVersionKeyError struct {
		Value VersionKey
	}

	// ScratchPrefix prefixes the temporary working directory's name. The
	// zero value is valid.
	ScratchPrefix string

	// InvalidScratchPrefixError is returned for a prefix containing a path
	// separator.
	InvalidScratchPrefixError struct {
		Value ScratchPrefix
	}

	// CompressionLevel is a flate level for repackaged archives.
	CompressionLevel int

	// InvalidCompressionLevelError is returned for a level outside
	// MinCompressionLevel..MaxCompressionLevel.
	InvalidCompressionLevelError struct {
		Value CompressionLevel
	}

	// InvalidUIConfigError collects the field errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// OutputExtension is given to repackaged archives.
		OutputExtension OutputExtension `json:"output_extension" yaml:"output_extension" toml:"output_extension" mapstructure:"output_extension"`
		// ManifestName is searched for inside the archive.
		ManifestName ManifestName `json:"manifest_name" yaml:"manifest_name" toml:"manifest_name" mapstructure:"manifest_name"`
		// VersionKey is the manifest field carrying the version.
		VersionKey VersionKey `json:"version_key" yaml:"version_key" toml:"version_key" mapstructure:"version_key"`
		// ScratchPrefix names temporary working directories.
		ScratchPrefix ScratchPrefix `json:"scratch_prefix" yaml:"scratch_prefix" toml:"scratch_prefix" mapstructure:"scratch_prefix"`
		// CompressionLevel is the deflate level of repackaged archives.
		CompressionLevel CompressionLevel `json:"compression_level" yaml:"compression_level" toml:"compression_level" mapstructure:"compression_level"`
		// UI configures the user interface
		UI UIConfig `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
		// AssumeYes skips the confirmation for unconventional version strings
		AssumeYes bool `json:"assume_yes" yaml:"assume_yes" toml:"assume_yes" mapstructure:"assume_yes"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputExtension:  ".scs",
		ManifestName:     "manifest.sii",
		VersionKey:       "mod_version",
		ScratchPrefix:    "scs_updater_",
		CompressionLevel: DefaultCompressionLevel,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, check := range []func() (bool, []error){
		c.OutputExtension.IsValid,
		c.ManifestName.IsValid,
		c.VersionKey.IsValid,
		c.ScratchPrefix.IsValid,
		c.CompressionLevel.IsValid,
		c.UI.IsValid,
	} {
		if valid, fieldErrs := check(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the UIConfig has valid fields.
// Only ColorScheme needs checking.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid UI config: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes ErrInvalidUIConfig and every field error.
func (e *InvalidUIConfigError) Unwrap() []error {
	return append([]error{ErrInvalidUIConfig}, e.FieldErrors...)
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the OutputExtension.
func (x OutputExtension) String() string { return string(x) }

// IsValid returns whether the OutputExtension is a dot followed by at least
// one letter, digit or underscore.
func (x OutputExtension) IsValid() (bool, []error) {
	if !outputExtensionPattern.MatchString(string(x)) {
		return false, []error{&InvalidOutputExtensionError{Value: x}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputExtensionError.
func (e *InvalidOutputExtensionError) Error() string {
	return fmt.Sprintf("invalid output extension %q: must look like \".scs\"", e.Value)
}

// Unwrap returns ErrInvalidOutputExtension for errors.Is() compatibility.
func (e *InvalidOutputExtensionError) Unwrap() error { return ErrInvalidOutputExtension }

// String returns the string representation of the ManifestName.
func (n ManifestName) String() string { return string(n) }

// IsValid returns whether the ManifestName is a bare, non-blank file name.
func (n ManifestName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" || strings.ContainsAny(string(n), pathSeparators) {
		return false, []error{&InvalidManifestNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidManifestNameError.
func (e *InvalidManifestNameError) Error() string {
	return fmt.Sprintf("invalid manifest name %q: must be a file name without directories", e.Value)
}

// Unwrap returns ErrInvalidManifestName for errors.Is() compatibility.
func (e *InvalidManifestNameError) Unwrap() error { return ErrInvalidManifestName }

// String returns the string representation of the VersionKey.
func (k VersionKey) String() string { return string(k) }

// IsValid returns whether the VersionKey is an identifier.
func (k VersionKey) IsValid() (bool, []error) {
	if !versionKeyPattern.MatchString(string(k)) {
		return false, []error{&InvalidVersionKeyError{Value: k}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVersionKeyError.
func (e *InvalidVersionKeyError) Error() string {
	return fmt.Sprintf("invalid version key %q: must be an identifier", e.Value)
}

// Unwrap returns ErrInvalidVersionKey for errors.Is() compatibility.
func (e *InvalidVersionKeyError) Unwrap() error { return ErrInvalidVersionKey }

// String returns the string representation of the ScratchPrefix.
func (p ScratchPrefix) String() string { return string(p) }

// IsValid returns whether the ScratchPrefix is free of path separators.
func (p ScratchPrefix) IsValid() (bool, []error) {
	if strings.ContainsAny(string(p), pathSeparators) {
		return false, []error{&InvalidScratchPrefixError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidScratchPrefixError.
func (e *InvalidScratchPrefixError) Error() string {
	return fmt.Sprintf("invalid scratch prefix %q: must not contain path separators", e.Value)
}

// Unwrap returns ErrInvalidScratchPrefix for errors.Is() compatibility.
func (e *InvalidScratchPrefixError) Unwrap() error { return ErrInvalidScratchPrefix }

// Int returns the level as a plain int for the compressor.
func (l CompressionLevel) Int() int { return int(l) }

// IsValid returns whether the level is within flate's supported range.
func (l CompressionLevel) IsValid() (bool, []error) {
	if l < MinCompressionLevel || l > MaxCompressionLevel {
		return false, []error{&InvalidCompressionLevelError{Value: l}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCompressionLevelError.
func (e *InvalidCompressionLevelError) Error() string {
	return fmt.Sprintf("invalid compression level %d: must be between %d and %d",
		int(e.Value), int(MinCompressionLevel), int(MaxCompressionLevel))
}

// Unwrap returns ErrInvalidCompressionLevel for errors.Is() compatibility.
func (e *InvalidCompressionLevelError) Unwrap() error { return ErrInvalidCompressionLevel }
