// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/scsup/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/scsup/config.cue on macOS, %APPDATA%\scsup\config.cue
// on Windows), falling back to ./config.cue. Every key can be overridden from the
// environment with the SCSUP_ prefix, for example SCSUP_COMPRESSION_LEVEL=9 or
// SCSUP_UI_VERBOSE=true.
//
// Files are validated against the embedded schema (config_schema.cue) before they are
// merged over the defaults, and the decoded Config is checked again with IsValid.
package config
