// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for scsup.
//
// The command tree is built by NewRootCommand around an App, which carries the
// configuration provider, the filesystem and the terminal interaction hooks so
// that tests can drive commands without a TTY or a real disk.
package cmd
