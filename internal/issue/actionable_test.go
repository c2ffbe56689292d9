// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "update mod"},
			expected: "failed to update mod",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "update mod", Resource: "./base_mod.zip"},
			expected: "failed to update mod: ./base_mod.zip",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load config", Cause: errors.New("bad field")},
			expected: "failed to load config: bad field",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "update mod",
				Resource:  "./base_mod.zip",
				Cause:     errors.New("manifest.sii not found inside the archive"),
			},
			expected: "failed to update mod: ./base_mod.zip: manifest.sii not found inside the archive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithContext(fmt.Errorf("wrapped: %w", sentinel), "update mod", "mod.scs")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the sentinel through the cause")
	}
	var ae *ActionableError
	if !errors.As(fmt.Errorf("outer: %w", err), &ae) {
		t.Error("errors.As should find the ActionableError")
	}
	if WrapWithContext(nil, "x", "y") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	err := NewErrorContext().
		WithOperation("update mod").
		WithResource("mod.zip").
		WithSuggestion("Check the path").
		WithSuggestions("Retry", "Run with --verbose").
		Wrap(fmt.Errorf("extract: %w", errors.New("zip: not a valid zip file"))).
		Build()

	plain := err.Format(false)
	for _, want := range []string{"failed to update mod: mod.zip", "\n  • Check the path", "\n  • Retry", "\n  • Run with --verbose"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "Error chain:") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. extract: zip: not a valid zip file", "2. zip: not a valid zip file"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_Build(t *testing.T) {
	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without an operation = %v, want untyped nil", err)
	}

	ae := NewErrorContext().WithOperation("load config").WithIssue(ConfigLoadFailedId).Build()
	if ae.Issue != ConfigLoadFailedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, ConfigLoadFailedId)
	}
	if ae.HasSuggestions() {
		t.Error("HasSuggestions() = true, want false")
	}
}
