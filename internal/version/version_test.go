// ABOUTME: Tests for version constants
// ABOUTME: Tests the identity strings reported by the -version flag
package version

import (
	"strconv"
	"strings"
	"testing"
)

func TestIdentityConstantsSet(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"Version", Version},
		{"Product", Product},
		{"Manufacturer", Manufacturer},
	}

	for _, tt := range tests {
		if tt.value == "" {
			t.Errorf("%s must not be empty", tt.name)
		}
		if strings.TrimSpace(tt.value) != tt.value {
			t.Errorf("%s has surrounding whitespace: %q", tt.name, tt.value)
		}
	}
}

func TestVersionIsDottedNumbers(t *testing.T) {
	parts := strings.Split(Version, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three version components, got %d in %q", len(parts), Version)
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			t.Errorf("version component %q is not a number", p)
		}
	}
}

func TestProductIsSingleLowercaseToken(t *testing.T) {
	// The product name prefixes the -version output and log lines
	if strings.ContainsAny(Product, " \t") {
		t.Errorf("expected a single token, got %q", Product)
	}
	if Product != strings.ToLower(Product) {
		t.Errorf("expected lowercase, got %q", Product)
	}
}
