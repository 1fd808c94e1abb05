//go:build windows

package config

import (
	"errors"
	"testing"
)

func TestScopeFileName_Devices(t *testing.T) {
	for _, name := range []string{"con", "Nul", "aux", "com1", "LPT9"} {
		if _, err := ScopeFileName(name); !errors.Is(err, ErrBadFileName) {
			t.Errorf("ScopeFileName(%q) error = %v, want %v", name, err, ErrBadFileName)
		}
	}
	for _, name := range []string{"console", "com10", "nulls"} {
		if _, err := ScopeFileName(name); err != nil {
			t.Errorf("ScopeFileName(%q) error = %v", name, err)
		}
	}
}
