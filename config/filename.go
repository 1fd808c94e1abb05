package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadFileName is returned for scope names which cannot be used for output
// files on this platform.
var ErrBadFileName = errors.New("scope name is not usable as file name")

// ScopeFileName returns name of the file receiving compiled scope.
func ScopeFileName(scope string) (string, error) {
	if scope == "" || strings.HasPrefix(scope, ".") || strings.ContainsAny(scope, `/\`) || reservedFileName(scope) {
		return "", fmt.Errorf("scope %q: %w", scope, ErrBadFileName)
	}
	return scope + ".css", nil
}
