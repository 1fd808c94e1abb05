//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// reservedFileName reports names file system would refuse.
func reservedFileName(name string) bool {
	return strings.ContainsRune(name, 0)
}

// EnableColorOutput checks if colorized console log is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
