// Package common keeps enums shared between configuration and processing
// packages, so that config does not have to import any of them.
package common

//go:generate go tool go-enum --marshal --names --values

import "strings"

// Stylesheet source syntax.
// ENUM(scss, sass)
type Syntax int

// SyntaxFromExt detects syntax from file extension (with or without leading dot).
func SyntaxFromExt(ext string) (Syntax, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "scss":
		return SyntaxScss, true
	case "sass":
		return SyntaxSass, true
	}
	return SyntaxScss, false
}

func (s Syntax) Ext() string {
	return "." + s.String()
}

// Strategy used to embed scope hash into selectors.
// ENUM(composition, attachment)
type ScopingMode int

// What to do when two scopes produce the same hash.
// ENUM(ignore, error)
type HashCollision int

// What to do when side module with the same name is loaded again.
// ENUM(merge, error)
type ModuleCollision int

// Stylesheet compiler backend.
// ENUM(dartsass, passthrough)
type CompilerKind int
