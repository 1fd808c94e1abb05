package compiler

import (
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const mediaType = "text/css"

// Minifier is the post-processing step applied to every compiled stylesheet.
type Minifier struct {
	m       *minify.M
	enabled bool
}

// NewMinifier prepares minifier. With keepCSS2 output is restricted to
// constructs understood by CSS2 user agents.
func NewMinifier(enabled, keepCSS2 bool) *Minifier {
	m := minify.New()
	m.Add(mediaType, &css.Minifier{KeepCSS2: keepCSS2})
	return &Minifier{m: m, enabled: enabled}
}

// Transform minifies CSS when enabled, otherwise returns it untouched.
func (mf *Minifier) Transform(in string) (string, error) {
	if !mf.enabled || in == "" {
		return in, nil
	}
	out, err := mf.m.String(mediaType, in)
	if err != nil {
		return "", fmt.Errorf("unable to minify css: %w", err)
	}
	return out, nil
}
