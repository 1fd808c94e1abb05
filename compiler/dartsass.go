package compiler

import (
	"fmt"

	"github.com/bep/godartsass/v2"
	"go.uber.org/zap"

	"stylescope/common"
)

// DartSass talks to dart-sass running in embedded mode.
type DartSass struct {
	log          *zap.Logger
	transpiler   *godartsass.Transpiler
	includePaths []string
	style        godartsass.OutputStyle
}

// NewDartSass starts dart-sass process. binary could be either full path or
// name to look up in PATH.
func NewDartSass(binary string, includePaths []string, compressed bool, log *zap.Logger) (*DartSass, error) {
	if log == nil {
		log = zap.NewNop()
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: binary,
		LogEventHandler: func(e godartsass.LogEvent) {
			switch e.Type {
			case godartsass.LogEventTypeDebug:
				log.Debug("dart-sass", zap.String("message", e.Message))
			default:
				log.Warn("dart-sass", zap.String("message", e.Message))
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to start dart-sass %q: %w", binary, err)
	}

	style := godartsass.OutputStyleExpanded
	if compressed {
		style = godartsass.OutputStyleCompressed
	}
	return &DartSass{log: log, transpiler: t, includePaths: includePaths, style: style}, nil
}

func (d *DartSass) Compile(syntax common.Syntax, source string) (string, error) {
	args := godartsass.Args{
		Source:       source,
		OutputStyle:  d.style,
		IncludePaths: d.includePaths,
	}
	switch syntax {
	case common.SyntaxScss:
		args.SourceSyntax = godartsass.SourceSyntaxSCSS
	case common.SyntaxSass:
		args.SourceSyntax = godartsass.SourceSyntaxSASS
	default:
		return "", &CompileError{Syntax: syntax, Err: common.ErrInvalidSyntax}
	}

	res, err := d.transpiler.Execute(args)
	if err != nil {
		return "", &CompileError{Syntax: syntax, Err: err}
	}
	return res.CSS, nil
}

func (d *DartSass) Close() error {
	return d.transpiler.Close()
}
