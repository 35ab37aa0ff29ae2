package lexer

import (
	"github.com/CerenB/miss-hit/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical errors and warnings. May be nil, in which
	// case anomalies are silently dropped (lexing still continues or
	// aborts exactly as with a reporter).
	Reporter diag.Reporter

	// Octave enables '#' as a comment leader in addition to '%'.
	Octave bool
}

func (lx *Lexer) report(d diag.Diagnostic) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d)
	}
}
