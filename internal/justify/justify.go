// Package justify implements inline justifications: a comment or
// continuation carrying the ignore marker suppresses the style findings
// on its line. Lexical warnings and errors cannot be justified away.
package justify

import (
	"strings"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// Marker is the magic substring that justifies a line.
const Marker = "mh:ignore_style"

// pragmaOK is the MATLAB editor's own suppression pragma, honored as a
// justification when ignore_pragmas is set.
const pragmaOK = "%#ok"

type justification struct {
	line uint32
	span source.Span
	used bool
}

// Apply filters style diagnostics on justified lines and appends one
// warning per justification that suppressed nothing. The input slice is
// not modified.
func Apply(fs *source.FileSet, tokens []token.Token, diags []diag.Diagnostic, ignorePragmas bool) []diag.Diagnostic {
	var marks []justification
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Comment, token.Continuation:
		default:
			continue
		}
		if !strings.Contains(tok.Text, Marker) &&
			!(ignorePragmas && strings.Contains(tok.Text, pragmaOK)) {
			continue
		}
		start, _ := fs.Resolve(tok.Span)
		marks = append(marks, justification{line: start.Line, span: tok.Span})
	}

	if len(marks) == 0 {
		return diags
	}

	kept := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity != diag.SevStyle {
			kept = append(kept, d)
			continue
		}
		start, _ := fs.Resolve(d.Primary)
		justified := false
		for i := range marks {
			if marks[i].line == start.Line {
				marks[i].used = true
				justified = true
			}
		}
		if !justified {
			kept = append(kept, d)
		}
	}

	for _, m := range marks {
		if !m.used {
			kept = append(kept, diag.NewWarning(diag.MetaUselessJustification, m.span,
				"this justification does not suppress anything"))
		}
	}
	return kept
}
