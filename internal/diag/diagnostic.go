package diag

import (
	"github.com/CerenB/miss-hit/internal/source"
)

// TextEdit replaces the bytes covered by Span with NewText. OldText, when
// non-empty, guards the edit: it must match the current content or the
// edit is rejected.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a token-range rewrite associated with a diagnostic.
type Fix struct {
	Title     string
	Mandatory bool // mandatory-rule fixes win span conflicts
	Edits     []TextEdit
}

// Diagnostic is one reported finding: a lexical warning, a configuration
// error, or a style rule violation.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Rule     string // style rule name, empty for non-rule diagnostics
	Message  string
	Primary  source.Span
	Fix      *Fix
}

// Fixable reports whether the diagnostic carries an applicable fix.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil && len(d.Fix.Edits) > 0
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// NewStyle creates a style rule violation for the named rule.
func NewStyle(code Code, rule string, primary source.Span, msg string) Diagnostic {
	d := New(SevStyle, code, primary, msg)
	d.Rule = rule
	return d
}

// WithFix attaches a fix to the diagnostic.
func (d Diagnostic) WithFix(title string, mandatory bool, edits ...TextEdit) Diagnostic {
	d.Fix = &Fix{Title: title, Mandatory: mandatory, Edits: edits}
	return d
}
