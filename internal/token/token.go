package token

import (
	"github.com/CerenB/miss-hit/internal/source"
)

// Token represents a single source token with its location and the exact
// whitespace that preceded it on its line. Tokens are immutable once
// produced; concatenating Leading+Text over a whole stream reconstructs
// the input byte for byte.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	// Leading is the run of spaces and tabs between the previous token
	// and this one. Newlines are their own tokens and never appear here.
	Leading string

	// FirstInLine reports whether this is the first token on its
	// physical line.
	FirstInLine bool
}

// LeadingWidth returns the number of whitespace characters preceding the
// token on its line.
func (t Token) LeadingWidth() int { return len(t.Leading) }

// LeadingChar returns the first character of the leading whitespace, or 0
// when there is none. Mixed runs report their first character.
func (t Token) LeadingChar() byte {
	if len(t.Leading) == 0 {
		return 0
	}
	return t.Leading[0]
}

// IsSignificant reports whether the token participates in quote
// disambiguation and statement structure (everything except layout and
// comments).
func (t Token) IsSignificant() bool {
	switch t.Kind {
	case Newline, Comment, BlockOpen, BlockClose, Continuation, EOF:
		return false
	default:
		return true
	}
}

// IsRelational reports whether the token is one of < <= > >= == ~=.
func (t Token) IsRelational() bool {
	if t.Kind != Operator {
		return false
	}
	switch t.Text {
	case "<", "<=", ">", ">=", "==", "~=":
		return true
	default:
		return false
	}
}

// IsTranspose reports whether the token is the ' or .' suffix operator.
func (t Token) IsTranspose() bool {
	return t.Kind == Operator && (t.Text == "'" || t.Text == ".'")
}
