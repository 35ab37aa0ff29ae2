package lexer

import (
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/token"
)

// scanNumber consumes an integer or decimal mantissa with an optional
// exponent: [0-9]*(.[0-9]+)?([eE][+-]?[0-9]+)?. A leading bare '.' is
// valid ('.1'); the caller guarantees a digit follows it. A number
// directly followed by more number ('1.1.1') is a fatal lex error.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// The exponent is consumed only when the full form is present, so
	// '1e' lexes as number then identifier, as the reference grammar does.
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		b1 := lx.cursor.PeekAt(1)
		b2 := lx.cursor.PeekAt(2)
		if isDec(b1) || ((b1 == '+' || b1 == '-') && isDec(b2)) {
			lx.cursor.Bump() // e/E
			if b1 == '+' || b1 == '-' {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	if isDec(lx.cursor.Peek()) ||
		(lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1))) {
		sp := lx.cursor.SpanFrom(start)
		return lx.fatal(diag.LexBadNumber, sp, "malformed number literal")
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
