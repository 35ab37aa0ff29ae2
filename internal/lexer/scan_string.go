package lexer

import (
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/token"
)

// scanQuote resolves the quote/transpose ambiguity and, for strings,
// consumes the literal. The classification is a pure function of the
// previous significant token's kind: after an identifier, a number, a
// closing bracket, a completed string, or a transpose, the quote is the
// transpose operator; everywhere else (including the start of a logical
// line) it opens a string.
func (lx *Lexer) scanQuote() token.Token {
	if lx.quoteIsTranspose() {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Operator, Span: sp, Text: "'"}
	}
	return lx.scanString()
}

func (lx *Lexer) quoteIsTranspose() bool {
	switch lx.lastSig {
	case token.Identifier, token.Number, token.String,
		token.Ket, token.SKet, token.CKet:
		return true
	case token.Operator:
		return lx.lastTranspose
	default:
		return false
	}
}

// scanString consumes a single-quoted literal. Two consecutive quotes
// inside the literal decode to one literal quote and scanning continues.
// A newline or end of file before the terminator is a fatal lex error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			return lx.fatal(diag.LexNewlineInString, sp, "newline inside string literal")
		}
		if b == '\'' {
			lx.cursor.Bump()
			if lx.cursor.Eat('\'') {
				// Escaped quote; keep scanning.
				continue
			}
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return lx.fatal(diag.LexUnterminatedString, sp, "string literal is not terminated")
}
