package lexer

import (
	"github.com/CerenB/miss-hit/internal/token"
)

// scanIdentOrKeyword consumes [A-Za-z][A-Za-z0-9_]* and classifies it.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isAlnum(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	kind := token.Identifier
	if token.IsKeyword(text) {
		kind = token.Keyword
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
