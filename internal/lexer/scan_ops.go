package lexer

import (
	"fmt"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/token"
)

// scanDot handles '.' when no digit follows: a '...' continuation, a
// pointwise operator (.* ./ .\ .^ .'), or field selection.
func (lx *Lexer) scanDot() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.PeekAt(1) == '.' {
		if lx.cursor.PeekAt(2) != '.' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return lx.fatal(diag.LexUnexpectedChar, sp, "'..' is not a valid token")
		}
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.cursor.Bump()
		// The splice also claims the rest of the physical line; anything
		// after '...' is commentary (and may carry a justification).
		sp := lx.restOfLine(start)
		return token.Token{Kind: token.Continuation, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch lx.cursor.PeekAt(1) {
	case '*', '/', '\\', '^', '\'':
		lx.cursor.Bump()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Operator, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Selection, Span: sp, Text: "."}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	simple := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch ch {
	case '<', '>', '=', '~':
		// Relation, negation, or assignment.
		if lx.cursor.Eat('=') {
			return simple(token.Operator)
		}
		if ch == '=' {
			return simple(token.Assignment)
		}
		return simple(token.Operator)

	case '+', '-', '*', '/', '^', '\\':
		return simple(token.Operator)

	case '&', '|':
		lx.cursor.Eat(ch)
		return simple(token.Operator)

	case ',':
		return simple(token.Comma)
	case ';':
		return simple(token.Semicolon)
	case ':':
		return simple(token.Colon)

	case '(':
		return simple(token.Bra)
	case ')':
		return simple(token.Ket)
	case '[':
		return simple(token.SBra)
	case ']':
		return simple(token.SKet)
	case '{':
		return simple(token.CBra)
	case '}':
		return simple(token.CKet)
	}

	sp := lx.cursor.SpanFrom(start)
	return lx.fatal(diag.LexUnexpectedChar, sp, fmt.Sprintf("unexpected character %q", ch))
}
