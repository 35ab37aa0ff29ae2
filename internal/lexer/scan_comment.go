package lexer

import (
	"strings"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// restOfLine consumes up to (not including) the next newline and returns
// the resulting token span.
func (lx *Lexer) restOfLine(start Mark) source.Span {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.cursor.SpanFrom(start)
}

// scanComment handles a '%' (or Octave '#') comment. A line whose only
// non-whitespace content is '%{' or '%}' is a block comment delimiter;
// with anything else on the line the markers are ordinary comment text.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	sp := lx.restOfLine(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	trimmed := strings.TrimRight(text, " \t")

	if lx.firstInLine {
		switch trimmed {
		case "%{":
			lx.blockOpens = append(lx.blockOpens, sp)
			return token.Token{Kind: token.BlockOpen, Span: sp, Text: text}
		case "%}":
			// Closing marker with no open block comment. The documented
			// hazard: a stray delimiter silently changes meaning.
			lx.report(diag.NewWarning(diag.LexStrayBlockClose, sp,
				"'%}' closes no open block comment"))
			return token.Token{Kind: token.BlockClose, Span: sp, Text: text}
		}
	}

	return token.Token{Kind: token.Comment, Span: sp, Text: text}
}

// scanBlockCommentLine consumes one line of block comment content. Nested
// delimiter lines adjust the stack; everything else is comment text no
// matter its lexical shape.
func (lx *Lexer) scanBlockCommentLine(leading string) token.Token {
	start := lx.cursor.Mark()
	sp := lx.restOfLine(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	trimmed := strings.TrimRight(text, " \t")

	switch trimmed {
	case "%{":
		lx.blockOpens = append(lx.blockOpens, sp)
		return token.Token{Kind: token.BlockOpen, Span: sp, Text: text, Leading: leading, FirstInLine: lx.firstInLine}
	case "%}":
		lx.blockOpens = lx.blockOpens[:len(lx.blockOpens)-1]
		return token.Token{Kind: token.BlockClose, Span: sp, Text: text, Leading: leading, FirstInLine: lx.firstInLine}
	}

	if idx := strings.Index(text, "%{"); idx >= 0 {
		markerSpan := source.Span{File: sp.File, Start: sp.Start + uint32(idx), End: sp.Start + uint32(idx) + 2}
		lx.report(diag.NewWarning(diag.LexBlockMarkerNotAlone, markerSpan,
			"'%{' is ignored here because it is not alone on its line"))
	} else if idx := strings.Index(text, "%}"); idx >= 0 {
		markerSpan := source.Span{File: sp.File, Start: sp.Start + uint32(idx), End: sp.Start + uint32(idx) + 2}
		lx.report(diag.NewWarning(diag.LexBlockMarkerNotAlone, markerSpan,
			"'%}' is ignored here because it is not alone on its line"))
	}

	return token.Token{Kind: token.Comment, Span: sp, Text: text, Leading: leading, FirstInLine: lx.firstInLine}
}
