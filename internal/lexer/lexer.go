package lexer

import (
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// Lexer converts MATLAB source text into a token stream. It carries the
// single piece of genuinely stateful lexer logic: the category of the last
// significant token, which alone decides whether a quote is a transpose
// operator or opens a string literal.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	// lastSig is the previous significant token's kind. It resets at
	// statement boundaries (a newline not preceded by a continuation) so
	// a quote at the start of a logical line always opens a string.
	lastSig token.Kind
	// lastTranspose remembers that lastSig was the transpose operator
	// itself, which chains (x'' is a double transpose).
	lastTranspose bool

	prevKind    token.Kind // kind of the previous token of any category
	firstInLine bool

	// blockOpens holds the spans of unmatched '%{' lines, innermost last.
	blockOpens []source.Span

	failed bool
}

// New creates a lexer over the given file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		firstInLine: true,
	}
}

// Failed reports whether a fatal lex error occurred. After a fatal error
// Next returns EOF forever; the file's remaining text is not tokenized.
func (lx *Lexer) Failed() bool { return lx.failed }

// Next returns the next token. The stream is total: concatenating
// Leading+Text of every returned token (EOF included) reconstructs the
// input exactly, unless a fatal error cut the file short.
func (lx *Lexer) Next() token.Token {
	if lx.failed {
		return lx.emit(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
	}

	leading := lx.collectLeading()

	if lx.cursor.EOF() {
		if len(lx.blockOpens) > 0 {
			sp := lx.blockOpens[len(lx.blockOpens)-1]
			lx.report(diag.NewError(diag.LexUnterminatedBlockComment, sp,
				"block comment is not terminated at end of file"))
			lx.failed = true
		}
		return lx.emit(token.Token{
			Kind:        token.EOF,
			Span:        lx.emptySpan(),
			Leading:     leading,
			FirstInLine: lx.firstInLine,
		})
	}

	ch := lx.cursor.Peek()

	if ch == '\n' {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Token{
			Kind:        token.Newline,
			Span:        lx.cursor.SpanFrom(start),
			Text:        "\n",
			Leading:     leading,
			FirstInLine: lx.firstInLine,
		})
	}

	// Inside an open block comment every line is comment content except
	// those consisting solely of a delimiter.
	if len(lx.blockOpens) > 0 {
		return lx.emit(lx.scanBlockCommentLine(leading))
	}

	var tok token.Token

	switch {
	case ch == '%' || (lx.opts.Octave && ch == '#'):
		tok = lx.scanComment()

	case isAlpha(ch):
		tok = lx.scanIdentOrKeyword()

	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		tok = lx.scanNumber()

	case ch == '.':
		tok = lx.scanDot()

	case ch == '\'':
		tok = lx.scanQuote()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = leading
	tok.FirstInLine = lx.firstInLine
	return lx.emit(tok)
}

// emit records context for the next disambiguation decision.
func (lx *Lexer) emit(tok token.Token) token.Token {
	if tok.IsSignificant() {
		lx.lastSig = tok.Kind
		lx.lastTranspose = tok.IsTranspose()
	} else if tok.Kind == token.Newline && lx.prevKind != token.Continuation {
		// A newline ends the logical line unless spliced by '...'.
		lx.lastSig = token.Invalid
		lx.lastTranspose = false
	}
	lx.prevKind = tok.Kind
	lx.firstInLine = tok.Kind == token.Newline
	return tok
}

// collectLeading consumes the run of spaces and tabs before a token.
func (lx *Lexer) collectLeading() string {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) fatal(code diag.Code, sp source.Span, msg string) token.Token {
	lx.report(diag.NewError(code, sp, msg))
	lx.failed = true
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// Scan tokenizes the whole file. The returned slice always ends with an
// EOF token; ok is false when lexing aborted on a fatal error.
func Scan(file *source.File, opts Options) (tokens []token.Token, ok bool) {
	lx := New(file, opts)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	if last := tokens[len(tokens)-1]; last.Kind == token.Invalid {
		tokens = append(tokens, token.Token{Kind: token.EOF, Span: source.Span{
			File:  file.ID,
			Start: last.Span.End,
			End:   last.Span.End,
		}})
	}
	return tokens, !lx.Failed()
}
