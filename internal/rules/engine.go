// Package rules implements the style rule catalog. Each rule is an
// independent predicate over the token stream, the structural events,
// and the effective options; rules never observe each other's output.
package rules

import (
	"github.com/CerenB/miss-hit/internal/config"
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/structure"
	"github.com/CerenB/miss-hit/internal/token"
)

// Def describes one rule in the catalog.
type Def struct {
	Name      string
	Mandatory bool
	Fixable   bool
	Code      diag.Code
	run       func(c *checker, d Def)
}

// Catalog is the full rule set in evaluation order. Mandatory rules
// ignore suppress_rule; they keep autofixed output consistent.
var Catalog = []Def{
	{"eof_newlines", true, true, diag.StyleEOFNewlines, checkEOFNewlines},
	{"consecutive_blanks", true, true, diag.StyleConsecutiveBlanks, checkConsecutiveBlanks},
	{"tabs", true, true, diag.StyleTabs, checkTabs},
	{"trailing_whitespace", true, true, diag.StyleTrailingWhitespace, checkTrailingWhitespace},

	{"file_length", false, false, diag.StyleFileLength, checkFileLength},
	{"line_length", false, false, diag.StyleLineLength, checkLineLength},
	{"copyright_notice", false, false, diag.StyleCopyrightNotice, checkCopyrightNotice},
	{"filename", false, false, diag.StyleFilename, checkFilename},

	{"whitespace_comma", false, true, diag.StyleWhitespaceComma, checkWhitespaceComma},
	{"whitespace_colon", false, true, diag.StyleWhitespaceColon, checkWhitespaceColon},
	{"whitespace_assignment", false, true, diag.StyleWhitespaceAssignment, checkWhitespaceAssignment},
	{"whitespace_brackets", false, true, diag.StyleWhitespaceBrackets, checkWhitespaceBrackets},
	{"whitespace_keywords", false, true, diag.StyleWhitespaceKeywords, checkWhitespaceKeywords},
	{"whitespace_comments", false, true, diag.StyleWhitespaceComments, checkWhitespaceComments},
	{"whitespace_continuation", false, true, diag.StyleWhitespaceContinuation, checkWhitespaceContinuation},
	{"operator_whitespace", false, true, diag.StyleOperatorWhitespace, checkOperatorWhitespace},
	{"operator_after_continuation", false, false, diag.StyleOperatorAfterContinuation, checkOperatorAfterContinuation},
	{"useless_continuation", false, false, diag.StyleUselessContinuation, checkUselessContinuation},
	{"dangerous_continuation", false, false, diag.StyleDangerousContinuation, checkDangerousContinuation},

	{"indentation", false, true, diag.StyleIndentation, checkIndentation},
	{"naming_functions", false, false, diag.StyleNamingFunctions, checkNamingFunctions},
	{"naming_classes", false, false, diag.StyleNamingClasses, checkNamingClasses},
}

// Input carries everything a rule may look at.
type Input struct {
	File   *source.File
	Tokens []token.Token
	Events []structure.Event
	Opts   *config.Options
}

// Evaluate runs every active rule and returns the merged diagnostics in
// stream order of emission (the caller sorts).
func Evaluate(in Input) []diag.Diagnostic {
	c := &checker{Input: in}
	c.buildLines()

	for _, def := range Catalog {
		if def.Mandatory || in.Opts.RuleActive(def.Name) {
			def.run(c, def)
		}
	}
	return c.diags
}

// lineInfo is one physical line, end exclusive of the newline.
type lineInfo struct {
	num        uint32
	start, end uint32
}

func (l lineInfo) len() int { return int(l.end - l.start) }

type checker struct {
	Input
	lines []lineInfo
	diags []diag.Diagnostic
}

func (c *checker) buildLines() {
	content := c.File.Content
	var start uint32
	num := uint32(1)
	for i := range content {
		if content[i] == '\n' {
			c.lines = append(c.lines, lineInfo{num: num, start: start, end: uint32(i)})
			start = uint32(i) + 1
			num++
		}
	}
	if start < uint32(len(content)) || len(content) == 0 {
		c.lines = append(c.lines, lineInfo{num: num, start: start, end: uint32(len(content))})
	}
}

func (c *checker) lineText(l lineInfo) string {
	return string(c.File.Content[l.start:l.end])
}

func (c *checker) span(start, end uint32) source.Span {
	return source.Span{File: c.File.ID, Start: start, End: end}
}

func (c *checker) style(d Def, sp source.Span, msg string) {
	c.diags = append(c.diags, diag.NewStyle(d.Code, d.Name, sp, msg))
}

// styleFix emits a style diagnostic with an attached rewrite. Callers
// must belong to a fixable rule.
func (c *checker) styleFix(d Def, sp source.Span, msg string, edits ...diag.TextEdit) {
	c.diags = append(c.diags, diag.NewStyle(d.Code, d.Name, sp, msg).
		WithFix(msg, d.Mandatory, edits...))
}

func edit(sp source.Span, newText string) diag.TextEdit {
	return diag.TextEdit{Span: sp, NewText: newText}
}

// gapBefore is the whitespace region between a token and its left
// neighbor on the same line.
func (c *checker) gapBefore(i int) source.Span {
	tok := c.Tokens[i]
	start := tok.Span.Start - uint32(len(tok.Leading))
	return c.span(start, tok.Span.Start)
}

// prevInLine returns the index of the preceding token on the same
// physical line, or -1.
func (c *checker) prevInLine(i int) int {
	if i == 0 || c.Tokens[i].FirstInLine {
		return -1
	}
	return i - 1
}

// nextInLine returns the index of the following token if it is on the
// same line and is not the newline itself, or -1.
func (c *checker) nextInLine(i int) int {
	j := i + 1
	if j >= len(c.Tokens) {
		return -1
	}
	switch c.Tokens[j].Kind {
	case token.Newline, token.EOF:
		return -1
	}
	return j
}

// wsBefore returns the whitespace width left of token i, or -1 when the
// token starts its line.
func (c *checker) wsBefore(i int) int {
	if c.prevInLine(i) < 0 {
		return -1
	}
	return len(c.Tokens[i].Leading)
}

// wsAfter returns the whitespace width right of token i, or -1 when the
// line ends after it.
func (c *checker) wsAfter(i int) int {
	j := c.nextInLine(i)
	if j < 0 {
		return -1
	}
	return len(c.Tokens[j].Leading)
}
