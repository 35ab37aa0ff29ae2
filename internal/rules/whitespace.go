package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/token"
)

func checkWhitespaceComma(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Comma {
			continue
		}
		next := c.nextInLine(i)
		badAfter := next >= 0 && c.wsAfter(i) == 0
		badBefore := c.prevInLine(i) >= 0 && c.wsBefore(i) > 0
		if !badAfter && !badBefore {
			continue
		}

		var edits []diag.TextEdit
		if badBefore {
			edits = append(edits, edit(c.gapBefore(i), ""))
		}
		if badAfter {
			edits = append(edits, edit(c.gapBefore(next), " "))
		}
		c.styleFix(d, tok.Span,
			"comma cannot be preceeded by whitespace and must be followed by whitespace",
			edits...)
	}
}

func checkWhitespaceColon(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Colon {
			continue
		}
		prev := c.prevInLine(i)
		if prev >= 0 && c.Tokens[prev].Kind == token.Comma {
			// The comma rule owns that gap.
			continue
		}
		next := c.nextInLine(i)
		badBefore := prev >= 0 && c.wsBefore(i) > 0
		badAfter := next >= 0 && c.wsAfter(i) > 0
		if !badBefore && !badAfter {
			continue
		}

		var edits []diag.TextEdit
		if badBefore {
			edits = append(edits, edit(c.gapBefore(i), ""))
		}
		if badAfter {
			edits = append(edits, edit(c.gapBefore(next), ""))
		}
		c.styleFix(d, tok.Span, "no whitespace around colon allowed", edits...)
	}
}

func checkWhitespaceAssignment(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Assignment {
			continue
		}
		prev := c.prevInLine(i)
		next := c.nextInLine(i)
		needBefore := prev >= 0 && c.wsBefore(i) == 0
		needAfter := next >= 0 && c.wsAfter(i) == 0
		if !needBefore && !needAfter {
			continue
		}

		var edits []diag.TextEdit
		if needBefore {
			edits = append(edits, edit(c.gapBefore(i), " "))
		}
		if needAfter {
			edits = append(edits, edit(c.gapBefore(next), " "))
		}
		msg := "= must be preceeded by whitespace"
		if !needBefore {
			msg = "= must be succeeded by whitespace"
		}
		c.styleFix(d, tok.Span, msg, edits...)
	}
}

func checkWhitespaceBrackets(c *checker, d Def) {
	for i, tok := range c.Tokens {
		switch {
		case tok.Kind.IsOpenBracket():
			next := c.nextInLine(i)
			if next < 0 || c.wsAfter(i) == 0 || c.Tokens[next].Kind == token.Continuation {
				continue
			}
			c.styleFix(d, tok.Span,
				fmt.Sprintf("%s must not be followed by whitespace", tok.Text),
				edit(c.gapBefore(next), ""))

		case tok.Kind.IsCloseBracket():
			if c.prevInLine(i) < 0 || c.wsBefore(i) == 0 {
				continue
			}
			c.styleFix(d, tok.Span,
				fmt.Sprintf("%s must not be preceeded by whitespace", tok.Text),
				edit(c.gapBefore(i), ""))
		}
	}
}

// keywordsWithWS are words that read badly when glued to what follows.
var keywordsWithWS = map[string]bool{
	"case": true, "catch": true, "classdef": true, "elseif": true,
	"for": true, "function": true, "global": true, "if": true,
	"parfor": true, "persistent": true, "switch": true, "while": true,
	// Class-body words, keywords in spirit.
	"properties": true, "methods": true, "events": true,
}

func checkWhitespaceKeywords(c *checker, d Def) {
	for i, tok := range c.Tokens {
		switch tok.Kind {
		case token.Keyword:
		case token.Identifier:
			if !tok.FirstInLine {
				continue
			}
		default:
			continue
		}
		if !keywordsWithWS[tok.Text] {
			continue
		}
		next := c.nextInLine(i)
		if next < 0 || c.wsAfter(i) > 0 {
			continue
		}
		c.styleFix(d, tok.Span, "keyword must be succeeded by whitespace",
			edit(c.gapBefore(next), " "))
	}
}

var (
	rePragma        = regexp.MustCompile(`^[%#]#[a-zA-Z]`)
	rePragmaInnerWS = regexp.MustCompile(`^[%#]# +[a-zA-Z]`)
	rePragmaOuterWS = regexp.MustCompile(`^[%#] +#[a-zA-Z]`)
)

func checkWhitespaceComments(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Comment {
			continue
		}
		text := tok.Text
		leader := text[0]
		body := strings.TrimLeft(text, string(leader))

		switch {
		case rePragma.MatchString(text):
			// %#codegen and %#ok are pragmas, not comments.

		case rePragmaInnerWS.MatchString(text):
			c.styleFix(d, tok.Span,
				"pragma must not contain whitespace between %# and the pragma",
				edit(tok.Span, "%#"+strings.TrimSpace(text[2:])))

		case rePragmaOuterWS.MatchString(text):
			rest := text[strings.IndexByte(text, '#')+1:]
			c.styleFix(d, tok.Span,
				"pragma must not contain whitespace between % and the pragma",
				edit(tok.Span, "%#"+rest))

		case body != "" && !strings.HasPrefix(body, " "):
			leaders := strings.Repeat(string(leader), len(text)-len(body))
			c.styleFix(d, tok.Span,
				fmt.Sprintf("comment body must be separated with whitespace from the starting %c", leader),
				edit(tok.Span, leaders+" "+body))
		}

		if c.prevInLine(i) >= 0 && c.wsBefore(i) == 0 {
			c.styleFix(d, tok.Span, "comment must be preceeded by whitespace",
				edit(c.gapBefore(i), " "))
		}
	}
}

func checkWhitespaceContinuation(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Continuation {
			continue
		}

		if c.prevInLine(i) >= 0 && c.wsBefore(i) == 0 {
			c.styleFix(d, tok.Span, "continuation must be preceeded by whitespace",
				edit(c.gapBefore(i), " "))
		}

		rest := strings.TrimPrefix(tok.Text, "...")
		if rest != "" && !strings.HasPrefix(rest, " ") {
			c.styleFix(d, tok.Span,
				"comment after continuation must be separated with whitespace",
				edit(tok.Span, "... "+rest))
		}
	}
}

func checkOperatorWhitespace(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Operator {
			continue
		}
		prev := c.prevInLine(i)
		next := c.nextInLine(i)

		switch {
		case tok.IsTranspose():
			if prev >= 0 && c.wsBefore(i) > 0 {
				c.styleFix(d, tok.Span,
					"suffix operator must not be preceeded by whitespace",
					edit(c.gapBefore(i), ""))
			}

		case c.isUnary(i):
			if next >= 0 && c.wsAfter(i) > 0 {
				c.styleFix(d, tok.Span,
					"unary operator must not be followed by whitespace",
					edit(c.gapBefore(next), ""))
			}

		case tok.Text == "^" || tok.Text == ".^":
			var edits []diag.TextEdit
			if prev >= 0 && c.wsBefore(i) > 0 {
				edits = append(edits, edit(c.gapBefore(i), ""))
			}
			if next >= 0 && c.wsAfter(i) > 0 {
				edits = append(edits, edit(c.gapBefore(next), ""))
			}
			if len(edits) > 0 {
				c.styleFix(d, tok.Span,
					"power binary operator must not be surrounded by whitespace",
					edits...)
			}

		default:
			var edits []diag.TextEdit
			if prev >= 0 && c.wsBefore(i) == 0 {
				edits = append(edits, edit(c.gapBefore(i), " "))
			}
			if next >= 0 && c.wsAfter(i) == 0 {
				edits = append(edits, edit(c.gapBefore(next), " "))
			}
			if len(edits) > 0 {
				c.styleFix(d, tok.Span,
					"non power binary operator must be surrounded by whitespace",
					edits...)
			}
		}
	}
}

// isUnary reports whether the operator at i is used in prefix position.
// Without a parse tree this is an approximation based on what precedes.
func (c *checker) isUnary(i int) bool {
	tok := c.Tokens[i]
	if tok.Text == "~" {
		return true
	}
	if tok.Text != "+" && tok.Text != "-" {
		return false
	}

	// Prefix when nothing operand-like stands to the left.
	for j := i - 1; j >= 0; j-- {
		prev := c.Tokens[j]
		switch prev.Kind {
		case token.Newline, token.Comment, token.Continuation:
			continue
		case token.Identifier, token.Number, token.String,
			token.Ket, token.SKet, token.CKet:
			return false
		case token.Operator:
			return !prev.IsTranspose()
		default:
			return true
		}
	}
	return true
}
