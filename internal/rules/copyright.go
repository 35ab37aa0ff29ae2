package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/CerenB/miss-hit/internal/structure"
	"github.com/CerenB/miss-hit/internal/token"
)

// copyrightRegex matches "(c) Copyright 2019 Potato AG" and the common
// variations with a year range and without the leading (c).
var copyrightRegex = regexp.MustCompile(`(\(c\) )?Copyright (\d\d\d\d-)?\d\d\d\d *(?P<org>.*)`)

// checkCopyrightNotice wants the leading comment block of a file to
// contain a sane copyright string, naming a permitted entity when an
// allow-list is configured.
func checkCopyrightNotice(c *checker, d Def) {
	companyFound := false
	genericFound := false
	sawComment := false
	candidate := -1 // token that looked copyright-ish

	for i, tok := range c.Tokens {
		switch tok.Kind {
		case token.Newline:
			continue
		case token.Comment:
			sawComment = true
			if m := copyrightRegex.FindStringSubmatch(tok.Text); m != nil {
				candidate = i
				genericFound = true
				org := strings.TrimSpace(m[copyrightRegex.SubexpIndex("org")])
				if orgPermitted(c, org) {
					companyFound = true
				}
				continue
			}
			if candidate >= 0 {
				continue
			}
			lower := strings.ToLower(tok.Text)
			for _, entity := range c.Opts.CopyrightEntities {
				if strings.Contains(lower, strings.ToLower(entity)) {
					candidate = i
				}
			}
			if strings.Contains(lower, "(c)") || strings.Contains(lower, "copyright") {
				candidate = i
			}
			continue
		}

		// Header over. Decide.
		switch {
		case !sawComment:
			c.style(d, tok.Span,
				"file does not appear to contain any copyright header")
		case companyFound:
		case genericFound:
			if len(c.Opts.CopyrightEntities) > 0 {
				c.style(d, c.Tokens[candidate].Span,
					fmt.Sprintf("copyright does not mention one of %s",
						strings.Join(c.Opts.CopyrightEntities, " or ")))
			}
		case candidate >= 0:
			c.style(d, c.Tokens[candidate].Span,
				"copyright notice not in right format")
		default:
			c.style(d, tok.Span, "no copyright notice found in header")
		}
		return
	}
}

func orgPermitted(c *checker, org string) bool {
	for _, entity := range c.Opts.CopyrightEntities {
		if entity == org {
			return true
		}
	}
	return false
}

// checkFilename compares the file's base name (sans extension) against
// the function naming scheme. Advisory only: the right fix is a rename,
// which no text edit can express.
func checkFilename(c *checker, d Def) {
	base := c.File.Path
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".m")

	re, err := regexp.Compile("^(" + c.Opts.RegexFunctionName + ")$")
	if err != nil || re.MatchString(base) {
		return
	}

	c.style(d, c.span(0, 0),
		fmt.Sprintf("file name %q does not match the naming scheme", base))
}

func checkNamingFunctions(c *checker, d Def) {
	topRe := mustAnchor(c.Opts.RegexFunctionName)
	nestedRe := mustAnchor(c.Opts.RegexNestedName)
	methodRe := mustAnchor(c.Opts.RegexMethodName)
	if topRe == nil || nestedRe == nil || methodRe == nil {
		return
	}

	for _, f := range findFunctions(c) {
		tok := c.Tokens[f.nameIndex]
		switch {
		case f.method:
			if !methodRe.MatchString(tok.Text) {
				c.style(d, tok.Span,
					fmt.Sprintf("method name %q does not match the naming scheme", tok.Text))
			}
		case f.nested:
			if !nestedRe.MatchString(tok.Text) {
				c.style(d, tok.Span,
					fmt.Sprintf("nested function name %q does not match the naming scheme", tok.Text))
			}
		default:
			if !topRe.MatchString(tok.Text) {
				c.style(d, tok.Span,
					fmt.Sprintf("function name %q does not match the naming scheme", tok.Text))
			}
		}
	}
}

func checkNamingClasses(c *checker, d Def) {
	re := mustAnchor(c.Opts.RegexClassName)
	if re == nil {
		return
	}
	for i, tok := range c.Tokens {
		if tok.Kind != token.Keyword || tok.Text != "classdef" {
			continue
		}
		j := nextSignificant(c, i)
		if j < 0 || c.Tokens[j].Kind != token.Identifier {
			continue
		}
		if !re.MatchString(c.Tokens[j].Text) {
			c.style(d, c.Tokens[j].Span,
				fmt.Sprintf("class name %q does not match the naming scheme", c.Tokens[j].Text))
		}
	}
}

// mustAnchor compiles a naming regex as a whole-string match. The config
// layer already validated it; a nil result only happens when the options
// were built by hand.
func mustAnchor(pattern string) *regexp.Regexp {
	re, err := regexp.Compile("^(" + pattern + ")$")
	if err != nil {
		return nil
	}
	return re
}

func nextSignificant(c *checker, i int) int {
	for j := i + 1; j < len(c.Tokens); j++ {
		if c.Tokens[j].IsSignificant() {
			return j
		}
	}
	return -1
}

type functionDecl struct {
	nameIndex int
	nested    bool
	method    bool
}

// findFunctions locates every function declaration's name token. The
// name is the identifier before the opening paren or end of line, after
// skipping the output list. Nesting comes from the structural events,
// which already pair class-body blocks (methods, properties, ...) with
// their 'end'.
func findFunctions(c *checker) []functionDecl {
	var decls []functionDecl
	var stack []string

	for _, ev := range c.Events {
		switch ev.Kind {
		case structure.EventOpen:
			if ev.Word == "function" {
				if idx := functionName(c, ev.TokenIndex); idx >= 0 {
					decls = append(decls, functionDecl{
						nameIndex: idx,
						nested:    contains(stack, "function"),
						method:    contains(stack, "classdef"),
					})
				}
			}
			stack = append(stack, ev.Word)
		case structure.EventClose:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return decls
}

// functionName resolves the declared name in the four declaration
// shapes: 'function f', 'function f(x)', 'function y = f(x)', and
// 'function [a, b] = f(x)'.
func functionName(c *checker, kwIndex int) int {
	i := nextSignificant(c, kwIndex)
	if i < 0 {
		return -1
	}

	// A bracketed output list always has '= name' after it.
	if c.Tokens[i].Kind == token.SBra {
		for c.Tokens[i].Kind != token.SKet {
			i = nextSignificant(c, i)
			if i < 0 {
				return -1
			}
		}
		i = nextSignificant(c, i)
		if i < 0 || c.Tokens[i].Kind != token.Assignment {
			return -1
		}
		i = nextSignificant(c, i)
		if i < 0 || c.Tokens[i].Kind != token.Identifier {
			return -1
		}
		return i
	}

	if c.Tokens[i].Kind != token.Identifier {
		return -1
	}
	j := nextSignificant(c, i)
	if j >= 0 && c.Tokens[j].Kind == token.Assignment {
		k := nextSignificant(c, j)
		if k < 0 || c.Tokens[k].Kind != token.Identifier {
			return -1
		}
		return k
	}
	return i
}

func contains(stack []string, word string) bool {
	for _, w := range stack {
		if w == word {
			return true
		}
	}
	return false
}
