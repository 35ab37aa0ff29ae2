// Package structure derives block-nesting events from a token stream
// without building an expression-level AST. The events drive the
// indentation engine and let rules reason about compound statements.
package structure

import (
	"github.com/CerenB/miss-hit/internal/token"
)

type EventKind uint8

const (
	// EventOpen marks a block opener (if, for, function, ...).
	EventOpen EventKind = iota
	// EventMid marks an intra-block keyword (else, case, catch) that
	// sits one level below the block body.
	EventMid
	// EventClose marks the matching 'end'.
	EventClose
)

// Event is one structural observation tied to a token.
type Event struct {
	Kind       EventKind
	Word       string
	TokenIndex int
	// Depth is the number of enclosing open blocks at the event's line,
	// which is also the expected indent level of that line.
	Depth int
}

// blockOpeners are keywords that always open a block.
var blockOpeners = map[string]bool{
	"if":       true,
	"for":      true,
	"while":    true,
	"switch":   true,
	"function": true,
	"classdef": true,
	"try":      true,
	"parfor":   true,
	"spmd":     true,
}

// midKeywords continue an open block at the opener's level.
var midKeywords = map[string]bool{
	"else":      true,
	"elseif":    true,
	"case":      true,
	"otherwise": true,
	"catch":     true,
}

// classBlocks are identifiers that act as block openers directly inside
// a classdef body.
var classBlocks = map[string]bool{
	"properties":  true,
	"methods":     true,
	"events":      true,
	"enumeration": true,
}

// Index walks the token stream and emits open/mid/close events with
// their nesting depth. An 'end' inside brackets is the array-index
// operand, not a closer; soft keywords (properties, arguments, ...)
// only open blocks in the right enclosing context.
func Index(tokens []token.Token) []Event {
	var events []Event
	var stack []string
	bracketDepth := 0

	top := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for i, tok := range tokens {
		switch {
		case tok.Kind.IsOpenBracket():
			bracketDepth++

		case tok.Kind.IsCloseBracket():
			if bracketDepth > 0 {
				bracketDepth--
			}

		case tok.Kind == token.Keyword:
			switch {
			case tok.Text == "end":
				if bracketDepth > 0 {
					// Array index, e.g. x(end).
					continue
				}
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				events = append(events, Event{
					Kind:       EventClose,
					Word:       "end",
					TokenIndex: i,
					Depth:      len(stack),
				})

			case blockOpeners[tok.Text]:
				events = append(events, Event{
					Kind:       EventOpen,
					Word:       tok.Text,
					TokenIndex: i,
					Depth:      len(stack),
				})
				stack = append(stack, tok.Text)

			case midKeywords[tok.Text]:
				depth := len(stack) - 1
				if depth < 0 {
					depth = 0
				}
				events = append(events, Event{
					Kind:       EventMid,
					Word:       tok.Text,
					TokenIndex: i,
					Depth:      depth,
				})
			}

		case tok.Kind == token.Identifier && tok.FirstInLine && bracketDepth == 0:
			word := tok.Text
			opener := (classBlocks[word] && top() == "classdef") ||
				(word == "arguments" && top() == "function")
			if opener {
				events = append(events, Event{
					Kind:       EventOpen,
					Word:       word,
					TokenIndex: i,
					Depth:      len(stack),
				})
				stack = append(stack, word)
			}
		}
	}

	return events
}
