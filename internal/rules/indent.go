package rules

import (
	"fmt"
	"strings"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/structure"
	"github.com/CerenB/miss-hit/internal/token"
)

// physLine is one physical line of tokens: first token index plus
// whether the previous line spliced into this one.
type physLine struct {
	first   int
	last    int
	spliced bool
	inBlock bool
}

// checkIndentation enforces depth * tab_width leading spaces on every
// statement-opening line. Continuation lines keep their extra offset
// relative to the statement's first line: they are never flagged on
// their own, but shift together with the base line when it is fixed.
// Lines indented with tabs are left alone (the tabs rule owns those),
// as is block comment content.
func checkIndentation(c *checker, d Def) {
	lines := splitPhysLines(c.Tokens)
	depthAt := expectedDepths(c.Tokens, c.Events)

	for i := 0; i < len(lines); i++ {
		l := lines[i]
		if l.spliced || l.inBlock {
			continue
		}
		first := c.Tokens[l.first]
		if first.Kind == token.Newline || first.Kind == token.EOF ||
			first.Kind == token.BlockOpen || first.Kind == token.BlockClose {
			continue
		}
		if strings.ContainsRune(first.Leading, '\t') {
			continue
		}

		expected := depthAt[l.first] * c.Opts.TabWidth
		actual := len(first.Leading)
		if actual == expected {
			continue
		}

		sp := c.gapBefore(l.first)
		edits := []diag.TextEdit{edit(sp, strings.Repeat(" ", expected))}

		// Shift this statement's continuation lines by the same delta.
		delta := expected - actual
		for j := i + 1; j < len(lines) && lines[j].spliced; j++ {
			cont := c.Tokens[lines[j].first]
			if cont.Kind == token.Newline || cont.Kind == token.EOF ||
				strings.ContainsRune(cont.Leading, '\t') {
				continue
			}
			indent := len(cont.Leading) + delta
			if indent < 0 {
				indent = 0
			}
			edits = append(edits, edit(c.gapBefore(lines[j].first),
				strings.Repeat(" ", indent)))
		}

		c.styleFix(d, sp,
			fmt.Sprintf("expected indentation of %d spaces, found %d", expected, actual),
			edits...)
	}
}

// splitPhysLines groups the token stream into physical lines.
func splitPhysLines(tokens []token.Token) []physLine {
	var lines []physLine
	start := 0
	spliced := false
	blockDepth := 0

	flush := func(end int) {
		if end <= start {
			return
		}
		lines = append(lines, physLine{
			first:   start,
			last:    end - 1,
			spliced: spliced,
			inBlock: blockDepth > 0 || tokens[start].Kind == token.BlockClose,
		})
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case token.Newline:
			flush(i)
			spliced = i > start && tokens[i-1].Kind == token.Continuation
			if tokens[start].Kind == token.BlockOpen {
				blockDepth++
			}
			if tokens[start].Kind == token.BlockClose && blockDepth > 0 {
				blockDepth--
			}
			start = i + 1
		case token.EOF:
			flush(i)
		}
	}
	return lines
}

// expectedDepths computes the indent level in force at every token. An
// opener or mid keyword sits at its event depth; everything else sits at
// the running block depth.
func expectedDepths(tokens []token.Token, events []structure.Event) []int {
	depths := make([]int, len(tokens))
	eventAt := make(map[int]structure.Event, len(events))
	for _, e := range events {
		eventAt[e.TokenIndex] = e
	}

	depth := 0
	for i := range tokens {
		if e, ok := eventAt[i]; ok {
			depths[i] = e.Depth
			switch e.Kind {
			case structure.EventOpen:
				depth = e.Depth + 1
			case structure.EventMid:
				depth = e.Depth + 1
			case structure.EventClose:
				depth = e.Depth
			}
			continue
		}
		depths[i] = depth
	}
	return depths
}
