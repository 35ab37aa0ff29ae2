package rules

import (
	"github.com/CerenB/miss-hit/internal/structure"
	"github.com/CerenB/miss-hit/internal/token"
)

func checkOperatorAfterContinuation(c *checker, d Def) {
	for i, tok := range c.Tokens {
		if tok.Kind != token.Continuation {
			continue
		}

		// First token of the spliced line.
		j := i + 1
		for j < len(c.Tokens) && c.Tokens[j].Kind == token.Newline {
			j++
		}
		if j >= len(c.Tokens) || c.Tokens[j].Kind != token.Operator {
			continue
		}

		// A unary after 'x = ...' or after another operator is fine; we
		// under-approximate without a parse tree.
		prev := c.prevInLine(i)
		if prev >= 0 {
			switch c.Tokens[prev].Kind {
			case token.Operator, token.Assignment:
				continue
			}
		}
		c.style(d, c.Tokens[j].Span, "continuations should not start with operators")
	}
}

func checkUselessContinuation(c *checker, d Def) {
	kinds := structure.ClassifyContinuations(c.Tokens)
	for i, kind := range kinds {
		if kind == structure.ContUseless {
			c.style(d, c.Tokens[i].Span,
				"useless continuation, the line may break here without one")
		}
	}
}

func checkDangerousContinuation(c *checker, d Def) {
	kinds := structure.ClassifyContinuations(c.Tokens)
	for i, kind := range kinds {
		if kind == structure.ContDangerous {
			c.style(d, c.Tokens[i].Span,
				"misleading continuation, this splices what reads like two statements")
		}
	}
}
