package lexer

import (
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// ScanChainedRelations flags chained comparisons such as '0 < x < 10',
// which MATLAB evaluates left to right as '(0 < x) < 10' rather than as
// the mathematical conjunction. Relations are counted per bracket depth;
// a statement separator, an assignment, or a logical connective at a
// given depth resets that depth's count, so 'a < b && c < d' is two
// independent relations, not a chain. Each chain produces exactly one
// warning, on the second relation.
func ScanChainedRelations(tokens []token.Token, r diag.Reporter) {
	if r == nil {
		return
	}

	type chain struct {
		count int
		first source.Span
	}
	chains := []chain{{}}
	top := func() *chain { return &chains[len(chains)-1] }

	for _, tok := range tokens {
		switch {
		case tok.Kind.IsOpenBracket():
			chains = append(chains, chain{})

		case tok.Kind.IsCloseBracket():
			if len(chains) > 1 {
				chains = chains[:len(chains)-1]
			}

		case tok.Kind == token.Comma || tok.Kind == token.Semicolon ||
			tok.Kind == token.Newline || tok.Kind == token.Keyword ||
			tok.Kind == token.Assignment:
			top().count = 0

		case tok.Kind == token.Operator && isLogicalConnective(tok.Text):
			top().count = 0

		case tok.IsRelational():
			c := top()
			c.count++
			if c.count == 1 {
				c.first = tok.Span
			}
			if c.count == 2 {
				r.Report(diag.NewWarning(diag.LexChainedRelation, c.first.Cover(tok.Span),
					"chained comparison does not mean what it does in mathematics"))
			}
		}
	}
}

func isLogicalConnective(text string) bool {
	switch text {
	case "&&", "||", "&", "|":
		return true
	}
	return false
}
