package structure

import (
	"github.com/CerenB/miss-hit/internal/token"
)

// ContKind classifies a line continuation.
type ContKind uint8

const (
	// ContRegular is a continuation doing its normal job.
	ContRegular ContKind = iota
	// ContUseless is a continuation inside parentheses, where the line
	// may break without one.
	ContUseless
	// ContDangerous is a continuation that silently glues together what
	// reads like two separate statements.
	ContDangerous
)

// ClassifyContinuations maps continuation token indices to their kind.
func ClassifyContinuations(tokens []token.Token) map[int]ContKind {
	result := make(map[int]ContKind)
	parenDepth := 0
	lastSig := -1

	for i, tok := range tokens {
		switch tok.Kind {
		case token.Bra:
			parenDepth++
		case token.Ket:
			if parenDepth > 0 {
				parenDepth--
			}
		case token.Continuation:
			result[i] = classifyOne(tokens, i, parenDepth, lastSig)
		}
		if tok.IsSignificant() {
			lastSig = i
		}
	}
	return result
}

func classifyOne(tokens []token.Token, i, parenDepth, lastSig int) ContKind {
	if parenDepth > 0 {
		return ContUseless
	}

	// A splice right after ',' or ';' reads like a finished statement.
	if lastSig >= 0 {
		switch tokens[lastSig].Kind {
		case token.Comma, token.Semicolon:
			return ContDangerous
		}
	}

	// A splice whose next content is a statement terminator, or starts a
	// new block, hides a statement boundary inside the previous one.
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case token.Newline, token.Comment:
			continue
		case token.Semicolon, token.Comma:
			return ContDangerous
		case token.Keyword:
			if blockOpeners[tokens[j].Text] || midKeywords[tokens[j].Text] || tokens[j].Text == "end" {
				return ContDangerous
			}
		}
		break
	}

	return ContRegular
}
