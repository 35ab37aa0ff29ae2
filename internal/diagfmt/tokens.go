package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// TokenOutput is one token in JSON form.
type TokenOutput struct {
	Kind        string      `json:"kind"`
	Text        string      `json:"text,omitempty"`
	Span        source.Span `json:"span"`
	Leading     string      `json:"leading,omitempty"`
	FirstInLine bool        `json:"first_in_line,omitempty"`
}

// FormatTokensPretty lists the token stream in a human-readable form.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-13s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if tok.Leading != "" {
			fmt.Fprintf(w, " (leading %q)", tok.Leading)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON lists the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var output []TokenOutput

	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:        tok.Kind.String(),
			Text:        tok.Text,
			Span:        tok.Span,
			Leading:     tok.Leading,
			FirstInLine: tok.FirstInLine,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
