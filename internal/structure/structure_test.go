package structure_test

import (
	"strings"
	"testing"

	"github.com/CerenB/miss-hit/internal/lexer"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/structure"
	"github.com/CerenB/miss-hit/internal/token"
)

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.m", []byte(input)))
	tokens, ok := lexer.Scan(file, lexer.Options{})
	if !ok {
		t.Fatalf("lex failure on %q", input)
	}
	return tokens
}

// shape renders events as "kind:word@depth" strings for comparison.
func shape(events []structure.Event) []string {
	names := map[structure.EventKind]string{
		structure.EventOpen:  "open",
		structure.EventMid:   "mid",
		structure.EventClose: "close",
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, names[e.Kind]+":"+e.Word+"@"+string(rune('0'+e.Depth)))
	}
	return out
}

func expectEvents(t *testing.T, input string, want ...string) {
	t.Helper()
	got := shape(structure.Index(lex(t, input)))
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("events for %q:\n got %v\nwant %v", input, got, want)
	}
}

func TestSimpleBlocks(t *testing.T) {
	expectEvents(t, "if x\nend",
		"open:if@0", "close:end@0")

	expectEvents(t, "for i = 1:3\n  while x\n  end\nend",
		"open:for@0", "open:while@1", "close:end@1", "close:end@0")
}

func TestMidKeywords(t *testing.T) {
	expectEvents(t, "if x\nelseif y\nelse\nend",
		"open:if@0", "mid:elseif@0", "mid:else@0", "close:end@0")

	expectEvents(t, "switch x\ncase 1\notherwise\nend",
		"open:switch@0", "mid:case@0", "mid:otherwise@0", "close:end@0")

	expectEvents(t, "try\ncatch e\nend",
		"open:try@0", "mid:catch@0", "close:end@0")
}

func TestEndInsideBracketsIsOperand(t *testing.T) {
	expectEvents(t, "if x\n  y = z(end);\nend",
		"open:if@0", "close:end@0")

	expectEvents(t, "y = x(end)",
	)
}

func TestClassBodyBlocks(t *testing.T) {
	input := strings.Join([]string{
		"classdef Potato",
		"  properties",
		"    x",
		"  end",
		"  methods",
		"    function y = f(obj)",
		"      arguments",
		"        obj",
		"      end",
		"    end",
		"  end",
		"end",
	}, "\n")
	expectEvents(t, input,
		"open:classdef@0",
		"open:properties@1", "close:end@1",
		"open:methods@1",
		"open:function@2",
		"open:arguments@3", "close:end@3",
		"close:end@2",
		"close:end@1",
		"close:end@0")
}

func TestPropertiesOutsideClassIsNotABlock(t *testing.T) {
	// Plain script: 'properties' is just a variable here.
	expectEvents(t, "properties = 3\n")
}

func TestClassifyContinuations(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []structure.ContKind
	}{
		{
			"regular",
			"x = 1 + ...\n    2;",
			[]structure.ContKind{structure.ContRegular},
		},
		{
			"useless inside parens",
			"f(a, ...\n  b)",
			[]structure.ContKind{structure.ContUseless},
		},
		{
			"dangerous after semicolon",
			"x = 1; ...\ny = 2;",
			[]structure.ContKind{structure.ContDangerous},
		},
		{
			"dangerous before terminator",
			"x = a ...\n;",
			[]structure.ContKind{structure.ContDangerous},
		},
		{
			"dangerous before block keyword",
			"x = f() ...\nif y\nend",
			[]structure.ContKind{structure.ContDangerous},
		},
		{
			"matrix rows are fine",
			"m = [1 2 ...\n     3 4];",
			[]structure.ContKind{structure.ContRegular},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := lex(t, tc.input)
			got := structure.ClassifyContinuations(tokens)
			if len(got) != len(tc.want) {
				t.Fatalf("found %d continuations, want %d", len(got), len(tc.want))
			}
			var kinds []structure.ContKind
			for i, tok := range tokens {
				if tok.Kind == token.Continuation {
					kinds = append(kinds, got[i])
				}
			}
			for i := range tc.want {
				if kinds[i] != tc.want[i] {
					t.Errorf("continuation %d: got %d, want %d", i, kinds[i], tc.want[i])
				}
			}
		})
	}
}
