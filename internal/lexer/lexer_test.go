package lexer_test

import (
	"strings"
	"testing"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/lexer"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/token"
)

// testReporter collects every diagnostic the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) count(code diag.Code) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.m", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	return tokens
}

// expectKinds lexes input and compares the significant shape of the stream,
// newlines and comments included, against want.
func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	got := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		got = append(got, tok.Kind)
	}

	if len(got) != len(want) {
		t.Fatalf("token count mismatch for %q:\n got %v\nwant %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d of %q: got %s, want %s", i, input, got[i], want[i])
		}
	}
	return tokens
}

func TestIdentifiersAndKeywords(t *testing.T) {
	expectKinds(t, "if x_1 end",
		token.Keyword, token.Identifier, token.Keyword)

	lx, _ := makeTestLexer("potato spmd otherwise")
	tokens := collectAllTokens(lx)
	if tokens[0].Kind != token.Identifier || tokens[0].Text != "potato" {
		t.Errorf("expected identifier 'potato', got %s %q", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[1].Kind != token.Keyword || tokens[1].Text != "spmd" {
		t.Errorf("expected keyword 'spmd', got %s %q", tokens[1].Kind, tokens[1].Text)
	}
	if tokens[2].Kind != token.Keyword {
		t.Errorf("expected keyword 'otherwise', got %s", tokens[2].Kind)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		input string
		text  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e10", "1e10"},
		{"1.5e-3", "1.5e-3"},
		{"2E+6", "2E+6"},
	}
	for _, tc := range cases {
		lx, rep := makeTestLexer(tc.input)
		tok := lx.Next()
		if tok.Kind != token.Number || tok.Text != tc.text {
			t.Errorf("%q: got %s %q, want Number %q", tc.input, tok.Kind, tok.Text, tc.text)
		}
		if len(rep.diagnostics) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tc.input, rep.diagnostics)
		}
	}
}

func TestNumberWithoutFullExponent(t *testing.T) {
	// '1e' is a number followed by an identifier, not a lex error.
	expectKinds(t, "1e", token.Number, token.Identifier)
	expectKinds(t, "1e+", token.Number, token.Identifier, token.Operator)
}

func TestBadNumberIsFatal(t *testing.T) {
	lx, rep := makeTestLexer("1.1.1")
	tokens := collectAllTokens(lx)
	if tokens[len(tokens)-1].Kind != token.Invalid {
		t.Fatalf("expected Invalid token, got %v", tokens)
	}
	if rep.count(diag.LexBadNumber) != 1 {
		t.Errorf("expected one LexBadNumber, got %v", rep.diagnostics)
	}
	if !lx.Failed() {
		t.Error("lexer should be in failed state")
	}
}

func TestStringLiterals(t *testing.T) {
	lx, _ := makeTestLexer("x = 'hello'")
	tokens := collectAllTokens(lx)
	if tokens[2].Kind != token.String || tokens[2].Text != "'hello'" {
		t.Errorf("got %s %q, want String %q", tokens[2].Kind, tokens[2].Text, "'hello'")
	}

	lx, _ = makeTestLexer("x = 'it''s'")
	tokens = collectAllTokens(lx)
	if tokens[2].Kind != token.String || tokens[2].Text != "'it''s'" {
		t.Errorf("escaped quote: got %s %q", tokens[2].Kind, tokens[2].Text)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer("x = 'oops")
	collectAllTokens(lx)
	if rep.count(diag.LexUnterminatedString) != 1 {
		t.Errorf("expected LexUnterminatedString, got %v", rep.diagnostics)
	}

	lx, rep = makeTestLexer("x = 'oops\ny = 1")
	collectAllTokens(lx)
	if rep.count(diag.LexNewlineInString) != 1 {
		t.Errorf("expected LexNewlineInString, got %v", rep.diagnostics)
	}
	if !lx.Failed() {
		t.Error("lexer should be in failed state")
	}
}

func TestQuoteDisambiguation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			"transpose after identifier",
			"x'",
			[]token.Kind{token.Identifier, token.Operator},
		},
		{
			"transpose after close paren",
			"f(x)'",
			[]token.Kind{token.Identifier, token.Bra, token.Identifier, token.Ket, token.Operator},
		},
		{
			"transpose after close square bracket",
			"[1 2]'",
			[]token.Kind{token.SBra, token.Number, token.Number, token.SKet, token.Operator},
		},
		{
			"transpose after number",
			"2'",
			[]token.Kind{token.Number, token.Operator},
		},
		{
			"transpose of a string",
			"'abc''",
			[]token.Kind{token.String, token.Operator},
		},
		{
			"double transpose",
			"x''",
			[]token.Kind{token.Identifier, token.Operator, token.Operator},
		},
		{
			"string after assignment",
			"x = 'abc'",
			[]token.Kind{token.Identifier, token.Assignment, token.String},
		},
		{
			"string after open paren",
			"f('a')",
			[]token.Kind{token.Identifier, token.Bra, token.String, token.Ket},
		},
		{
			"string after comma",
			"f(x, 'a')",
			[]token.Kind{token.Identifier, token.Bra, token.Identifier, token.Comma, token.String, token.Ket},
		},
		{
			"string after operator",
			"x + 'a'",
			[]token.Kind{token.Identifier, token.Operator, token.String},
		},
		{
			"string at line start",
			"'abc'",
			[]token.Kind{token.String},
		},
		{
			"string after keyword",
			"case 'abc'",
			[]token.Kind{token.Keyword, token.String},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectKinds(t, tc.input, tc.want...)
		})
	}
}

func TestQuoteResetsAtStatementBoundary(t *testing.T) {
	// The identifier on line one must not make the quote on line two a
	// transpose.
	expectKinds(t, "x\n'abc'",
		token.Identifier, token.Newline, token.String)
}

func TestQuoteSurvivesContinuation(t *testing.T) {
	// A continuation splices the logical line, so quote context carries
	// across the newline.
	expectKinds(t, "x = y ...\n'",
		token.Identifier, token.Assignment, token.Identifier,
		token.Continuation, token.Newline, token.Operator)
}

func TestContinuation(t *testing.T) {
	lx, _ := makeTestLexer("a = b + ... a comment\n    c")
	tokens := collectAllTokens(lx)

	var cont *token.Token
	for i := range tokens {
		if tokens[i].Kind == token.Continuation {
			cont = &tokens[i]
		}
	}
	if cont == nil {
		t.Fatal("no continuation token produced")
	}
	if cont.Text != "... a comment" {
		t.Errorf("continuation text: got %q", cont.Text)
	}
}

func TestTwoDotsIsFatal(t *testing.T) {
	lx, rep := makeTestLexer("x ..")
	collectAllTokens(lx)
	if rep.count(diag.LexUnexpectedChar) != 1 {
		t.Errorf("expected LexUnexpectedChar for '..', got %v", rep.diagnostics)
	}
	if !lx.Failed() {
		t.Error("lexer should be in failed state")
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"<=", token.Operator, "<="},
		{">=", token.Operator, ">="},
		{"==", token.Operator, "=="},
		{"~=", token.Operator, "~="},
		{"~", token.Operator, "~"},
		{"=", token.Assignment, "="},
		{"&&", token.Operator, "&&"},
		{"||", token.Operator, "||"},
		{"&", token.Operator, "&"},
		{".*", token.Operator, ".*"},
		{"./", token.Operator, "./"},
		{".\\", token.Operator, ".\\"},
		{".^", token.Operator, ".^"},
		{".'", token.Operator, ".'"},
		{",", token.Comma, ","},
		{";", token.Semicolon, ";"},
		{":", token.Colon, ":"},
	}
	for _, tc := range cases {
		lx, _ := makeTestLexer(tc.input)
		tok := lx.Next()
		if tok.Kind != tc.kind || tok.Text != tc.text {
			t.Errorf("%q: got %s %q, want %s %q", tc.input, tok.Kind, tok.Text, tc.kind, tc.text)
		}
	}
}

func TestSelection(t *testing.T) {
	expectKinds(t, "a.b",
		token.Identifier, token.Selection, token.Identifier)
}

func TestComments(t *testing.T) {
	lx, _ := makeTestLexer("x = 1 % trailing\n% whole line")
	tokens := collectAllTokens(lx)

	comments := 0
	for _, tok := range tokens {
		if tok.Kind == token.Comment {
			comments++
		}
	}
	if comments != 2 {
		t.Errorf("expected 2 comments, got %d in %v", comments, tokens)
	}
}

func TestOctaveComment(t *testing.T) {
	lx, _ := makeTestLexer("# octave style")
	tok := lx.Next()
	if tok.Kind != token.Comment {
		t.Errorf("without octave mode '#' should not be a comment leader: got %s", tok.Kind)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.m", []byte("# octave style")))
	lxo := lexer.New(file, lexer.Options{Octave: true})
	tok = lxo.Next()
	if tok.Kind != token.Comment || tok.Text != "# octave style" {
		t.Errorf("octave mode: got %s %q", tok.Kind, tok.Text)
	}
}

func TestBlockComments(t *testing.T) {
	input := strings.Join([]string{
		"%{",
		"anything 'goes' here 1.1.1",
		"%{",
		"nested",
		"%}",
		"still inside",
		"%}",
		"x = 1",
	}, "\n")

	lx, rep := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(rep.diagnostics) != 0 {
		t.Errorf("clean block comment produced diagnostics: %v", rep.diagnostics)
	}

	opens, closes := 0, 0
	sawAssignment := false
	for _, tok := range tokens {
		switch tok.Kind {
		case token.BlockOpen:
			opens++
		case token.BlockClose:
			closes++
		case token.Assignment:
			sawAssignment = true
		}
	}
	if opens != 2 || closes != 2 {
		t.Errorf("expected 2 opens and 2 closes, got %d/%d", opens, closes)
	}
	if !sawAssignment {
		t.Error("code after the block comment was not lexed")
	}
}

func TestBlockCommentMarkerNotAlone(t *testing.T) {
	input := strings.Join([]string{
		"%{",
		"text %{ more",
		"also %} here",
		"%}",
	}, "\n")

	lx, rep := makeTestLexer(input)
	collectAllTokens(lx)
	if got := rep.count(diag.LexBlockMarkerNotAlone); got != 2 {
		t.Errorf("expected 2 LexBlockMarkerNotAlone warnings, got %d: %v", got, rep.diagnostics)
	}
	if lx.Failed() {
		t.Error("warnings must not abort lexing")
	}
}

func TestStrayBlockClose(t *testing.T) {
	lx, rep := makeTestLexer("%}\nx = 1\n")
	collectAllTokens(lx)
	if rep.count(diag.LexStrayBlockClose) != 1 {
		t.Errorf("expected LexStrayBlockClose, got %v", rep.diagnostics)
	}
	if lx.Failed() {
		t.Error("stray close is a warning, not fatal")
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("%{\nnever closed\n")
	collectAllTokens(lx)
	if rep.count(diag.LexUnterminatedBlockComment) != 1 {
		t.Errorf("expected LexUnterminatedBlockComment, got %v", rep.diagnostics)
	}
	if !lx.Failed() {
		t.Error("unterminated block comment is fatal")
	}
}

func TestBlockMarkerWithTrailingCodeIsComment(t *testing.T) {
	// '%{ x' is an ordinary comment, not a block open.
	expectKinds(t, "%{ x", token.Comment)
}

func TestUnexpectedCharacter(t *testing.T) {
	lx, rep := makeTestLexer("x = $")
	collectAllTokens(lx)
	if rep.count(diag.LexUnexpectedChar) != 1 {
		t.Errorf("expected LexUnexpectedChar, got %v", rep.diagnostics)
	}
}

func TestRoundtrip(t *testing.T) {
	inputs := []string{
		"",
		"x = 1;\n",
		"  if a > b\n\tdisp('hi')\n  end\n",
		"a = [1, 2; 3, 4]';\n% comment\n",
		"%{\nblock\n%}\nfor i = 1:10 ... splice\n    x(i) = i^2;\nend",
		"no trailing newline",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.m", []byte(input)))
		tokens, ok := lexer.Scan(file, lexer.Options{})
		if !ok {
			t.Errorf("%q: unexpected lex failure", input)
			continue
		}
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Leading)
			sb.WriteString(tok.Text)
		}
		if sb.String() != input {
			t.Errorf("roundtrip mismatch:\n got %q\nwant %q", sb.String(), input)
		}
	}
}

func TestFirstInLineAndLeading(t *testing.T) {
	lx, _ := makeTestLexer("  x = 1\n  y")
	tokens := collectAllTokens(lx)

	if !tokens[0].FirstInLine || tokens[0].Leading != "  " {
		t.Errorf("first token: FirstInLine=%v Leading=%q", tokens[0].FirstInLine, tokens[0].Leading)
	}
	if tokens[1].FirstInLine {
		t.Error("'=' must not be first in line")
	}

	var y *token.Token
	for i := range tokens {
		if tokens[i].Text == "y" {
			y = &tokens[i]
		}
	}
	if y == nil || !y.FirstInLine || y.Leading != "  " {
		t.Errorf("'y' token: %+v", y)
	}
}

func TestScanAppendsEOFAfterFatal(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.m", []byte("x = 'oops")))
	tokens, ok := lexer.Scan(file, lexer.Options{})
	if ok {
		t.Fatal("expected failure")
	}
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Errorf("stream must end with EOF, got %s", tokens[len(tokens)-1].Kind)
	}
	if tokens[len(tokens)-2].Kind != token.Invalid {
		t.Errorf("expected Invalid before EOF, got %s", tokens[len(tokens)-2].Kind)
	}
}

func TestChainedRelations(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{"plain chain", "if 0 < x < 10\nend", 1},
		{"single relation", "if x < 10\nend", 0},
		{"separate statements", "a = x < 1;\nb = y < 2;\n", 0},
		{"relations in separate args", "f(x < 1, y > 2)", 0},
		{"chain inside parens", "y = (a < b < c);", 1},
		{"long chain warns once", "if 0 < x < y < 10\nend", 1},
		{"short-circuit and breaks chain", "ok = a < b && c < d;", 0},
		{"short-circuit or breaks chain", "ok = a < b || c < d;", 0},
		{"elementwise and breaks chain", "ok = a < b & c < d;", 0},
		{"elementwise or breaks chain", "ok = a < b | c < d;", 0},
		{"chain after connective still warns", "ok = a < b && c < d < e;", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("test.m", []byte(tc.input)))
			tokens, ok := lexer.Scan(file, lexer.Options{})
			if !ok {
				t.Fatalf("lex failure on %q", tc.input)
			}
			rep := &testReporter{}
			lexer.ScanChainedRelations(tokens, rep)
			if got := rep.count(diag.LexChainedRelation); got != tc.want {
				t.Errorf("%q: got %d chained-relation warnings, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestChainedRelationSpanCoversChain(t *testing.T) {
	input := "if 0 < x < 10\nend"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.m", []byte(input)))
	tokens, ok := lexer.Scan(file, lexer.Options{})
	if !ok {
		t.Fatal("unexpected lex failure")
	}
	rep := &testReporter{}
	lexer.ScanChainedRelations(tokens, rep)
	if len(rep.diagnostics) != 1 {
		t.Fatalf("expected one warning, got %v", rep.diagnostics)
	}
	sp := rep.diagnostics[0].Primary
	// The span runs from the first relation operator through the second.
	if sp.Start != 5 || sp.End != 10 {
		t.Errorf("warning span %d-%d, want 5-10", sp.Start, sp.End)
	}
}
