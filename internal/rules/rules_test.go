package rules_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CerenB/miss-hit/internal/config"
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/lexer"
	"github.com/CerenB/miss-hit/internal/rules"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/structure"
)

// run lexes input and evaluates the whole catalog with default options.
func run(t *testing.T, input string) []diag.Diagnostic {
	t.Helper()
	return runOpts(t, input, config.DefaultOptions())
}

func runOpts(t *testing.T, input string, opts config.Options) []diag.Diagnostic {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.m", []byte(input)))
	tokens, ok := lexer.Scan(file, lexer.Options{})
	if !ok {
		t.Fatalf("lex failure on %q", input)
	}
	return rules.Evaluate(rules.Input{
		File:   file,
		Tokens: tokens,
		Events: structure.Index(tokens),
		Opts:   &opts,
	})
}

// byRule filters diagnostics for one rule name.
func byRule(diags []diag.Diagnostic, rule string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func wantCount(t *testing.T, diags []diag.Diagnostic, rule string, n int) []diag.Diagnostic {
	t.Helper()
	got := byRule(diags, rule)
	if len(got) != n {
		t.Errorf("rule %s: got %d diagnostics, want %d: %v", rule, len(got), n, got)
	}
	return got
}

func TestEOFNewlines(t *testing.T) {
	wantCount(t, run(t, "x = 1;"), "eof_newlines", 1)
	wantCount(t, run(t, "x = 1;\n"), "eof_newlines", 0)
	wantCount(t, run(t, "x = 1;\n\n\n"), "eof_newlines", 1)
}

func TestConsecutiveBlanks(t *testing.T) {
	wantCount(t, run(t, "x = 1;\n\ny = 2;\n"), "consecutive_blanks", 0)
	wantCount(t, run(t, "x = 1;\n\n\ny = 2;\n"), "consecutive_blanks", 1)
	wantCount(t, run(t, "x = 1;\n\n\n\ny = 2;\n"), "consecutive_blanks", 2)
	// Comment lines are not blank.
	wantCount(t, run(t, "x = 1;\n\n% note\n\ny = 2;\n"), "consecutive_blanks", 0)
}

func TestTabs(t *testing.T) {
	diags := wantCount(t, run(t, "\tx = 1;\n"), "tabs", 1)
	if !diags[0].Fixable() {
		t.Fatal("tabs must be fixable")
	}
	if got := diags[0].Fix.Edits[0].NewText; got != "    " {
		t.Errorf("tab at column 0 expands to %q, want 4 spaces", got)
	}

	// A tab mid-line pads only to the next stop.
	diags = wantCount(t, run(t, "ab\tc = 1;\n"), "tabs", 1)
	if got := diags[0].Fix.Edits[0].NewText; got != "  " {
		t.Errorf("tab at column 2 expands to %q, want 2 spaces", got)
	}

	// Tabs inside strings are expanded too, as documented.
	wantCount(t, run(t, "x = 'a\tb';\n"), "tabs", 1)
}

func TestTrailingTabIsDeletedNotExpanded(t *testing.T) {
	// A tab inside the trailing-whitespace run belongs to that rule
	// alone; expanding it as well would leave spaces behind after the
	// rewrite.
	diags := run(t, "x = 1;\t\n")
	wantCount(t, diags, "tabs", 0)
	wantCount(t, diags, "trailing_whitespace", 1)

	// A tab before real content is still expanded.
	diags = run(t, "\tx = 1; \n")
	wantCount(t, diags, "tabs", 1)
	wantCount(t, diags, "trailing_whitespace", 1)
}

func TestTrailingWhitespace(t *testing.T) {
	wantCount(t, run(t, "x = 1;  \n"), "trailing_whitespace", 1)
	wantCount(t, run(t, "x = 1;\n   \ny = 2;\n"), "trailing_whitespace", 1)
	wantCount(t, run(t, "x = 1;\n"), "trailing_whitespace", 0)
}

func TestLineAndFileLength(t *testing.T) {
	opts := config.DefaultOptions()
	opts.LineLength = 10
	diags := runOpts(t, "x = 1;\nyyyyy = 123456;\n", opts)
	wantCount(t, diags, "line_length", 1)

	opts = config.DefaultOptions()
	opts.FileLength = 2
	diags = runOpts(t, "a = 1;\nb = 2;\nc = 3;\n", opts)
	wantCount(t, diags, "file_length", 1)
}

func TestWhitespaceComma(t *testing.T) {
	wantCount(t, run(t, "f(a, b);\n"), "whitespace_comma", 0)
	wantCount(t, run(t, "f(a,b);\n"), "whitespace_comma", 1)
	wantCount(t, run(t, "f(a , b);\n"), "whitespace_comma", 1)
	// Comma before end of line is fine.
	wantCount(t, run(t, "a = [1,\n2];\n"), "whitespace_comma", 0)
}

func TestWhitespaceColon(t *testing.T) {
	wantCount(t, run(t, "x = a(1:3);\n"), "whitespace_colon", 0)
	wantCount(t, run(t, "x = a(1 : 3);\n"), "whitespace_colon", 1)
	// After a comma the colon gap belongs to the comma rule.
	wantCount(t, run(t, "x = a(1, :);\n"), "whitespace_colon", 0)
}

func TestWhitespaceAssignment(t *testing.T) {
	wantCount(t, run(t, "x = 1;\n"), "whitespace_assignment", 0)
	diags := wantCount(t, run(t, "x=1;\n"), "whitespace_assignment", 1)
	if len(diags[0].Fix.Edits) != 2 {
		t.Errorf("expected edits on both sides, got %v", diags[0].Fix.Edits)
	}
	wantCount(t, run(t, "x =1;\n"), "whitespace_assignment", 1)
}

func TestWhitespaceBrackets(t *testing.T) {
	wantCount(t, run(t, "f( a);\n"), "whitespace_brackets", 1)
	wantCount(t, run(t, "f(a );\n"), "whitespace_brackets", 1)
	wantCount(t, run(t, "f(a);\n"), "whitespace_brackets", 0)
	// An open bracket before a continuation keeps its whitespace.
	wantCount(t, run(t, "f( ...\n  a);\n"), "whitespace_brackets", 0)
}

func TestWhitespaceKeywords(t *testing.T) {
	wantCount(t, run(t, "if(x)\nend\n"), "whitespace_keywords", 1)
	wantCount(t, run(t, "if (x)\nend\n"), "whitespace_keywords", 0)
}

func TestWhitespaceComments(t *testing.T) {
	wantCount(t, run(t, "% fine\n"), "whitespace_comments", 0)
	wantCount(t, run(t, "%bad\n"), "whitespace_comments", 1)
	wantCount(t, run(t, "x = 1; % fine\n"), "whitespace_comments", 0)
	wantCount(t, run(t, "x = 1;% glued\n"), "whitespace_comments", 1)
	// Pragmas are exempt.
	wantCount(t, run(t, "%#codegen\n"), "whitespace_comments", 0)
	// Broken pragma spellings are flagged.
	wantCount(t, run(t, "%# codegen\n"), "whitespace_comments", 1)
	wantCount(t, run(t, "% #codegen\n"), "whitespace_comments", 1)
}

func TestWhitespaceContinuation(t *testing.T) {
	wantCount(t, run(t, "x = 1 + ...\n    2;\n"), "whitespace_continuation", 0)
	wantCount(t, run(t, "x = 1 +...\n    2;\n"), "whitespace_continuation", 1)
	wantCount(t, run(t, "x = 1 + ...comment\n    2;\n"), "whitespace_continuation", 1)
}

func TestOperatorWhitespace(t *testing.T) {
	wantCount(t, run(t, "x = a + b;\n"), "operator_whitespace", 0)
	wantCount(t, run(t, "x = a+b;\n"), "operator_whitespace", 1)
	wantCount(t, run(t, "x = a^b;\n"), "operator_whitespace", 0)
	wantCount(t, run(t, "x = a ^ b;\n"), "operator_whitespace", 1)
	wantCount(t, run(t, "x = -b;\n"), "operator_whitespace", 0)
	wantCount(t, run(t, "x = - b;\n"), "operator_whitespace", 1)
	wantCount(t, run(t, "y = x';\n"), "operator_whitespace", 0)
	wantCount(t, run(t, "y = x ';\n"), "operator_whitespace", 1)
}

func TestOperatorAfterContinuation(t *testing.T) {
	wantCount(t, run(t, "x = a ...\n    + b;\n"), "operator_after_continuation", 1)
	// After an assignment a leading unary is acceptable.
	wantCount(t, run(t, "x = ...\n    -b;\n"), "operator_after_continuation", 0)
	wantCount(t, run(t, "x = a + ...\n    b;\n"), "operator_after_continuation", 0)
}

func TestContinuationRules(t *testing.T) {
	wantCount(t, run(t, "f(a, ...\n  b);\n"), "useless_continuation", 1)
	wantCount(t, run(t, "x = 1; ...\ny = 2;\n"), "dangerous_continuation", 1)
	// Terminator as the next content after the splice.
	wantCount(t, run(t, "x = a ...\n;\n"), "dangerous_continuation", 1)
	wantCount(t, run(t, "x = 1 + ...\n    2;\n"), "useless_continuation", 0)
}

func TestCopyrightNotice(t *testing.T) {
	opts := config.DefaultOptions()
	opts.CopyrightEntities = []string{"Potato AG"}

	clean := "% (c) Copyright 2020 Potato AG\nx = 1;\n"
	wantCount(t, runOpts(t, clean, opts), "copyright_notice", 0)

	rangeYears := "% Copyright 2018-2020 Potato AG\nx = 1;\n"
	wantCount(t, runOpts(t, rangeYears, opts), "copyright_notice", 0)

	wrongEntity := "% (c) Copyright 2020 Carrot GmbH\nx = 1;\n"
	wantCount(t, runOpts(t, wrongEntity, opts), "copyright_notice", 1)

	// Without an allow-list a generic notice is enough.
	wantCount(t, run(t, wrongEntity), "copyright_notice", 0)

	noHeader := "x = 1;\n"
	wantCount(t, runOpts(t, noHeader, opts), "copyright_notice", 1)

	mangled := "% copyright maybe Potato AG someday\nx = 1;\n"
	wantCount(t, runOpts(t, mangled, opts), "copyright_notice", 1)
}

func TestNamingFunctions(t *testing.T) {
	wantCount(t, run(t, "function Do_Stuff()\nend\n"), "naming_functions", 0)
	wantCount(t, run(t, "function doStuff()\nend\n"), "naming_functions", 1)
	wantCount(t, run(t, "function r = Compute(x)\nend\n"), "naming_functions", 0)
	wantCount(t, run(t, "function [a, b] = splitUp(x)\nend\n"), "naming_functions", 1)

	// Methods use the lower-case scheme.
	class := strings.Join([]string{
		"classdef Potato",
		"  methods",
		"    function r = do_stuff(obj)",
		"    end",
		"  end",
		"end",
	}, "\n") + "\n"
	wantCount(t, run(t, class), "naming_functions", 0)

	badMethod := strings.Replace(class, "do_stuff", "Do_Stuff", 1)
	wantCount(t, run(t, badMethod), "naming_functions", 1)

	// Nested functions use the default scheme.
	nested := "function Outer()\n  function innerThing()\n  end\nend\n"
	wantCount(t, run(t, nested), "naming_functions", 1)
}

func TestNamingMethodsInLaterBlocks(t *testing.T) {
	// Functions stay methods after the first class-body block closes.
	class := strings.Join([]string{
		"classdef Potato",
		"  properties",
		"    weight",
		"  end",
		"  methods",
		"    function r = do_a(obj)",
		"    end",
		"  end",
		"  methods (Static)",
		"    function r = do_b()",
		"    end",
		"  end",
		"end",
	}, "\n") + "\n"
	wantCount(t, run(t, class), "naming_functions", 0)

	badLater := strings.Replace(class, "do_b", "Do_B", 1)
	wantCount(t, run(t, badLater), "naming_functions", 1)
}

func TestNamingClasses(t *testing.T) {
	wantCount(t, run(t, "classdef Potato_Farm\nend\n"), "naming_classes", 0)
	wantCount(t, run(t, "classdef potatoFarm\nend\n"), "naming_classes", 1)
}

func TestFilenameRule(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("badName.m", []byte("x = 1;\n")))
	tokens, _ := lexer.Scan(file, lexer.Options{})
	opts := config.DefaultOptions()
	diags := rules.Evaluate(rules.Input{
		File: file, Tokens: tokens,
		Events: structure.Index(tokens), Opts: &opts,
	})
	wantCount(t, diags, "filename", 1)

	file = fs.Get(fs.AddVirtual("Good_Name.m", []byte("x = 1;\n")))
	tokens, _ = lexer.Scan(file, lexer.Options{})
	diags = rules.Evaluate(rules.Input{
		File: file, Tokens: tokens,
		Events: structure.Index(tokens), Opts: &opts,
	})
	wantCount(t, diags, "filename", 0)
}

func TestIndentation(t *testing.T) {
	wantCount(t, run(t, "if x\n    y = 1;\nend\n"), "indentation", 0)
	wantCount(t, run(t, "if x\n  y = 1;\nend\n"), "indentation", 1)
	wantCount(t, run(t, "if x\n    y = 1;\n  end\n"), "indentation", 1)

	// Mid keywords sit at the opener's level.
	wantCount(t, run(t, "if x\n    y = 1;\nelse\n    y = 2;\nend\n"), "indentation", 0)

	// Tab width comes from the options.
	opts := config.DefaultOptions()
	opts.TabWidth = 2
	wantCount(t, runOpts(t, "if x\n  y = 1;\nend\n", opts), "indentation", 0)
}

func TestIndentationContinuationOffsetPreserved(t *testing.T) {
	// The statement line is misindented; its continuation line shifts by
	// the same delta instead of being flagged separately.
	input := "if x\n  y = 1 + ...\n      2;\nend\n"
	diags := wantCount(t, run(t, input), "indentation", 1)
	if len(diags[0].Fix.Edits) != 2 {
		t.Fatalf("expected base and continuation edits, got %v", diags[0].Fix.Edits)
	}
	if diags[0].Fix.Edits[0].NewText != "    " {
		t.Errorf("base indent edit: %q", diags[0].Fix.Edits[0].NewText)
	}
	if diags[0].Fix.Edits[1].NewText != strings.Repeat(" ", 8) {
		t.Errorf("continuation edit must preserve the extra offset: %q",
			diags[0].Fix.Edits[1].NewText)
	}
}

func TestSuppressedRuleDoesNotRun(t *testing.T) {
	root := t.TempDir()
	cfg := "suppress_rule: line_length\nline_length: 5\n"
	if err := os.WriteFile(filepath.Join(root, config.OvertFileName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	tree, err := config.BuildTree(source.NewFileSet(), root, diag.NopReporter{})
	if err != nil {
		t.Fatal(err)
	}
	opts := tree.EffectiveOptions(filepath.Join(root, "x.m"))

	diags := runOpts(t, "\txxxxxxxxxx = 1;\n", opts)
	wantCount(t, diags, "line_length", 0)
	// tabs is mandatory and cannot be suppressed.
	wantCount(t, diags, "tabs", 1)
}

func TestBlockCommentContentIsLeftAlone(t *testing.T) {
	input := "%{\n\t  weird   content\n%}\nx = 1;\n"
	diags := run(t, input)
	wantCount(t, diags, "indentation", 0)
	// Tabs rule still sees the raw line; that is deliberate, tabs are
	// banned everywhere.
	wantCount(t, diags, "tabs", 1)
}
