// Package driver orchestrates analysis runs: per-file pipelines, the
// parallel directory walk, the disk result cache, and progress events.
package driver

import (
	"github.com/CerenB/miss-hit/internal/config"
	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/fix"
	"github.com/CerenB/miss-hit/internal/justify"
	"github.com/CerenB/miss-hit/internal/lexer"
	"github.com/CerenB/miss-hit/internal/rules"
	"github.com/CerenB/miss-hit/internal/source"
	"github.com/CerenB/miss-hit/internal/structure"
)

// FileResult holds everything one file's pipeline produced.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag

	// Fixed is the rewritten content when fixing was requested and at
	// least one fix applied; nil otherwise.
	Fixed   []byte
	Skipped []fix.Skipped

	// Disabled is set when the effective configuration turned the file off.
	Disabled bool
}

// CheckFile runs the full single-file pipeline: lex, chained-relation
// scan, structural index, rule evaluation, justification filtering, and
// optionally the fix rewriter. It performs no I/O.
func CheckFile(fs *source.FileSet, id source.FileID, opts *config.Options, maxDiagnostics int, applyFix bool) FileResult {
	file := fs.Get(id)
	res := FileResult{
		Path:   file.Path,
		FileID: id,
		Bag:    diag.NewBag(maxDiagnostics),
	}
	if !opts.Enable {
		res.Disabled = true
		return res
	}
	if len(file.Content) == 0 {
		// Nothing to check; an empty file is well formed.
		return res
	}

	reporter := diag.BagReporter{Bag: res.Bag}
	tokens, ok := lexer.Scan(file, lexer.Options{
		Reporter: reporter,
		Octave:   opts.Octave,
	})
	if !ok {
		res.Bag.Sort()
		return res
	}

	lexer.ScanChainedRelations(tokens, reporter)

	events := structure.Index(tokens)
	diags := rules.Evaluate(rules.Input{
		File:   file,
		Tokens: tokens,
		Events: events,
		Opts:   opts,
	})
	diags = justify.Apply(fs, tokens, diags, opts.IgnorePragmas)
	for _, d := range diags {
		res.Bag.Add(d)
	}
	res.Bag.Sort()

	if applyFix {
		// Fix from the full diagnostic list; the bag cap only limits
		// what gets reported.
		out := fix.Rewrite(file.Content, diags)
		res.Skipped = out.Skipped
		if out.Changed {
			res.Fixed = out.Output
		}
	}
	return res
}
