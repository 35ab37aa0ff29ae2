// Package fix applies the rewrites attached to diagnostics. All edits
// for one file are applied in a single pass; overlapping fixes are
// resolved in favor of mandatory rules, the loser is skipped and
// reported.
package fix

import (
	"sort"

	"github.com/CerenB/miss-hit/internal/diag"
)

// Skipped records one fix that could not be applied.
type Skipped struct {
	Message string
	Reason  string
}

// Result is the outcome of rewriting one file.
type Result struct {
	Output  []byte
	Applied int
	Skipped []Skipped
	Changed bool
}

type candidate struct {
	d     diag.Diagnostic
	order int
}

// Rewrite applies every applicable fix to content and returns the
// corrected text. The input slice is not modified; content is never
// mutated in place.
func Rewrite(content []byte, diags []diag.Diagnostic) Result {
	var cands []candidate
	for i, d := range diags {
		if d.Fixable() {
			cands = append(cands, candidate{d: d, order: i})
		}
	}
	res := Result{Output: content}
	if len(cands) == 0 {
		return res
	}

	// Mandatory fixes first so they win span conflicts, then document
	// order for determinism.
	sort.SliceStable(cands, func(i, j int) bool {
		mi, mj := cands[i].d.Fix.Mandatory, cands[j].d.Fix.Mandatory
		if mi != mj {
			return mi
		}
		if cands[i].d.Primary.Start != cands[j].d.Primary.Start {
			return cands[i].d.Primary.Start < cands[j].d.Primary.Start
		}
		return cands[i].order < cands[j].order
	})

	var accepted []diag.TextEdit
	for _, cand := range cands {
		if conflicts(accepted, cand.d.Fix.Edits) {
			res.Skipped = append(res.Skipped, Skipped{
				Message: cand.d.Message,
				Reason:  "overlaps an already accepted fix",
			})
			continue
		}
		if !guardsHold(content, cand.d.Fix.Edits) {
			res.Skipped = append(res.Skipped, Skipped{
				Message: cand.d.Message,
				Reason:  "existing text does not match expected content",
			})
			continue
		}
		accepted = append(accepted, cand.d.Fix.Edits...)
		res.Applied++
	}
	if len(accepted) == 0 {
		return res
	}

	// Right to left, so earlier offsets stay valid.
	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].Span.Start != accepted[j].Span.Start {
			return accepted[i].Span.Start > accepted[j].Span.Start
		}
		return accepted[i].Span.End > accepted[j].Span.End
	})

	working := append([]byte(nil), content...)
	for _, e := range accepted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if start < 0 || end < start || end > len(working) {
			continue
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], []byte(e.NewText)...), suffix...)
	}

	res.Output = working
	res.Changed = string(working) != string(content)
	return res
}

func guardsHold(content []byte, edits []diag.TextEdit) bool {
	for _, e := range edits {
		if e.OldText == "" {
			continue
		}
		start, end := int(e.Span.Start), int(e.Span.End)
		if start < 0 || end < start || end > len(content) {
			return false
		}
		if string(content[start:end]) != e.OldText {
			return false
		}
	}
	return true
}

func conflicts(accepted []diag.TextEdit, edits []diag.TextEdit) bool {
	for _, prev := range accepted {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open intervals. Two zero-length
// insertions never conflict; an insertion inside a replaced region does.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
