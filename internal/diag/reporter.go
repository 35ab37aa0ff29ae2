package diag

// Reporter is the minimal contract through which phases hand over
// diagnostics. Implementations: BagReporter (stores into a Bag),
// NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter forwards diagnostics into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
