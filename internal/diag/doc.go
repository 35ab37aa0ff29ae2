// Package diag defines the diagnostic model shared by every phase of the
// style checker: severities, stable codes, fixes, and the Bag accumulator.
//
// Severity encodes the error taxonomy: SevError covers fatal-file and
// fatal-run conditions, SevWarning covers non-suppressible semantic
// warnings (stray block-comment delimiters, chained relations, useless
// justifications), and SevStyle covers rule violations, which are the only
// diagnostics inline justifications may silence.
package diag
