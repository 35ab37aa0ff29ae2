// Package diagfmt renders diagnostics and token streams for humans and
// machines.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	styleColor   = color.New(color.FgCyan, color.Bold)
	caretColor   = color.New(color.FgGreen)
	fixColor     = color.New(color.Faint)
)

// Pretty formats diagnostics for a terminal. It walks bag.Items() (the
// bag is expected to be sorted) and prints one header per finding:
//
//	<path>:<line>:<col>: <severity> <code>: <message> [rule]
//
// followed, when Context is on, by the source line with a caret
// underline. Diagnostics with an empty span (I/O errors) print without a
// location.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... and %d more findings not shown\n", n)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := severityText(d.Severity, opts.Color)

	if (d.Primary == source.Span{}) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		return
	}

	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := formatPath(file, fs, opts.PathMode)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s", path, start.Line, start.Col, sev, d.Code.ID(), d.Message)
	if d.Rule != "" {
		fmt.Fprintf(w, " [%s]", d.Rule)
	}
	if opts.ShowFixes && d.Fixable() {
		fmt.Fprintf(w, " %s", paint(fixColor, opts.Color, "(fixable)"))
	}
	fmt.Fprintln(w)

	if opts.Context {
		writeContext(w, d, file, start, opts)
	}
}

func writeContext(w io.Writer, d diag.Diagnostic, file *source.File, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	display := strings.ReplaceAll(line, "\t", " ")
	if opts.Width > 0 {
		display = runewidth.Truncate(display, opts.Width, "...")
	}
	fmt.Fprintf(w, "  | %s\n", display)

	// Caret row. Columns are 1-based byte positions; the tab substitution
	// above keeps them aligned with the display line.
	col := int(start.Col)
	if col < 1 {
		col = 1
	}
	width := int(d.Primary.Len())
	if width < 1 {
		width = 1
	}
	if rest := len(line) - (col - 1); width > rest && rest > 0 {
		width = rest
	}
	carets := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "  | %s%s\n", strings.Repeat(" ", col-1), paint(caretColor, opts.Color, carets))
}

// Summary prints the closing one-liner for a run.
func Summary(w io.Writer, files, issues, fixed int, useColor bool) {
	switch {
	case issues == 0:
		fmt.Fprintf(w, "%s: %d file(s) checked, no issues\n",
			paint(styleColor, useColor, "clean"), files)
	case fixed > 0:
		fmt.Fprintf(w, "%d file(s) checked, %d issue(s), %d file(s) fixed\n",
			files, issues, fixed)
	default:
		fmt.Fprintf(w, "%d file(s) checked, %d issue(s)\n", files, issues)
	}
}

func severityText(s diag.Severity, useColor bool) string {
	switch s {
	case diag.SevError:
		return paint(errorColor, useColor, "error")
	case diag.SevWarning:
		return paint(warningColor, useColor, "warning")
	default:
		return paint(styleColor, useColor, "style")
	}
}

func paint(c *color.Color, useColor bool, s string) string {
	if !useColor {
		return s
	}
	return c.Sprint(s)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
