package rules

import (
	"fmt"
	"strings"
)

// checkEOFNewlines wants exactly one newline at the end of the file.
func checkEOFNewlines(c *checker, d Def) {
	content := c.File.Content
	if len(content) == 0 {
		return
	}

	if content[len(content)-1] != '\n' {
		sp := c.span(uint32(len(content)), uint32(len(content)))
		c.styleFix(d, sp, "file should end with a new line",
			edit(sp, "\n"))
		return
	}

	// Count trailing newlines, ignoring spaces and tabs on otherwise
	// blank trailing lines.
	end := len(content)
	i := end
	newlines := 0
	for i > 0 {
		switch content[i-1] {
		case '\n':
			newlines++
		case ' ', '\t':
		default:
			goto done
		}
		i--
	}
done:
	if newlines > 1 {
		sp := c.span(uint32(i), uint32(end))
		c.styleFix(d, sp, "trailing blank lines at end of file",
			edit(sp, "\n"))
	}
}

// checkConsecutiveBlanks allows at most one blank line between blocks of
// code. Comments are not blank.
func checkConsecutiveBlanks(c *checker, d Def) {
	blank := false
	for _, l := range c.lines {
		text := c.lineText(l)
		if strings.TrimSpace(text) != "" {
			blank = false
			continue
		}
		if blank {
			// Delete the whole surplus line including its newline.
			end := l.end
			if int(end) < len(c.File.Content) {
				end++
			}
			sp := c.span(l.start, end)
			c.styleFix(d, sp, "more than one consecutive blank line",
				edit(sp, ""))
		} else {
			blank = true
		}
	}
}

// checkTabs bans the tab character everywhere. The fix expands each tab
// to the next tab stop, strings included; the expansion is column-true
// for the whole line. Tabs inside the trailing-whitespace run are left
// to the trailing-whitespace deletion, which removes them outright.
func checkTabs(c *checker, d Def) {
	width := c.Opts.TabWidth
	for _, l := range c.lines {
		text := strings.TrimRight(c.lineText(l), " \t")
		idx := strings.IndexByte(text, '\t')
		if idx < 0 {
			continue
		}

		col := 0
		for off := 0; off < len(text); off++ {
			if text[off] != '\t' {
				col++
				continue
			}
			pad := width - col%width
			start := l.start + uint32(off)
			sp := c.span(start, start+1)
			c.styleFix(d, sp, "tab is not allowed",
				edit(sp, strings.Repeat(" ", pad)))
			col += pad
		}
	}
}

// checkTrailingWhitespace flags spaces and tabs before the end of a line.
func checkTrailingWhitespace(c *checker, d Def) {
	for _, l := range c.lines {
		text := c.lineText(l)
		trimmed := strings.TrimRight(text, " \t")
		if len(trimmed) == len(text) {
			continue
		}

		sp := c.span(l.start+uint32(len(trimmed)), l.end)
		msg := "trailing whitespace"
		if trimmed == "" {
			msg = "whitespace on blank line"
		}
		c.styleFix(d, sp, msg, edit(sp, ""))
	}
}

func checkFileLength(c *checker, d Def) {
	if len(c.lines) <= c.Opts.FileLength {
		return
	}
	last := c.lines[len(c.lines)-1]
	c.style(d, c.span(last.start, last.end),
		fmt.Sprintf("file exceeds %d lines", c.Opts.FileLength))
}

func checkLineLength(c *checker, d Def) {
	limit := c.Opts.LineLength
	for _, l := range c.lines {
		if l.len() <= limit {
			continue
		}
		c.style(d, c.span(l.start+uint32(limit), l.end),
			fmt.Sprintf("line exceeds %d characters", limit))
	}
}
