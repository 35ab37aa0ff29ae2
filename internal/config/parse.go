package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CerenB/miss-hit/internal/diag"
	"github.com/CerenB/miss-hit/internal/source"
)

// entry is one key/value pair from a config file, with enough position
// information for a useful error message.
type entry struct {
	key   string
	value string
	span  source.Span
}

// errBadConfig marks a fatal configuration problem. The diagnostic with
// details has already been reported when this is returned.
var errBadConfig = fmt.Errorf("configuration error")

// parseEntries parses the key/value grammar: one `key: value` per line,
// the value optionally in double quotes; blank lines and lines starting
// with '#' are ignored.
func parseEntries(f *source.File, r diag.Reporter) ([]entry, error) {
	var entries []entry
	content := f.Content

	lineStart := uint32(0)
	for lineStart <= uint32(len(content)) {
		lineEnd := lineStart
		for lineEnd < uint32(len(content)) && content[lineEnd] != '\n' {
			lineEnd++
		}
		if lineStart == uint32(len(content)) {
			break
		}

		line := string(content[lineStart:lineEnd])
		sp := source.Span{File: f.ID, Start: lineStart, End: lineEnd}
		lineStart = lineEnd + 1

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, rawValue, found := strings.Cut(trimmed, ":")
		if !found {
			r.Report(diag.NewError(diag.CfgSyntax, sp,
				"expected 'key: value'"))
			return nil, errBadConfig
		}
		key = strings.TrimSpace(key)
		value := strings.TrimSpace(rawValue)

		if strings.HasPrefix(value, "\"") {
			if len(value) < 2 || !strings.HasSuffix(value, "\"") {
				r.Report(diag.NewError(diag.CfgSyntax, sp,
					"unterminated quoted value"))
				return nil, errBadConfig
			}
			value = value[1 : len(value)-1]
		}

		if key == "" {
			r.Report(diag.NewError(diag.CfgSyntax, sp, "empty key"))
			return nil, errBadConfig
		}

		entries = append(entries, entry{key: key, value: value, span: sp})
	}

	return entries, nil
}

// nodeConfig is the validated content of one directory's config file.
type nodeConfig struct {
	bools   map[string]bool
	ints    map[string]int
	regexes map[string]string

	copyrightEntities []string
	excludeDirs       []string
	toggles           []ruleToggle
}

func newNodeConfig() *nodeConfig {
	return &nodeConfig{
		bools:   make(map[string]bool),
		ints:    make(map[string]int),
		regexes: make(map[string]string),
	}
}

// applyEntries validates entries against the key vocabulary and value
// grammars. Any violation is fatal for the whole run.
func applyEntries(entries []entry, r diag.Reporter) (*nodeConfig, error) {
	nc := newNodeConfig()

	for _, e := range entries {
		kind, known := configKeys[e.key]
		if !known {
			r.Report(diag.NewError(diag.CfgUnknownKey, e.span,
				fmt.Sprintf("unknown key %q", e.key)))
			return nil, errBadConfig
		}

		switch kind {
		case keyBool:
			b, err := parseBool(e.value)
			if err != nil {
				r.Report(diag.NewError(diag.CfgBadValue, e.span,
					fmt.Sprintf("%s: expected 0 or 1", e.key)))
				return nil, errBadConfig
			}
			nc.bools[e.key] = b

		case keyInt:
			n, err := strconv.Atoi(e.value)
			if err != nil || n <= 0 {
				r.Report(diag.NewError(diag.CfgBadValue, e.span,
					fmt.Sprintf("%s: expected a positive integer", e.key)))
				return nil, errBadConfig
			}
			nc.ints[e.key] = n

		case keyRegex:
			if _, err := regexp.Compile(e.value); err != nil {
				r.Report(diag.NewError(diag.CfgBadValue, e.span,
					fmt.Sprintf("%s: %v", e.key, err)))
				return nil, errBadConfig
			}
			nc.regexes[e.key] = e.value

		case keyCumulative:
			if e.key == "exclude_dir" {
				if strings.ContainsAny(e.value, `/\`) || e.value == ".." || e.value == "." || e.value == "" {
					r.Report(diag.NewError(diag.CfgBadExclude, e.span,
						fmt.Sprintf("exclude_dir must name an immediate child directory, not %q", e.value)))
					return nil, errBadConfig
				}
				nc.excludeDirs = append(nc.excludeDirs, e.value)
			} else {
				nc.copyrightEntities = append(nc.copyrightEntities, e.value)
			}

		case keyRuleName:
			if !IsStyleRule(e.value) {
				r.Report(diag.NewError(diag.CfgBadValue, e.span,
					fmt.Sprintf("%s: unknown style rule %q", e.key, e.value)))
				return nil, errBadConfig
			}
			nc.toggles = append(nc.toggles, ruleToggle{
				name:   e.value,
				enable: e.key == "enable_rule",
			})
		}
	}

	return nc, nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}
