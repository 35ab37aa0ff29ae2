package config

import (
	"fmt"
	"strings"
)

// DefaultNamingScheme accepts underscore-separated acronyms or
// capitalised words, for example "Kitten_Class" or "LASER", but not
// "potatoFarmer".
const DefaultNamingScheme = `([A-Z]+|[A-Z][a-z]*)(_([A-Z]+|[A-Z][a-z]*|[0-9]+))*`

// DefaultMethodScheme accepts lower-case snake case method names.
const DefaultMethodScheme = `[a-z]+(_[a-z]+)*`

// ruleToggle records one suppress_rule or enable_rule mention, ordered by
// config-node distance from the target file (nearest first).
type ruleToggle struct {
	name   string
	enable bool
}

// Options is the effective option snapshot for one file. It is computed
// once by the tree resolver and treated as read-only downstream.
type Options struct {
	Enable                  bool
	Octave                  bool
	IgnorePragmas           bool
	CopyrightInEmbeddedCode bool

	TabWidth   int
	LineLength int
	FileLength int

	RegexClassName    string
	RegexFunctionName string
	RegexNestedName   string
	RegexMethodName   string

	// CopyrightEntities accumulates across the ancestor chain; empty
	// means any entity is acceptable.
	CopyrightEntities []string

	toggles []ruleToggle
}

// DefaultOptions returns the built-in baseline every directory inherits.
func DefaultOptions() Options {
	return Options{
		Enable:            true,
		TabWidth:          4,
		LineLength:        80,
		FileLength:        1000,
		RegexClassName:    DefaultNamingScheme,
		RegexFunctionName: DefaultNamingScheme,
		RegexNestedName:   DefaultNamingScheme,
		RegexMethodName:   DefaultMethodScheme,
	}
}

// RuleActive reports whether the named optional rule runs for this file.
// The mention closest to the file wins; a rule nobody mentions is active.
// Mandatory rules never consult this.
func (o *Options) RuleActive(name string) bool {
	for _, t := range o.toggles {
		if t.name == name {
			return t.enable
		}
	}
	return true
}

// Fingerprint renders every option that can influence analysis into a
// stable string, suitable as part of a cache key.
func (o *Options) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "enable=%t;octave=%t;pragmas=%t;embedded=%t;",
		o.Enable, o.Octave, o.IgnorePragmas, o.CopyrightInEmbeddedCode)
	fmt.Fprintf(&b, "tab=%d;line=%d;file=%d;", o.TabWidth, o.LineLength, o.FileLength)
	fmt.Fprintf(&b, "class=%s;func=%s;nested=%s;method=%s;",
		o.RegexClassName, o.RegexFunctionName, o.RegexNestedName, o.RegexMethodName)
	for _, e := range o.CopyrightEntities {
		fmt.Fprintf(&b, "entity=%s;", e)
	}
	for _, t := range o.toggles {
		fmt.Fprintf(&b, "toggle=%s:%t;", t.name, t.enable)
	}
	return b.String()
}

// PermittedEntity reports whether the copyright entity matches the
// accumulated allow-list. An empty list permits everything.
func (o *Options) PermittedEntity(entity string) bool {
	if len(o.CopyrightEntities) == 0 {
		return true
	}
	for _, e := range o.CopyrightEntities {
		if e == entity {
			return true
		}
	}
	return false
}
