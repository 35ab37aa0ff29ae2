package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexInfo                     Code = 1000
	LexUnexpectedChar           Code = 1001
	LexUnterminatedString       Code = 1002
	LexNewlineInString          Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexStrayBlockClose          Code = 1005
	LexBlockMarkerNotAlone      Code = 1006
	LexBadNumber                Code = 1007
	LexChainedRelation          Code = 1008

	// Configuration.
	CfgInfo       Code = 2000
	CfgSyntax     Code = 2001
	CfgUnknownKey Code = 2002
	CfgBadValue   Code = 2003
	CfgBadExclude Code = 2004
	CfgIO         Code = 2005

	// Style rules. One code per rule in the catalog.
	StyleInfo                       Code = 3000
	StyleFileLength                 Code = 3001
	StyleLineLength                 Code = 3002
	StyleEOFNewlines                Code = 3003
	StyleConsecutiveBlanks          Code = 3004
	StyleTabs                       Code = 3005
	StyleTrailingWhitespace         Code = 3006
	StyleCopyrightNotice            Code = 3007
	StyleWhitespaceComma            Code = 3008
	StyleWhitespaceColon            Code = 3009
	StyleWhitespaceAssignment       Code = 3010
	StyleWhitespaceBrackets         Code = 3011
	StyleWhitespaceKeywords         Code = 3012
	StyleWhitespaceComments         Code = 3013
	StyleWhitespaceContinuation     Code = 3014
	StyleOperatorWhitespace         Code = 3015
	StyleOperatorAfterContinuation  Code = 3016
	StyleUselessContinuation        Code = 3017
	StyleDangerousContinuation      Code = 3018
	StyleIndentation                Code = 3019
	StyleNamingFunctions            Code = 3020
	StyleNamingClasses              Code = 3021
	StyleFilename                   Code = 3022

	// Meta and I/O.
	MetaUselessJustification Code = 4001
	IOLoadFileError          Code = 4002
	MetaSuspectFilename      Code = 4003
)

// ID returns the stable identifier used in reports and caches, e.g. MH3005.
func (c Code) ID() string {
	return fmt.Sprintf("MH%04d", uint16(c))
}

func (c Code) String() string { return c.ID() }

// IsLexical reports whether the code belongs to the lexer.
func (c Code) IsLexical() bool { return c >= 1000 && c < 2000 }

// IsConfig reports whether the code belongs to configuration processing.
func (c Code) IsConfig() bool { return c >= 2000 && c < 3000 }

// IsStyle reports whether the code is a style rule violation. Only style
// diagnostics participate in inline justification.
func (c Code) IsStyle() bool { return c >= 3000 && c < 4000 }
