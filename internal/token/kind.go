package token

// Kind represents the category of a MATLAB source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline is a single '\n'.
	Newline
	// Continuation is a '...' line splice together with the rest of its
	// physical line.
	Continuation
	// Comment is a '%' (or '#' in Octave mode) comment running to the end
	// of the line, or a content line inside a block comment.
	Comment
	// BlockOpen is a '%{' alone on its line.
	BlockOpen
	// BlockClose is a '%}' alone on its line.
	BlockClose

	// Identifier is a name.
	Identifier
	// Keyword is a reserved word (see Keywords).
	Keyword
	// Number is an integer or floating point literal.
	Number
	// String is a single-quoted string literal.
	String

	// Operator covers arithmetic, relational, and logical operators,
	// including transpose.
	Operator
	// Assignment is a lone '='.
	Assignment
	// Comma is ','.
	Comma
	// Semicolon is ';'.
	Semicolon
	// Colon is ':'.
	Colon
	// Selection is the field access '.'.
	Selection

	// Bra and Ket are '(' and ')'.
	Bra
	Ket
	// SBra and SKet are '[' and ']'.
	SBra
	SKet
	// CBra and CKet are '{' and '}'.
	CBra
	CKet
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Continuation:
		return "Continuation"
	case Comment:
		return "Comment"
	case BlockOpen:
		return "BlockOpen"
	case BlockClose:
		return "BlockClose"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Number:
		return "Number"
	case String:
		return "String"
	case Operator:
		return "Operator"
	case Assignment:
		return "Assignment"
	case Comma:
		return "Comma"
	case Semicolon:
		return "Semicolon"
	case Colon:
		return "Colon"
	case Selection:
		return "Selection"
	case Bra:
		return "Bra"
	case Ket:
		return "Ket"
	case SBra:
		return "SBra"
	case SKet:
		return "SKet"
	case CBra:
		return "CBra"
	case CKet:
		return "CKet"
	}
	return "Unknown"
}

// IsOpenBracket reports whether the kind is one of ( [ {.
func (k Kind) IsOpenBracket() bool {
	return k == Bra || k == SBra || k == CBra
}

// IsCloseBracket reports whether the kind is one of ) ] }.
func (k Kind) IsCloseBracket() bool {
	return k == Ket || k == SKet || k == CKet
}
