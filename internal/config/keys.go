package config

// keyKind classifies a config key's value grammar.
type keyKind uint8

const (
	keyBool keyKind = iota
	keyInt
	keyRegex
	keyCumulative // string value, accumulated over the ancestor chain
	keyRuleName   // cumulative, value must name a known style rule
)

// configKeys is the complete key vocabulary; anything else is a fatal
// configuration error.
var configKeys = map[string]keyKind{
	"enable":                     keyBool,
	"octave":                     keyBool,
	"ignore_pragmas":             keyBool,
	"copyright_in_embedded_code": keyBool,

	"tab_width":   keyInt,
	"line_length": keyInt,
	"file_length": keyInt,

	"regex_class_name":    keyRegex,
	"regex_function_name": keyRegex,
	"regex_nested_name":   keyRegex,
	"regex_method_name":   keyRegex,

	"copyright_entity": keyCumulative,
	"exclude_dir":      keyCumulative,

	"suppress_rule": keyRuleName,
	"enable_rule":   keyRuleName,
}

// StyleRules names every optional style rule together with a short
// description (used for suppress/enable validation and --help output).
var StyleRules = map[string]string{
	"file_length":                 "Ensures files do not get too big.",
	"line_length":                 "Ensures lines do not get too long.",
	"copyright_notice":            "Ensures the first thing in each file is a copyright notice.",
	"whitespace_comma":            "Ensures there is no whitespace before a comma and whitespace after.",
	"whitespace_colon":            "Ensures there is no whitespace around colons except if they come after a comma.",
	"whitespace_assignment":       "Ensures there is whitespace around the assignment operator (=).",
	"whitespace_brackets":         "Ensures no whitespace after (/[, and no whitespace before )/].",
	"whitespace_keywords":         "Ensures whitespace after some words, such as if, or properties.",
	"whitespace_comments":         "Ensures whitespace between the % and the body of a comment.",
	"whitespace_continuation":     "Ensures whitespace before continuations and after the ... marker.",
	"operator_after_continuation": "Complains about operators after a line continuation.",
	"dangerous_continuation":      "Flags misleading line continuations.",
	"useless_continuation":        "Flags unnecessary line continuations.",
	"operator_whitespace":         "Enforces whitespace around unary and binary operators.",
	"naming_functions":            "Checks names of functions, nested functions, and class methods.",
	"naming_classes":              "Checks names of classes.",
	"indentation":                 "Makes indentation consistent.",
	"filename":                    "Checks file names against the function naming scheme.",
}

// IsStyleRule reports whether name is a known optional rule.
func IsStyleRule(name string) bool {
	_, ok := StyleRules[name]
	return ok
}
