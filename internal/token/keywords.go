package token

// Keywords is the MATLAB reserved word set as of R2019b.
// See: https://www.mathworks.com/help/matlab/ref/iskeyword.html
var Keywords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"classdef":   true,
	"continue":   true,
	"else":       true,
	"elseif":     true,
	"end":        true,
	"for":        true,
	"function":   true,
	"global":     true,
	"if":         true,
	"otherwise":  true,
	"parfor":     true,
	"persistent": true,
	"return":     true,
	"spmd":       true,
	"switch":     true,
	"try":        true,
	"while":      true,
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool { return Keywords[name] }
