package lexer

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDec(b) || b == '_'
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}
