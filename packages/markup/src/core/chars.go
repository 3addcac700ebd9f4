package core

// Character code constants
const (
	// CharEOF is returned by cursors once the input is exhausted. It is
	// negative so that a literal NUL in the source is never mistaken for it.
	CharEOF = -1

	CharTAB       = 9
	CharLF        = 10
	CharVTAB      = 11
	CharFF        = 12
	CharCR        = 13
	CharSPACE     = 32
	CharBANG      = 33
	CharDQ        = 34
	CharHASH      = 35
	CharPERCENT   = 37
	CharAMPERSAND = 38
	CharSQ        = 39
	CharLPAREN    = 40
	CharRPAREN    = 41
	CharSTAR      = 42
	CharPLUS      = 43
	CharCOMMA     = 44
	CharMINUS     = 45
	CharPERIOD    = 46
	CharSLASH     = 47
	CharCOLON     = 58
	CharSEMICOLON = 59
	CharLT        = 60
	CharEQ        = 61
	CharGT        = 62
	CharQUESTION  = 63

	Char0 = 48
	Char9 = 57

	CharA = 65
	CharE = 69
	CharZ = 90

	CharLBRACKET   = 91
	CharBACKSLASH  = 92
	CharRBRACKET   = 93
	CharUnderscore = 95

	CharLowerA = 97
	CharLowerB = 98
	CharLowerE = 101
	CharLowerF = 102
	CharLowerN = 110
	CharLowerR = 114
	CharLowerT = 116
	CharLowerU = 117
	CharLowerV = 118
	CharLowerZ = 122

	CharLBRACE = 123
	CharBAR    = 124
	CharRBRACE = 125
	CharNBSP   = 160

	CharDollar = 36
	CharBT     = 96
)

// IsWhitespace checks if a character code represents whitespace
func IsWhitespace(code int) bool {
	return (code >= CharTAB && code <= CharSPACE) || code == CharNBSP
}

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsNewLine checks if a character code represents a newline
func IsNewLine(code int) bool {
	return code == CharLF || code == CharCR
}

// IsQuote reports whether code opens a quoted attribute value.
func IsQuote(code int) bool {
	return code == CharSQ || code == CharDQ
}
