package expression_parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"markup-go/packages/markup/src/core"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenTypeCharacter TokenType = iota
	TokenTypeIdentifier
	TokenTypeKeyword
	TokenTypeString
	TokenTypeOperator
	TokenTypeNumber
	TokenTypeError
)

var keywords = map[string]bool{
	"null":  true,
	"true":  true,
	"false": true,
	"this":  true,
}

// Token represents a token in the expression. Index and End are relative to
// the start of the expression text.
type Token struct {
	Index    int
	End      int
	Type     TokenType
	NumValue float64
	StrValue string
}

// NewToken creates a new Token
func NewToken(index, end int, typ TokenType, numValue float64, strValue string) *Token {
	return &Token{
		Index:    index,
		End:      end,
		Type:     typ,
		NumValue: numValue,
		StrValue: strValue,
	}
}

// IsCharacter checks if the token is a character with the given code
func (t *Token) IsCharacter(code int) bool {
	return t.Type == TokenTypeCharacter && int(t.NumValue) == code
}

// IsNumber checks if the token is a number
func (t *Token) IsNumber() bool {
	return t.Type == TokenTypeNumber
}

// IsString checks if the token is a string
func (t *Token) IsString() bool {
	return t.Type == TokenTypeString
}

// IsOperator checks if the token is an operator with the given value
func (t *Token) IsOperator(operator string) bool {
	return t.Type == TokenTypeOperator && t.StrValue == operator
}

// IsIdentifier checks if the token is an identifier
func (t *Token) IsIdentifier() bool {
	return t.Type == TokenTypeIdentifier
}

// IsKeyword checks if the token is the given keyword
func (t *Token) IsKeyword(keyword string) bool {
	return t.Type == TokenTypeKeyword && t.StrValue == keyword
}

// IsError checks if the token is an error
func (t *Token) IsError() bool {
	return t.Type == TokenTypeError
}

// String returns the string representation of the token
func (t *Token) String() string {
	if t.Type == TokenTypeNumber {
		return strconv.FormatFloat(t.NumValue, 'f', -1, 64)
	}
	return t.StrValue
}

// Lexer tokenizes expressions
type Lexer struct{}

// NewLexer creates a new Lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize tokenizes the given text
func (l *Lexer) Tokenize(text string) []*Token {
	return newScanner(text).scan()
}

type scanner struct {
	input  string
	length int
	peek   int
	index  int
}

func newScanner(input string) *scanner {
	s := &scanner{
		input:  input,
		length: len(input),
		index:  -1,
	}
	s.advance()
	return s
}

func (s *scanner) advance() {
	s.index++
	if s.index >= s.length {
		s.peek = core.CharEOF
	} else {
		s.peek = int(s.input[s.index])
	}
}

func (s *scanner) scan() []*Token {
	var tokens []*Token
	for token := s.scanToken(); token != nil; token = s.scanToken() {
		tokens = append(tokens, token)
		if token.IsError() {
			break
		}
	}
	return tokens
}

func (s *scanner) scanToken() *Token {
	for s.peek != core.CharEOF && core.IsWhitespace(s.peek) {
		s.advance()
	}
	if s.peek == core.CharEOF {
		return nil
	}

	if isIdentifierStart(s.peek) {
		return s.scanIdentifier()
	}
	if core.IsDigit(s.peek) {
		return s.scanNumber(s.index)
	}

	start := s.index
	switch s.peek {
	case core.CharPERIOD:
		s.advance()
		if core.IsDigit(s.peek) {
			return s.scanNumber(start)
		}
		return newCharacterToken(start, s.index, core.CharPERIOD)
	case core.CharLPAREN, core.CharRPAREN, core.CharLBRACKET, core.CharRBRACKET,
		core.CharLBRACE, core.CharRBRACE, core.CharCOMMA, core.CharCOLON, core.CharSEMICOLON:
		return s.scanCharacter(start, s.peek)
	case core.CharSQ, core.CharDQ:
		return s.scanString()
	case core.CharPLUS, core.CharMINUS, core.CharSTAR, core.CharSLASH, core.CharPERCENT, core.CharQUESTION:
		return s.scanOperator(start, string(rune(s.peek)))
	case core.CharLT, core.CharGT:
		return s.scanComplexOperator(start, string(rune(s.peek)), core.CharEQ, "=")
	case core.CharBANG, core.CharEQ:
		return s.scanComplexOperator(start, string(rune(s.peek)), core.CharEQ, "=", core.CharEQ)
	case core.CharAMPERSAND:
		return s.scanComplexOperator(start, "&", core.CharAMPERSAND, "&")
	case core.CharBAR:
		return s.scanComplexOperator(start, "|", core.CharBAR, "|")
	}

	ch := s.peek
	s.advance()
	return s.error("Unexpected character ["+string(rune(ch))+"]", -1)
}

func (s *scanner) scanCharacter(start int, code int) *Token {
	s.advance()
	return newCharacterToken(start, s.index, code)
}

func (s *scanner) scanOperator(start int, str string) *Token {
	s.advance()
	return newOperatorToken(start, s.index, str)
}

func (s *scanner) scanComplexOperator(start int, one string, twoCode int, two string, threeCode ...int) *Token {
	s.advance()
	str := one
	if s.peek == twoCode {
		s.advance()
		str += two
	}
	if len(threeCode) > 0 && s.peek == threeCode[0] {
		s.advance()
		str += string(rune(threeCode[0]))
	}
	return newOperatorToken(start, s.index, str)
}

func (s *scanner) scanIdentifier() *Token {
	start := s.index
	s.advance()
	for isIdentifierPart(s.peek) {
		s.advance()
	}
	str := s.input[start:s.index]
	if keywords[str] {
		return newKeywordToken(start, s.index, str)
	}
	return newIdentifierToken(start, s.index, str)
}

func (s *scanner) scanNumber(start int) *Token {
	simple := s.index == start
	s.advance() // Skip initial digit
	for {
		if core.IsDigit(s.peek) {
			// Do nothing
		} else if s.peek == core.CharPERIOD {
			simple = false
		} else if isExponentStart(s.peek) {
			s.advance()
			if isExponentSign(s.peek) {
				s.advance()
			}
			if !core.IsDigit(s.peek) {
				return s.error("Invalid exponent", -1)
			}
			simple = false
		} else {
			break
		}
		s.advance()
	}

	str := s.input[start:s.index]
	var value float64
	if simple {
		if val, err := strconv.ParseInt(str, 10, 64); err == nil {
			value = float64(val)
		}
	} else if val, err := strconv.ParseFloat(str, 64); err == nil {
		value = val
	}
	return newNumberToken(start, s.index, value)
}

func (s *scanner) scanString() *Token {
	start := s.index
	quote := s.peek
	s.advance() // Skip initial quote

	var buffer strings.Builder
	marker := s.index

	for s.peek != quote {
		switch s.peek {
		case core.CharBACKSLASH:
			buffer.WriteString(s.input[marker:s.index])
			if errToken := s.scanStringBackslash(&buffer); errToken != nil {
				return errToken
			}
			marker = s.index
		case core.CharEOF:
			return s.error("Unterminated quote", 0)
		default:
			s.advance()
		}
	}

	buffer.WriteString(s.input[marker:s.index])
	s.advance() // Skip terminating quote
	return NewToken(start, s.index, TokenTypeString, 0, buffer.String())
}

// scanStringBackslash writes the character escaped by the backslash at the
// current position and moves past it.
func (s *scanner) scanStringBackslash(buffer *strings.Builder) *Token {
	s.advance()
	switch {
	case s.peek == core.CharEOF:
		return s.error("Unterminated quote", 0)
	case s.peek == core.CharLowerU:
		// 4 character hex code for unicode character
		if s.index+5 > s.length {
			return s.error("Invalid unicode escape", 0)
		}
		hex := s.input[s.index+1 : s.index+5]
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return s.error("Invalid unicode escape [\\u"+hex+"]", 0)
		}
		buffer.WriteRune(rune(code))
		for i := 0; i < 5; i++ {
			s.advance()
		}
	case s.peek >= utf8.RuneSelf:
		r, size := utf8.DecodeRuneInString(s.input[s.index:])
		buffer.WriteRune(r)
		for i := 0; i < size; i++ {
			s.advance()
		}
	default:
		buffer.WriteByte(byte(unescape(s.peek)))
		s.advance()
	}
	return nil
}

func (s *scanner) error(message string, offset int) *Token {
	position := s.index + offset
	return newErrorToken(
		position,
		s.index,
		"Lexer Error: "+message+" at column "+strconv.Itoa(position)+" in expression ["+s.input+"]",
	)
}

func isIdentifierStart(code int) bool {
	return core.IsAsciiLetter(code) || code == core.CharUnderscore || code == core.CharDollar
}

func isIdentifierPart(code int) bool {
	return isIdentifierStart(code) || core.IsDigit(code)
}

func isExponentStart(code int) bool {
	return code == core.CharE || code == core.CharLowerE
}

func isExponentSign(code int) bool {
	return code == core.CharMINUS || code == core.CharPLUS
}

func unescape(code int) int {
	switch code {
	case core.CharLowerN:
		return core.CharLF
	case core.CharLowerF:
		return core.CharFF
	case core.CharLowerR:
		return core.CharCR
	case core.CharLowerT:
		return core.CharTAB
	case core.CharLowerV:
		return core.CharVTAB
	default:
		return code
	}
}

func newCharacterToken(index, end int, code int) *Token {
	return NewToken(index, end, TokenTypeCharacter, float64(code), string(rune(code)))
}

func newIdentifierToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeIdentifier, 0, text)
}

func newKeywordToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeKeyword, 0, text)
}

func newOperatorToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeOperator, 0, text)
}

func newNumberToken(index, end int, n float64) *Token {
	return NewToken(index, end, TokenTypeNumber, n, "")
}

func newErrorToken(index, end int, message string) *Token {
	return NewToken(index, end, TokenTypeError, 0, message)
}
