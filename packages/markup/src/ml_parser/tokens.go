package ml_parser

import "markup-go/packages/markup/src/util"

// TokenType represents the type of a token
type TokenType int

const (
	TokenTypeTAG_START TokenType = iota
	TokenTypeEND_TAG_START
	TokenTypeTAG_NAME
	TokenTypeATTR_NAME
	TokenTypeATTR_EQUALS
	TokenTypeATTR_VALUE
	TokenTypeTAG_END
	TokenTypeTAG_SELF_CLOSE
	TokenTypeCOMMENT
	TokenTypeDECLARATION
	TokenTypeDIRECTIVE
	TokenTypeTEXT
	TokenTypeEOF
)

var tokenTypeNames = [...]string{
	TokenTypeTAG_START:      "TAG_START",
	TokenTypeEND_TAG_START:  "END_TAG_START",
	TokenTypeTAG_NAME:       "TAG_NAME",
	TokenTypeATTR_NAME:      "ATTR_NAME",
	TokenTypeATTR_EQUALS:    "ATTR_EQUALS",
	TokenTypeATTR_VALUE:     "ATTR_VALUE",
	TokenTypeTAG_END:        "TAG_END",
	TokenTypeTAG_SELF_CLOSE: "TAG_SELF_CLOSE",
	TokenTypeCOMMENT:        "COMMENT",
	TokenTypeDECLARATION:    "DECLARATION",
	TokenTypeDIRECTIVE:      "DIRECTIVE",
	TokenTypeTEXT:           "TEXT",
	TokenTypeEOF:            "EOF",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token represents a token in the markup source
type Token interface {
	Type() TokenType
	// Lexeme is the exact source text the token was scanned from.
	Lexeme() string
	SourceSpan() *util.ParseSourceSpan
}

// TokenBase is the base implementation of Token
type TokenBase struct {
	tokenType  TokenType
	lexeme     string
	sourceSpan *util.ParseSourceSpan
}

// Type returns the token type
func (t *TokenBase) Type() TokenType {
	return t.tokenType
}

// Lexeme returns the scanned text
func (t *TokenBase) Lexeme() string {
	return t.lexeme
}

// SourceSpan returns the source span
func (t *TokenBase) SourceSpan() *util.ParseSourceSpan {
	return t.sourceSpan
}

// Offset returns the start offset of the token
func (t *TokenBase) Offset() int {
	return t.sourceSpan.Start.Offset
}

// NewTokenBase creates a new TokenBase
func NewTokenBase(tokenType TokenType, lexeme string, sourceSpan *util.ParseSourceSpan) *TokenBase {
	return &TokenBase{
		tokenType:  tokenType,
		lexeme:     lexeme,
		sourceSpan: sourceSpan,
	}
}

// AttributeValueToken carries the quote character that opened the value and
// whether the matching closing quote was found.
type AttributeValueToken struct {
	*TokenBase
	Quote      byte
	Terminated bool
}

// NewAttributeValueToken creates a new AttributeValueToken
func NewAttributeValueToken(lexeme string, quote byte, terminated bool, sourceSpan *util.ParseSourceSpan) *AttributeValueToken {
	return &AttributeValueToken{
		TokenBase:  NewTokenBase(TokenTypeATTR_VALUE, lexeme, sourceSpan),
		Quote:      quote,
		Terminated: terminated,
	}
}

// EndOfFileToken represents an end of file token
type EndOfFileToken struct {
	*TokenBase
}

// NewEndOfFileToken creates a new EndOfFileToken
func NewEndOfFileToken(sourceSpan *util.ParseSourceSpan) *EndOfFileToken {
	return &EndOfFileToken{
		TokenBase: NewTokenBase(TokenTypeEOF, "", sourceSpan),
	}
}
