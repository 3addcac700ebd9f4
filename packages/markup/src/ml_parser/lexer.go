package ml_parser

import (
	"fmt"
	"strings"

	"markup-go/packages/markup/src/core"
	"markup-go/packages/markup/src/util"
)

// CursorState represents the state of a character cursor
type CursorState struct {
	Peek   int
	Offset int
	Line   int
	Column int
}

// characterCursor walks the input one byte at a time. It is a plain value:
// copying it is how the scanner remembers a start position.
type characterCursor struct {
	file  *util.ParseSourceFile
	input string
	state CursorState
}

func newCharacterCursor(file *util.ParseSourceFile) characterCursor {
	c := characterCursor{file: file, input: file.Content}
	c.updatePeek()
	return c
}

// Peek returns the current character
func (c *characterCursor) Peek() int {
	return c.state.Peek
}

// PeekAt returns the character n positions ahead of the current one
func (c *characterCursor) PeekAt(n int) int {
	pos := c.state.Offset + n
	if pos < 0 || pos >= len(c.input) {
		return core.CharEOF
	}
	return int(c.input[pos])
}

// Advance advances the cursor by one character
func (c *characterCursor) Advance() {
	if c.state.Offset >= len(c.input) {
		return
	}
	if c.input[c.state.Offset] == '\n' {
		c.state.Line++
		c.state.Column = 0
	} else {
		c.state.Column++
	}
	c.state.Offset++
	c.updatePeek()
}

func (c *characterCursor) updatePeek() {
	if c.state.Offset >= len(c.input) {
		c.state.Peek = core.CharEOF
	} else {
		c.state.Peek = int(c.input[c.state.Offset])
	}
}

func (c *characterCursor) location() *util.ParseLocation {
	return util.NewParseLocation(c.file, c.state.Offset, c.state.Line, c.state.Column)
}

// GetSpan returns a span from start to current position
func (c *characterCursor) GetSpan(start characterCursor) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(start.location(), c.location(), nil, nil)
}

// GetChars returns characters from start to current position
func (c *characterCursor) GetChars(start characterCursor) string {
	return c.input[start.state.Offset:c.state.Offset]
}

// HasPrefix reports whether the remaining input starts with s
func (c *characterCursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.input[c.state.Offset:], s)
}

// TokenizeResult represents the result of tokenization
type TokenizeResult struct {
	Tokens []Token
	Errors []*util.ParseError
}

// Tokenize scans the whole file. Raw-text and void behaviour comes from
// tagDefinitions; nil means DefaultTagDefinitions.
func Tokenize(file *util.ParseSourceFile, tagDefinitions *TagDefinitions) *TokenizeResult {
	tokenizer := NewTokenizer(file, tagDefinitions)
	tokenizer.Tokenize()
	return &TokenizeResult{Tokens: tokenizer.tokens, Errors: tokenizer.errors}
}

// Tokenizer converts markup text into a flat token list. One Tokenizer serves
// one file; it holds no state shared with other parses.
type Tokenizer struct {
	file           *util.ParseSourceFile
	cursor         characterCursor
	tagDefinitions *TagDefinitions
	tokens         []Token
	errors         []*util.ParseError
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(file *util.ParseSourceFile, tagDefinitions *TagDefinitions) *Tokenizer {
	if tagDefinitions == nil {
		tagDefinitions = DefaultTagDefinitions()
	}
	return &Tokenizer{
		file:           file,
		cursor:         newCharacterCursor(file),
		tagDefinitions: tagDefinitions,
	}
}

type tagOpenEnd int

const (
	tagOpenEndNormal tagOpenEnd = iota
	tagOpenEndSelfClose
	tagOpenEndMissing
)

// Tokenize tokenizes the source
func (t *Tokenizer) Tokenize() {
	for t.cursor.Peek() != core.CharEOF {
		start := t.cursor
		switch {
		case t.cursor.HasPrefix("<!--"):
			t._consumeComment(start)
		case t.cursor.HasPrefix("<!"):
			t._consumeDeclaration(start)
		case t.cursor.HasPrefix("<?"):
			t._consumeDirective(start)
		case t._isEndTagStart():
			t._consumeTagClose(start)
		case t._isStartTagStart():
			name, end := t._consumeTagOpen(start)
			if end == tagOpenEndNormal && t.tagDefinitions.Get(name).GetContentType() == TagContentTypeRAW_TEXT {
				t._consumeRawText(name)
			}
		default:
			t._consumeText(start)
		}
	}
	t.tokens = append(t.tokens, NewEndOfFileToken(t.cursor.GetSpan(t.cursor)))
}

func (t *Tokenizer) _isStartTagStart() bool {
	return t.cursor.Peek() == core.CharLT && isNameStart(t.cursor.PeekAt(1))
}

func (t *Tokenizer) _isEndTagStart() bool {
	return t.cursor.Peek() == core.CharLT && t.cursor.PeekAt(1) == core.CharSLASH && isNameStart(t.cursor.PeekAt(2))
}

func (t *Tokenizer) _isMarkupStart() bool {
	if t.cursor.Peek() != core.CharLT {
		return false
	}
	next := t.cursor.PeekAt(1)
	return next == core.CharBANG || next == core.CharQUESTION || isNameStart(next) || t._isEndTagStart()
}

func (t *Tokenizer) _consumeText(start characterCursor) {
	t.cursor.Advance()
	for t.cursor.Peek() != core.CharEOF && !t._isMarkupStart() {
		t.cursor.Advance()
	}
	t._emit(TokenTypeTEXT, start)
}

func (t *Tokenizer) _consumeComment(start characterCursor) {
	t._advanceBy(len("<!--"))
	if !t._advancePast("-->") {
		t._reportError(util.ErrorKindUnterminatedComment, start, "Unexpected end of input, comment not terminated")
	}
	t._emit(TokenTypeCOMMENT, start)
}

func (t *Tokenizer) _consumeDeclaration(start characterCursor) {
	t._advanceBy(len("<!"))
	if !t._advancePast(">") {
		t._reportError(util.ErrorKindUnterminatedTag, start, "Unexpected end of input, declaration not terminated")
	}
	t._emit(TokenTypeDECLARATION, start)
}

func (t *Tokenizer) _consumeDirective(start characterCursor) {
	t._advanceBy(len("<?"))
	if !t._advancePast(">") {
		t._reportError(util.ErrorKindUnterminatedTag, start, "Unexpected end of input, directive not terminated")
	}
	t._emit(TokenTypeDIRECTIVE, start)
}

func (t *Tokenizer) _consumeTagOpen(start characterCursor) (string, tagOpenEnd) {
	t.cursor.Advance()
	t._emit(TokenTypeTAG_START, start)
	name := t._consumeName(TokenTypeTAG_NAME)

	for {
		t._skipWhitespace()
		switch peek := t.cursor.Peek(); {
		case peek == core.CharEOF:
			t._reportError(util.ErrorKindUnterminatedTag, start,
				fmt.Sprintf("Unexpected end of input, opening tag \"%s\" not terminated", name))
			return name, tagOpenEndMissing
		case t.cursor.HasPrefix("<!--"):
			t._consumeComment(t.cursor)
		case peek == core.CharLT:
			t._reportError(util.ErrorKindUnterminatedTag, start,
				fmt.Sprintf("Opening tag \"%s\" not terminated", name))
			return name, tagOpenEndMissing
		case peek == core.CharGT:
			tagEnd := t.cursor
			t.cursor.Advance()
			t._emit(TokenTypeTAG_END, tagEnd)
			return name, tagOpenEndNormal
		case t.cursor.HasPrefix("/>"):
			tagEnd := t.cursor
			t._advanceBy(2)
			t._emit(TokenTypeTAG_SELF_CLOSE, tagEnd)
			return name, tagOpenEndSelfClose
		case core.IsQuote(peek) || peek == core.CharSLASH || peek == core.CharEQ:
			// Stray character in attribute position, e.g. the second quote
			// of foo="x"". It starts nothing and is dropped.
			t.cursor.Advance()
		default:
			t._consumeAttr()
		}
	}
}

func (t *Tokenizer) _consumeAttr() {
	nameStart := t.cursor
	for !t._isAttrNameEnd() {
		t.cursor.Advance()
	}
	t._emit(TokenTypeATTR_NAME, nameStart)

	afterName := t.cursor
	t._skipWhitespace()
	if t.cursor.Peek() != core.CharEQ {
		t.cursor = afterName
		return
	}
	equals := t.cursor
	t.cursor.Advance()
	t._emit(TokenTypeATTR_EQUALS, equals)
	t._skipWhitespace()
	t._consumeAttributeValue()
}

func (t *Tokenizer) _consumeAttributeValue() {
	start := t.cursor
	peek := t.cursor.Peek()
	if core.IsQuote(peek) {
		t.cursor.Advance()
		for t.cursor.Peek() != peek && t.cursor.Peek() != core.CharEOF {
			t.cursor.Advance()
		}
		terminated := t.cursor.Peek() == peek
		if terminated {
			t.cursor.Advance()
		} else {
			t._reportError(util.ErrorKindUnterminatedAttributeValue, start,
				"Unexpected end of input, attribute value not terminated")
		}
		t._emitToken(NewAttributeValueToken(t.cursor.GetChars(start), byte(peek), terminated, t.cursor.GetSpan(start)))
		return
	}
	for !t._isUnquotedValueEnd() {
		t.cursor.Advance()
	}
	if t.cursor.Offset() > start.Offset() {
		t._emitToken(NewAttributeValueToken(t.cursor.GetChars(start), 0, true, t.cursor.GetSpan(start)))
	}
}

func (t *Tokenizer) _consumeTagClose(start characterCursor) {
	t._advanceBy(len("</"))
	t._emit(TokenTypeEND_TAG_START, start)
	name := t._consumeName(TokenTypeTAG_NAME)
	for {
		switch t.cursor.Peek() {
		case core.CharGT:
			tagEnd := t.cursor
			t.cursor.Advance()
			t._emit(TokenTypeTAG_END, tagEnd)
			return
		case core.CharEOF, core.CharLT:
			t._reportError(util.ErrorKindUnterminatedTag, start,
				fmt.Sprintf("Closing tag \"%s\" not terminated", name))
			return
		default:
			t.cursor.Advance()
		}
	}
}

// _consumeRawText scans the body of a raw-text element up to, not including,
// the first end tag with the same name.
func (t *Tokenizer) _consumeRawText(name string) {
	start := t.cursor
	for t.cursor.Peek() != core.CharEOF && !t._isClosingTagFor(name) {
		t.cursor.Advance()
	}
	if t.cursor.Offset() > start.Offset() {
		t._emit(TokenTypeTEXT, start)
	}
}

func (t *Tokenizer) _isClosingTagFor(name string) bool {
	if !t.cursor.HasPrefix("</") {
		return false
	}
	rest := t.cursor.input[t.cursor.Offset()+2:]
	if len(rest) < len(name) || !strings.EqualFold(rest[:len(name)], name) {
		return false
	}
	return len(rest) == len(name) || !isNameChar(int(rest[len(name)]))
}

func (t *Tokenizer) _consumeName(tokenType TokenType) string {
	start := t.cursor
	for isNameChar(t.cursor.Peek()) {
		t.cursor.Advance()
	}
	return t._emit(tokenType, start).Lexeme()
}

func (t *Tokenizer) _isAttrNameEnd() bool {
	peek := t.cursor.Peek()
	return peek == core.CharEOF || core.IsWhitespace(peek) || peek == core.CharEQ ||
		peek == core.CharGT || peek == core.CharLT || core.IsQuote(peek) || t.cursor.HasPrefix("/>")
}

func (t *Tokenizer) _isUnquotedValueEnd() bool {
	peek := t.cursor.Peek()
	return peek == core.CharEOF || core.IsWhitespace(peek) || peek == core.CharGT ||
		peek == core.CharLT || t.cursor.HasPrefix("/>")
}

func (t *Tokenizer) _skipWhitespace() {
	for t.cursor.Peek() != core.CharEOF && core.IsWhitespace(t.cursor.Peek()) {
		t.cursor.Advance()
	}
}

func (t *Tokenizer) _advanceBy(n int) {
	for i := 0; i < n; i++ {
		t.cursor.Advance()
	}
}

// _advancePast moves the cursor just past the next occurrence of marker, or to
// the end of input when there is none.
func (t *Tokenizer) _advancePast(marker string) bool {
	for t.cursor.Peek() != core.CharEOF {
		if t.cursor.HasPrefix(marker) {
			t._advanceBy(len(marker))
			return true
		}
		t.cursor.Advance()
	}
	return false
}

func (t *Tokenizer) _emit(tokenType TokenType, start characterCursor) Token {
	return t._emitToken(NewTokenBase(tokenType, t.cursor.GetChars(start), t.cursor.GetSpan(start)))
}

func (t *Tokenizer) _emitToken(token Token) Token {
	t.tokens = append(t.tokens, token)
	return token
}

func (t *Tokenizer) _reportError(kind util.ErrorKind, start characterCursor, msg string) {
	t.errors = append(t.errors, util.NewParseWarning(kind, t.cursor.GetSpan(start), msg))
}

// Offset returns the current offset
func (c *characterCursor) Offset() int {
	return c.state.Offset
}

func isNameStart(code int) bool {
	return core.IsAsciiLetter(code) || code == core.CharUnderscore || code == core.CharCOLON
}

func isNameChar(code int) bool {
	if code == core.CharEOF || core.IsWhitespace(code) {
		return false
	}
	switch code {
	case core.CharGT, core.CharLT, core.CharSLASH, core.CharEQ, core.CharDQ, core.CharSQ:
		return false
	}
	return true
}
