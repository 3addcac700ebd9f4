package util

import (
	"fmt"
	"strings"
)

// ParseLocation represents a location in the source file
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{
		File:   file,
		Offset: offset,
		Line:   line,
		Col:    col,
	}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
	}
	return p.File.URL
}

// MoveBy moves the location by delta characters
func (p *ParseLocation) MoveBy(delta int) *ParseLocation {
	source := p.File.Content
	offset := p.Offset
	line := p.Line
	col := p.Col

	for offset > 0 && delta < 0 {
		offset--
		delta++
		if source[offset] == '\n' {
			line--
			priorLine := strings.LastIndex(source[:offset], "\n")
			col = offset - priorLine - 1
		} else {
			col--
		}
	}

	for offset < len(source) && delta > 0 {
		ch := source[offset]
		offset++
		delta--
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}

	return NewParseLocation(p.File, offset, line, col)
}

// GetContext returns the source context around the location
func (p *ParseLocation) GetContext(maxChars, maxLines int) *Context {
	content := p.File.Content
	if p.Offset < 0 || len(content) == 0 {
		return nil
	}
	startOffset := p.Offset
	if startOffset > len(content)-1 {
		startOffset = len(content) - 1
	}

	endOffset := startOffset
	ctxChars := 0
	ctxLines := 0

	for ctxChars < maxChars && startOffset > 0 {
		startOffset--
		ctxChars++
		if content[startOffset] == '\n' {
			ctxLines++
			if ctxLines == maxLines {
				break
			}
		}
	}

	ctxChars = 0
	ctxLines = 0
	for ctxChars < maxChars && endOffset < len(content)-1 {
		endOffset++
		ctxChars++
		if content[endOffset] == '\n' {
			ctxLines++
			if ctxLines == maxLines {
				break
			}
		}
	}

	offset := p.Offset
	if offset > len(content) {
		offset = len(content)
	}
	after := ""
	if offset < len(content) {
		after = content[offset : endOffset+1]
	}
	return &Context{
		Before: content[startOffset:offset],
		After:  after,
	}
}

// Context represents source context around a location
type Context struct {
	Before string
	After  string
}

// ParseSourceFile is the source identity plus the already loaded text of one
// document.
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{
		Content: content,
		URL:     url,
	}
}

// LocationAt returns the location of offset, counting lines and columns from
// the start of the file.
func (f *ParseSourceFile) LocationAt(offset int) *ParseLocation {
	return NewParseLocation(f, 0, 0, 0).MoveBy(offset)
}

// SpanOf returns the span covering [start, end).
func (f *ParseSourceFile) SpanOf(start, end int) *ParseSourceSpan {
	startLoc := f.LocationAt(start)
	return NewParseSourceSpan(startLoc, startLoc.MoveBy(end-start), nil, nil)
}

// ParseSourceSpan represents a span of source code
type ParseSourceSpan struct {
	Start     *ParseLocation
	End       *ParseLocation
	FullStart *ParseLocation
	Details   *string
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation, fullStart *ParseLocation, details *string) *ParseSourceSpan {
	if fullStart == nil {
		fullStart = start
	}
	return &ParseSourceSpan{
		Start:     start,
		End:       end,
		FullStart: fullStart,
		Details:   details,
	}
}

// String returns the source code in this span
func (p *ParseSourceSpan) String() string {
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// ParseErrorLevel represents the level of a parse error
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// ErrorKind classifies a diagnostic.
type ErrorKind int

const (
	ErrorKindUnterminatedAttributeValue ErrorKind = iota
	ErrorKindUnterminatedComment
	ErrorKindUnterminatedTag
	ErrorKindMismatchedCloseTag
	ErrorKindUnterminatedEmbeddedExpression
	ErrorKindExpressionSyntaxError
)

var errorKindNames = map[ErrorKind]string{
	ErrorKindUnterminatedAttributeValue:     "UnterminatedAttributeValue",
	ErrorKindUnterminatedComment:            "UnterminatedComment",
	ErrorKindUnterminatedTag:                "UnterminatedTag",
	ErrorKindMismatchedCloseTag:             "MismatchedCloseTag",
	ErrorKindUnterminatedEmbeddedExpression: "UnterminatedEmbeddedExpression",
	ErrorKindExpressionSyntaxError:          "ExpressionSyntaxError",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is a diagnostic recorded while scanning or parsing. It is never
// used as control flow.
type ParseError struct {
	Kind         ErrorKind
	Span         *ParseSourceSpan
	Msg          string
	Level        ParseErrorLevel
	RelatedError error
}

// NewParseError creates a new ParseError
func NewParseError(kind ErrorKind, span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{
		Kind:  kind,
		Span:  span,
		Msg:   msg,
		Level: ParseErrorLevelError,
	}
}

// NewParseWarning creates a new ParseWarning
func NewParseWarning(kind ErrorKind, span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{
		Kind:  kind,
		Span:  span,
		Msg:   msg,
		Level: ParseErrorLevelWarning,
	}
}

// Offset returns the start offset of the diagnostic, or -1 when it has no span.
func (p *ParseError) Offset() int {
	if p.Span == nil || p.Span.Start == nil {
		return -1
	}
	return p.Span.Start.Offset
}

// Error implements the error interface
func (p *ParseError) Error() string {
	return p.String()
}

// Unwrap returns the collaborator error this diagnostic was built from, if any.
func (p *ParseError) Unwrap() error {
	return p.RelatedError
}

// ContextualMessage returns the error message with context
func (p *ParseError) ContextualMessage() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	ctx := p.Span.Start.GetContext(100, 3)
	if ctx != nil {
		levelStr := "ERROR"
		if p.Level == ParseErrorLevelWarning {
			levelStr = "WARNING"
		}
		return fmt.Sprintf(`%s ("%s[%s ->]%s")`, p.Msg, ctx.Before, levelStr, ctx.After)
	}
	return p.Msg
}

// String returns a string representation of the error
func (p *ParseError) String() string {
	if p.Span == nil {
		return p.Msg
	}
	details := ""
	if p.Span.Details != nil {
		details = fmt.Sprintf(", %s", *p.Span.Details)
	}
	if p.Span.Start == nil {
		return fmt.Sprintf("%s%s", p.ContextualMessage(), details)
	}
	return fmt.Sprintf("%s: %s%s", p.ContextualMessage(), p.Span.Start, details)
}
