package ml_parser

import (
	"strings"

	"markup-go/packages/markup/src/expression_parser"
	"markup-go/packages/markup/src/util"
)

// Node is one of Document, TagNode, AttributeNode, ContentText or
// EmbeddedExpression. The set is closed.
type Node interface {
	SourceSpan() *util.ParseSourceSpan
	Visit(visitor Visitor, context interface{}) interface{}
	isNode()
}

// Document is the root of a parsed file
type Document struct {
	Source     *util.ParseSourceFile
	TagNodes   []*TagNode
	sourceSpan *util.ParseSourceSpan
}

// NewDocument creates a new Document
func NewDocument(source *util.ParseSourceFile, tagNodes []*TagNode) *Document {
	return &Document{
		Source:     source,
		TagNodes:   tagNodes,
		sourceSpan: source.SpanOf(0, len(source.Content)),
	}
}

// SourceSpan returns the span of the whole file
func (d *Document) SourceSpan() *util.ParseSourceSpan {
	return d.sourceSpan
}

// Visit implements the Node interface
func (d *Document) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitDocument(d, context)
}

func (d *Document) isNode() {}

// TagNode is an element with its attributes, child elements and content.
type TagNode struct {
	Name        string
	Attributes  []*AttributeNode
	TagNodes    []*TagNode
	Contents    []*ContentText
	Expressions []*EmbeddedExpression
	// Content is the literal text between the start tag's '>' and the end
	// tag's '<', rebuilt from the scanned tokens.
	Content     string
	SelfClosing bool
	StartSpan   *util.ParseSourceSpan
	// EndSpan is nil when the element was closed implicitly.
	EndSpan    *util.ParseSourceSpan
	sourceSpan *util.ParseSourceSpan
}

// NewTagNode creates a new TagNode
func NewTagNode(name string, attributes []*AttributeNode, startSpan *util.ParseSourceSpan) *TagNode {
	return &TagNode{
		Name:       name,
		Attributes: attributes,
		StartSpan:  startSpan,
		sourceSpan: startSpan,
	}
}

// SourceSpan returns the span from the start tag to the end tag, or to the
// point the element was implicitly closed.
func (t *TagNode) SourceSpan() *util.ParseSourceSpan {
	return t.sourceSpan
}

// Visit implements the Node interface
func (t *TagNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitTagNode(t, context)
}

func (t *TagNode) isNode() {}

// Attribute returns the first attribute called name, or nil.
func (t *TagNode) Attribute(name string) *AttributeNode {
	if name == "" {
		return nil
	}
	for _, attr := range t.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// AttributeText returns the unquoted value of the first attribute called name.
func (t *TagNode) AttributeText(name string) (string, bool) {
	attr := t.Attribute(name)
	if attr == nil {
		return "", false
	}
	return attr.Text(), true
}

// AttributeNode is a name with an optional value
type AttributeNode struct {
	Name string
	// Value is the value exactly as scanned, quotes included. It is empty when
	// the attribute has no value.
	Value       string
	Quote       byte
	Expressions []*EmbeddedExpression
	NameSpan    *util.ParseSourceSpan
	ValueSpan   *util.ParseSourceSpan
	sourceSpan  *util.ParseSourceSpan
}

// NewAttributeNode creates a new AttributeNode
func NewAttributeNode(name, value string, quote byte, sourceSpan, nameSpan, valueSpan *util.ParseSourceSpan) *AttributeNode {
	return &AttributeNode{
		Name:       name,
		Value:      value,
		Quote:      quote,
		NameSpan:   nameSpan,
		ValueSpan:  valueSpan,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the span of the whole attribute
func (a *AttributeNode) SourceSpan() *util.ParseSourceSpan {
	return a.sourceSpan
}

// Visit implements the Node interface
func (a *AttributeNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitAttribute(a, context)
}

func (a *AttributeNode) isNode() {}

// Text returns the value without its delimiting quotes. A value whose closing
// quote is missing only loses the opening one.
func (a *AttributeNode) Text() string {
	text, _ := a.textAndOffset()
	return text
}

// textAndOffset returns Text and its offset within Value.
func (a *AttributeNode) textAndOffset() (string, int) {
	if a.Quote == 0 || a.Value == "" {
		return a.Value, 0
	}
	text := a.Value[1:]
	if len(text) > 0 && text[len(text)-1] == a.Quote {
		text = text[:len(text)-1]
	}
	return text, 1
}

// ContentText is a run of text owned directly by a tag
type ContentText struct {
	Value      string
	sourceSpan *util.ParseSourceSpan
}

// NewContentText creates a new ContentText
func NewContentText(value string, sourceSpan *util.ParseSourceSpan) *ContentText {
	return &ContentText{Value: value, sourceSpan: sourceSpan}
}

// SourceSpan returns the span of the text
func (c *ContentText) SourceSpan() *util.ParseSourceSpan {
	return c.sourceSpan
}

// Visit implements the Node interface
func (c *ContentText) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitContentText(c, context)
}

func (c *ContentText) isNode() {}

// EmbeddedExpression is a `{{ ... }}` span. Exactly one of Expression and
// Error is set.
type EmbeddedExpression struct {
	// Source is the text between the delimiters.
	Source     string
	Expression expression_parser.AST
	Error      *util.ParseError
	sourceSpan *util.ParseSourceSpan
}

// NewEmbeddedExpression creates a new EmbeddedExpression
func NewEmbeddedExpression(source string, expression expression_parser.AST, err *util.ParseError, sourceSpan *util.ParseSourceSpan) *EmbeddedExpression {
	return &EmbeddedExpression{
		Source:     source,
		Expression: expression,
		Error:      err,
		sourceSpan: sourceSpan,
	}
}

// SourceSpan returns the span including the `{{` and `}}` delimiters
func (e *EmbeddedExpression) SourceSpan() *util.ParseSourceSpan {
	return e.sourceSpan
}

// Visit implements the Node interface
func (e *EmbeddedExpression) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitEmbeddedExpression(e, context)
}

func (e *EmbeddedExpression) isNode() {}

func (e *EmbeddedExpression) String() string {
	return "{{" + strings.TrimSpace(e.Source) + "}}"
}
