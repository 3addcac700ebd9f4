package ml_parser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	slogcontext "github.com/veqryn/slog-context"

	"markup-go/packages/markup/src/config"
	"markup-go/packages/markup/src/util"
)

// ParseResult holds the tag tree and every diagnostic reported while
// building it, in the order they were reported.
type ParseResult struct {
	Document *Document
	Errors   []*util.ParseError
}

// Parser turns markup text into a Document. A Parser keeps no per-parse
// state and can be shared between goroutines as long as its ErrorListener can.
type Parser struct {
	config         *config.ParserConfig
	tagDefinitions *TagDefinitions
}

// NewParser creates a new Parser. A nil config means config.NewParserConfig().
func NewParser(cfg *config.ParserConfig) *Parser {
	if cfg == nil {
		cfg = config.NewParserConfig()
	}
	return &Parser{
		config:         cfg,
		tagDefinitions: NewTagDefinitions(cfg.VoidElements, cfg.RawTextElements),
	}
}

// TagDefinitions returns the resolver built from the parser's config
func (p *Parser) TagDefinitions() *TagDefinitions {
	return p.tagDefinitions
}

// Parse parses source; url only identifies the source in diagnostics.
func (p *Parser) Parse(source, url string) *ParseResult {
	return p.ParseContext(context.Background(), source, url)
}

// ParseContext is Parse with the logger taken from ctx unless the config
// carries one.
func (p *Parser) ParseContext(ctx context.Context, source, url string) *ParseResult {
	return p.ParseFile(ctx, util.NewParseSourceFile(source, url))
}

// ParseFile parses an already loaded source file
func (p *Parser) ParseFile(ctx context.Context, file *util.ParseSourceFile) *ParseResult {
	logger := p.logger(ctx).With("url", file.URL)

	tokenizeResult := Tokenize(file, p.tagDefinitions)
	logger.Debug("tokenized", "tokens", len(tokenizeResult.Tokens), "errors", len(tokenizeResult.Errors))

	treeBuilder := NewTreeBuilder(file, tokenizeResult.Tokens, p.tagDefinitions, logger)
	treeBuilder.Build()
	document := NewDocument(file, treeBuilder.RootNodes())

	extractor := newEmbeddedExpressionExtractor(p.config.ExpressionParser)
	extractor.extract(document)

	allErrors := make([]*util.ParseError, 0, len(tokenizeResult.Errors)+len(treeBuilder.Errors())+len(extractor.errors))
	allErrors = append(allErrors, tokenizeResult.Errors...)
	allErrors = append(allErrors, treeBuilder.Errors()...)
	allErrors = append(allErrors, extractor.errors...)
	for _, err := range allErrors {
		logger.Debug("diagnostic", "kind", err.Kind.String(), "offset", err.Offset(), "msg", err.Msg)
		p.config.ErrorListener.OnError(err)
	}
	logger.Debug("parsed", "roots", len(document.TagNodes), "diagnostics", len(allErrors))

	return &ParseResult{Document: document, Errors: allErrors}
}

func (p *Parser) logger(ctx context.Context) *slog.Logger {
	if p.config.Logger != nil {
		return p.config.Logger
	}
	return slogcontext.FromCtx(ctx)
}

// Parse parses source with a parser built from opts
func Parse(source, url string, opts ...config.ParserConfigOption) *ParseResult {
	return NewParser(config.NewParserConfig(opts...)).Parse(source, url)
}

// elementFrame is an open element and the index of the first token of its
// content.
type elementFrame struct {
	node         *TagNode
	contentStart int
}

// TreeBuilder builds a tag tree from tokens
type TreeBuilder struct {
	file           *util.ParseSourceFile
	index          int
	peek           Token
	containerStack []*elementFrame
	rootNodes      []*TagNode
	errors         []*util.ParseError
	tokens         []Token
	tagDefinitions *TagDefinitions
	logger         *slog.Logger
}

// NewTreeBuilder creates a new TreeBuilder. tokens must end with an EOF token,
// as Tokenize produces.
func NewTreeBuilder(file *util.ParseSourceFile, tokens []Token, tagDefinitions *TagDefinitions, logger *slog.Logger) *TreeBuilder {
	if tagDefinitions == nil {
		tagDefinitions = DefaultTagDefinitions()
	}
	if logger == nil {
		logger = slogcontext.FromCtx(context.Background())
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type() != TokenTypeEOF {
		tokens = append(tokens, NewEndOfFileToken(file.SpanOf(len(file.Content), len(file.Content))))
	}
	tb := &TreeBuilder{
		file:           file,
		index:          -1,
		tokens:         tokens,
		tagDefinitions: tagDefinitions,
		logger:         logger,
	}
	tb.advance()
	return tb
}

// Build builds the tree from tokens
func (tb *TreeBuilder) Build() {
	for tb.peek.Type() != TokenTypeEOF {
		switch tb.peek.Type() {
		case TokenTypeTAG_START:
			tb._consumeStartTag(tb.advance())
		case TokenTypeEND_TAG_START:
			tb._consumeEndTag(tb.advance())
		case TokenTypeTEXT:
			tb._consumeText(tb.advance())
		default:
			// Comments, declarations and directives carry no structure.
			tb.advance()
		}
	}
	for len(tb.containerStack) > 0 {
		frame := tb._popContainer()
		tb._closeElement(frame, tb.index, nil)
		tb.logger.Debug("closed at end of input", "tag", frame.node.Name)
	}
}

// RootNodes returns the top-level elements
func (tb *TreeBuilder) RootNodes() []*TagNode {
	return tb.rootNodes
}

// Errors returns the diagnostics reported while building
func (tb *TreeBuilder) Errors() []*util.ParseError {
	return tb.errors
}

func (tb *TreeBuilder) _consumeStartTag(startTag Token) {
	nameToken := tb._advanceIf(TokenTypeTAG_NAME)
	if nameToken == nil {
		return
	}
	name := nameToken.Lexeme()
	last := nameToken

	var attrs []*AttributeNode
	for {
		if attrName := tb._advanceIf(TokenTypeATTR_NAME); attrName != nil {
			attr, lastAttrToken := tb._consumeAttr(attrName)
			attrs = append(attrs, attr)
			last = lastAttrToken
			continue
		}
		// A comment inside a start tag is dropped.
		if comment := tb._advanceIf(TokenTypeCOMMENT); comment != nil {
			last = comment
			continue
		}
		break
	}

	selfClosing := false
	contentStart := -1
	if end := tb._advanceIf(TokenTypeTAG_SELF_CLOSE); end != nil {
		selfClosing = true
		last = end
	} else if end := tb._advanceIf(TokenTypeTAG_END); end != nil {
		last = end
		contentStart = tb.index
	} else {
		// Unterminated start tag; the tokenizer already reported it.
		contentStart = tb.index
	}

	startSpan := tb._spanFrom(startTag, last)
	node := NewTagNode(name, attrs, startSpan)
	tb._addToParent(node)

	if selfClosing || tb.tagDefinitions.Get(name).IsVoid() {
		node.SelfClosing = true
		return
	}
	tb._pushContainer(&elementFrame{node: node, contentStart: contentStart})
}

func (tb *TreeBuilder) _consumeAttr(attrName Token) (*AttributeNode, Token) {
	last := attrName
	var value string
	var quote byte
	var valueSpan *util.ParseSourceSpan
	if equals := tb._advanceIf(TokenTypeATTR_EQUALS); equals != nil {
		last = equals
		if valueToken := tb._advanceIf(TokenTypeATTR_VALUE); valueToken != nil {
			last = valueToken
			value = valueToken.Lexeme()
			valueSpan = valueToken.SourceSpan()
			if v, ok := valueToken.(*AttributeValueToken); ok {
				quote = v.Quote
			}
		}
	}
	return NewAttributeNode(
		attrName.Lexeme(),
		value,
		quote,
		tb._spanFrom(attrName, last),
		attrName.SourceSpan(),
		valueSpan,
	), last
}

func (tb *TreeBuilder) _consumeEndTag(endTag Token) {
	endTagIndex := tb.index - 1
	nameToken := tb._advanceIf(TokenTypeTAG_NAME)
	if nameToken == nil {
		return
	}
	last := nameToken
	if end := tb._advanceIf(TokenTypeTAG_END); end != nil {
		last = end
	}
	endSpan := tb._spanFrom(endTag, last)
	name := nameToken.Lexeme()

	if tb.tagDefinitions.Get(name).IsVoid() {
		tb._reportError(endSpan, fmt.Sprintf("Void elements do not have end tags \"%s\"", name))
		return
	}

	stackIndex := -1
	for i := len(tb.containerStack) - 1; i >= 0; i-- {
		if strings.EqualFold(tb.containerStack[i].node.Name, name) {
			stackIndex = i
			break
		}
	}
	if stackIndex < 0 {
		tb._reportError(endSpan, fmt.Sprintf("Unexpected closing tag \"%s\"", name))
		return
	}

	// Elements above the match are closed implicitly where the end tag starts.
	for len(tb.containerStack)-1 > stackIndex {
		frame := tb._popContainer()
		tb._closeElement(frame, endTagIndex, nil)
		tb.logger.Debug("closed implicitly", "tag", frame.node.Name, "by", name)
	}
	tb._closeElement(tb._popContainer(), endTagIndex, endSpan)
}

func (tb *TreeBuilder) _consumeText(token Token) {
	parent := tb._getContainer()
	if parent == nil {
		return
	}
	parent.node.Contents = append(parent.node.Contents, NewContentText(token.Lexeme(), token.SourceSpan()))
}

// _closeElement finishes frame. Its content is every token in
// [contentStart, contentEnd).
func (tb *TreeBuilder) _closeElement(frame *elementFrame, contentEnd int, endSpan *util.ParseSourceSpan) {
	node := frame.node
	var content strings.Builder
	for i := frame.contentStart; i < contentEnd && i < len(tb.tokens); i++ {
		if tb.tokens[i].Type() == TokenTypeEOF {
			break
		}
		content.WriteString(tb.tokens[i].Lexeme())
	}
	node.Content = content.String()
	node.EndSpan = endSpan

	end := node.StartSpan.End
	if endSpan != nil {
		end = endSpan.End
	} else if contentEnd > 0 && contentEnd <= len(tb.tokens) && contentEnd > frame.contentStart {
		end = tb.tokens[contentEnd-1].SourceSpan().End
	}
	node.sourceSpan = util.NewParseSourceSpan(node.StartSpan.Start, end, node.StartSpan.FullStart, nil)
}

func (tb *TreeBuilder) _addToParent(node *TagNode) {
	if parent := tb._getContainer(); parent != nil {
		parent.node.TagNodes = append(parent.node.TagNodes, node)
	} else {
		tb.rootNodes = append(tb.rootNodes, node)
	}
}

func (tb *TreeBuilder) _getContainer() *elementFrame {
	if len(tb.containerStack) > 0 {
		return tb.containerStack[len(tb.containerStack)-1]
	}
	return nil
}

func (tb *TreeBuilder) _pushContainer(frame *elementFrame) {
	tb.containerStack = append(tb.containerStack, frame)
}

func (tb *TreeBuilder) _popContainer() *elementFrame {
	if len(tb.containerStack) == 0 {
		panic("ml_parser: pop on empty element stack")
	}
	frame := tb.containerStack[len(tb.containerStack)-1]
	tb.containerStack = tb.containerStack[:len(tb.containerStack)-1]
	return frame
}

func (tb *TreeBuilder) _advanceIf(tokenType TokenType) Token {
	if tb.peek.Type() == tokenType {
		return tb.advance()
	}
	return nil
}

// advance returns the current token and moves to the next one. The trailing
// EOF token is never passed.
func (tb *TreeBuilder) advance() Token {
	current := tb.peek
	if tb.index < len(tb.tokens)-1 {
		tb.index++
		tb.peek = tb.tokens[tb.index]
	}
	return current
}

func (tb *TreeBuilder) _spanFrom(first, last Token) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(first.SourceSpan().Start, last.SourceSpan().End, nil, nil)
}

func (tb *TreeBuilder) _reportError(span *util.ParseSourceSpan, msg string) {
	tb.errors = append(tb.errors, util.NewParseWarning(util.ErrorKindMismatchedCloseTag, span, msg))
}
