package ml_parser

import (
	"errors"
	"fmt"
	"strings"

	"markup-go/packages/markup/src/config"
	"markup-go/packages/markup/src/expression_parser"
	"markup-go/packages/markup/src/util"
)

const (
	expressionStart = "{{"
	expressionEnd   = "}}"
)

// embeddedExpressionExtractor finds `{{ ... }}` spans in attribute values and
// in text owned by a tag, and hands their inner text to the expression parser.
type embeddedExpressionExtractor struct {
	RecursiveVisitor
	parser config.ExpressionParser
	errors []*util.ParseError
}

func newEmbeddedExpressionExtractor(parser config.ExpressionParser) *embeddedExpressionExtractor {
	if parser == nil {
		parser = expression_parser.NewParser(nil)
	}
	e := &embeddedExpressionExtractor{parser: parser}
	e.Self = e
	return e
}

func (e *embeddedExpressionExtractor) extract(document *Document) {
	document.Visit(e, nil)
}

// VisitTagNode scans attributes, then the tag's own text, then child tags.
func (e *embeddedExpressionExtractor) VisitTagNode(tag *TagNode, context interface{}) interface{} {
	for _, attr := range tag.Attributes {
		attr.Visit(e, context)
	}
	for _, text := range tag.Contents {
		tag.Expressions = append(tag.Expressions, e.scan(text.Value, text.SourceSpan().Start)...)
	}
	for _, child := range tag.TagNodes {
		child.Visit(e, context)
	}
	return nil
}

func (e *embeddedExpressionExtractor) VisitAttribute(attribute *AttributeNode, context interface{}) interface{} {
	if attribute.ValueSpan == nil {
		return nil
	}
	text, quoteOffset := attribute.textAndOffset()
	attribute.Expressions = e.scan(text, attribute.ValueSpan.Start.MoveBy(quoteOffset))
	return nil
}

// scan returns the expressions in text, whose first byte sits at start.
// Expressions do not nest: each `{{` ends at the first `}}` after it.
// Locations are carried forward from start, so each byte of text is walked
// a bounded number of times.
func (e *embeddedExpressionExtractor) scan(text string, start *util.ParseLocation) []*EmbeddedExpression {
	var result []*EmbeddedExpression
	pos := 0
	loc := start
	for {
		open := strings.Index(text[pos:], expressionStart)
		if open < 0 {
			return result
		}
		open += pos
		openLoc := loc.MoveBy(open - pos)
		innerStart := open + len(expressionStart)
		closeIdx := strings.Index(text[innerStart:], expressionEnd)
		if closeIdx < 0 {
			e.errors = append(e.errors, util.NewParseError(
				util.ErrorKindUnterminatedEmbeddedExpression,
				util.NewParseSourceSpan(openLoc, openLoc.MoveBy(len(text)-open), nil, nil),
				fmt.Sprintf("Unterminated embedded expression \"%s\"", text[open:]),
			))
			return result
		}
		closeIdx += innerStart
		end := closeIdx + len(expressionEnd)

		inner := text[innerStart:closeIdx]
		endLoc := openLoc.MoveBy(end - open)
		span := util.NewParseSourceSpan(openLoc, endLoc, nil, nil)
		ast, err := e.parser.ParseExpression(inner, start.Offset+innerStart)
		if err != nil {
			parseErr := e.syntaxError(err, span, start.Offset+closeIdx)
			e.errors = append(e.errors, parseErr)
			result = append(result, NewEmbeddedExpression(inner, nil, parseErr, span))
		} else {
			result = append(result, NewEmbeddedExpression(inner, ast, nil, span))
		}
		pos = end
		loc = endLoc
	}
}

// syntaxError converts a collaborator error. When the error carries an
// offset the diagnostic points there, otherwise at the whole expression.
func (e *embeddedExpressionExtractor) syntaxError(err error, span *util.ParseSourceSpan, innerEnd int) *util.ParseError {
	var parserErr *expression_parser.ParserError
	if errors.As(err, &parserErr) && parserErr.Offset >= span.Start.Offset && parserErr.Offset <= innerEnd {
		errStart := span.Start.MoveBy(parserErr.Offset - span.Start.Offset)
		span = util.NewParseSourceSpan(errStart, errStart.MoveBy(innerEnd-parserErr.Offset), nil, nil)
	}
	parseErr := util.NewParseError(util.ErrorKindExpressionSyntaxError, span, err.Error())
	parseErr.RelatedError = err
	return parseErr
}
