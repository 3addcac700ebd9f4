package ml_parser_test

import (
	"fmt"

	"markup-go/packages/markup/src/ml_parser"
	"markup-go/packages/markup/src/util"
)

func parse(input string) *ml_parser.ParseResult {
	return ml_parser.Parse(input, "TestComp")
}

// humanizeDom flattens the tree into one entry per node, depth first.
func humanizeDom(result *ml_parser.ParseResult) []interface{} {
	humanizer := newHumanizer(false)
	result.Document.Visit(humanizer, nil)
	return humanizer.result
}

func humanizeDomSourceSpans(result *ml_parser.ParseResult) []interface{} {
	humanizer := newHumanizer(true)
	result.Document.Visit(humanizer, nil)
	return humanizer.result
}

func humanizeLineColumn(location *util.ParseLocation) string {
	return fmt.Sprintf("%d:%d", location.Line, location.Col)
}

func humanizeErrors(errors []*util.ParseError) []interface{} {
	result := []interface{}{}
	for _, e := range errors {
		result = append(result, []interface{}{e.Kind, e.Msg, humanizeLineColumn(e.Span.Start)})
	}
	return result
}

type humanizer struct {
	ml_parser.RecursiveVisitor
	result            []interface{}
	depth             int
	includeSourceSpan bool
}

func newHumanizer(includeSourceSpan bool) *humanizer {
	h := &humanizer{result: []interface{}{}, includeSourceSpan: includeSourceSpan}
	h.Self = h
	return h
}

func (h *humanizer) VisitTagNode(tag *ml_parser.TagNode, context interface{}) interface{} {
	res := []interface{}{"TagNode", tag.Name, h.depth, tag.Content}
	if tag.SelfClosing {
		res = append(res, "#selfClosing")
	}
	if h.includeSourceSpan {
		res = append(res, tag.StartSpan.String())
		if tag.EndSpan != nil {
			res = append(res, tag.EndSpan.String())
		} else {
			res = append(res, nil)
		}
	}
	h.result = append(h.result, res)
	h.depth++
	ml_parser.VisitAll(h, toNodes(tag.Attributes), nil)
	ml_parser.VisitAll(h, toNodes(tag.Expressions), nil)
	ml_parser.VisitAll(h, toNodes(tag.TagNodes), nil)
	h.depth--
	return nil
}

func (h *humanizer) VisitAttribute(attribute *ml_parser.AttributeNode, context interface{}) interface{} {
	res := []interface{}{"Attribute", attribute.Name, attribute.Value}
	if h.includeSourceSpan {
		res = append(res, attribute.SourceSpan().String())
	}
	h.result = append(h.result, res)
	ml_parser.VisitAll(h, toNodes(attribute.Expressions), nil)
	return nil
}

func (h *humanizer) VisitEmbeddedExpression(expression *ml_parser.EmbeddedExpression, context interface{}) interface{} {
	res := []interface{}{"Expression", expression.Source}
	if expression.Expression != nil {
		res = append(res, expression.Expression.String())
	} else {
		res = append(res, expression.Error.Kind)
	}
	if h.includeSourceSpan {
		res = append(res, expression.SourceSpan().String())
	}
	h.result = append(h.result, res)
	return nil
}

func toNodes[T ml_parser.Node](items []T) []ml_parser.Node {
	nodes := make([]ml_parser.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, item)
	}
	return nodes
}
