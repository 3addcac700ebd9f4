package ml_parser

// Visitor has one method per node kind
type Visitor interface {
	VisitDocument(document *Document, context interface{}) interface{}
	VisitTagNode(tag *TagNode, context interface{}) interface{}
	VisitAttribute(attribute *AttributeNode, context interface{}) interface{}
	VisitContentText(text *ContentText, context interface{}) interface{}
	VisitEmbeddedExpression(expression *EmbeddedExpression, context interface{}) interface{}
}

// VisitAll visits all nodes with a visitor
func VisitAll(visitor Visitor, nodes []Node, context interface{}) []interface{} {
	var result []interface{}
	for _, node := range nodes {
		if r := node.Visit(visitor, context); r != nil {
			result = append(result, r)
		}
	}
	return result
}

// Children returns the direct children of node: attributes, then content
// texts, then embedded expressions, then child tags.
func Children(node Node) []Node {
	var children []Node
	switch n := node.(type) {
	case *Document:
		for _, tag := range n.TagNodes {
			children = append(children, tag)
		}
	case *TagNode:
		for _, attr := range n.Attributes {
			children = append(children, attr)
		}
		for _, text := range n.Contents {
			children = append(children, text)
		}
		for _, expr := range n.Expressions {
			children = append(children, expr)
		}
		for _, tag := range n.TagNodes {
			children = append(children, tag)
		}
	case *AttributeNode:
		for _, expr := range n.Expressions {
			children = append(children, expr)
		}
	}
	return children
}

// RecursiveVisitor visits every node below the one it starts from. Embed it
// and set Self to the embedding visitor to override individual methods.
type RecursiveVisitor struct {
	Self Visitor
}

func (r *RecursiveVisitor) self() Visitor {
	if r.Self != nil {
		return r.Self
	}
	return r
}

func (r *RecursiveVisitor) visitChildren(node Node, context interface{}) interface{} {
	VisitAll(r.self(), Children(node), context)
	return nil
}

func (r *RecursiveVisitor) VisitDocument(document *Document, context interface{}) interface{} {
	return r.visitChildren(document, context)
}

func (r *RecursiveVisitor) VisitTagNode(tag *TagNode, context interface{}) interface{} {
	return r.visitChildren(tag, context)
}

func (r *RecursiveVisitor) VisitAttribute(attribute *AttributeNode, context interface{}) interface{} {
	return r.visitChildren(attribute, context)
}

func (r *RecursiveVisitor) VisitContentText(text *ContentText, context interface{}) interface{} {
	return nil
}

func (r *RecursiveVisitor) VisitEmbeddedExpression(expression *EmbeddedExpression, context interface{}) interface{} {
	return nil
}

// Walk calls fn for node and, depth first, for every node below it. Returning
// false from fn skips the children of that node.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Fold reduces the tree below node, depth first in Walk order.
func Fold[T any](node Node, acc T, fn func(T, Node) T) T {
	Walk(node, func(n Node) bool {
		acc = fn(acc, n)
		return true
	})
	return acc
}
