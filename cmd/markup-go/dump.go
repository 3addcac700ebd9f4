package main

import (
	"markup-go/packages/markup/src/ml_parser"
	"markup-go/packages/markup/src/util"
)

type documentDump struct {
	URL         string           `yaml:"url" json:"url"`
	Tags        []tagDump        `yaml:"tags,omitempty" json:"tags,omitempty"`
	Diagnostics []diagnosticDump `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`
}

type tagDump struct {
	Name        string          `yaml:"name" json:"name"`
	Attributes  []attributeDump `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	SelfClosing bool            `yaml:"selfClosing,omitempty" json:"selfClosing,omitempty"`
	Content     string          `yaml:"content,omitempty" json:"content,omitempty"`
	Expressions []string        `yaml:"expressions,omitempty" json:"expressions,omitempty"`
	Children    []tagDump       `yaml:"children,omitempty" json:"children,omitempty"`
}

type attributeDump struct {
	Name        string   `yaml:"name" json:"name"`
	Value       string   `yaml:"value,omitempty" json:"value,omitempty"`
	Expressions []string `yaml:"expressions,omitempty" json:"expressions,omitempty"`
}

type diagnosticDump struct {
	Kind    string `yaml:"kind" json:"kind"`
	Level   string `yaml:"level" json:"level"`
	Line    int    `yaml:"line" json:"line"`
	Column  int    `yaml:"column" json:"column"`
	Message string `yaml:"message" json:"message"`
}

func dumpResult(result *ml_parser.ParseResult) documentDump {
	dump := documentDump{URL: result.Document.Source.URL}
	for _, tag := range result.Document.TagNodes {
		dump.Tags = append(dump.Tags, dumpTag(tag))
	}
	for _, err := range result.Errors {
		dump.Diagnostics = append(dump.Diagnostics, dumpDiagnostic(err))
	}
	return dump
}

func dumpTag(tag *ml_parser.TagNode) tagDump {
	dump := tagDump{
		Name:        tag.Name,
		SelfClosing: tag.SelfClosing,
		Content:     tag.Content,
		Expressions: dumpExpressions(tag.Expressions),
	}
	for _, attr := range tag.Attributes {
		dump.Attributes = append(dump.Attributes, attributeDump{
			Name:        attr.Name,
			Value:       attr.Value,
			Expressions: dumpExpressions(attr.Expressions),
		})
	}
	for _, child := range tag.TagNodes {
		dump.Children = append(dump.Children, dumpTag(child))
	}
	return dump
}

func dumpExpressions(expressions []*ml_parser.EmbeddedExpression) []string {
	var result []string
	for _, expr := range expressions {
		if expr.Expression != nil {
			result = append(result, expr.Expression.String())
		} else {
			result = append(result, expr.String()+" (invalid)")
		}
	}
	return result
}

func dumpDiagnostic(err *util.ParseError) diagnosticDump {
	dump := diagnosticDump{
		Kind:    err.Kind.String(),
		Level:   "error",
		Message: err.Msg,
	}
	if err.Level == util.ParseErrorLevelWarning {
		dump.Level = "warning"
	}
	if err.Span != nil && err.Span.Start != nil {
		dump.Line = err.Span.Start.Line + 1
		dump.Column = err.Span.Start.Col + 1
	}
	return dump
}
