package config

import (
	"log/slog"

	"markup-go/packages/markup/src/expression_parser"
	"markup-go/packages/markup/src/util"
)

// DefaultVoidElements are closed as soon as their start tag ends.
var DefaultVoidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

// DefaultRawTextElements have bodies that are not tokenized as markup.
var DefaultRawTextElements = []string{"script", "style"}

// ExpressionParser parses the text of one `{{ ... }}` span. baseOffset is the
// absolute source offset of text[0].
type ExpressionParser interface {
	ParseExpression(text string, baseOffset int) (expression_parser.AST, error)
}

// ParserConfig represents the parser configuration
type ParserConfig struct {
	VoidElements     []string
	RawTextElements  []string
	ExpressionParser ExpressionParser
	ErrorListener    util.ErrorListener
	// Logger overrides the logger found in the parse context.
	Logger *slog.Logger
}

// NewParserConfig creates a new ParserConfig with optional parameters
func NewParserConfig(opts ...ParserConfigOption) *ParserConfig {
	config := &ParserConfig{
		VoidElements:     append([]string(nil), DefaultVoidElements...),
		RawTextElements:  append([]string(nil), DefaultRawTextElements...),
		ExpressionParser: expression_parser.NewParser(nil),
		ErrorListener:    util.NoopErrorListener,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// ParserConfigOption is a function that modifies ParserConfig
type ParserConfigOption func(*ParserConfig)

// WithVoidElements replaces the void element names
func WithVoidElements(names ...string) ParserConfigOption {
	return func(c *ParserConfig) {
		c.VoidElements = names
	}
}

// WithRawTextElements replaces the raw-text element names
func WithRawTextElements(names ...string) ParserConfigOption {
	return func(c *ParserConfig) {
		c.RawTextElements = names
	}
}

// WithExpressionParser sets the parser used for embedded expressions
func WithExpressionParser(parser ExpressionParser) ParserConfigOption {
	return func(c *ParserConfig) {
		if parser != nil {
			c.ExpressionParser = parser
		}
	}
}

// WithErrorListener sets the diagnostics sink
func WithErrorListener(listener util.ErrorListener) ParserConfigOption {
	return func(c *ParserConfig) {
		if listener != nil {
			c.ErrorListener = listener
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) ParserConfigOption {
	return func(c *ParserConfig) {
		c.Logger = logger
	}
}
