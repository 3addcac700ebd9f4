// Package markup is a fault-tolerant parser for HTML-like markup. It turns
// document text into a tag tree, recovers from malformed input and parses the
// `{{ expr }}` expressions found in attribute values and element content.
//
// Main sub-packages:
//
//   - ml_parser: tokenizer, tree builder, tag tree and the embedded expression extractor
//   - expression_parser: lexer, AST and parser for embedded expressions
//   - util: source files, locations, spans and diagnostics
//   - config: parser configuration
//   - search: element name matching over a parsed tree
//   - core: character classification
package markup
