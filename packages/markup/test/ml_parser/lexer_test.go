package ml_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"markup-go/packages/markup/src/ml_parser"
	"markup-go/packages/markup/src/util"
)

func tokenize(input string, defs *ml_parser.TagDefinitions) *ml_parser.TokenizeResult {
	return ml_parser.Tokenize(util.NewParseSourceFile(input, "someUrl"), defs)
}

func tokenizeAndHumanizeParts(input string, defs *ml_parser.TagDefinitions) []interface{} {
	result := []interface{}{}
	for _, token := range tokenize(input, defs).Tokens {
		result = append(result, []interface{}{token.Type(), token.Lexeme()})
	}
	return result
}

func tokenizeAndHumanizeLineColumn(input string) []interface{} {
	result := []interface{}{}
	for _, token := range tokenize(input, nil).Tokens {
		result = append(result, []interface{}{token.Type(), humanizeLineColumn(token.SourceSpan().Start)})
	}
	return result
}

func tokenizeAndHumanizeErrors(input string) []interface{} {
	return humanizeErrors(tokenize(input, nil).Errors)
}

func TestLexer_LineColumnNumbers(t *testing.T) {
	t.Run("should work without newlines", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "0:0"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "0:1"},
			[]interface{}{ml_parser.TokenTypeTAG_END, "0:2"},
			[]interface{}{ml_parser.TokenTypeTEXT, "0:3"},
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "0:4"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "0:6"},
			[]interface{}{ml_parser.TokenTypeTAG_END, "0:7"},
			[]interface{}{ml_parser.TokenTypeEOF, "0:8"},
		}
		result := tokenizeAndHumanizeLineColumn("<t>a</t>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeLineColumn() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should work with one newline", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "0:0"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "0:1"},
			[]interface{}{ml_parser.TokenTypeTAG_END, "0:2"},
			[]interface{}{ml_parser.TokenTypeTEXT, "0:3"},
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "1:1"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "1:3"},
			[]interface{}{ml_parser.TokenTypeTAG_END, "1:4"},
			[]interface{}{ml_parser.TokenTypeEOF, "1:5"},
		}
		result := tokenizeAndHumanizeLineColumn("<t>\na</t>")
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeLineColumn() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLexer_Tags(t *testing.T) {
	t.Run("should tokenize a start tag with attributes", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "a"},
			[]interface{}{ml_parser.TokenTypeATTR_NAME, "href"},
			[]interface{}{ml_parser.TokenTypeATTR_EQUALS, "="},
			[]interface{}{ml_parser.TokenTypeATTR_VALUE, `"x"`},
			[]interface{}{ml_parser.TokenTypeATTR_NAME, "b"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeTEXT, "t"},
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "</"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "a"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts(`<a href="x" b>t</a>`, nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize self closing tags", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "br"},
			[]interface{}{ml_parser.TokenTypeTAG_SELF_CLOSE, "/>"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<br/>", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize unquoted and single quoted values", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "a"},
			[]interface{}{ml_parser.TokenTypeATTR_NAME, "b"},
			[]interface{}{ml_parser.TokenTypeATTR_EQUALS, "="},
			[]interface{}{ml_parser.TokenTypeATTR_VALUE, "c"},
			[]interface{}{ml_parser.TokenTypeATTR_NAME, "d"},
			[]interface{}{ml_parser.TokenTypeATTR_EQUALS, "="},
			[]interface{}{ml_parser.TokenTypeATTR_VALUE, "'e f'"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<a b=c d = 'e f'>", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should drop a stray quote after an attribute value", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "body"},
			[]interface{}{ml_parser.TokenTypeATTR_NAME, "foo"},
			[]interface{}{ml_parser.TokenTypeATTR_EQUALS, "="},
			[]interface{}{ml_parser.TokenTypeATTR_VALUE, `"x"`},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts(`<body foo="x"">`, nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report an unterminated attribute value", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "body"},
			[]interface{}{ml_parser.TokenTypeATTR_NAME, "foo"},
			[]interface{}{ml_parser.TokenTypeATTR_EQUALS, "="},
			[]interface{}{ml_parser.TokenTypeATTR_VALUE, `"sdfsd`},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts(`<body foo="sdfsd`, nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}

		expectedErrors := []interface{}{
			[]interface{}{util.ErrorKindUnterminatedAttributeValue, "Unexpected end of input, attribute value not terminated", "0:10"},
			[]interface{}{util.ErrorKindUnterminatedTag, "Unexpected end of input, opening tag \"body\" not terminated", "0:0"},
		}
		errors := tokenizeAndHumanizeErrors(`<body foo="sdfsd`)
		if diff := cmp.Diff(expectedErrors, errors); diff != "" {
			t.Errorf("tokenizeAndHumanizeErrors() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should stop a start tag at the next tag", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "a"},
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "b"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<a <b>", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}

		expectedErrors := []interface{}{
			[]interface{}{util.ErrorKindUnterminatedTag, "Opening tag \"a\" not terminated", "0:0"},
		}
		if diff := cmp.Diff(expectedErrors, tokenizeAndHumanizeErrors("<a <b>")); diff != "" {
			t.Errorf("tokenizeAndHumanizeErrors() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report an unterminated closing tag", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "</"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "a"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("</a", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}

		expectedErrors := []interface{}{
			[]interface{}{util.ErrorKindUnterminatedTag, "Closing tag \"a\" not terminated", "0:0"},
		}
		if diff := cmp.Diff(expectedErrors, tokenizeAndHumanizeErrors("</a")); diff != "" {
			t.Errorf("tokenizeAndHumanizeErrors() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLexer_CommentsAndDeclarations(t *testing.T) {
	t.Run("should tokenize comments", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeCOMMENT, "<!--c-->"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<!--c-->", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report an unterminated comment", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeCOMMENT, "<!--c"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<!--c", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}

		expectedErrors := []interface{}{
			[]interface{}{util.ErrorKindUnterminatedComment, "Unexpected end of input, comment not terminated", "0:0"},
		}
		if diff := cmp.Diff(expectedErrors, tokenizeAndHumanizeErrors("<!--c")); diff != "" {
			t.Errorf("tokenizeAndHumanizeErrors() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize a comment inside a start tag", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "html"},
			[]interface{}{ml_parser.TokenTypeCOMMENT, "<!-- comment -->"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "</"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "html"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<html <!-- comment -->></html>", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should tokenize declarations and directives", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeDIRECTIVE, `<?xml version="1.0"?>`},
			[]interface{}{ml_parser.TokenTypeDECLARATION, "<!DOCTYPE html>"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts(`<?xml version="1.0"?><!DOCTYPE html>`, nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLexer_Text(t *testing.T) {
	t.Run("should keep a lone less-than sign in text", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTEXT, "a < b"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("a < b", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should scan raw text elements up to their end tag", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "script"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeTEXT, "a<b>c</b></scripts>"},
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "</"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "SCRIPT"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		result := tokenizeAndHumanizeParts("<script>a<b>c</b></scripts></SCRIPT>", nil)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should use configured raw text elements", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{ml_parser.TokenTypeTAG_START, "<"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "pre"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeTEXT, "<b>"},
			[]interface{}{ml_parser.TokenTypeEND_TAG_START, "</"},
			[]interface{}{ml_parser.TokenTypeTAG_NAME, "pre"},
			[]interface{}{ml_parser.TokenTypeTAG_END, ">"},
			[]interface{}{ml_parser.TokenTypeEOF, ""},
		}
		defs := ml_parser.NewTagDefinitions(nil, []string{"pre"})
		result := tokenizeAndHumanizeParts("<pre><b></pre>", defs)
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("tokenizeAndHumanizeParts() mismatch (-want +got):\n%s", diff)
		}
	})
}
