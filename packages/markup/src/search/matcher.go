package search

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"

	"markup-go/packages/markup/src/ml_parser"
)

// Matcher decides whether an element name is selected
type Matcher interface {
	Match(name string) bool
}

// Matches reports whether pattern matches the whole of text. The pattern is
// compiled on every call; use NewRegexpMatcher to match many names.
func Matches(pattern, text string, caseSensitive bool) (bool, error) {
	m, err := NewRegexpMatcher(pattern, caseSensitive)
	if err != nil {
		return false, err
	}
	return m.Match(text), nil
}

// RegexpMatcher matches names against a regular expression anchored at
// both ends.
type RegexpMatcher struct {
	re *regexp.Regexp
}

// NewRegexpMatcher compiles pattern
func NewRegexpMatcher(pattern string, caseSensitive bool) (*RegexpMatcher, error) {
	expr := "^(?:" + pattern + ")$"
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &RegexpMatcher{re: re}, nil
}

// Match implements Matcher
func (m *RegexpMatcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// GlobMatcher matches names against a shell-style glob such as "h[1-6]" or
// "*-item".
type GlobMatcher struct {
	g glob.Glob
}

// NewGlobMatcher compiles pattern
func NewGlobMatcher(pattern string) (*GlobMatcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	return &GlobMatcher{g: g}, nil
}

// Match implements Matcher
func (m *GlobMatcher) Match(name string) bool {
	return m.g.Match(name)
}

// FindTags returns every tag node below node whose name m selects, in
// document order.
func FindTags(node ml_parser.Node, m Matcher) []*ml_parser.TagNode {
	return ml_parser.Fold(node, []*ml_parser.TagNode(nil), func(found []*ml_parser.TagNode, n ml_parser.Node) []*ml_parser.TagNode {
		if tag, ok := n.(*ml_parser.TagNode); ok && m.Match(tag.Name) {
			found = append(found, tag)
		}
		return found
	})
}
