package ml_parser

import (
	"strings"

	"markup-go/packages/markup/src/config"
)

// TagContentType represents the content type of a tag
type TagContentType int

const (
	// TagContentTypeRAW_TEXT bodies are scanned as one text span up to the
	// matching end tag.
	TagContentTypeRAW_TEXT TagContentType = iota
	TagContentTypePARSABLE_DATA
)

// TagDefinition defines how the scanner and tree builder treat a tag
type TagDefinition interface {
	IsVoid() bool
	GetContentType() TagContentType
}

// HtmlTagDefinition implements TagDefinition for HTML tags
type HtmlTagDefinition struct {
	isVoid      bool
	contentType TagContentType
}

// IsVoid returns whether this tag never has content
func (h *HtmlTagDefinition) IsVoid() bool {
	return h.isVoid
}

// GetContentType returns the content type of the tag body
func (h *HtmlTagDefinition) GetContentType() TagContentType {
	return h.contentType
}

var (
	defaultTagDefinition = &HtmlTagDefinition{contentType: TagContentTypePARSABLE_DATA}
	voidTagDefinition    = &HtmlTagDefinition{isVoid: true, contentType: TagContentTypePARSABLE_DATA}
	rawTextTagDefinition = &HtmlTagDefinition{contentType: TagContentTypeRAW_TEXT}
)

// TagDefinitions resolves tag names, case-insensitively, to definitions.
type TagDefinitions struct {
	defs map[string]TagDefinition
}

// NewTagDefinitions builds a resolver from the given void and raw-text names.
// A name listed in both is treated as raw text.
func NewTagDefinitions(voidElements, rawTextElements []string) *TagDefinitions {
	defs := make(map[string]TagDefinition, len(voidElements)+len(rawTextElements))
	for _, name := range voidElements {
		defs[strings.ToLower(name)] = voidTagDefinition
	}
	for _, name := range rawTextElements {
		defs[strings.ToLower(name)] = rawTextTagDefinition
	}
	return &TagDefinitions{defs: defs}
}

// DefaultTagDefinitions returns the resolver for the default void and
// raw-text element names.
func DefaultTagDefinitions() *TagDefinitions {
	return NewTagDefinitions(config.DefaultVoidElements, config.DefaultRawTextElements)
}

// Get returns the definition for tagName; unknown tags get parsable content.
func (d *TagDefinitions) Get(tagName string) TagDefinition {
	if d != nil {
		if def, ok := d.defs[strings.ToLower(tagName)]; ok {
			return def
		}
	}
	return defaultTagDefinition
}
