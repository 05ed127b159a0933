package models

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Block node types understood by the renderer.
const (
	BlockParagraph = "paragraph"
	BlockHeading   = "heading"
	BlockList      = "list"
	BlockListItem  = "list-item"
	BlockQuote     = "quote"
	BlockCode      = "code"
	BlockImage     = "image"
	BlockLink      = "link"
	BlockText      = "text"
)

const ListOrdered = "ordered"

// Block is one node of structured rich text.
type Block struct {
	Type          string      `json:"type"`
	Level         int         `json:"level,omitempty"`
	Format        string      `json:"format,omitempty"`
	URL           string      `json:"url,omitempty"`
	Text          string      `json:"text,omitempty"`
	Bold          bool        `json:"bold,omitempty"`
	Italic        bool        `json:"italic,omitempty"`
	Underline     bool        `json:"underline,omitempty"`
	Strikethrough bool        `json:"strikethrough,omitempty"`
	Code          bool        `json:"code,omitempty"`
	Image         *ImageRef   `json:"image,omitempty"`
	Children      []Block     `json:"children,omitempty"`
}

// ImageRef is the media attached to an image block.
type ImageRef struct {
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
}

// RichContent is a body value: structured blocks, a legacy string that still
// needs normalizing, or nothing. Any other JSON value is kept verbatim in Raw
// and renders as nothing.
type RichContent struct {
	Blocks []Block
	Text   *string
	Raw    json.RawMessage
}

// TextContent wraps a legacy string body.
func TextContent(s string) RichContent {
	return RichContent{Text: &s}
}

// IsZero reports whether the content carries no value at all.
func (c RichContent) IsZero() bool {
	return c.Blocks == nil && c.Text == nil && c.Raw == nil
}

// RichContentFrom reads a body field leniently. Arrays decode as blocks,
// strings as legacy text. Other present values, undecodable arrays
// included, are passed through untouched in Raw; null and missing are
// absent.
func RichContentFrom(v gjson.Result) RichContent {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return RichContent{}
	case v.Type == gjson.String:
		return TextContent(v.String())
	case v.IsArray():
		blocks := []Block{}
		if err := json.Unmarshal([]byte(v.Raw), &blocks); err == nil {
			return RichContent{Blocks: blocks}
		}
	}
	return RichContent{Raw: json.RawMessage(v.Raw)}
}

func (c RichContent) MarshalJSON() ([]byte, error) {
	switch {
	case c.Blocks != nil:
		return json.Marshal(c.Blocks)
	case c.Text != nil:
		return json.Marshal(*c.Text)
	case c.Raw != nil:
		return c.Raw, nil
	default:
		return []byte("null"), nil
	}
}

func (c *RichContent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !gjson.ValidBytes(trimmed) {
		*c = RichContent{}
		return nil
	}
	*c = RichContentFrom(gjson.ParseBytes(trimmed))
	return nil
}
