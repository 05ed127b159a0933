package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestRenderRichText_Empty(t *testing.T) {
	assert.Equal(t, "", RenderRichText(nil))
	assert.Equal(t, "", RenderRichText(strPtr("")))
	assert.Equal(t, "", RenderRichTextString(""))
}

func TestRenderRichText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading",
			in:   "**Title**",
			want: "<h3>Title</h3>",
		},
		{
			name: "bullets",
			in:   "- a\n- b",
			want: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name: "star bullets",
			in:   "* a\n*   b  ",
			want: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name: "inline formatting",
			in:   "Hello **world**, see [here](http://x.com)",
			want: `<p>Hello <strong>world</strong>, see <a href="http://x.com" target="_blank" rel="noreferrer">here</a></p>`,
		},
		{
			name: "italic",
			in:   "an _emphasised_ word",
			want: "<p>an <em>emphasised</em> word</p>",
		},
		{
			name: "paragraph flushes list",
			in:   "- one\nafter",
			want: "<ul><li>one</li></ul><p>after</p>",
		},
		{
			name: "blank line splits lists",
			in:   "- one\n\n- two",
			want: "<ul><li>one</li></ul><ul><li>two</li></ul>",
		},
		{
			name: "heading flushes list",
			in:   "- one\n**Next**\n- two",
			want: "<ul><li>one</li></ul><h3>Next</h3><ul><li>two</li></ul>",
		},
		{
			name: "br becomes line break",
			in:   "first<br>second<BR/>\nthird",
			want: "<p>first</p><p>second</p><p>third</p>",
		},
		{
			name: "paragraph and div wrappers",
			in:   "<p>one</p><DIV>two</DIV>",
			want: "<p>one</p><p>two</p>",
		},
		{
			name: "nbsp",
			in:   "a&nbsp;b&NBSP;c",
			want: "<p>a b c</p>",
		},
		{
			name: "windows line endings",
			in:   "a\r\n\r\nb",
			want: "<p>a</p><p>b</p>",
		},
		{
			name: "stray closing li is stripped",
			in:   "- a</li>\n- b</LI>",
			want: "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name: "unmatched bold stays literal",
			in:   "**not closed",
			want: "<p>**not closed</p>",
		},
		{
			name: "dash without space is a paragraph",
			in:   "-nope",
			want: "<p>-nope</p>",
		},
		{
			name: "bold inside list item",
			in:   "- **key** point",
			want: "<ul><li><strong>key</strong> point</li></ul>",
		},
		{
			name: "whitespace only",
			in:   "  \n\t\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderRichTextString(tt.in))
		})
	}
}

func TestRenderRichText_ListTagShortCircuit(t *testing.T) {
	for _, in := range []string{
		"<ul><li>existing</li></ul>",
		"<OL class=\"x\"><li>one</li></OL>",
		"plain text with a stray <li> inside",
	} {
		assert.Equal(t, in, RenderRichTextString(in))
	}
}

func TestRenderRichText_StableOnParagraphOutput(t *testing.T) {
	for _, in := range []string{
		"Hello **world**",
		"one\n\ntwo _three_",
		"see [docs](https://example.com/docs)",
		"- a\n- b",
	} {
		first := RenderRichTextString(in)
		assert.Equal(t, first, RenderRichTextString(first), "input %q", in)
	}
}

func TestRenderRichText_BrowserTrimRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"byte order mark", "\uFEFF**Title**", "<h3>Title</h3>"},
		{"bom before bullet", "\uFEFF- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
		{"no-break space", "\u00A0plain\u00A0", "<p>plain</p>"},
		{"lone carriage return splits no heading", "**a\rb**", "<p><strong>a\rb</strong></p>"},
		{"line separator splits no heading", "**a\u2028b**", "<p><strong>a\u2028b</strong></p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderRichTextString(tt.in))
		})
	}
}
