package services

import (
	"fmt"
	"html"
	"strings"

	"doll-web/pkg/models"
)

// RenderContent renders a body value: blocks through RenderBlocks, legacy
// strings through RenderRichText.
func RenderContent(c models.RichContent) string {
	switch {
	case c.Blocks != nil:
		return RenderBlocks(c.Blocks)
	case c.Text != nil:
		return RenderRichText(c.Text)
	default:
		return ""
	}
}

// RenderBlocks renders structured rich text to HTML. Unknown node types
// contribute their children only.
func RenderBlocks(blocks []models.Block) string {
	var b strings.Builder
	for _, block := range blocks {
		renderBlock(&b, block)
	}
	return b.String()
}

func renderBlock(b *strings.Builder, block models.Block) {
	switch block.Type {
	case models.BlockParagraph:
		wrap(b, "p", block.Children)
	case models.BlockHeading:
		level := block.Level
		if level < 1 || level > 6 {
			level = 1
		}
		wrap(b, fmt.Sprintf("h%d", level), block.Children)
	case models.BlockList:
		tag := "ul"
		if block.Format == models.ListOrdered {
			tag = "ol"
		}
		wrap(b, tag, block.Children)
	case models.BlockListItem:
		wrap(b, "li", block.Children)
	case models.BlockQuote:
		wrap(b, "blockquote", block.Children)
	case models.BlockCode:
		b.WriteString("<pre><code>")
		b.WriteString(html.EscapeString(plainChildren(block.Children)))
		b.WriteString("</code></pre>")
	case models.BlockImage:
		if block.Image == nil || block.Image.URL == "" {
			return
		}
		fmt.Fprintf(b, `<img src="%s" alt="%s">`,
			html.EscapeString(block.Image.URL), html.EscapeString(block.Image.AlternativeText))
	case models.BlockLink:
		fmt.Fprintf(b, `<a href="%s" target="_blank" rel="noreferrer">`, html.EscapeString(block.URL))
		for _, child := range block.Children {
			renderBlock(b, child)
		}
		b.WriteString("</a>")
	case models.BlockText:
		renderText(b, block)
	default:
		for _, child := range block.Children {
			renderBlock(b, child)
		}
	}
}

func wrap(b *strings.Builder, tag string, children []models.Block) {
	b.WriteString("<" + tag + ">")
	for _, child := range children {
		renderBlock(b, child)
	}
	b.WriteString("</" + tag + ">")
}

// renderText applies modifiers innermost first: code, bold, italic,
// underline, strikethrough.
func renderText(b *strings.Builder, node models.Block) {
	text := html.EscapeString(node.Text)
	if node.Code {
		text = "<code>" + text + "</code>"
	}
	if node.Bold {
		text = "<strong>" + text + "</strong>"
	}
	if node.Italic {
		text = "<em>" + text + "</em>"
	}
	if node.Underline {
		text = "<u>" + text + "</u>"
	}
	if node.Strikethrough {
		text = "<del>" + text + "</del>"
	}
	b.WriteString(text)
}

func plainChildren(children []models.Block) string {
	var b strings.Builder
	for _, child := range children {
		b.WriteString(child.Text)
		b.WriteString(plainChildren(child.Children))
	}
	return b.String()
}
