package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// blockSelectors end a run of text; a space is inserted after each so that
// adjacent blocks do not run together.
const blockSelectors = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre, br, div"

// PlainText strips markup from an HTML fragment and collapses whitespace.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns at most max runes of the plain text of html, cut at a
// word boundary and marked with an ellipsis when shortened.
func Excerpt(html string, max int) string {
	text := PlainText(html)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ToMarkdown converts a rendered HTML fragment to Markdown for exports.
func ToMarkdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
