package services

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	listTagRe = regexp.MustCompile(`(?i)<(ul|ol|li)[^>]*>`)

	// Cleanup chain. Order matters: <br> must become a newline before the
	// paragraph/div wrappers do, or blank-line detection changes.
	listWrapperRe = regexp.MustCompile(`(?i)</?(ul|ol)>`)
	listItemEndRe = regexp.MustCompile(`(?i)</li>`)
	lineBreakRe   = regexp.MustCompile(`(?i)<br\s*/?>(\r?\n)?`)
	nbspRe        = regexp.MustCompile(`(?i)&nbsp;`)
	blockTagRe    = regexp.MustCompile(`(?i)</?(p|div)>`)

	// "." in content markup never spans a line terminator.
	headingLineRe = regexp.MustCompile(`^\*\*([^\n\r\x{2028}\x{2029}]+)\*\*$`)

	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`_([^_]+)_`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// RenderRichText converts loosely formatted legacy content into an HTML
// fragment. Input that already contains list markup is trusted as HTML and
// returned unchanged.
func RenderRichText(content *string) string {
	if content == nil {
		return ""
	}
	return RenderRichTextString(*content)
}

// RenderRichTextString is RenderRichText for a plain string.
func RenderRichTextString(content string) string {
	if content == "" {
		return ""
	}
	if listTagRe.MatchString(content) {
		return content
	}

	cleaned := listWrapperRe.ReplaceAllString(content, "")
	cleaned = listItemEndRe.ReplaceAllString(cleaned, "")
	cleaned = lineBreakRe.ReplaceAllString(cleaned, "\n")
	cleaned = nbspRe.ReplaceAllString(cleaned, " ")
	cleaned = blockTagRe.ReplaceAllString(cleaned, "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")

	var out strings.Builder
	var items []string

	flushList := func() {
		if len(items) > 0 {
			out.WriteString("<ul>")
			for _, li := range items {
				out.WriteString("<li>")
				out.WriteString(li)
				out.WriteString("</li>")
			}
			out.WriteString("</ul>")
		}
		items = nil
	}

	for _, line := range strings.Split(cleaned, "\n") {
		trimmed := trimContent(line)

		if trimmed == "" {
			flushList()
			continue
		}

		// Headings written as **Heading**
		if m := headingLineRe.FindStringSubmatch(trimmed); m != nil {
			flushList()
			out.WriteString("<h3>" + formatInline(m[1]) + "</h3>")
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			items = append(items, formatInline(trimContent(trimmed[2:])))
			continue
		}

		flushList()
		out.WriteString("<p>" + formatInline(trimmed) + "</p>")
	}
	flushList()

	return out.String()
}

// formatInline applies bold, then italic, then link substitutions, each once.
func formatInline(text string) string {
	text = boldRe.ReplaceAllString(text, "<strong>${1}</strong>")
	text = italicRe.ReplaceAllString(text, "<em>${1}</em>")
	return linkRe.ReplaceAllString(text, `<a href="${2}" target="_blank" rel="noreferrer">${1}</a>`)
}

// trimContent trims the same characters as a browser's String.prototype.trim:
// Unicode white space and the byte order mark, but not NEL.
func trimContent(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
	})
}
