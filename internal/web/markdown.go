// ABOUTME: Markdown to HTML conversion for stored content
// ABOUTME: Uses goldmark with GitHub-flavored extensions

package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderMarkdown converts stored markdown content to HTML for templates.
// On conversion failure the raw text is escaped and returned as-is.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
