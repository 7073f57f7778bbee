package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown converts agent replies to HTML. GFM is enabled so the recommendation tables
// render as tables. Raw HTML inside a reply is not passed through.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates the renderer used by the page.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render returns the HTML for src. On a conversion error the text is shown escaped.
func (m *Markdown) Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(buf.String())
}
