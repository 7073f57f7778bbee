package renderer

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer 渲染 Agent 返回的 Markdown
type MarkdownRenderer struct {
	term  *glamour.TermRenderer
	style string
	width int
}

// NewMarkdownRenderer creates a renderer wrapping at width columns (0 disables wrapping).
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	if style == "" {
		style = "dracula"
	}
	r := &MarkdownRenderer{style: style}
	r.SetWidth(width)
	return r
}

// SetWidth 重新创建指定宽度的渲染器
func (r *MarkdownRenderer) SetWidth(width int) {
	if width == r.width && r.term != nil {
		return
	}
	r.width = width

	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// 渲染器不可用时退回原始文本
		r.term = nil
		return
	}
	r.term = term
}

// Render returns the terminal rendering of content, or content itself if rendering fails.
func (r *MarkdownRenderer) Render(content string) string {
	if r.term == nil {
		return content
	}
	rendered, err := r.term.Render(content)
	if err != nil {
		return content
	}
	// glamour 会添加首尾空行
	return strings.Trim(rendered, "\n")
}
