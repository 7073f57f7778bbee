package component

import (
	"bookfinder/page"
	"bookfinder/tui/component/renderer"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// OutputModel 封装输出区域：警告、错误或推荐结果
type OutputModel struct {
	viewport viewport.Model
	markdown *renderer.MarkdownRenderer
	theme    *renderer.Theme

	outcome *page.Outcome
	err     error
	width   int
}

// NewOutputModel 创建输出区域组件
func NewOutputModel(theme *renderer.Theme) OutputModel {
	if theme == nil {
		theme = renderer.DefaultTheme()
	}
	return OutputModel{
		viewport: viewport.New(40, 10),
		markdown: renderer.NewMarkdownRenderer("dracula", 40),
		theme:    theme,
		width:    40,
	}
}

// Update 处理滚动
func (m OutputModel) Update(msg tea.Msg) (OutputModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			m.viewport.ScrollDown(3)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View 渲染组件视图
func (m OutputModel) View() string {
	return m.viewport.View()
}

// SetOutcome shows the result of a submission.
func (m *OutputModel) SetOutcome(out *page.Outcome) {
	m.outcome = out
	m.err = nil
	m.refresh()
	m.viewport.GotoTop()
}

// SetError shows an agent failure in place of any previous result.
func (m *OutputModel) SetError(err error) {
	m.outcome = nil
	m.err = err
	m.refresh()
	m.viewport.GotoTop()
}

// Content returns the text currently shown, before viewport clipping.
func (m OutputModel) Content() string {
	switch {
	case m.err != nil:
		return m.theme.Error.Render(m.err.Error())
	case m.outcome == nil:
		return ""
	case m.outcome.IsWarning():
		return m.theme.Warning.Render("⚠ " + m.outcome.Warning)
	default:
		return m.markdown.Render(m.outcome.Document())
	}
}

// SetSize 设置组件尺寸
func (m *OutputModel) SetSize(width, height int) {
	if height < 1 {
		height = 1
	}
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height
	m.markdown.SetWidth(width)
	m.refresh()
}

func (m *OutputModel) refresh() {
	m.viewport.SetContent(m.Content())
}
