package component

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// editHeight is the number of visible lines in the text box
const editHeight = 4

// EditModel 封装多行输入框组件
// 提交后保留输入内容，与会话状态一致
type EditModel struct {
	textarea textarea.Model
	width    int
}

// NewEditModel 创建新的输入框组件，value 为会话中上次的输入
func NewEditModel(placeholder, value string) EditModel {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = "┃ "
	ta.SetWidth(40)
	ta.SetHeight(editHeight)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.SetValue(value)
	ta.Focus()

	return EditModel{
		textarea: ta,
		width:    40,
	}
}

// Init 初始化组件
func (m EditModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update forwards input to the textarea when focused.
func (m EditModel) Update(msg tea.Msg) (EditModel, tea.Cmd) {
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View 渲染组件视图
func (m EditModel) View() string {
	return m.textarea.View()
}

// Value returns the current text.
func (m EditModel) Value() string {
	return m.textarea.Value()
}

// SetValue replaces the text.
func (m *EditModel) SetValue(v string) {
	m.textarea.SetValue(v)
}

// SetWidth 设置组件宽度
func (m *EditModel) SetWidth(width int) {
	m.width = width
	m.textarea.SetWidth(width)
}

// Focus 聚焦输入框
func (m *EditModel) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur 失焦输入框
func (m *EditModel) Blur() {
	m.textarea.Blur()
}

// Focused reports whether the text box has focus.
func (m EditModel) Focused() bool {
	return m.textarea.Focused()
}

// Height 返回组件高度
func (m EditModel) Height() int {
	return m.textarea.Height()
}
