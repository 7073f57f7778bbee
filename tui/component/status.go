package component

import (
	"fmt"

	"bookfinder/tui/component/renderer"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusModel 封装状态显示组件（spinner + 状态文本）
// 空闲时不显示任何内容
type StatusModel struct {
	spinner spinner.Model
	running bool
	text    string
}

// NewStatusModel 创建新的状态组件
func NewStatusModel(theme *renderer.Theme) StatusModel {
	if theme == nil {
		theme = renderer.DefaultTheme()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	return StatusModel{spinner: s}
}

// Update advances the spinner while running.
func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View 渲染组件视图
func (m StatusModel) View() string {
	if !m.running {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

// Start 启动 spinner
func (m *StatusModel) Start(text string) tea.Cmd {
	m.running = true
	m.text = text
	return m.spinner.Tick
}

// Stop 停止 spinner
func (m *StatusModel) Stop() {
	m.running = false
	m.text = ""
}

// SetText 设置状态文本
func (m *StatusModel) SetText(text string) {
	m.text = text
}

// Text returns the current status text.
func (m StatusModel) Text() string {
	return m.text
}

// IsRunning 返回 spinner 是否在运行
func (m StatusModel) IsRunning() bool {
	return m.running
}
