package component

import (
	"bookfinder/tui/component/renderer"

	tea "github.com/charmbracelet/bubbletea"
)

// ButtonPressMsg is sent when the button is activated.
type ButtonPressMsg struct{}

// ButtonModel is a focusable button activated with Enter or Space.
type ButtonModel struct {
	label    string
	focused  bool
	disabled bool
	theme    *renderer.Theme
}

// NewButtonModel 创建按钮组件
func NewButtonModel(label string, theme *renderer.Theme) ButtonModel {
	if theme == nil {
		theme = renderer.DefaultTheme()
	}
	return ButtonModel{label: label, theme: theme}
}

// Update emits ButtonPressMsg on Enter/Space while focused and enabled.
func (m ButtonModel) Update(msg tea.Msg) (ButtonModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || m.disabled {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEnter, tea.KeySpace:
		return m, func() tea.Msg { return ButtonPressMsg{} }
	}
	return m, nil
}

// View 渲染按钮
func (m ButtonModel) View() string {
	switch {
	case m.disabled:
		return m.theme.ButtonBusy.Render(m.label)
	case m.focused:
		return m.theme.ButtonFocused.Render(m.label)
	default:
		return m.theme.Button.Render(m.label)
	}
}

// Focus 聚焦按钮
func (m *ButtonModel) Focus() { m.focused = true }

// Blur 失焦按钮
func (m *ButtonModel) Blur() { m.focused = false }

// Focused reports whether the button has focus.
func (m ButtonModel) Focused() bool { return m.focused }

// SetDisabled toggles the busy state.
func (m *ButtonModel) SetDisabled(disabled bool) { m.disabled = disabled }
