// Package finder is the terminal rendition of the BookFinder page.
package finder

import (
	"context"
	"fmt"
	"strings"

	"bookfinder/page"
	"bookfinder/pubsub"
	"bookfinder/tui/component"
	"bookfinder/tui/component/renderer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudwego/eino/adk"
)

// ResultMsg carries the end of a submission back to the UI loop.
type ResultMsg struct {
	Outcome *page.Outcome
	Err     error
}

// Model 页面模型：标题、输入框、按钮、状态、输出、页脚
type Model struct {
	edit   component.EditModel
	button component.ButtonModel
	status component.StatusModel
	output component.OutputModel
	theme  *renderer.Theme
	intro  string

	controller *page.Controller
	sessionID  string
	events     <-chan pubsub.Event[adk.Message]
	ctx        context.Context

	busy   bool
	width  int
	height int
}

// New creates the page model. events may be nil when progress updates are not wanted.
func New(ctx context.Context, controller *page.Controller, sessionID string, events pubsub.Subscriber[adk.Message]) Model {
	theme := renderer.DefaultTheme()

	// 恢复会话中上次的输入
	query, err := controller.Restore(ctx, sessionID)
	if err != nil {
		query = ""
	}

	m := Model{
		edit:       component.NewEditModel(page.Placeholder, query),
		button:     component.NewButtonModel(page.ButtonLabel, theme),
		status:     component.NewStatusModel(theme),
		output:     component.NewOutputModel(theme),
		theme:      theme,
		intro:      renderer.NewMarkdownRenderer("dracula", 0).Render(page.Description),
		controller: controller,
		sessionID:  sessionID,
		ctx:        ctx,
	}
	if events != nil {
		m.events = events.Subscribe(ctx)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.edit.Init(),
		m.waitForAgentEvent(),
	)
}

// waitForAgentEvent 等待 Agent 进度事件的 Cmd
func (m Model) waitForAgentEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return event
	}
}

// submit runs the controller off the UI loop; the agent call blocks for its full duration.
func (m Model) submit(value string) tea.Cmd {
	ctx, controller, sessionID := m.ctx, m.controller, m.sessionID
	return func() tea.Msg {
		out, err := controller.Submit(ctx, sessionID, value)
		return ResultMsg{Outcome: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab:
			return m, m.toggleFocus()
		case tea.KeyCtrlS:
			return m.press()
		}

	case component.ButtonPressMsg:
		return m.press()

	case ResultMsg:
		m.busy = false
		m.status.Stop()
		m.button.SetDisabled(false)
		if msg.Err != nil {
			m.output.SetError(msg.Err)
		} else {
			m.output.SetOutcome(msg.Outcome)
		}
		return m, nil

	case pubsub.Event[adk.Message]:
		cmds = append(cmds, m.waitForAgentEvent())
		if msg.Type == pubsub.UpdatedEvent && m.busy && msg.Payload != nil {
			m.status.SetText(toolStatus(msg.Payload))
		}
	}

	var cmd tea.Cmd

	if m.edit.Focused() && !m.busy {
		m.edit, cmd = m.edit.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.button, cmd = m.button.Update(msg)
	cmds = append(cmds, cmd)

	m.status, cmd = m.status.Update(msg)
	cmds = append(cmds, cmd)

	m.output, cmd = m.output.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// press handles a button press. Presses while a run is in flight are ignored.
func (m Model) press() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	value := m.edit.Value()

	if page.IsBlank(value) {
		return m, m.submit(value)
	}

	m.busy = true
	m.button.SetDisabled(true)
	return m, tea.Batch(m.status.Start(page.SpinnerText), m.submit(value))
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.edit.Focused() {
		m.edit.Blur()
		m.button.Focus()
		return nil
	}
	m.button.Blur()
	return m.edit.Focus()
}

// toolStatus describes a tool-call message for the status line.
func toolStatus(msg adk.Message) string {
	names := make([]string, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		names = append(names, tc.Function.Name)
	}
	if len(names) == 0 {
		return page.SpinnerText
	}
	return fmt.Sprintf("%s (%s)", page.SpinnerText, strings.Join(names, ", "))
}

func (m Model) header() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(page.Title),
		m.intro,
		"",
		m.theme.Label.Render(page.InputLabel),
		m.edit.View(),
		m.button.View(),
		m.status.View(),
	)
}

func (m Model) footer() string {
	rule := strings.Repeat("─", max(m.width, 3))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Rule.Render(rule),
		m.theme.Caption.Render(page.FooterCaption),
	)
}

// layout 根据窗口大小分配输出区域高度
func (m *Model) layout() {
	m.edit.SetWidth(m.width)
	// 空闲时状态行为空行，仍占一行，布局不会跳动
	used := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
	m.output.SetSize(m.width, m.height-used)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		m.output.View(),
		m.footer(),
	)
}
