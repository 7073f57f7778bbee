package renderer

import "github.com/charmbracelet/lipgloss"

// Theme 页面样式配置
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Caption lipgloss.Style
	Rule    lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonBusy    lipgloss.Style
	Spinner       lipgloss.Style
}

// DefaultTheme 返回默认主题
func DefaultTheme() *Theme {
	return &Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7")).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e0af68")).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f7768e")).
			Padding(0, 1),

		Caption: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89")).
			Italic(true),

		Rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89")).
			Faint(true),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#565f89")).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#ff4b4b")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff4b4b")).
			Bold(true).
			Padding(0, 2),

		ButtonBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3b4261")).
			Padding(0, 2),

		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")),
	}
}
