package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	incomeFg   = lipgloss.Color("42")
	expenseFg  = lipgloss.Color("203")
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Restricted renders the placeholder shown instead of a feature the current
// plan does not include.
func Restricted(feature, plan string) string {
	return lipgloss.NewStyle().Padding(2).Render(
		panelStyle.Render(
			titleStyle.Render("Not available on your plan") + "\n\n" +
				"The " + feature + " area is not part of the " + plan + " plan.\n" +
				"Switch plans from the main menu to unlock it.",
		) + "\n\n" + faintStyle.Render("(Esc to go back)"),
	)
}
