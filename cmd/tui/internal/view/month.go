package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
)

// MonthChangedMsg is emitted whenever the picker moves to another month.
type MonthChangedMsg struct {
	Month metrics.Month
}

// MonthPicker selects the reference month. Left and right step one month,
// "t" jumps to the current month and "m" opens a YYYY-MM prompt.
type MonthPicker struct {
	month   metrics.Month
	catalog *catalog.Catalog
	now     func() time.Time

	typing bool
	input  textinput.Model
	err    error
}

func NewMonthPicker(c *catalog.Catalog, now func() time.Time) MonthPicker {
	in := textinput.New()
	in.Placeholder = "YYYY-MM"
	in.CharLimit = 7
	in.Width = 8
	in.Prompt = "Month: "

	return MonthPicker{
		month:   metrics.MonthOf(now()),
		catalog: c,
		now:     now,
		input:   in,
	}
}

func (m MonthPicker) Month() metrics.Month { return m.month }

// Typing reports whether the YYYY-MM prompt has focus, in which case the
// parent view should not interpret keys itself.
func (m MonthPicker) Typing() bool { return m.typing }

func (m MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.typing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	if m.typing {
		return m.updateTyping(keyMsg)
	}

	switch keyMsg.String() {
	case "left", "h":
		return m.set(m.month.Prev())
	case "right", "l":
		return m.set(m.month.Next())
	case "t":
		return m.set(metrics.MonthOf(m.now()))
	case "m":
		m.typing = true
		m.err = nil
		m.input.SetValue(m.month.String())
		m.input.Focus()

		return m, textinput.Blink
	}

	return m, nil
}

func (m MonthPicker) updateTyping(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.typing = false
		m.err = nil
		m.input.Blur()

		return m, nil
	case tea.KeyEnter:
		month, err := metrics.ParseMonth(m.input.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid month (YYYY-MM)")
			return m, nil
		}

		m.typing = false
		m.err = nil
		m.input.Blur()

		return m.set(month)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m MonthPicker) set(month metrics.Month) (MonthPicker, tea.Cmd) {
	if month == m.month {
		return m, nil
	}

	m.month = month

	return m, func() tea.Msg { return MonthChangedMsg{Month: month} }
}

func (m MonthPicker) View() string {
	if m.typing {
		s := m.input.View()
		if m.err != nil {
			s += "  " + errStyle.Render(m.err.Error())
		}

		return s
	}

	return fmt.Sprintf("%s %s %s",
		faintStyle.Render("<"),
		lipgloss.NewStyle().Bold(true).Render(m.month.Label(m.catalog)),
		faintStyle.Render(">"),
	)
}
