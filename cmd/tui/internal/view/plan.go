package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/plan"
)

// PlanChangedMsg tells the menu which tier is now active.
type PlanChangedMsg struct {
	Plan catalog.Plan
}

type PlanModel struct {
	CommonModel
	svc     *plan.Service
	catalog *catalog.Catalog

	current catalog.Plan
	choice  *string
	form    *huh.Form
	err     error
}

func NewPlanModel(svc *plan.Service, c *catalog.Catalog, current catalog.Plan) PlanModel {
	m := PlanModel{svc: svc, catalog: c, current: current}
	m.form = m.buildForm()

	return m
}

func (m PlanModel) Title() string     { return "Plan" }
func (m PlanModel) ShortHelp() string { return "Enter: switch | Esc: back" }

func (m PlanModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *PlanModel) buildForm() *huh.Form {
	m.choice = new(string)
	*m.choice = m.current.Name

	opts := make([]huh.Option[string], len(m.catalog.Plans))
	for i, p := range m.catalog.Plans {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", p.Label, strings.Join(p.Features, ", ")), p.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("plan").
				Title("Choose a plan").
				Options(opts...).
				Value(m.choice),
		),
	).WithWidth(formWidth + 10).WithShowHelp(false)
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planSwitchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.current = msg.plan

		return m, tea.Sequence(
			func() tea.Msg { return PlanChangedMsg{Plan: msg.plan} },
			Back,
		)

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	tier := *m.choice

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		p, err := m.svc.Switch(ctx, tier)

		return planSwitchedMsg{plan: p, err: err}
	}
}

type planSwitchedMsg struct {
	plan catalog.Plan
	err  error
}

func (m PlanModel) View() string {
	s := fmt.Sprintf("Current plan: %s\n\n%s", activeStyle(m.current.Label), m.form.View())
	if m.err != nil {
		s += "\n" + errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(s)
}
