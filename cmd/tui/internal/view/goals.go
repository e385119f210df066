package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/money"
)

const entityStateContributing entityState = entityStateConfirmDelete + 1

type goalItem struct {
	summary  metrics.GoalSummary
	priority string
	currency string
}

func (i goalItem) Title() string {
	g := i.summary.Goal
	return fmt.Sprintf("%s  %s", g.Name, faintStyle.Render("["+g.Category+", "+i.priority+"]"))
}

func (i goalItem) Description() string {
	g := i.summary.Goal

	return fmt.Sprintf("%s of %s (%s%%)  %s",
		FormatAmount(g.CurrentAmount, i.currency),
		FormatAmount(g.TargetAmount, i.currency),
		i.summary.Progress.StringFixed(1),
		goalStatusLabel(i.summary),
	)
}

func (i goalItem) FilterValue() string { return i.summary.Goal.Name }

type GoalsModel struct {
	CommonModel
	svc      *goal.Service
	catalog  *catalog.Catalog
	currency string
	now      func() time.Time

	state     entityState
	list      list.Model
	goals     []*goal.Goal
	form      *huh.Form
	values    *goalFormValues
	editingID string
	deposit   *string

	loading bool
	status  string
}

func NewGoalsModel(svc *goal.Service, c *catalog.Catalog, currency string, now func() time.Time) GoalsModel {
	l := list.New([]list.Item{}, itemDelegate{}, 80, 20)
	l.Title = "Goals"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return GoalsModel{
		svc:      svc,
		catalog:  c,
		currency: currency,
		now:      now,
		list:     l,
		loading:  true,
	}
}

func (m GoalsModel) Title() string { return "Goals" }

func (m GoalsModel) ShortHelp() string {
	switch m.state {
	case entityStateEditing, entityStateContributing:
		return "Esc: cancel | Enter/Tab: navigate form"
	case entityStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | a: add | Enter: edit | c: contribute | x: delete | /: filter"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadGoalsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.goals = msg.goals
		m.refreshItems()

		return m, nil

	case entitySavedMsg:
		m.state = entityStateList
		m.form = nil
		m.status = msg.status

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case entityStateList:
		return m.updateList(msg)
	case entityStateEditing, entityStateContributing:
		return m.updateForm(msg)
	case entityStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m GoalsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		item, hasItem := m.list.SelectedItem().(goalItem)

		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}

			return m, Back
		case "a":
			return m.startEditing(nil)
		case "enter":
			if hasItem {
				return m.startEditing(item.summary.Goal)
			}

			return m, nil
		case "c":
			if hasItem {
				return m.startContributing(item.summary.Goal)
			}

			return m, nil
		case "x":
			if hasItem {
				m.state = entityStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m GoalsModel) startEditing(g *goal.Goal) (tea.Model, tea.Cmd) {
	m.values = newGoalFormValues(g, m.now())
	m.editingID = ""

	if g != nil {
		m.editingID = g.ID
	}

	m.form = newGoalForm(m.catalog, m.values)
	m.state = entityStateEditing

	return m, m.form.Init()
}

func (m GoalsModel) startContributing(g *goal.Goal) (tea.Model, tea.Cmd) {
	m.editingID = g.ID
	m.deposit = new(string)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Add to " + g.Name).
				Description("Remaining: " + FormatAmount(g.Remaining(), m.currency)).
				Value(m.deposit).
				Validate(validateAmount),
		),
	).WithWidth(formWidth).WithShowHelp(false)
	m.state = entityStateContributing

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = entityStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == entityStateContributing {
		return m, m.contributeCmd()
	}

	return m, m.saveCmd()
}

func (m GoalsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		item, ok := m.list.SelectedItem().(goalItem)
		if !ok {
			m.state = entityStateList
			return m, nil
		}

		id := item.summary.Goal.ID

		return m, func() tea.Msg {
			ctx, cancel := DbCtx()
			defer cancel()

			return entitySavedMsg{status: "Goal removed.", err: m.svc.Remove(ctx, id)}
		}
	case "n", "esc":
		m.state = entityStateList
	}

	return m, nil
}

func (m GoalsModel) View() string {
	if m.form != nil && (m.state == entityStateEditing || m.state == entityStateContributing) {
		title := "New Goal"

		switch {
		case m.state == entityStateContributing:
			title = "Contribute"
		case m.editingID != "":
			title = "Edit Goal"
		}

		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render(title) + "\n\n" + m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	content := m.list.View()

	if m.state == entityStateConfirmDelete {
		if item, ok := m.list.SelectedItem().(goalItem); ok {
			content += "\n" + errStyle.Render(fmt.Sprintf("Delete %q? (y/n)", item.summary.Goal.Name))
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + faintStyle.Render(m.ShortHelp()))
}

func (m *GoalsModel) refreshItems() {
	summaries := metrics.GoalProgress(m.goals, m.now())

	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = goalItem{
			summary:  s,
			priority: m.catalog.PriorityLabel(string(s.Goal.Priority)),
			currency: m.currency,
		}
	}

	m.list.SetItems(items)
}

// Messages

type loadGoalsMsg struct {
	goals []*goal.Goal
	err   error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.svc.List(ctx)

		return loadGoalsMsg{goals: goals, err: err}
	}
}

func (m GoalsModel) saveCmd() tea.Cmd {
	values := m.values
	id := m.editingID

	return func() tea.Msg {
		params, err := values.params()
		if err != nil {
			return entitySavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if id == "" {
			_, err = m.svc.Add(ctx, params)
			return entitySavedMsg{status: "Goal added.", err: err}
		}

		_, err = m.svc.Update(ctx, id, params)

		return entitySavedMsg{status: "Goal updated.", err: err}
	}
}

func (m GoalsModel) contributeCmd() tea.Cmd {
	raw := *m.deposit
	id := m.editingID

	return func() tea.Msg {
		amount, err := money.ParseAmount(raw)
		if err != nil {
			return entitySavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		g, err := m.svc.Contribute(ctx, id, amount)
		if err != nil {
			return entitySavedMsg{err: err}
		}

		status := fmt.Sprintf("%s is at %s%%.", g.Name, g.Progress().StringFixed(1))
		if g.Completed() {
			status = g.Name + " completed!"
		}

		return entitySavedMsg{status: status}
	}
}
