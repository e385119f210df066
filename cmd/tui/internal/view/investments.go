package view

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/money"
)

type entityState int

const (
	entityStateList entityState = iota
	entityStateEditing
	entityStateConfirmDelete
)

// invItem wraps an investment to implement list.Item.
type invItem struct {
	inv      *investment.Investment
	label    string
	currency string
}

func (i invItem) Title() string {
	name := i.inv.Name
	if i.inv.Symbol != "" {
		name += " (" + i.inv.Symbol + ")"
	}

	return fmt.Sprintf("%s  %s", name, faintStyle.Render("["+i.label+"]"))
}

func (i invItem) Description() string {
	return fmt.Sprintf("Invested %s  Current %s  Gain %s (%s)",
		FormatAmount(i.inv.Amount, i.currency),
		FormatAmount(i.inv.CurrentValue, i.currency),
		money.FormatSigned(i.inv.Gain(), i.currency),
		money.FormatPercent(i.inv.GainPercent()),
	)
}

func (i invItem) FilterValue() string { return i.inv.Name + " " + i.inv.Symbol }

type InvestmentsModel struct {
	CommonModel
	svc      *investment.Service
	catalog  *catalog.Catalog
	currency string
	now      func() time.Time

	state     entityState
	list      list.Model
	invs      []*investment.Investment
	form      *huh.Form
	values    *investmentFormValues
	editingID string

	loading bool
	status  string
}

func NewInvestmentsModel(svc *investment.Service, c *catalog.Catalog, currency string, now func() time.Time) InvestmentsModel {
	l := list.New([]list.Item{}, itemDelegate{}, 80, 20)
	l.Title = "Investments"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return InvestmentsModel{
		svc:      svc,
		catalog:  c,
		currency: currency,
		now:      now,
		list:     l,
		loading:  true,
	}
}

func (m InvestmentsModel) Title() string { return "Investments" }

func (m InvestmentsModel) ShortHelp() string {
	switch m.state {
	case entityStateEditing:
		return "Esc: cancel | Enter/Tab: navigate form"
	case entityStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | a: add | Enter: edit | x: delete | /: filter"
}

func (m InvestmentsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvestmentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvestmentsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.invs = msg.invs
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
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	}

	switch m.state {
	case entityStateList:
		return m.updateList(msg)
	case entityStateEditing:
		return m.updateEditing(msg)
	case entityStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m InvestmentsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}

			return m, Back
		case "a":
			return m.startEditing(nil)
		case "enter":
			if item, ok := m.list.SelectedItem().(invItem); ok {
				return m.startEditing(item.inv)
			}

			return m, nil
		case "x":
			if _, ok := m.list.SelectedItem().(invItem); ok {
				m.state = entityStateConfirmDelete
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m InvestmentsModel) startEditing(inv *investment.Investment) (tea.Model, tea.Cmd) {
	m.values = newInvestmentFormValues(inv, m.now())
	m.editingID = ""

	if inv != nil {
		m.editingID = inv.ID
	}

	m.form = newInvestmentForm(m.catalog, m.values)
	m.state = entityStateEditing

	return m, m.form.Init()
}

func (m InvestmentsModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	return m, m.saveCmd()
}

func (m InvestmentsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		item, ok := m.list.SelectedItem().(invItem)
		if !ok {
			m.state = entityStateList
			return m, nil
		}

		id := item.inv.ID

		return m, func() tea.Msg {
			ctx, cancel := DbCtx()
			defer cancel()

			return entitySavedMsg{status: "Investment removed.", err: m.svc.Remove(ctx, id)}
		}
	case "n", "esc":
		m.state = entityStateList
	}

	return m, nil
}

func (m InvestmentsModel) View() string {
	if m.state == entityStateEditing && m.form != nil {
		title := "New Investment"
		if m.editingID != "" {
			title = "Edit Investment"
		}

		return lipgloss.NewStyle().Padding(1).Render(titleStyle.Render(title) + "\n\n" + m.form.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading investments...")
	}

	totals := metrics.InvestmentTotalsOf(m.invs)
	summary := panelStyle.Render(fmt.Sprintf("Invested %s  Current %s  Gain %s (%s)",
		FormatAmount(totals.Invested, m.currency),
		FormatAmount(totals.Current, m.currency),
		money.FormatSigned(totals.Gain, m.currency),
		money.FormatPercent(totals.GainPercent),
	))

	content := summary + "\n" + m.list.View()

	if m.state == entityStateConfirmDelete {
		if item, ok := m.list.SelectedItem().(invItem); ok {
			content += "\n" + errStyle.Render(fmt.Sprintf("Delete %q? (y/n)", item.inv.Name))
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + faintStyle.Render(m.ShortHelp()))
}

func (m *InvestmentsModel) refreshItems() {
	items := make([]list.Item, len(m.invs))
	for i, inv := range m.invs {
		items[i] = invItem{inv: inv, label: m.catalog.InvestmentLabel(inv.Type), currency: m.currency}
	}

	m.list.SetItems(items)
}

// Messages

type loadInvestmentsMsg struct {
	invs []*investment.Investment
	err  error
}

type entitySavedMsg struct {
	status string
	err    error
}

func (m InvestmentsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invs, err := m.svc.List(ctx)

		return loadInvestmentsMsg{invs: invs, err: err}
	}
}

func (m InvestmentsModel) saveCmd() tea.Cmd {
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
			return entitySavedMsg{status: "Investment added.", err: err}
		}

		_, err = m.svc.Update(ctx, id, params)

		return entitySavedMsg{status: "Investment updated.", err: err}
	}
}

// itemDelegate renders two-line items in the investment and goal lists.
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 2 }
func (d itemDelegate) Spacing() int                            { return 1 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(list.DefaultItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n    %s", title, faintStyle.Render(i.Description()))
}
