package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
	listStateConfirmDelete
)

// ListModel browses the transactions of one month and edits them.
type ListModel struct {
	CommonModel
	txService *transaction.Service
	catalog   *catalog.Catalog
	currency  string
	now       func() time.Time

	state   listState
	table   table.Model
	picker  MonthPicker
	kindIdx int
	txs     []*transaction.Transaction

	form      *huh.Form
	values    *txFormValues
	editingID string

	loading bool
	err     error
	status  string
}

func NewListModel(txSvc *transaction.Service, c *catalog.Catalog, currency string, now func() time.Time) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		txService: txSvc,
		catalog:   c,
		currency:  currency,
		now:       now,
		table:     t,
		picker:    NewMonthPicker(c, now),
		loading:   true,
	}
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateEdit:
		return "Navigate form | Esc: cancel"
	case listStateConfirmDelete:
		return "y: delete | n: keep"
	}

	return "Esc: back | a: add | e: edit | x: delete | ←/→: month | f: type | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadTxsCmd()

	case MonthChangedMsg:
		m.loading = true
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(5, msg.Height-12))
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	case listStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.picker.Typing() {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "a":
			return m.enterEditMode(nil)
		case "e", "enter":
			if tx := m.selected(); tx != nil {
				return m.enterEditMode(tx)
			}

			return m, nil
		case "x":
			if m.selected() != nil {
				m.state = listStateConfirmDelete
			}

			return m, nil
		case "f":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.loading = true

			return m, m.loadTxsCmd()
		case "left", "right", "h", "l", "t", "m":
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)

			return m, cmd
		}
	}

	if m.picker.Typing() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m ListModel) enterEditMode(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.values = newTxFormValues(tx, m.now())
	m.editingID = ""

	if tx != nil {
		m.editingID = tx.ID
	}

	m.form = newTxForm(m.catalog, m.values)
	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
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

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		return m, m.deleteCmd()
	case "n", "esc":
		m.state = listStateBrowse
	}

	return m, nil
}

func (m ListModel) View() string {
	header := fmt.Sprintf("%s   [f] Type: %s",
		m.picker.View(),
		activeStyle(kindLabel(kindFilters[m.kindIdx])),
	)

	var body string

	switch {
	case m.loading && m.txs == nil:
		body = "Loading transactions..."
	case m.err != nil:
		body = errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	)

	switch m.state {
	case listStateEdit:
		title := "New Transaction"
		if m.editingID != "" {
			title = "Edit Transaction"
		}

		panel := panelStyle.
			Padding(1, 2).
			BorderForeground(lipgloss.Color("63")).
			Width(formWidth + 6).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case listStateConfirmDelete:
		if tx := m.selected(); tx != nil {
			content += "\n\n" + errStyle.Render(fmt.Sprintf(
				"Delete %s %s %q? (y/n)", FormatDate(tx.Date), FormatAmount(tx.Amount, m.currency), tx.Description))
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + faintStyle.Render(m.ShortHelp()))
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		amount := FormatAmount(tx.Amount, m.currency)
		if tx.Kind == transaction.KindExpense {
			amount = "-" + amount
		}

		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Kind),
			tx.Category,
			amount,
			tx.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	month := m.picker.Month()
	kind := kindFilters[m.kindIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		all, err := m.txService.List(ctx)
		if err != nil {
			return loadListMsg{err: err}
		}

		return loadListMsg{txs: metrics.FilterTransactions(all, month, kind)}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	values := m.values
	id := m.editingID

	return func() tea.Msg {
		params, err := values.params()
		if err != nil {
			return listSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if id == "" {
			_, err = m.txService.Add(ctx, params)
			return listSaveMsg{status: "Transaction added.", err: err}
		}

		_, err = m.txService.Update(ctx, id, params)

		return listSaveMsg{status: "Transaction updated.", err: err}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	id := tx.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.txService.Remove(ctx, id)

		return listSaveMsg{status: "Transaction removed.", err: err}
	}
}
