package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/categorize"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

// ReviewModel walks through transactions still in the fallback category,
// assigns a category and learns a rule for future imports.
type ReviewModel struct {
	CommonModel
	txService *transaction.Service
	rules     *categorize.Service
	catalog   *catalog.Catalog
	currency  string

	queue      []*transaction.Transaction
	currentTx  *transaction.Transaction
	categories []string
	cursor     int
	pattern    textinput.Model

	status     string
	loading    bool
	totalCount int
}

func NewReviewModel(txSvc *transaction.Service, rules *categorize.Service, c *catalog.Catalog, currency string) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "text to match in future imports"
	ti.Width = 40
	ti.Prompt = "Rule: "

	return ReviewModel{
		txService: txSvc,
		rules:     rules,
		catalog:   c,
		currency:  currency,
		pattern:   ti,
		loading:   true,
	}
}

func (m ReviewModel) Title() string { return "Review Uncategorized" }

func (m ReviewModel) ShortHelp() string {
	return "↑/↓: category | Enter: save & next | Tab: skip | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}

			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.categories)-1 {
				m.cursor++
			}

			return m, nil
		case tea.KeyTab:
			if m.currentTx != nil {
				cmd = m.next()
				return m, cmd
			}
		case tea.KeyEnter:
			if m.currentTx != nil && len(m.categories) > 0 {
				return m, m.saveCmd(m.categories[m.cursor], m.pattern.Value())
			}
		}

	case loadReviewMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading: %v", msg.err)
			break
		}

		m.queue = msg.txs
		m.totalCount = len(m.queue)
		cmd = m.next()

		return m, cmd

	case suggestionMsg:
		if m.currentTx != nil && msg.id == m.currentTx.ID && msg.rule != nil {
			if i := slices.Index(m.categories, msg.rule.Category); i >= 0 {
				m.cursor = i
			}

			m.pattern.SetValue(msg.rule.Pattern)
		}

		return m, nil

	case reviewSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		cmd = m.next()

		return m, cmd
	}

	if m.currentTx != nil {
		m.pattern, cmd = m.pattern.Update(msg)
	}

	return m, cmd
}

// next pops the queue and asks for a suggestion for the new head.
func (m *ReviewModel) next() tea.Cmd {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.pattern.Blur()

		m.status = "Nothing left to review."
		if m.totalCount > 0 {
			m.status = fmt.Sprintf("All done! Reviewed %d transactions.", m.totalCount)
		}

		return nil
	}

	tx := m.queue[0]
	m.queue = m.queue[1:]
	m.currentTx = tx
	m.categories = m.catalog.CategoriesFor(string(tx.Kind))
	m.cursor = max(0, slices.Index(m.categories, tx.Category))
	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.pattern.SetValue(strings.ToLower(strings.TrimSpace(tx.Description)))
	m.pattern.Focus()

	rules := m.rules

	return tea.Batch(textinput.Blink, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, _ := rules.Suggest(ctx, tx.Kind, tx.Description)

		return suggestionMsg{id: tx.ID, rule: r}
	})
}

func (m ReviewModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading uncategorized transactions...")
	}

	if m.currentTx == nil {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	tx := m.currentTx
	info := panelStyle.Render(fmt.Sprintf(
		"Date: %s  |  Type: %s  |  Amount: %s\n%s",
		FormatDate(tx.Date), tx.Kind, FormatAmount(tx.Amount, m.currency), tx.Description,
	))

	var cats strings.Builder

	for i, c := range m.categories {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			c = activeStyle(c)
		}

		cats.WriteString(cursor + c + "\n")
	}

	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			faintStyle.Render(m.status),
			info,
			"",
			"Category:",
			cats.String(),
			m.pattern.View(),
			"",
			faintStyle.Render(m.ShortHelp()),
		),
	)
}

type loadReviewMsg struct {
	txs []*transaction.Transaction
	err error
}

type suggestionMsg struct {
	id   string
	rule *categorize.Rule
}

type reviewSavedMsg struct {
	err error
}

func (m ReviewModel) loadCmd() tea.Cmd {
	fallback := m.catalog.FallbackCategory

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx)
		if err != nil {
			return loadReviewMsg{err: err}
		}

		txs = slices.DeleteFunc(txs, func(tx *transaction.Transaction) bool {
			return tx.Category != fallback
		})

		return loadReviewMsg{txs: txs}
	}
}

func (m ReviewModel) saveCmd(category, pattern string) tea.Cmd {
	tx := m.currentTx

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if strings.TrimSpace(pattern) != "" {
			if err := m.rules.Learn(ctx, tx.Kind, pattern, category, ""); err != nil {
				return reviewSavedMsg{err: err}
			}
		}

		_, err := m.txService.Update(ctx, tx.ID, transaction.Params{
			Kind:        tx.Kind,
			Amount:      tx.Amount,
			Category:    category,
			Description: tx.Description,
			Date:        tx.Date,
		})

		return reviewSavedMsg{err: err}
	}
}
