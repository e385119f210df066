package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

const barWidth = 30

var kindFilters = []metrics.KindFilter{metrics.KindAll, metrics.KindIncome, metrics.KindExpense}

type DashboardModel struct {
	CommonModel
	app *app.App
	now func() time.Time

	picker  MonthPicker
	kindIdx int
	bar     progress.Model

	overview *app.Overview
	loading  bool
	err      error
}

func NewDashboardModel(a *app.App, now func() time.Time) DashboardModel {
	return DashboardModel{
		app:     a,
		now:     now,
		picker:  NewMonthPicker(a.Catalog, now),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "←/→: month | m: type month | t: today | f: type filter | r: refresh | Esc: back"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.overview = msg.overview
		m.err = msg.err

		return m, nil

	case MonthChangedMsg:
		m.loading = true
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.picker.Typing() {
			break
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "f":
			m.kindIdx = (m.kindIdx + 1) % len(kindFilters)
			m.loading = true

			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

type dashboardMsg struct {
	overview *app.Overview
	err      error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	month := m.picker.Month()
	kind := kindFilters[m.kindIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ov, err := m.app.Overview(ctx, month, kind, m.now())

		return dashboardMsg{overview: ov, err: err}
	}
}

func (m DashboardModel) View() string {
	header := fmt.Sprintf("%s   Type: %s",
		m.picker.View(),
		activeStyle(kindLabel(kindFilters[m.kindIdx])),
	)

	var body string

	switch {
	case m.loading && m.overview == nil:
		body = "Loading..."
	case m.err != nil:
		body = errStyle.Render(fmt.Sprintf("Error: %v", m.err))
	default:
		body = m.viewOverview()
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Dashboard"),
			header,
			"",
			body,
			"",
			faintStyle.Render(m.ShortHelp()),
		),
	)
}

func (m DashboardModel) viewOverview() string {
	ov := m.overview
	cur := m.app.Currency

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			totalBox("Income", ov.Totals.Income, cur, incomeFg),
			totalBox("Expenses", ov.Totals.Expenses, cur, expenseFg),
			totalBox("Balance", ov.Totals.Balance, cur, balanceColor(ov.Totals.Balance)),
		),
		m.viewCategories(),
		m.viewSeries(),
	}

	if ov.ShowInvestments {
		sections = append(sections, m.viewInvestments())
	}

	if ov.ShowGoals {
		sections = append(sections, m.viewGoals())
	}

	sections = append(sections, faintStyle.Render("Plan: "+ov.Plan.Label))

	return strings.Join(sections, "\n\n")
}

func totalBox(label string, amount decimal.Decimal, currency string, fg lipgloss.Color) string {
	return panelStyle.Width(22).MarginRight(1).Render(
		faintStyle.Render(label) + "\n" +
			lipgloss.NewStyle().Bold(true).Foreground(fg).Render(FormatAmount(amount, currency)),
	)
}

func balanceColor(d decimal.Decimal) lipgloss.Color {
	if d.IsNegative() {
		return expenseFg
	}

	return incomeFg
}

func (m DashboardModel) viewCategories() string {
	cats := m.overview.Categories
	if len(cats) == 0 {
		return faintStyle.Render("No transactions this month.")
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("By category") + "\n")

	for _, c := range cats {
		fg := expenseFg
		if c.Kind == transaction.KindIncome {
			fg = incomeFg
		}

		fmt.Fprintf(&sb, "%-16s %s %5s%%  %s\n",
			truncate(c.Category, 16),
			lipgloss.NewStyle().Foreground(fg).Render(bar(c.Share, decimal.NewFromInt(100))),
			c.Share.StringFixed(1),
			FormatAmount(c.Amount, m.app.Currency),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) viewSeries() string {
	series := m.overview.Series
	if len(series) == 0 {
		return ""
	}

	peak := decimal.Zero
	for _, p := range series {
		peak = decimal.Max(peak, p.Income, p.Expenses)
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Last months") + "\n")

	for _, p := range series {
		fmt.Fprintf(&sb, "%-9s %s %s\n%-9s %s %s\n",
			p.Label,
			lipgloss.NewStyle().Foreground(incomeFg).Render(bar(p.Income, peak)),
			faintStyle.Render(FormatAmount(p.Income, m.app.Currency)),
			"",
			lipgloss.NewStyle().Foreground(expenseFg).Render(bar(p.Expenses, peak)),
			faintStyle.Render(FormatAmount(p.Expenses, m.app.Currency)),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) viewInvestments() string {
	inv := m.overview.Investments
	cur := m.app.Currency

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Investments") + "\n")
	fmt.Fprintf(&sb, "Invested %s  Current %s  Gain %s (%s)\n",
		FormatAmount(inv.Invested, cur),
		FormatAmount(inv.Current, cur),
		lipgloss.NewStyle().Foreground(balanceColor(inv.Gain)).Render(money.FormatSigned(inv.Gain, cur)),
		money.FormatPercent(inv.GainPercent),
	)

	for _, t := range m.overview.ByType {
		fmt.Fprintf(&sb, "  %-16s %s\n", truncate(t.Label, 16), FormatAmount(t.Amount, cur))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) viewGoals() string {
	goals := m.overview.Goals
	if len(goals) == 0 {
		return titleStyle.Render("Goals") + "\n" + faintStyle.Render("No goals yet.")
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Goals") + "\n")

	for _, g := range goals {
		pct, _ := decimal.Min(g.Progress, decimal.NewFromInt(100)).Div(decimal.NewFromInt(100)).Float64()

		fmt.Fprintf(&sb, "%-16s %s %s\n",
			truncate(g.Goal.Name, 16),
			m.bar.ViewAs(pct),
			goalStatusLabel(g),
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func goalStatusLabel(g metrics.GoalSummary) string {
	switch g.Status {
	case goal.StatusCompleted:
		return okStyle.Render("completed")
	case goal.StatusOverdue:
		return errStyle.Render("overdue")
	case goal.StatusDueSoon:
		return activeStyle(fmt.Sprintf("%d days left", g.DaysRemaining))
	}

	return faintStyle.Render(fmt.Sprintf("%d days left", g.DaysRemaining))
}

// bar draws value relative to peak as a run of block characters.
func bar(value, peak decimal.Decimal) string {
	n := 0
	if peak.IsPositive() {
		n = int(value.Div(peak).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	}

	n = max(0, min(n, barWidth))

	return strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n)
}

func kindLabel(k metrics.KindFilter) string {
	switch k {
	case metrics.KindIncome:
		return "Income"
	case metrics.KindExpense:
		return "Expenses"
	}

	return "All"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
