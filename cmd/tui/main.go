package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/carteira/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/config"
	"github.com/MrJamesThe3rd/carteira/internal/plan"
)

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewTransactions
	ViewInvestments
	ViewGoals
	ViewImport
	ViewReview
	ViewExport
	ViewPlan
	ViewRestricted
)

type menuEntry struct {
	key     string
	label   string
	view    View
	feature string
}

var menu = []menuEntry{
	{"1", "Dashboard", ViewDashboard, plan.FeatureDashboard},
	{"2", "Transactions", ViewTransactions, ""},
	{"3", "Investments", ViewInvestments, plan.FeatureInvestments},
	{"4", "Goals", ViewGoals, plan.FeatureGoals},
	{"5", "Import Transactions", ViewImport, ""},
	{"6", "Review Uncategorized", ViewReview, ""},
	{"7", "Export Transactions", ViewExport, ""},
	{"8", "Change Plan", ViewPlan, ""},
}

type model struct {
	app  *app.App
	name string
	now  func() time.Time

	plan        catalog.Plan
	currentView View
	restricted  string
	width       int
	height      int

	active tea.Model
}

func initialModel() (model, func() error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	a, closeStorage, err := app.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open storage:", err)
		os.Exit(1)
	}

	ctx, cancel := view.DbCtx()
	defer cancel()

	p, err := a.Plans.Current(ctx)
	if err != nil {
		slog.Error("failed to read plan", "error", err)
	}

	return model{
		app:         a,
		name:        cfg.App.Name,
		now:         time.Now,
		plan:        p,
		currentView: ViewMenu,
	}, closeStorage
}

// setupLogging sends logs to LOG_FILE, or drops them, since stdout belongs
// to the terminal UI.
func setupLogging(cfg *config.Config) {
	var w io.Writer = io.Discard

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			w = f
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()})))
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (model, tea.Cmd) {
	a := m.app

	switch v {
	case ViewDashboard:
		m.active = view.NewDashboardModel(a, m.now)
	case ViewTransactions:
		m.active = view.NewListModel(a.Transactions, a.Catalog, a.Currency, m.now)
	case ViewInvestments:
		m.active = view.NewInvestmentsModel(a.Investments, a.Catalog, a.Currency, m.now)
	case ViewGoals:
		m.active = view.NewGoalsModel(a.Goals, a.Catalog, a.Currency, m.now)
	case ViewImport:
		m.active = view.NewImportModel(a.Transactions, a.Importer, a.Currency)
	case ViewReview:
		m.active = view.NewReviewModel(a.Transactions, a.Rules, a.Catalog, a.Currency)
	case ViewExport:
		m.active = view.NewExportModel(a.Export, a.Catalog, m.now)
	case ViewPlan:
		m.active = view.NewPlanModel(a.Plans, a.Catalog, m.plan)
	default:
		return m, nil
	}

	m.currentView = v

	cmds := []tea.Cmd{m.active.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.currentView {
		case ViewMenu:
			return m.updateMenu(msg)
		case ViewRestricted:
			if msg.Type == tea.KeyEsc {
				m.currentView = ViewMenu
			}

			return m, nil
		}

	case view.PlanChangedMsg:
		m.plan = msg.Plan
		slog.Info("plan switched", "plan", msg.Plan.Name)

		return m, nil

	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}

	for _, e := range menu {
		if msg.String() != e.key {
			continue
		}

		if e.feature != "" && !plan.HasAccess(m.app.Catalog, m.plan.Name, e.feature) {
			m.currentView = ViewRestricted
			m.restricted = e.label

			return m, nil
		}

		return m.open(e.view)
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return m.viewMenu()
	case ViewRestricted:
		return view.Restricted(m.restricted, m.plan.Label)
	}

	if m.active == nil {
		return "Unknown View"
	}

	return m.active.View()
}

func (m model) viewMenu() string {
	s := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render(m.name) +
		lipgloss.NewStyle().Faint(true).Render("  plan: "+m.plan.Label) + "\n\n"

	for _, e := range menu {
		line := fmt.Sprintf("%s. %s", e.key, e.label)
		if e.feature != "" && !plan.HasAccess(m.app.Catalog, m.plan.Name, e.feature) {
			line = lipgloss.NewStyle().Faint(true).Render(line + "  (locked)")
		}

		s += line + "\n"
	}

	return lipgloss.NewStyle().Padding(2).Render(s + "\nq. Quit")
}

func main() {
	m, closeStorage := initialModel()
	defer closeStorage()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
