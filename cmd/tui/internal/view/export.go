package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/encoding"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
)

type exportState int

const (
	exportStateMonth exportState = iota
	exportStateOptions
	exportStateExporting
	exportStateResult
)

type exportValues struct {
	Kind    string
	Charset string
	Dir     string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	err     error
	picker  MonthPicker
	values  *exportValues
	form    *huh.Form
	spinner spinner.Model
	path    string
}

func NewExportModel(svc *export.Service, c *catalog.Catalog, now func() time.Time) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		state:         exportStateMonth,
		picker:        NewMonthPicker(c, now),
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Transactions" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateMonth:
		return "←/→: month | m: type month | Enter: confirm | Esc: back"
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateMonth:
		return m.updateMonth(msg)
	case exportStateOptions:
		return m.updateOptions(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.picker.Typing() {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			m.values = &exportValues{Kind: string(metrics.KindAll), Charset: encoding.UTF8, Dir: "./exports"}
			m.form = m.buildOptionsForm()
			m.state = exportStateOptions

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ExportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = exportStateMonth
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.path = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildOptionsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Transactions").
				Options(
					huh.NewOption("All", string(metrics.KindAll)),
					huh.NewOption("Income only", string(metrics.KindIncome)),
					huh.NewOption("Expenses only", string(metrics.KindExpense)),
				).
				Value(&m.values.Kind),

			huh.NewSelect[string]().
				Key("charset").
				Title("Encoding").
				Options(
					huh.NewOption("UTF-8", encoding.UTF8),
					huh.NewOption("Windows-1252 (Excel)", encoding.Windows1252),
				).
				Value(&m.values.Charset),

			huh.NewInput().
				Key("dir").
				Title("Output directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.values.Dir).
				Validate(required("directory")),
		),
	).WithWidth(formWidth).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateMonth:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select month to export:\n\n" + m.picker.View() + "\n\n" + faintStyle.Render(m.ShortHelp()),
		)

	case exportStateOptions:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Exporting %s\n\n%s", m.picker.Month().String(), m.form.View()),
		)

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing CSV...", m.spinner.View()),
		)

	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			okStyle.Bold(true).Render("Export Complete!") + "\n\nSaved to " + m.path + "\n\n" + faintStyle.Render(m.ShortHelp()),
		)
	}

	return ""
}

type exportResultMsg struct {
	path string
	err  error
}

const exportTimeout = 30 * time.Second

func (m ExportModel) runExportCmd() tea.Cmd {
	opts := export.Options{
		Month:   m.picker.Month(),
		Kind:    metrics.KindFilter(m.values.Kind),
		Charset: m.values.Charset,
	}
	dir := m.values.Dir

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := m.exportService.ExportFile(ctx, dir, opts)

		return exportResultMsg{path: path, err: err}
	}
}
