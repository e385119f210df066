package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/encoding"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

// Lister is the read side of the transaction store.
type Lister interface {
	List(ctx context.Context) ([]*transaction.Transaction, error)
}

// Options selects what is exported and how it is encoded.
type Options struct {
	Month metrics.Month
	Kind  metrics.KindFilter
	// Charset of the written file; empty means UTF-8. Spreadsheet tools on
	// Windows expect windows-1252.
	Charset string
	// Comma separates fields; zero means ';', which spreadsheets in
	// comma-decimal locales open directly.
	Comma rune
}

// Service writes transactions out as CSV files and renders text reports.
type Service struct {
	transactions Lister
	catalog      *catalog.Catalog
	currency     string
}

func NewService(txs Lister, c *catalog.Catalog, currency string) *Service {
	return &Service{transactions: txs, catalog: c, currency: currency}
}

var header = []string{"data", "tipo", "categoria", "descrição", "valor"}

// WriteCSV writes the transactions of opts.Month matching opts.Kind to w and
// returns how many rows were written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, opts Options) (int, error) {
	all, err := s.transactions.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	txs := metrics.FilterTransactions(all, opts.Month, opts.Kind)

	out, err := encoding.FromUTF8(w, opts.Charset)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(out)
	cw.Comma = ';'

	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		amount := tx.Amount
		if tx.Kind == transaction.KindExpense {
			amount = amount.Neg()
		}

		record := []string{
			tx.Date.Format(time.DateOnly),
			string(tx.Kind),
			tx.Category,
			tx.Description,
			amount.StringFixed(2),
		}

		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("encoding output: %w", err)
	}

	return len(txs), nil
}

// ExportFile writes the CSV for opts into dir and returns the file path.
func (s *Service) ExportFile(ctx context.Context, dir string, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(opts.Month, opts.Kind))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := s.WriteCSV(ctx, f, opts); err != nil {
		return "", err
	}

	return path, f.Close()
}

// FileName is the default name of a month's export, e.g.
// "transacoes_2024-02.csv" or "transacoes_2024-02_expense.csv".
func FileName(month metrics.Month, kind metrics.KindFilter) string {
	name := "transacoes_" + month.String()
	if kind != "" && kind != metrics.KindAll {
		name += "_" + string(kind)
	}

	return name + ".csv"
}

// Report renders a dashboard as markdown.
func (s *Service) Report(d metrics.Dashboard) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Resumo de %s\n\n", d.Month.Label(s.catalog))

	sb.WriteString("| Receitas | Despesas | Saldo |\n|---:|---:|---:|\n")
	fmt.Fprintf(&sb, "| %s | %s | %s |\n\n",
		money.Format(d.Totals.Income, s.currency),
		money.Format(d.Totals.Expenses, s.currency),
		money.Format(d.Totals.Balance, s.currency),
	)

	if len(d.Categories) > 0 {
		sb.WriteString("## Por categoria\n\n| Categoria | Tipo | Valor | % |\n|---|---|---:|---:|\n")

		for _, c := range d.Categories {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s%% |\n",
				c.Category, kindLabel(c.Kind), money.Format(c.Amount, s.currency), c.Share.StringFixed(1))
		}

		sb.WriteString("\n")
	}

	if len(d.Series) > 0 {
		sb.WriteString("## Últimos meses\n\n| Mês | Receitas | Despesas |\n|---|---:|---:|\n")

		for _, p := range d.Series {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n",
				p.Label, money.Format(p.Income, s.currency), money.Format(p.Expenses, s.currency))
		}

		sb.WriteString("\n")
	}

	if !d.Investments.Invested.IsZero() || !d.Investments.Current.IsZero() {
		sb.WriteString("## Investimentos\n\n")
		fmt.Fprintf(&sb, "Investido %s, atual %s, rendimento %s (%s)\n\n",
			money.Format(d.Investments.Invested, s.currency),
			money.Format(d.Investments.Current, s.currency),
			money.FormatSigned(d.Investments.Gain, s.currency),
			money.FormatPercent(d.Investments.GainPercent),
		)
	}

	if len(d.Goals) > 0 {
		sb.WriteString("## Metas\n\n")

		for _, g := range d.Goals {
			fmt.Fprintf(&sb, "* **%s**: %s de %s (%s%%), %s\n",
				g.Goal.Name,
				money.Format(g.Goal.CurrentAmount, s.currency),
				money.Format(g.Goal.TargetAmount, s.currency),
				g.Progress.StringFixed(0),
				statusLabel(g),
			)
		}
	}

	return sb.String()
}

func kindLabel(k transaction.Kind) string {
	if k == transaction.KindIncome {
		return "Receita"
	}

	return "Despesa"
}

func statusLabel(g metrics.GoalSummary) string {
	switch g.Status {
	case goal.StatusCompleted:
		return "concluída"
	case goal.StatusOverdue:
		return fmt.Sprintf("atrasada há %d dias", -g.DaysRemaining)
	}

	return fmt.Sprintf("%d dias restantes", g.DaysRemaining)
}
