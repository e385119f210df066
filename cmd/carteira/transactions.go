package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type addCmd struct {
	*env
	kind        string
	amount      string
	category    string
	description string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or expense" }
func (*addCmd) Usage() string {
	return `carteira add -type income|expense -amount 12,50 -category <name> [-d <description>] [-date YYYY-MM-DD]
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "expense", "income or expense")
	f.StringVar(&c.amount, "amount", "", "amount, e.g. 1.234,56 or 1234.56")
	f.StringVar(&c.category, "category", "", "category from the catalog")
	f.StringVar(&c.description, "d", "", "description")
	f.StringVar(&c.date, "date", "", "date (defaults to today)")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	amount, err := money.ParseAmount(c.amount)
	if err != nil {
		return c.fail(err)
	}

	date := c.now()
	if c.date != "" {
		if date, err = time.Parse(time.DateOnly, c.date); err != nil {
			return c.fail(fmt.Errorf("invalid date %q, want YYYY-MM-DD", c.date))
		}
	}

	a, err := c.App()
	if err != nil {
		return c.fail(err)
	}

	tx, err := a.Transactions.Add(ctx, transaction.Params{
		Kind:        transaction.Kind(c.kind),
		Amount:      amount,
		Category:    c.category,
		Description: c.description,
		Date:        date,
	})
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.out, "added %s %s %s (%s)\n", tx.Kind, money.Format(tx.Amount, a.Currency), tx.Category, tx.ID)

	return subcommands.ExitSuccess
}

type importCmd struct {
	*env
	bank   string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a bank CSV export" }
func (*importCmd) Usage() string {
	return `carteira import -bank cgd|nubank [-n] <file.csv>

  Rows already recorded (same date, type, amount and description) are
  skipped. Categories are filled in from learned rules.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "bank", "", "bank the export comes from")
	f.BoolVar(&c.dryRun, "n", false, "parse and print without saving")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 || c.bank == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return c.fail(err)
	}
	defer file.Close()

	a, err := c.App()
	if err != nil {
		return c.fail(err)
	}

	bank := importer.Bank(c.bank)

	if c.dryRun {
		rows, categorized, err := a.Importer.Parse(ctx, bank, file)
		if err != nil {
			return c.fail(err)
		}

		for _, r := range rows {
			fmt.Fprintf(c.out, "%s\t%s\t%s\t%s\t%s\n",
				r.Date.Format(time.DateOnly), r.Kind, r.Amount.StringFixed(2), r.Category, r.Description)
		}

		fmt.Fprintf(c.out, "%d rows, %d categorized by rules\n", len(rows), categorized)

		return subcommands.ExitSuccess
	}

	res, err := a.Importer.Import(ctx, bank, file)
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.out, "imported %d, skipped %d, categorized %d\n",
		len(res.Imported), len(res.Skipped), res.Categorized)

	return subcommands.ExitSuccess
}

type exportCmd struct {
	*env
	month   string
	kind    string
	charset string
	output  string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a month's transactions as CSV" }
func (*exportCmd) Usage() string {
	return `carteira export [-month YYYY-MM] [-type all|income|expense] [-charset windows-1252] [-o dir|-]
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month to export (defaults to the current month)")
	f.StringVar(&c.kind, "type", "all", "transaction type filter")
	f.StringVar(&c.charset, "charset", "", "output encoding (defaults to UTF-8)")
	f.StringVar(&c.output, "o", "-", `output directory, or "-" for stdout`)
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	month, err := c.env.month(c.month)
	if err != nil {
		return c.fail(err)
	}

	kind, err := metrics.ParseKindFilter(c.kind)
	if err != nil {
		return c.fail(err)
	}

	a, err := c.App()
	if err != nil {
		return c.fail(err)
	}

	opts := export.Options{Month: month, Kind: kind, Charset: c.charset}

	if c.output == "-" {
		if _, err := a.Export.WriteCSV(ctx, c.out, opts); err != nil {
			return c.fail(err)
		}

		return subcommands.ExitSuccess
	}

	path, err := a.Export.ExportFile(ctx, c.output, opts)
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintln(c.out, path)

	return subcommands.ExitSuccess
}

type learnCmd struct {
	*env
	kind        string
	category    string
	description string
}

func (*learnCmd) Name() string     { return "learn" }
func (*learnCmd) Synopsis() string { return "teach a categorization rule" }
func (*learnCmd) Usage() string {
	return `carteira learn [-type expense] -category <name> [-d <description>] <pattern>

  Imported rows whose description contains <pattern> (ignoring case) get
  <name> as category and, when given, <description> as description.
`
}

func (c *learnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "expense", "income or expense")
	f.StringVar(&c.category, "category", "", "category to assign")
	f.StringVar(&c.description, "d", "", "description to assign")
}

func (c *learnCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := c.App()
	if err != nil {
		return c.fail(err)
	}

	if err := a.Rules.Learn(ctx, transaction.Kind(c.kind), f.Arg(0), c.category, c.description); err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.out, "rule %q -> %s\n", f.Arg(0), c.category)

	return subcommands.ExitSuccess
}
