package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/MrJamesThe3rd/carteira/internal/metrics"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type summaryCmd struct {
	*env
	month string
	kind  string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the dashboard for a month" }
func (*summaryCmd) Usage() string {
	return `carteira summary [-month YYYY-MM] [-type all|income|expense]

  Prints totals, spending by category, the last six months and, when the
  plan includes them, investments and goals.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month to summarize (defaults to the current month)")
	f.StringVar(&c.kind, "type", "all", "transaction type filter")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	ov, err := a.Overview(ctx, month, kind, c.now())
	if err != nil {
		return c.fail(err)
	}

	c.printMarkdown(a.Export.Report(ov.Dashboard))

	return subcommands.ExitSuccess
}

type listCmd struct {
	*env
	month string
	kind  string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the transactions of a month" }
func (*listCmd) Usage() string {
	return `carteira list [-month YYYY-MM] [-type all|income|expense]
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month to list (defaults to the current month)")
	f.StringVar(&c.kind, "type", "all", "transaction type filter")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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

	all, err := a.Transactions.List(ctx)
	if err != nil {
		return c.fail(err)
	}

	txs := metrics.FilterTransactions(all, month, kind)

	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", month.Label(a.Catalog))

	if len(txs) == 0 {
		sb.WriteString("No transactions.\n")
		c.printMarkdown(sb.String())

		return subcommands.ExitSuccess
	}

	sb.WriteString("| Date | Category | Description | Amount |\n|---|---|---|---:|\n")

	for _, tx := range txs {
		amount := tx.Amount
		if tx.Kind == transaction.KindExpense {
			amount = amount.Neg()
		}

		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			tx.Date.Format("2006-01-02"),
			tx.Category,
			strings.ReplaceAll(tx.Description, "|", "/"),
			money.FormatSigned(amount, a.Currency),
		)
	}

	c.printMarkdown(sb.String())

	return subcommands.ExitSuccess
}
