package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
)

type planCmd struct {
	*env
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "show or switch the access plan" }
func (*planCmd) Usage() string {
	return `carteira plan [basic|pro|premium]
`
}

func (*planCmd) SetFlags(*flag.FlagSet) {}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := c.App()
	if err != nil {
		return c.fail(err)
	}

	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	if f.NArg() == 1 {
		if _, err := a.Plans.Switch(ctx, f.Arg(0)); err != nil {
			return c.fail(err)
		}
	}

	current, err := a.Plans.Current(ctx)
	if err != nil {
		return c.fail(err)
	}

	for _, p := range a.Catalog.Plans {
		marker := " "
		if p.Name == current.Name {
			marker = "*"
		}

		fmt.Fprintf(c.out, "%s %-8s %s\n", marker, p.Name, strings.Join(p.Features, ", "))
	}

	return subcommands.ExitSuccess
}
