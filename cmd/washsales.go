package cmd

import (
	"context"
	"flag"

	"github.com/etnz/flextax/renderer"
	"github.com/google/subcommands"
)

// washSalesCmd holds the flags for the 'washsales' subcommand.
type washSalesCmd struct {
	taxFlags
}

func (*washSalesCmd) Name() string     { return "washsales" }
func (*washSalesCmd) Synopsis() string { return "wash sale events and disallowed losses" }
func (*washSalesCmd) Usage() string {
	return `ftax washsales [-statements <dir>] [-year <year>] [-c <currency>]

  Lists the loss sales flagged as wash sales and the total disallowed loss.
`
}

func (c *washSalesCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *washSalesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.taxReport()
	if err != nil {
		return fail("Error computing tax report: %v", err)
	}
	printMarkdown(renderer.WashSalesMarkdown(report))
	return subcommands.ExitSuccess
}
