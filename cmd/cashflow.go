package cmd

import (
	"context"
	"flag"

	"github.com/etnz/flextax/renderer"
	"github.com/google/subcommands"
)

// cashFlowCmd holds the flags for the 'cashflow' subcommand.
type cashFlowCmd struct {
	taxFlags
}

func (*cashFlowCmd) Name() string     { return "cashflow" }
func (*cashFlowCmd) Synopsis() string { return "dividend, withholding and interest totals" }
func (*cashFlowCmd) Usage() string {
	return `ftax cashflow [-statements <dir>] [-year <year>] [-c <currency>]

  Displays dividends received, withholding tax paid, net dividends,
  and net interest for the tax year.
`
}

func (c *cashFlowCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *cashFlowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.taxReport()
	if err != nil {
		return fail("Error computing tax report: %v", err)
	}
	printMarkdown(renderer.CashFlowMarkdown(report))
	return subcommands.ExitSuccess
}
