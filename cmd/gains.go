package cmd

import (
	"context"
	"flag"

	"github.com/etnz/flextax/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	taxFlags
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "short-term and long-term capital gains summary" }
func (*gainsCmd) Usage() string {
	return `ftax gains [-statements <dir>] [-year <year>] [-c <currency>]

  Displays realized capital gains and losses bucketed by holding period.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.taxReport()
	if err != nil {
		return fail("Error computing tax report: %v", err)
	}
	printMarkdown(renderer.CapitalGainsMarkdown(report))
	return subcommands.ExitSuccess
}
