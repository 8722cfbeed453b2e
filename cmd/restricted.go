package cmd

import (
	"context"
	"flag"

	"github.com/etnz/flextax/renderer"
	"github.com/google/subcommands"
)

// restrictedCmd holds the flags for the 'restricted' subcommand.
type restrictedCmd struct {
	taxFlags
}

func (*restrictedCmd) Name() string     { return "restricted" }
func (*restrictedCmd) Synopsis() string { return "open positions under wash sale restriction" }
func (*restrictedCmd) Usage() string {
	return `ftax restricted [-statements <dir>] [-year <year>] [-asof <date>] [-c <currency>]

  Lists open positions acquired within the wash sale window of a loss
  sale, whose cost-basis restriction is still active at the as-of date.
`
}

func (c *restrictedCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *restrictedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.taxReport()
	if err != nil {
		return fail("Error computing tax report: %v", err)
	}
	printMarkdown(renderer.RestrictedMarkdown(report))
	return subcommands.ExitSuccess
}
