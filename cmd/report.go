package cmd

import (
	"context"
	"flag"

	"github.com/etnz/flextax"
	"github.com/etnz/flextax/date"
	"github.com/etnz/flextax/renderer"
	"github.com/google/subcommands"
)

// taxFlags holds the flags shared by every report subcommand.
type taxFlags struct {
	statements string
	year       int
	asOf       string
	currency   string
}

func (c *taxFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.statements, "statements", "statements", "Directory containing the statement files (*.json)")
	f.IntVar(&c.year, "year", date.Today().Year(), "Tax year to analyze")
	f.StringVar(&c.asOf, "asof", "", "As-of date for wash sale restrictions. Defaults to the latest statement's period end.")
	f.StringVar(&c.currency, "c", "USD", "Reporting currency for display")
}

// taxReport loads the statements and runs the tax year analysis.
func (c *taxFlags) taxReport() (*flextax.TaxReport, error) {
	statements, err := flextax.DecodeStatementFiles(c.statements)
	if err != nil {
		return nil, err
	}
	system := flextax.NewTaxSystem(statements...)
	system.Currency = c.currency
	if c.asOf != "" {
		asOf, err := date.Parse(c.asOf)
		if err != nil {
			return nil, err
		}
		system.AsOf = asOf
	}
	return system.TaxYear(c.year), nil
}

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	taxFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full tax analysis report for a year" }
func (*reportCmd) Usage() string {
	return `ftax report [-statements <dir>] [-year <year>] [-asof <date>] [-c <currency>]

  Computes and displays the complete tax analysis: capital gains,
  wash sales, restricted positions, and dividends & interest.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.taxReport()
	if err != nil {
		return fail("Error computing tax report: %v", err)
	}
	printMarkdown(renderer.TaxReportMarkdown(report))
	return subcommands.ExitSuccess
}
