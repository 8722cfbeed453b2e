package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/etnz/flextax/agent"
	"github.com/etnz/flextax/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	taxFlags
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "interactive session with the tax report assistant" }
func (*assistCmd) Usage() string {
	return `ftax assist [-statements <dir>] [-year <year>] [question...]

  Computes the tax report and starts an interactive session with an
  assistant that explains its figures.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	report, err := c.taxReport()
	if err != nil {
		return fail("Error computing tax report: %v", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("Error initializing Gemini's client: %v", err)
	}

	md := renderer.TaxReportMarkdown(report)
	if err := agent.Run(ctx, client, os.Stdout, os.Stdin, md, prompts...); err != nil {
		return fail("Assistant failed: %v", err)
	}

	return subcommands.ExitSuccess
}
