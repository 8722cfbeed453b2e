// Package cmd implements the CLI application to analyze brokerage
// statements for tax reporting.
// A main package registers Commands and Execute()s the user-selected one.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the ftax tool.
var Commands = []subcommands.Command{
	&reportCmd{},
	&gainsCmd{},
	&washSalesCmd{},
	&restrictedCmd{},
	&cashFlowCmd{},
	&topicCmd{},
	&assistCmd{},
}

// printMarkdown renders markdown for the terminal. When rendering is
// not possible the raw markdown is still readable, so print it as is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail reports an error on stderr and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
