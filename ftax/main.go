package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/flextax/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion hook.
	completion().Complete("ftax")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	taxFlags := map[string]complete.Predictor{
		"statements": predict.Dirs("*"),
		"year":       predict.Nothing,
		"asof":       predict.Nothing,
		"c":          predict.Set{"USD", "EUR", "GBP"},
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"report":     {Flags: taxFlags},
			"gains":      {Flags: taxFlags},
			"washsales":  {Flags: taxFlags},
			"restricted": {Flags: taxFlags},
			"cashflow":   {Flags: taxFlags},
			"assist":     {Flags: taxFlags},
			"topic":      {},
		},
	}
}
