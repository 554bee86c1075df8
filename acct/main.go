// Command acct simulates brokerage accounts: scripted play, an HTTP server and
// an AI trading assistant.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/accounts/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"prices-file": predict.Files("*.json"),
		"prices-path": predict.Nothing,
		"currency":    predict.Set{"USD", "EUR", "GBP", "JPY"},
	},
	Sub: map[string]*complete.Command{
		"play": {
			Flags: map[string]complete.Predictor{
				"name":  predict.Nothing,
				"jsonl": predict.Nothing,
			},
			Args: predict.Files("*"),
		},
		"serve": {
			Flags: map[string]complete.Predictor{"addr": predict.Nothing},
		},
		"assist": {
			Flags: map[string]complete.Predictor{
				"name":    predict.Nothing,
				"deposit": predict.Nothing,
			},
		},
		"prices": {Args: predict.Set{"AAPL", "TSLA", "GOOGL"}},
		"topic":  {Args: predict.Set{"accounts", "tools", "*"}},
	},
}

func main() {
	// Answers the shell completion requests, and exits, when invoked by the shell.
	completion.Complete("acct")

	// The .env file is optional, the environment is used as is without it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
