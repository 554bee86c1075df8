package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/agent"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd starts a trading assistant on one account.
type assistCmd struct {
	name    string
	deposit string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the trading assistant" }
func (*assistCmd) Usage() string {
	return `acct assist [-name <account>] [-deposit <amount>] [<prompt>...]

  Start an interactive session with an AI trader managing the account.
  The account lives for the duration of the session.

  GEMINI_API_KEY (or GOOGLE_API_KEY) must be set, in the environment or in a .env file.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "trader", "Name of the account to trade.")
	f.StringVar(&c.deposit, "deposit", "10000", "Initial deposit on the account, nothing if empty.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := NewRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	reg.Open(c.name)
	if c.deposit != "" {
		err := reg.Do(c.name, func(a *accounts.Account) error {
			return playLine(a, "deposit "+c.deposit, io.Discard)
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error funding the account:", err)
			return subcommands.ExitFailure
		}
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	assistant := agent.New(os.Stdout, os.Stdin, agent.NewTrader(reg, c.name), agent.NewAnalyst())
	assistant.Print = func(_ io.Writer, md string) { printMarkdown(md) }
	assistant.Summary = func() string { return sessionSummary(reg, c.name) }

	if err := assistant.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// sessionSummary reports the status of the traded account.
func sessionSummary(reg *accounts.Registry, name string) string {
	md, err := accounts.View(reg, name, func(a *accounts.Account) string {
		return renderer.StatusMarkdown(a.Status())
	})
	if err != nil {
		return fmt.Sprintf("No summary for %s: %v", name, err)
	}
	return md
}
