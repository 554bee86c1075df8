package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

type playCmd struct {
	name  string
	jsonl bool
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "run a script of operations against a new account" }
func (*playCmd) Usage() string {
	return `acct play [-name <account>] [-jsonl] [<script>]

  Runs the operations of the script, one per line, against a new account and
  prints the outcome of each one, then a report of the account.
  The script is read from the standard input if no file is given.

  Operations:
    deposit <amount>
    withdraw <amount>
    buy <symbol> <quantity> [rationale]
    sell <symbol> <quantity> [rationale]
    strategy <strategy>
    balance
    holdings
    report
    tx

  Blank lines and lines starting with '#' are ignored. A rejected operation
  is reported and the script goes on.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "alice", "Name of the account.")
	f.BoolVar(&c.jsonl, "jsonl", false, "Print the transactions as JSON lines instead of the final report.")
}

func (c *playCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one script file expected.")
		return subcommands.ExitUsageError
	}

	var script io.Reader = os.Stdin
	if f.NArg() == 1 && f.Arg(0) != "-" {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		script = file
	}

	reg, err := NewRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, err := reg.Create(c.name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rejected, err := play(a, script, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if rejected > 0 {
		fmt.Printf("%d operation(s) rejected.\n", rejected)
	}

	if c.jsonl {
		if err := accounts.EncodeTransactions(os.Stdout, a.Transactions()); err != nil {
			fmt.Fprintln(os.Stderr, "Error encoding transactions:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.StatusMarkdown(a.Status()))
	return subcommands.ExitSuccess
}

// errScript reports a line that is not a valid operation.
var errScript = errors.New("invalid script")

// play runs every line of script against a and writes the outcomes to w.
//
// It returns the number of operations rejected by the account, and stops on
// the first line that is not a valid operation.
func play(a *accounts.Account, script io.Reader, w io.Writer) (rejected int, err error) {
	scanner := bufio.NewScanner(script)
	for n := 1; scanner.Scan(); n++ {
		err := playLine(a, scanner.Text(), w)
		switch {
		case err == nil:
		case errors.Is(err, errScript):
			return rejected, fmt.Errorf("line %d: %w", n, err)
		default:
			rejected++
			fmt.Fprintf(w, "rejected: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return rejected, fmt.Errorf("could not read script: %w", err)
	}
	return rejected, nil
}

// playLine runs a single operation.
func playLine(a *accounts.Account, line string, w io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	op, args := fields[0], fields[1:]

	switch op {
	case "deposit", "withdraw":
		if len(args) != 1 {
			return fmt.Errorf("%w: usage: %s <amount>", errScript, op)
		}
		amount, err := accounts.ParseAmount(args[0], a.Currency())
		if err != nil {
			return err
		}
		var tx accounts.Transaction
		if op == "deposit" {
			tx, err = a.Deposit(amount)
		} else {
			tx, err = a.Withdraw(amount)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s. New balance: %s\n", renderer.Transaction(tx), a.Balance())

	case "buy", "sell":
		if len(args) < 2 {
			return fmt.Errorf("%w: usage: %s <symbol> <quantity> [rationale]", errScript, op)
		}
		quantity, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: quantity %q is not a whole number", errScript, args[1])
		}
		symbol, rationale := strings.ToUpper(args[0]), strings.Join(args[2:], " ")
		var tx accounts.Transaction
		if op == "buy" {
			tx, err = a.BuyShares(symbol, quantity, rationale)
		} else {
			tx, err = a.SellShares(symbol, quantity, rationale)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s. New balance: %s\n", renderer.Transaction(tx), a.Balance())

	case "strategy":
		if len(args) == 0 {
			return fmt.Errorf("%w: usage: strategy <strategy>", errScript)
		}
		fmt.Fprintln(w, a.ChangeStrategy(strings.Join(args, " ")))

	case "balance":
		fmt.Fprintf(w, "Balance: %s\n", a.Balance())

	case "holdings":
		for _, h := range a.HoldingsDetails() {
			fmt.Fprintf(w, "%s: %d @ %s = %s\n", h.Symbol, h.Quantity, h.CurrentPrice, h.CurrentValue)
		}

	case "report":
		fmt.Fprintln(w, renderer.StatusMarkdown(a.Status()))

	case "tx":
		fmt.Fprintln(w, renderer.TransactionsMarkdown(a.Transactions()))

	default:
		return fmt.Errorf("%w: unknown operation %q", errScript, op)
	}
	return nil
}
