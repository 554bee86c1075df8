package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/accounts"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "show the current price of symbols" }
func (*pricesCmd) Usage() string {
	return `acct prices [<symbol>...]

  Shows the current price of the given symbols, or of the built-in symbols.
  Use -prices-file and -prices-path to read prices from a JSON document.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prices, err := LoadPrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	symbols := f.Args()
	if len(symbols) == 0 {
		symbols = accounts.DefaultPrices().Symbols()
	}
	printMarkdown(pricesMarkdown(prices, symbols))
	return subcommands.ExitSuccess
}

// pricesMarkdown renders the price of each symbol as a markdown table.
func pricesMarkdown(prices accounts.PriceSource, symbols []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Prices\n\n")
	fmt.Fprintln(&b, "| Symbol | Price |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, symbol := range symbols {
		symbol = strings.ToUpper(symbol)
		price := "unknown"
		if p := prices.Price(symbol); p.IsPositive() {
			price = p.String()
		}
		fmt.Fprintf(&b, "| %s | %s |\n", symbol, price)
	}
	return b.String()
}
