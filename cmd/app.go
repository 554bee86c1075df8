// Package cmd implements the CLI application to simulate brokerage accounts.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/accounts"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
var Commands = []subcommands.Command{
	&playCmd{},
	&serveCmd{},
	&assistCmd{},
	&pricesCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var pricesFile = flag.String("prices-file", "", "Path to a JSON document with the current prices. Defaults to a built-in table of AAPL, TSLA and GOOGL")
var pricesPath = flag.String("prices-path", accounts.DefaultPricePath, "JSONPath template locating the price of a symbol in -prices-file, %s is replaced by the symbol")
var currency = flag.String("currency", accounts.DefaultCurrency, "Currency of the accounts cash and of the prices")

// LoadPrices returns the price source configured by the flags.
func LoadPrices() (accounts.PriceSource, error) {
	if *pricesFile == "" {
		return accounts.DefaultPrices(), nil
	}
	f, err := os.Open(*pricesFile)
	if err != nil {
		return nil, fmt.Errorf("could not open prices file %q: %w", *pricesFile, err)
	}
	defer f.Close()

	prices, err := accounts.NewJSONPrices(f, *pricesPath, *currency)
	if err != nil {
		return nil, fmt.Errorf("could not load prices file %q: %w", *pricesFile, err)
	}
	return prices, nil
}

// accountOptions returns the options shared by every account the CLI opens.
func accountOptions() []accounts.Option {
	return []accounts.Option{
		accounts.WithCurrency(*currency),
		accounts.WithLogger(log.Default()),
	}
}

// NewRegistry returns an empty registry valued with the configured prices.
func NewRegistry() (*accounts.Registry, error) {
	prices, err := LoadPrices()
	if err != nil {
		return nil, err
	}
	return accounts.NewRegistry(prices, accountOptions()...), nil
}

// printMarkdown renders md for the terminal, or prints it as is if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
