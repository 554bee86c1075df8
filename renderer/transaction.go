package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/accounts"
)

// Transaction renders a transaction to a one line sentence.
func Transaction(tx accounts.Transaction) string {
	switch v := tx.(type) {
	case accounts.Buy:
		return fmt.Sprintf("Bought %d %s @ %s each for %s", v.Quantity, v.Symbol, v.Price, v.Cost())
	case accounts.Sell:
		return fmt.Sprintf("Sold %d %s @ %s each for %s", v.Quantity, v.Symbol, v.Price, v.Amount)
	case accounts.Deposit:
		return fmt.Sprintf("Deposited %s", v.Amount)
	case accounts.Withdrawal:
		return fmt.Sprintf("Withdrew %s", v.Amount.Neg())
	default:
		return string(tx.What())
	}
}

// TransactionsMarkdown renders the history as a markdown table, oldest first.
func TransactionsMarkdown(txs []accounts.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Time | Type | Symbol | Quantity | Price | Amount | Memo |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, tx := range txs {
		var symbol, quantity, price, memo string
		switch v := tx.(type) {
		case accounts.Buy:
			symbol, quantity, price, memo = v.Symbol, fmt.Sprint(v.Quantity), v.Price.String(), v.Memo
		case accounts.Sell:
			symbol, quantity, price, memo = v.Symbol, fmt.Sprint(v.Quantity), v.Price.String(), v.Memo
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.When().Format(time.DateTime),
			tx.What(),
			symbol,
			quantity,
			price,
			tx.CashFlow().SignedString(),
			memo,
		)
	}
	return b.String()
}
