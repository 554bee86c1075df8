package cmd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/accounts"
)

func newAccount() *accounts.Account {
	return accounts.NewAccount("alice", accounts.DefaultPrices(),
		accounts.WithClock(func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }))
}

func TestPlay(t *testing.T) {
	script := `
# fund then trade
deposit 1000
buy aapl 5 strong earnings
sell AAPL 2
withdraw 5000
buy XYZ 1
strategy value investing
balance
holdings
`
	a := newAccount()
	var out strings.Builder
	rejected, err := play(a, strings.NewReader(script), &out)
	if err != nil {
		t.Fatalf("play() unexpected error: %v", err)
	}
	if rejected != 2 {
		t.Errorf("play() rejected = %d, want 2", rejected)
	}

	for _, want := range []string{
		"Deposited $1,000.00. New balance: $1,000.00\n",
		"Bought 5 AAPL @ $170.00 each for $850.00. New balance: $150.00\n",
		"Sold 2 AAPL @ $170.00 each for $340.00. New balance: $490.00\n",
		"rejected: insufficient funds",
		"rejected: unknown symbol",
		"Changed strategy for alice\n",
		"Balance: $490.00\n",
		"AAPL: 3 @ $170.00 = $510.00\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("play() output does not contain %q, got:\n%s", want, out.String())
		}
	}

	if got := a.Strategy(); got != "value investing" {
		t.Errorf("Strategy() = %q, want value investing", got)
	}
	txs := a.Transactions()
	if len(txs) != 3 {
		t.Fatalf("len(Transactions()) = %d, want 3", len(txs))
	}
	if buy, ok := txs[1].(accounts.Buy); !ok || buy.Memo != "strong earnings" {
		t.Errorf("Transactions()[1] = %#v, want a buy with its rationale", txs[1])
	}
}

func TestPlay_Reports(t *testing.T) {
	a := newAccount()
	var out strings.Builder
	if _, err := play(a, strings.NewReader("deposit 100\nreport\ntx\n"), &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Account Status for alice", "No holdings.", "## Transactions", "| DEPOSIT |"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("play() output does not contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestPlay_ScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown operation", "deposit 10\ntransfer 10 bob", "line 2: invalid script: unknown operation \"transfer\""},
		{"missing amount", "deposit", "line 1: invalid script: usage: deposit <amount>"},
		{"bad quantity", "buy AAPL two", "line 1: invalid script: quantity \"two\" is not a whole number"},
		{"missing quantity", "sell AAPL", "line 1: invalid script: usage: sell <symbol> <quantity> [rationale]"},
		{"missing strategy", "strategy", "line 1: invalid script: usage: strategy <strategy>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out strings.Builder
			_, err := play(newAccount(), strings.NewReader(tc.script), &out)
			if !errors.Is(err, errScript) {
				t.Fatalf("play() error = %v, want %v", err, errScript)
			}
			if err.Error() != tc.want {
				t.Errorf("play() error = %q, want %q", err, tc.want)
			}
		})
	}
}

func TestPlay_InvalidAmountIsRejected(t *testing.T) {
	a := newAccount()
	var out strings.Builder
	rejected, err := play(a, strings.NewReader("deposit ten\ndeposit -5\nbuy AAPL 0"), &out)
	if err != nil {
		t.Fatalf("play() unexpected error: %v", err)
	}
	if rejected != 3 {
		t.Errorf("play() rejected = %d, want 3, output:\n%s", rejected, out.String())
	}
	if !a.Balance().IsZero() || len(a.Transactions()) != 0 {
		t.Errorf("rejected operations changed the account: %v, %d transactions", a.Balance(), len(a.Transactions()))
	}
}

func TestPricesMarkdown(t *testing.T) {
	got := pricesMarkdown(accounts.DefaultPrices(), []string{"aapl", "XYZ"})
	for _, want := range []string{"| AAPL | $170.00 |", "| XYZ | unknown |"} {
		if !strings.Contains(got, want) {
			t.Errorf("pricesMarkdown() does not contain %q, got:\n%s", want, got)
		}
	}
}
