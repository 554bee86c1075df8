package accounts

import (
	"bytes"
	"testing"
	"time"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// testTime is the fixed instant stamped on every test transaction.
var testTime = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// newTestAccount creates an account valued with the default prices and a fixed clock.
func newTestAccount(t *testing.T) *Account {
	t.Helper()
	return NewAccount("alice", DefaultPrices(), WithClock(func() time.Time { return testTime }))
}

// fundedAccount creates a test account with a single deposit.
func fundedAccount(t *testing.T, amount float64) *Account {
	t.Helper()
	a := newTestAccount(t)
	if _, err := a.Deposit(USD(amount)); err != nil {
		t.Fatalf("Deposit(%v) unexpected error: %v", amount, err)
	}
	return a
}

// state captures everything a rejected operation must leave untouched.
type state struct {
	balance  Money
	holdings map[string]int64
	history  string
}

func captureState(t *testing.T, a *Account) state {
	t.Helper()
	var b bytes.Buffer
	if err := EncodeTransactions(&b, a.Transactions()); err != nil {
		t.Fatalf("EncodeTransactions() unexpected error: %v", err)
	}
	return state{balance: a.Balance(), holdings: a.Holdings(), history: b.String()}
}
