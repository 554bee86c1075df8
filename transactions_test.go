package accounts

import (
	"bytes"
	"testing"
)

func TestEncodeTransactions(t *testing.T) {
	a := fundedAccount(t, 1000)
	if _, err := a.BuyShares("AAPL", 5, "strong earnings"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.SellShares("AAPL", 2, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Withdraw(USD(12.345)); err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	if err := EncodeTransactions(&b, a.Transactions()); err != nil {
		t.Fatalf("EncodeTransactions() unexpected error: %v", err)
	}

	want := `{"type":"DEPOSIT","time":"2025-03-14T09:30:00Z","amount":1000}
{"type":"BUY","time":"2025-03-14T09:30:00Z","memo":"strong earnings","symbol":"AAPL","quantity":5,"price":170,"amount":-850}
{"type":"SELL","time":"2025-03-14T09:30:00Z","symbol":"AAPL","quantity":2,"price":170,"amount":340}
{"type":"WITHDRAWAL","time":"2025-03-14T09:30:00Z","amount":-12.35}
`
	if got := b.String(); got != want {
		t.Errorf("EncodeTransactions() =\n%s\nwant\n%s", got, want)
	}
}

func TestTransaction_CashFlowSigns(t *testing.T) {
	a := fundedAccount(t, 1000)
	buy, err := a.BuyShares("TSLA", 1, "")
	if err != nil {
		t.Fatal(err)
	}
	sell, err := a.SellShares("TSLA", 1, "")
	if err != nil {
		t.Fatal(err)
	}
	wd, err := a.Withdraw(USD(10))
	if err != nil {
		t.Fatal(err)
	}

	if !buy.CashFlow().Equal(USD(-180)) || !buy.Cost().Equal(USD(180)) {
		t.Errorf("buy cash flow, cost = %v, %v, want -180, 180", buy.CashFlow(), buy.Cost())
	}
	if !sell.CashFlow().Equal(USD(180)) {
		t.Errorf("sell cash flow = %v, want 180", sell.CashFlow())
	}
	if !wd.CashFlow().Equal(USD(-10)) {
		t.Errorf("withdrawal cash flow = %v, want -10", wd.CashFlow())
	}
	if buy.Symbol != "TSLA" || buy.Quantity != 1 || !buy.Price.Equal(USD(180)) {
		t.Errorf("buy = %s x%d @ %v", buy.Symbol, buy.Quantity, buy.Price)
	}
}
