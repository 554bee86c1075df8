package accounts

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// TransactionType identifies the kind of a transaction.
type TransactionType string

// Transaction types recorded in an account history.
const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeBuy        TransactionType = "BUY"
	TypeSell       TransactionType = "SELL"
)

// Transaction is one immutable entry of an account history.
//
// The set of implementations is closed: Deposit, Withdrawal, Buy and Sell.
type Transaction interface {
	What() TransactionType // What returns the kind of the transaction.
	When() time.Time       // When returns the time the transaction was recorded.
	// CashFlow returns the signed effect on the cash balance: positive for
	// deposits and sales, negative for withdrawals and purchases.
	CashFlow() Money
	isTransaction()
}

type baseTx struct {
	Time time.Time
}

func (t baseTx) When() time.Time { return t.Time }
func (baseTx) isTransaction()    {}

// Deposit records cash added to the account.
type Deposit struct {
	baseTx
	Amount Money // Amount is positive.
}

func (Deposit) What() TransactionType { return TypeDeposit }
func (t Deposit) CashFlow() Money     { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.What())
	w.Append("time", t.Time)
	w.Append("amount", t.CashFlow())
	return w.MarshalJSON()
}

// Withdrawal records cash taken out of the account.
type Withdrawal struct {
	baseTx
	Amount Money // Amount is negative.
}

func (Withdrawal) What() TransactionType { return TypeWithdrawal }
func (t Withdrawal) CashFlow() Money     { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for Withdrawal.
func (t Withdrawal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.What())
	w.Append("time", t.Time)
	w.Append("amount", t.CashFlow())
	return w.MarshalJSON()
}

// trade holds the fields shared by share purchases and sales.
type trade struct {
	baseTx
	Symbol   string
	Quantity int64
	Price    Money  // Price per share at the time of the trade.
	Amount   Money  // Amount is the signed cash effect of the trade.
	Memo     string // Memo is the rationale given for the trade.
}

func (t trade) CashFlow() Money { return t.Amount }

func (t trade) marshal(what TransactionType) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", what)
	w.Append("time", t.Time)
	w.Optional("memo", t.Memo)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.exact())
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

// Buy records a purchase of shares. Amount is minus the cost.
type Buy struct{ trade }

func (Buy) What() TransactionType { return TypeBuy }

// Cost returns the total paid for the shares.
func (t Buy) Cost() Money { return t.Amount.Neg() }

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) { return t.marshal(t.What()) }

// Sell records a sale of shares. Amount is the proceeds.
type Sell struct{ trade }

func (Sell) What() TransactionType { return TypeSell }

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) { return t.marshal(t.What()) }

// EncodeTransactions writes transactions to w in JSONL format, one per line,
// in history order.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("could not encode %s transaction: %w", tx.What(), err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}
