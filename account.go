package accounts

import (
	"fmt"
	"io"
	"log"
	"maps"
	"math"
	"time"
)

// Account is the ledger of a single simulated brokerage account.
//
// Every mutating operation validates all its preconditions before applying
// any effect: on failure the balance, the holdings and the history are left
// untouched and no transaction is recorded.
//
// An Account is not safe for concurrent use, see Registry.Do.
type Account struct {
	id             string
	balance        Money
	initialDeposit Money // sum of all successful deposits
	holdings       map[string]int64
	transactions   []Transaction
	strategy       string

	prices   PriceSource
	currency string
	now      func() time.Time
	logger   *log.Logger
}

// Option configures an Account.
type Option func(*Account)

// WithCurrency sets the currency of the account cash. It defaults to DefaultCurrency.
func WithCurrency(currency string) Option {
	return func(a *Account) { a.currency = currency }
}

// WithClock sets the function used to timestamp transactions.
func WithClock(now func() time.Time) Option {
	return func(a *Account) { a.now = now }
}

// WithLogger sets the logger receiving one line per operation outcome.
func WithLogger(l *log.Logger) Option {
	return func(a *Account) { a.logger = l }
}

// WithStrategy sets the initial investment strategy.
func WithStrategy(strategy string) Option {
	return func(a *Account) { a.strategy = strategy }
}

// NewAccount creates an empty account valued with prices.
func NewAccount(id string, prices PriceSource, opts ...Option) *Account {
	a := &Account{
		id:       id,
		holdings: make(map[string]int64),
		prices:   prices,
		currency: DefaultCurrency,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.balance = M(0, a.currency)
	a.initialDeposit = M(0, a.currency)
	return a
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// Currency returns the currency of the account cash.
func (a *Account) Currency() string { return a.currency }

// Balance returns the cash balance.
func (a *Account) Balance() Money { return a.balance }

// InitialDeposit returns the total capital contributed: the sum of every deposit.
func (a *Account) InitialDeposit() Money { return a.initialDeposit }

// Strategy returns the current investment strategy.
func (a *Account) Strategy() string { return a.strategy }

// Holdings returns a copy of the quantities held per symbol.
func (a *Account) Holdings() map[string]int64 { return maps.Clone(a.holdings) }

// Transactions returns a copy of the history, oldest first.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Deposit adds amount to the cash balance. amount must be positive.
func (a *Account) Deposit(amount Money) (Deposit, error) {
	if !amount.IsPositive() {
		a.logger.Printf("%s: deposit rejected: amount must be positive, got %s", a.id, amount)
		return Deposit{}, fmt.Errorf("%w: deposit must be positive, got %s", ErrInvalidAmount, amount)
	}
	amount, err := a.own(amount)
	if err != nil {
		a.logger.Printf("%s: deposit rejected: %v", a.id, err)
		return Deposit{}, err
	}

	tx := Deposit{baseTx: baseTx{Time: a.now()}, Amount: amount}
	a.balance = a.balance.Add(amount)
	a.initialDeposit = a.initialDeposit.Add(amount)
	a.transactions = append(a.transactions, tx)
	a.logger.Printf("%s: deposited %s. New balance: %s", a.id, amount, a.balance)
	return tx, nil
}

// Withdraw takes amount out of the cash balance. amount must be positive and
// not exceed the balance.
func (a *Account) Withdraw(amount Money) (Withdrawal, error) {
	if !amount.IsPositive() {
		a.logger.Printf("%s: withdrawal rejected: amount must be positive, got %s", a.id, amount)
		return Withdrawal{}, fmt.Errorf("%w: withdrawal must be positive, got %s", ErrInvalidAmount, amount)
	}
	amount, err := a.own(amount)
	if err != nil {
		a.logger.Printf("%s: withdrawal rejected: %v", a.id, err)
		return Withdrawal{}, err
	}
	if amount.GreaterThan(a.balance) {
		a.logger.Printf("%s: withdrawal rejected: available %s, requested %s", a.id, a.balance, amount)
		return Withdrawal{}, fmt.Errorf("%w: cannot withdraw %s, balance is %s", ErrInsufficientFunds, amount, a.balance)
	}

	tx := Withdrawal{baseTx: baseTx{Time: a.now()}, Amount: amount.Neg()}
	a.balance = a.balance.Sub(amount)
	a.transactions = append(a.transactions, tx)
	a.logger.Printf("%s: withdrew %s. New balance: %s", a.id, amount, a.balance)
	return tx, nil
}

// own returns amount in the account currency. An amount without currency is
// taken as is, one in another currency is rejected.
func (a *Account) own(amount Money) (Money, error) {
	if amount.cur != "" && amount.cur != a.currency {
		return Money{}, fmt.Errorf("%w: %s amount on a %s account", ErrInvalidAmount, amount.cur, a.currency)
	}
	return M(amount.value, a.currency), nil
}

// price returns the current price of symbol, and false if the source does not know it.
func (a *Account) price(symbol string) (Money, bool) {
	p := a.prices.Price(symbol)
	if !p.IsPositive() {
		return M(0, a.currency), false
	}
	return M(p.value, a.currency), true
}

// BuyShares buys quantity shares of symbol at the current price.
func (a *Account) BuyShares(symbol string, quantity int64, rationale string) (Buy, error) {
	if quantity <= 0 {
		a.logger.Printf("%s: buy rejected: quantity must be positive, got %d", a.id, quantity)
		return Buy{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidAmount, quantity)
	}
	if held := a.holdings[symbol]; quantity > math.MaxInt64-held {
		a.logger.Printf("%s: buy rejected: holding %d %s cannot grow by %d", a.id, held, symbol, quantity)
		return Buy{}, fmt.Errorf("%w: holding %d %s cannot grow by %d shares", ErrInvalidAmount, held, symbol, quantity)
	}
	price, ok := a.price(symbol)
	if !ok {
		a.logger.Printf("%s: buy rejected: invalid stock symbol %q", a.id, symbol)
		return Buy{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	cost := price.Mul(quantity)
	if cost.GreaterThan(a.balance) {
		a.logger.Printf("%s: buy rejected: cost of %d %s is %s, available balance %s", a.id, quantity, symbol, cost, a.balance)
		return Buy{}, fmt.Errorf("%w: buying %d %s costs %s, balance is %s", ErrInsufficientFunds, quantity, symbol, cost, a.balance)
	}

	tx := Buy{trade{
		baseTx:   baseTx{Time: a.now()},
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Amount:   cost.Neg(),
		Memo:     rationale,
	}}
	a.balance = a.balance.Sub(cost)
	a.holdings[symbol] += quantity
	a.transactions = append(a.transactions, tx)
	a.logger.Printf("%s: bought %d %s @ %s each. Total cost: %s. New balance: %s", a.id, quantity, symbol, price, cost, a.balance)
	return tx, nil
}

// SellShares sells quantity shares of symbol at the current price.
func (a *Account) SellShares(symbol string, quantity int64, rationale string) (Sell, error) {
	if quantity <= 0 {
		a.logger.Printf("%s: sell rejected: quantity must be positive, got %d", a.id, quantity)
		return Sell{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidAmount, quantity)
	}
	held := a.holdings[symbol]
	if held < quantity {
		a.logger.Printf("%s: sell rejected: insufficient shares of %s, holding %d", a.id, symbol, held)
		return Sell{}, fmt.Errorf("%w: cannot sell %d %s, holding %d", ErrInsufficientHoldings, quantity, symbol, held)
	}
	price, ok := a.price(symbol)
	if !ok {
		a.logger.Printf("%s: sell rejected: invalid stock symbol %q", a.id, symbol)
		return Sell{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	proceeds := price.Mul(quantity)

	tx := Sell{trade{
		baseTx:   baseTx{Time: a.now()},
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Amount:   proceeds,
		Memo:     rationale,
	}}
	a.balance = a.balance.Add(proceeds)
	if held == quantity {
		delete(a.holdings, symbol)
	} else {
		a.holdings[symbol] = held - quantity
	}
	a.transactions = append(a.transactions, tx)
	a.logger.Printf("%s: sold %d %s @ %s each. Total revenue: %s. New balance: %s", a.id, quantity, symbol, price, proceeds, a.balance)
	return tx, nil
}

// ChangeStrategy replaces the investment strategy and returns a confirmation.
func (a *Account) ChangeStrategy(strategy string) string {
	a.strategy = strategy
	a.logger.Printf("%s: strategy changed", a.id)
	return fmt.Sprintf("Changed strategy for %s", a.id)
}

// PortfolioValue returns the market value of all held shares at current prices.
func (a *Account) PortfolioValue() Money {
	total := M(0, a.currency)
	for symbol, quantity := range a.holdings {
		price, _ := a.price(symbol)
		total = total.Add(price.Mul(quantity))
	}
	return total
}

// TotalValue returns the cash balance plus the portfolio value.
func (a *Account) TotalValue() Money {
	return a.balance.Add(a.PortfolioValue())
}

// ProfitLoss returns the total value minus the capital contributed, or zero
// as long as nothing has been deposited.
func (a *Account) ProfitLoss() Money {
	if a.initialDeposit.IsZero() {
		return M(0, a.currency)
	}
	return a.TotalValue().Sub(a.initialDeposit)
}
