package accounts

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// AverageCostBasis returns the average price paid per share of symbol across
// every purchase ever recorded: total spent divided by total shares bought.
//
// Sales do not reduce the cost pool, so the per-holding profit derived from it
// is an approximation. It returns false if symbol was never bought.
func (a *Account) AverageCostBasis(symbol string) (Money, bool) {
	spent := M(0, a.currency)
	bought := decimal.Zero // a lifetime total may exceed any single holding
	for _, tx := range a.transactions {
		if b, ok := tx.(Buy); ok && b.Symbol == symbol {
			spent = spent.Add(b.Cost())
			bought = bought.Add(decimal.NewFromInt(b.Quantity))
		}
	}
	if bought.IsZero() {
		return Money{}, false
	}
	return Money{value: spent.value.Div(bought), cur: spent.cur}, true
}

// HoldingDetail is the valuation of one held symbol.
type HoldingDetail struct {
	Symbol       string `json:"symbol"`
	Quantity     int64  `json:"quantity"`
	CurrentPrice Money  `json:"current_price"`
	CurrentValue Money  `json:"current_value"`
	// AverageCost is only meaningful when HasCostBasis is true.
	AverageCost  Money `json:"average_cost"`
	HasCostBasis bool  `json:"has_cost_basis"`
	PnLPerShare  Money `json:"pnl_per_share"`
	TotalPnL     Money `json:"total_pnl"`
}

// HoldingsDetails returns the valuation of every holding, sorted by symbol.
func (a *Account) HoldingsDetails() []HoldingDetail {
	symbols := make([]string, 0, len(a.holdings))
	for symbol := range a.holdings {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)

	details := make([]HoldingDetail, 0, len(symbols))
	for _, symbol := range symbols {
		quantity := a.holdings[symbol]
		price, _ := a.price(symbol)
		value := price.Mul(quantity)
		d := HoldingDetail{
			Symbol:       symbol,
			Quantity:     quantity,
			CurrentPrice: price,
			CurrentValue: value,
			TotalPnL:     value,
		}
		if avg, ok := a.AverageCostBasis(symbol); ok {
			d.AverageCost = avg
			d.HasCostBasis = true
			d.TotalPnL = value.Sub(avg.Mul(quantity))
			d.PnLPerShare = d.TotalPnL.Div(quantity)
		}
		details = append(details, d)
	}
	return details
}

// Status is a point in time view of an account, ready for presentation.
type Status struct {
	ID               string          `json:"id"`
	Strategy         string          `json:"strategy,omitempty"`
	On               time.Time       `json:"on"`
	Balance          Money           `json:"balance"`
	InitialDeposit   Money           `json:"initial_deposit"`
	PortfolioValue   Money           `json:"portfolio_value"`
	TotalValue       Money           `json:"total_value"`
	ProfitLoss       Money           `json:"profit_loss"`
	Holdings         []HoldingDetail `json:"holdings"`
	TransactionCount int             `json:"transaction_count"`
}

// Status computes the current status of the account.
func (a *Account) Status() Status {
	return Status{
		ID:               a.id,
		Strategy:         a.strategy,
		On:               a.now(),
		Balance:          a.balance,
		InitialDeposit:   a.initialDeposit,
		PortfolioValue:   a.PortfolioValue(),
		TotalValue:       a.TotalValue(),
		ProfitLoss:       a.ProfitLoss(),
		Holdings:         a.HoldingsDetails(),
		TransactionCount: len(a.transactions),
	}
}
