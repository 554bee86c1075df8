package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/accounts"
)

// StatusMarkdown renders the status of an account: cash, valuation, overall
// profit and loss, and the detail of each holding.
func StatusMarkdown(s accounts.Status) string {
	r := &statusRenderer{Builder: &strings.Builder{}}
	r.Printf("# Account Status for %s\n\n", s.ID)
	r.renderSummary(s)
	r.renderHoldings(s.Holdings)
	return r.String()
}

type statusRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *statusRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func (r *statusRenderer) renderSummary(s accounts.Status) {
	r.Printf("| | |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Current Balance | %s |\n", s.Balance)
	r.Printf("| Initial Deposit | %s |\n", s.InitialDeposit)
	r.Printf("| Portfolio Value | %s |\n", s.PortfolioValue)
	r.Printf("| Total Account Value | %s |\n", s.TotalValue)
	r.Printf("| Overall Profit/Loss | %s |\n", signed(s.ProfitLoss))
	r.Printf("\n")
	if s.Strategy != "" {
		r.Printf("Strategy: %s\n\n", s.Strategy)
	}
}

func (r *statusRenderer) renderHoldings(holdings []accounts.HoldingDetail) {
	r.Printf("## Holdings\n\n")
	if len(holdings) == 0 {
		r.Printf("No holdings.\n")
		return
	}
	r.Printf("| Symbol | Quantity | Price | Value | Average Cost | P/L per Share | Total P/L |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|---:|\n")
	for _, h := range holdings {
		avg, perShare := "N/A", "N/A"
		if h.HasCostBasis {
			avg, perShare = h.AverageCost.String(), signed(h.PnLPerShare)
		}
		r.Printf("| %s | %d | %s | %s | %s | %s | %s |\n",
			h.Symbol, h.Quantity, h.CurrentPrice, h.CurrentValue, avg, perShare, signed(h.TotalPnL))
	}
}

// signed prints a zero amount as a plain zero rather than a dash.
func signed(m accounts.Money) string {
	if m.IsZero() {
		return m.String()
	}
	return m.SignedString()
}
