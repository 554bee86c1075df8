package agent

import (
	"context"
	"fmt"
	"math"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"google.golang.org/genai"
)

// Tool names exposed to the model.
const (
	GetBalance     = "get_balance"
	GetHoldings    = "get_holdings"
	BuyShares      = "buy_shares"
	SellShares     = "sell_shares"
	ChangeStrategy = "change_strategy"
	GetReport      = "get_report"
)

var nameSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "The name of the account holder.",
}

func tradeSchema(verb string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": nameSchema,
			"symbol": {
				Type:        genai.TypeString,
				Description: fmt.Sprintf("The ticker symbol of the stock to %s, like AAPL.", verb),
			},
			"quantity": {
				Type:        genai.TypeInteger,
				Description: fmt.Sprintf("The number of shares to %s, must be positive.", verb),
			},
			"rationale": {
				Type:        genai.TypeString,
				Description: fmt.Sprintf("Why you %s, and how it fits the strategy.", verb),
			},
		},
		Required: []string{"name", "symbol", "quantity", "rationale"},
	}
}

func nameOnly() *genai.Schema {
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{"name": nameSchema},
		Required:   []string{"name"},
	}
}

// Tools returns the account tools operating on reg.
//
// Accounts are opened on first use. Ledger rejections are reported in the
// "error" key of the response so that the model can correct itself.
func Tools(reg *accounts.Registry) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        GetBalance,
				Description: "Get the cash balance of the given account name.",
				Parameters:  nameOnly(),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				name, err := stringArg(args, "name")
				if err != nil {
					return failure(id, GetBalance, err)
				}
				reg.Open(name)
				balance, err := accounts.View(reg, name, (*accounts.Account).Balance)
				if err != nil {
					return failure(id, GetBalance, err)
				}
				return success(id, GetBalance, map[string]any{"balance": balance})
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        GetHoldings,
				Description: "Get the holdings of the given account name, as a map of symbol to number of shares.",
				Parameters:  nameOnly(),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				name, err := stringArg(args, "name")
				if err != nil {
					return failure(id, GetHoldings, err)
				}
				reg.Open(name)
				holdings, err := accounts.View(reg, name, (*accounts.Account).Holdings)
				if err != nil {
					return failure(id, GetHoldings, err)
				}
				return success(id, GetHoldings, map[string]any{"holdings": holdings})
			},
		},
		tradeTool(reg, BuyShares, "buy", "Buy shares of a stock at the current price, paid from the cash balance.",
			func(a *accounts.Account, symbol string, quantity int64, rationale string) (accounts.Transaction, error) {
				return a.BuyShares(symbol, quantity, rationale)
			}),
		tradeTool(reg, SellShares, "sell", "Sell shares of a stock at the current price, credited to the cash balance.",
			func(a *accounts.Account, symbol string, quantity int64, rationale string) (accounts.Transaction, error) {
				return a.SellShares(symbol, quantity, rationale)
			}),
		{
			Decl: &genai.FunctionDeclaration{
				Name:        ChangeStrategy,
				Description: "Change the investment strategy of the given account name.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": nameSchema,
						"strategy": {
							Type:        genai.TypeString,
							Description: "The new investment strategy.",
						},
					},
					Required: []string{"name", "strategy"},
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				name, err := stringArg(args, "name")
				if err != nil {
					return failure(id, ChangeStrategy, err)
				}
				strategy, err := stringArg(args, "strategy")
				if err != nil {
					return failure(id, ChangeStrategy, err)
				}
				reg.Open(name)
				var msg string
				err = reg.Do(name, func(a *accounts.Account) error {
					msg = a.ChangeStrategy(strategy)
					return nil
				})
				if err != nil {
					return failure(id, ChangeStrategy, err)
				}
				return success(id, ChangeStrategy, map[string]any{"output": msg})
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        GetReport,
				Description: "Get a markdown report of the given account name: balance, valuation, profit and loss, holdings and transactions.",
				Parameters:  nameOnly(),
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown formatted report.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				name, err := stringArg(args, "name")
				if err != nil {
					return failure(id, GetReport, err)
				}
				reg.Open(name)
				report, err := accounts.View(reg, name, func(a *accounts.Account) string {
					return renderer.StatusMarkdown(a.Status()) + "\n" + renderer.TransactionsMarkdown(a.Transactions())
				})
				if err != nil {
					return failure(id, GetReport, err)
				}
				return success(id, GetReport, map[string]any{"output": report})
			},
		},
	}
}

type tradeFunc func(a *accounts.Account, symbol string, quantity int64, rationale string) (accounts.Transaction, error)

func tradeTool(reg *accounts.Registry, name, verb, description string, trade tradeFunc) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  tradeSchema(verb),
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			account, err := stringArg(args, "name")
			if err != nil {
				return failure(id, name, err)
			}
			symbol, err := stringArg(args, "symbol")
			if err != nil {
				return failure(id, name, err)
			}
			quantity, err := intArg(args, "quantity")
			if err != nil {
				return failure(id, name, err)
			}
			rationale, _ := args["rationale"].(string)

			reg.Open(account)
			var tx accounts.Transaction
			var balance accounts.Money
			var holdings map[string]int64
			err = reg.Do(account, func(a *accounts.Account) error {
				var err error
				if tx, err = trade(a, symbol, quantity, rationale); err != nil {
					return err
				}
				balance, holdings = a.Balance(), a.Holdings()
				return nil
			})
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, map[string]any{
				"output":   renderer.Transaction(tx),
				"balance":  balance,
				"holdings": holdings,
			})
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", key, v)
	}
	return s, nil
}

// intArg reads a whole number. JSON decoding yields float64 for every number.
func intArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %q must be a whole number, got %v", key, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("argument %q is not a number as expected but %T", key, v)
	}
}
