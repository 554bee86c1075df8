package server

import (
	"encoding/json"
	"net/http"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"github.com/gin-gonic/gin"
)

// CreateRequest creates an account. An empty ID is generated.
type CreateRequest struct {
	ID string `json:"id"`
}

// AmountRequest carries a cash amount, as a JSON number or a numeric string.
type AmountRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
}

// TradeRequest buys or sells shares.
type TradeRequest struct {
	Symbol    string `json:"symbol" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
	Rationale string `json:"rationale"`
}

// StrategyRequest replaces the investment strategy.
type StrategyRequest struct {
	Strategy string `json:"strategy" binding:"required"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}

func (s *Server) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": s.reg.IDs()})
}

func (s *Server) createAccount(c *gin.Context) {
	var req CreateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	a, err := s.reg.Create(req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	status, err := accounts.View(s.reg, a.ID(), (*accounts.Account).Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

func (s *Server) getAccount(c *gin.Context) {
	status, err := accounts.View(s.reg, c.Param("id"), (*accounts.Account).Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) getBalance(c *gin.Context) {
	balance, err := accounts.View(s.reg, c.Param("id"), (*accounts.Account).Balance)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "balance": balance})
}

func (s *Server) getHoldings(c *gin.Context) {
	var holdings map[string]int64
	var details []accounts.HoldingDetail
	err := s.reg.Do(c.Param("id"), func(a *accounts.Account) error {
		holdings, details = a.Holdings(), a.HoldingsDetails()
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings, "details": details})
}

func (s *Server) getTransactions(c *gin.Context) {
	txs, err := accounts.View(s.reg, c.Param("id"), (*accounts.Account).Transactions)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (s *Server) getReport(c *gin.Context) {
	md, err := accounts.View(s.reg, c.Param("id"), func(a *accounts.Account) string {
		return renderer.StatusMarkdown(a.Status()) + "\n" + renderer.TransactionsMarkdown(a.Transactions())
	})
	if err != nil {
		fail(c, err)
		return
	}

	switch format := c.DefaultQuery("format", "md"); format {
	case "md":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
	case "html":
		html, err := renderer.HTML(md)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown report format " + format})
	}
}

// cash runs a deposit or a withdrawal of the requested amount.
func (s *Server) cash(c *gin.Context, move func(a *accounts.Account, amount accounts.Money) (accounts.Transaction, error)) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var tx accounts.Transaction
	var balance accounts.Money
	err := s.reg.Do(c.Param("id"), func(a *accounts.Account) error {
		amount, err := accounts.ParseAmount(req.Amount.String(), a.Currency())
		if err != nil {
			return err
		}
		if tx, err = move(a, amount); err != nil {
			return err
		}
		balance = a.Balance()
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx, "balance": balance})
}

func (s *Server) deposit(c *gin.Context) {
	s.cash(c, func(a *accounts.Account, amount accounts.Money) (accounts.Transaction, error) {
		return a.Deposit(amount)
	})
}

func (s *Server) withdraw(c *gin.Context) {
	s.cash(c, func(a *accounts.Account, amount accounts.Money) (accounts.Transaction, error) {
		return a.Withdraw(amount)
	})
}

// trade runs a buy or a sell of the requested shares.
func (s *Server) trade(c *gin.Context, exec func(a *accounts.Account, req TradeRequest) (accounts.Transaction, error)) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var tx accounts.Transaction
	var balance accounts.Money
	var holdings map[string]int64
	err := s.reg.Do(c.Param("id"), func(a *accounts.Account) error {
		var err error
		if tx, err = exec(a, req); err != nil {
			return err
		}
		balance, holdings = a.Balance(), a.Holdings()
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": tx, "balance": balance, "holdings": holdings})
}

func (s *Server) buy(c *gin.Context) {
	s.trade(c, func(a *accounts.Account, req TradeRequest) (accounts.Transaction, error) {
		return a.BuyShares(req.Symbol, req.Quantity, req.Rationale)
	})
}

func (s *Server) sell(c *gin.Context) {
	s.trade(c, func(a *accounts.Account, req TradeRequest) (accounts.Transaction, error) {
		return a.SellShares(req.Symbol, req.Quantity, req.Rationale)
	})
}

func (s *Server) changeStrategy(c *gin.Context) {
	var req StrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var msg string
	err := s.reg.Do(c.Param("id"), func(a *accounts.Account) error {
		msg = a.ChangeStrategy(req.Strategy)
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
