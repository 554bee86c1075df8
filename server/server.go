// Package server exposes a registry of accounts over HTTP.
package server

import (
	"github.com/etnz/accounts"
	"github.com/gin-gonic/gin"
)

// Server handles HTTP requests on the accounts of a registry.
type Server struct {
	reg *accounts.Registry
}

// New creates a server on reg.
func New(reg *accounts.Registry) *Server {
	return &Server{reg: reg}
}

// NewRouter returns a router serving the accounts of reg.
func NewRouter(reg *accounts.Registry) *gin.Engine {
	return New(reg).Router()
}

// Router registers every route on a new gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.health)

	r.GET("/accounts", s.listAccounts)
	r.POST("/accounts", s.createAccount)

	a := r.Group("/accounts/:id")
	a.GET("", s.getAccount)
	a.GET("/balance", s.getBalance)
	a.GET("/holdings", s.getHoldings)
	a.GET("/transactions", s.getTransactions)
	a.GET("/report", s.getReport)
	a.POST("/deposit", s.deposit)
	a.POST("/withdraw", s.withdraw)
	a.POST("/buy", s.buy)
	a.POST("/sell", s.sell)
	a.POST("/strategy", s.changeStrategy)

	return r
}
