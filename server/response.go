package server

import (
	"errors"
	"net/http"

	"github.com/etnz/accounts"
	"github.com/gin-gonic/gin"
)

// statusOf maps a ledger error to an HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, accounts.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, accounts.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, accounts.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, accounts.ErrInsufficientFunds),
		errors.Is(err, accounts.ErrInsufficientHoldings),
		errors.Is(err, accounts.ErrUnknownSymbol):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": "..."} with the status it maps to.
func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

// badRequest reports a request that could not be bound.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
