package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/accounts"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// do sends a JSON request to h and decodes the JSON response into out.
func do(t *testing.T, h http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func TestHealth(t *testing.T) {
	r := NewRouter(accounts.NewRegistry(accounts.DefaultPrices()))
	var got map[string]string
	w := do(t, r, http.MethodGet, "/health", nil, &got)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "up", got["status"])
}

func TestAccountFlow(t *testing.T) {
	r := NewRouter(accounts.NewRegistry(accounts.DefaultPrices()))

	var created map[string]any
	w := do(t, r, http.MethodPost, "/accounts", gin.H{"id": "alice"}, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "alice", created["id"])
	assert.Equal(t, 0.0, created["balance"])

	w = do(t, r, http.MethodPost, "/accounts/alice/deposit", gin.H{"amount": 1000}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var trade struct {
		Transaction map[string]any   `json:"transaction"`
		Balance     float64          `json:"balance"`
		Holdings    map[string]int64 `json:"holdings"`
	}
	w = do(t, r, http.MethodPost, "/accounts/alice/buy", gin.H{"symbol": "AAPL", "quantity": 5, "rationale": "strong earnings"}, &trade)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "BUY", trade.Transaction["type"])
	assert.Equal(t, "strong earnings", trade.Transaction["memo"])
	assert.Equal(t, 150.0, trade.Balance)
	assert.Equal(t, map[string]int64{"AAPL": 5}, trade.Holdings)

	w = do(t, r, http.MethodPost, "/accounts/alice/sell", gin.H{"symbol": "AAPL", "quantity": 2}, &trade)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 490.0, trade.Balance)

	w = do(t, r, http.MethodPost, "/accounts/alice/withdraw", gin.H{"amount": "90.5"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var balance struct {
		ID      string  `json:"id"`
		Balance float64 `json:"balance"`
	}
	w = do(t, r, http.MethodGet, "/accounts/alice/balance", nil, &balance)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", balance.ID)
	assert.Equal(t, 399.5, balance.Balance)

	var txs []map[string]any
	w = do(t, r, http.MethodGet, "/accounts/alice/transactions", nil, &txs)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, txs, 4)
	assert.Equal(t, "DEPOSIT", txs[0]["type"])
	assert.Equal(t, "WITHDRAWAL", txs[3]["type"])
	assert.Equal(t, -90.5, txs[3]["amount"])

	var holdings struct {
		Holdings map[string]int64         `json:"holdings"`
		Details  []map[string]interface{} `json:"details"`
	}
	w = do(t, r, http.MethodGet, "/accounts/alice/holdings", nil, &holdings)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int64{"AAPL": 3}, holdings.Holdings)
	require.Len(t, holdings.Details, 1)
	assert.Equal(t, 510.0, holdings.Details[0]["current_value"])

	var msg map[string]string
	w = do(t, r, http.MethodPost, "/accounts/alice/strategy", gin.H{"strategy": "value"}, &msg)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Changed strategy for alice", msg["message"])

	var status map[string]any
	w = do(t, r, http.MethodGet, "/accounts/alice", nil, &status)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "value", status["strategy"])
	assert.Equal(t, 1000.0, status["initial_deposit"])
	assert.Equal(t, 909.5, status["total_value"])
	assert.Equal(t, -90.5, status["profit_loss"])
}

func TestCreateAccount(t *testing.T) {
	r := NewRouter(accounts.NewRegistry(accounts.DefaultPrices()))

	var created map[string]any
	w := do(t, r, http.MethodPost, "/accounts", nil, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, created["id"])

	w = do(t, r, http.MethodPost, "/accounts", gin.H{"id": "bob"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, r, http.MethodPost, "/accounts", gin.H{"id": "bob"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var list struct {
		Accounts []string `json:"accounts"`
	}
	w = do(t, r, http.MethodGet, "/accounts", nil, &list)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, list.Accounts, "bob")
	assert.Len(t, list.Accounts, 2)
}

func TestErrors(t *testing.T) {
	reg := accounts.NewRegistry(accounts.DefaultPrices())
	require.NoError(t, reg.Do(reg.Open("alice").ID(), func(a *accounts.Account) error {
		_, err := a.Deposit(accounts.M(100, "USD"))
		return err
	}))
	r := NewRouter(reg)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown account", http.MethodGet, "/accounts/bob", nil, http.StatusNotFound},
		{"unknown account deposit", http.MethodPost, "/accounts/bob/deposit", gin.H{"amount": 10}, http.StatusNotFound},
		{"negative deposit", http.MethodPost, "/accounts/alice/deposit", gin.H{"amount": -10}, http.StatusBadRequest},
		{"zero withdrawal", http.MethodPost, "/accounts/alice/withdraw", gin.H{"amount": "0"}, http.StatusBadRequest},
		{"not a number", http.MethodPost, "/accounts/alice/deposit", gin.H{"amount": "ten"}, http.StatusBadRequest},
		{"missing amount", http.MethodPost, "/accounts/alice/deposit", gin.H{}, http.StatusBadRequest},
		{"overdraft", http.MethodPost, "/accounts/alice/withdraw", gin.H{"amount": 500}, http.StatusUnprocessableEntity},
		{"insufficient funds", http.MethodPost, "/accounts/alice/buy", gin.H{"symbol": "AAPL", "quantity": 1}, http.StatusUnprocessableEntity},
		{"unknown symbol", http.MethodPost, "/accounts/alice/buy", gin.H{"symbol": "XYZ", "quantity": 1}, http.StatusUnprocessableEntity},
		{"insufficient holdings", http.MethodPost, "/accounts/alice/sell", gin.H{"symbol": "AAPL", "quantity": 1}, http.StatusUnprocessableEntity},
		{"negative quantity", http.MethodPost, "/accounts/alice/buy", gin.H{"symbol": "AAPL", "quantity": -1}, http.StatusBadRequest},
		{"missing symbol", http.MethodPost, "/accounts/alice/buy", gin.H{"quantity": 1}, http.StatusBadRequest},
		{"missing strategy", http.MethodPost, "/accounts/alice/strategy", gin.H{}, http.StatusBadRequest},
		{"unknown report format", http.MethodGet, "/accounts/alice/report?format=pdf", nil, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]string
			w := do(t, r, tc.method, tc.path, tc.body, &got)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.NotEmpty(t, got["error"])
		})
	}

	a, err := reg.Get("alice")
	require.NoError(t, err)
	assert.True(t, a.Balance().Equal(accounts.M(100, "USD")), "rejected requests must not change the balance, got %v", a.Balance())
	assert.Len(t, a.Transactions(), 1)
}

func TestReport(t *testing.T) {
	reg := accounts.NewRegistry(accounts.DefaultPrices())
	reg.Open("alice")
	r := NewRouter(reg)

	w := do(t, r, http.MethodGet, "/accounts/alice/report", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown"))
	assert.Contains(t, w.Body.String(), "# Account Status for alice")

	w = do(t, r, http.MethodGet, "/accounts/alice/report?format=html", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "<h1>Account Status for alice</h1>")
}
