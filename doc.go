// Package accounts provides the bookkeeping model of a simulated brokerage
// account: cash balance, share holdings and an append-only transaction history.
//
// The core functionalities include:
//   - Account Management: deposits, withdrawals, share purchases and sales,
//     each validated as a whole and either fully applied or rejected.
//   - Valuation: portfolio value, total account value and profit/loss derived
//     from an injected PriceSource on every call.
//   - Cost Basis: a lifetime average purchase price per symbol, computed from
//     the transaction history.
//   - Registry: a lookup of accounts by identifier, serializing the callers
//     of the remote tool and HTTP surfaces.
//
// This package serves as the foundational logic for the `acct` command-line
// tool, its agent tools and its HTTP server.
package accounts
