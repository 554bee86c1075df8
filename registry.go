package accounts

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Registry indexes accounts by identifier for the process serving them.
//
// A single mutex serializes every access, so callers sharing a Registry
// must go through Do (or View) to operate on an account.
type Registry struct {
	mu       sync.Mutex
	prices   PriceSource
	opts     []Option
	accounts map[string]*Account
}

// NewRegistry creates an empty registry. New accounts are valued with prices
// and configured with opts.
func NewRegistry(prices PriceSource, opts ...Option) *Registry {
	return &Registry{
		prices:   prices,
		opts:     opts,
		accounts: make(map[string]*Account),
	}
}

// Create opens a new empty account. An empty id is replaced by a random one.
func (r *Registry) Create(id string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := r.accounts[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrAccountExists, id)
	}
	a := NewAccount(id, r.prices, r.opts...)
	r.accounts[id] = a
	return a, nil
}

// Get returns the account registered under id.
func (r *Registry) Get(id string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *Registry) get(id string) (*Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, id)
	}
	return a, nil
}

// Open returns the account registered under id, creating it if needed.
func (r *Registry) Open(id string) *Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		a = NewAccount(id, r.prices, r.opts...)
		r.accounts[id] = a
	}
	return a
}

// IDs returns the registered identifiers in alphabetical order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.accounts))
}

// Do runs fn on the account registered under id while holding the registry
// lock. The error returned is the lookup error or fn's.
func (r *Registry) Do(id string, fn func(*Account) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.get(id)
	if err != nil {
		return err
	}
	return fn(a)
}

// View runs fn on the account registered under id like Do, but returns a
// value computed from it.
func View[T any](r *Registry, id string, fn func(*Account) T) (T, error) {
	var v T
	err := r.Do(id, func(a *Account) error {
		v = fn(a)
		return nil
	})
	return v, err
}
