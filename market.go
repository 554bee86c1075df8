package accounts

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// PriceSource returns the current price of one share of a symbol.
//
// A zero (or negative) price means the symbol is unknown to the source.
type PriceSource interface {
	Price(symbol string) Money
}

// PriceFunc adapts a plain function to a PriceSource.
type PriceFunc func(symbol string) Money

// Price implements PriceSource.
func (f PriceFunc) Price(symbol string) Money { return f(symbol) }

// PriceTable is an in-memory PriceSource indexed by symbol.
type PriceTable map[string]Money

// Price implements PriceSource. Unknown symbols are priced at zero.
func (t PriceTable) Price(symbol string) Money { return t[symbol] }

// Symbols returns the known symbols in alphabetical order.
func (t PriceTable) Symbols() []string {
	return slices.Sorted(maps.Keys(t))
}

// DefaultPrices returns the mocked share prices used by the simulation.
func DefaultPrices() PriceTable {
	return PriceTable{
		"AAPL":  M(170.0, DefaultCurrency),
		"TSLA":  M(180.0, DefaultCurrency),
		"GOOGL": M(150.0, DefaultCurrency),
	}
}

// DefaultPricePath is the jsonpath template used by JSONPrices when none is
// given: the document is an object keyed by symbol.
const DefaultPricePath = `$["%s"]`

// JSONPrices is a PriceSource reading quotes from a JSON document.
//
// The price of a symbol is found by evaluating a jsonpath expression built
// from a template where %s is replaced by the symbol, for instance
// `$.quotes["%s"].last`.
type JSONPrices struct {
	doc      any
	path     string
	currency string
}

// NewJSONPrices decodes the quote document from r.
func NewJSONPrices(r io.Reader, pathTemplate, currency string) (*JSONPrices, error) {
	if pathTemplate == "" {
		pathTemplate = DefaultPricePath
	}
	if strings.Count(pathTemplate, "%s") != 1 {
		return nil, fmt.Errorf("price path %q must contain exactly one %%s", pathTemplate)
	}
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode price document: %w", err)
	}
	return &JSONPrices{doc: doc, path: pathTemplate, currency: currency}, nil
}

// Price implements PriceSource. Any failure to read a price is logged and
// reported as the unknown symbol sentinel.
func (p *JSONPrices) Price(symbol string) Money {
	path := fmt.Sprintf(p.path, symbol)
	jval, err := jsonpath.Get(path, p.doc)
	if err != nil {
		log.Printf("no price for %q at %q: %v", symbol, path, err)
		return M(0, p.currency)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case float64:
		return M(v, p.currency)
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", "."))
		if err != nil {
			log.Printf("invalid price for %q: %q", symbol, v)
			return M(0, p.currency)
		}
		return M(d, p.currency)
	default:
		log.Printf("invalid price for %q: %v (%T)", symbol, jval, jval)
		return M(0, p.currency)
	}
}
