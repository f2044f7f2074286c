package quotes

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/papertrade/papertrade/internal/models"
	"github.com/shopspring/decimal"
)

// Simulated is an in-process quote provider that random-walks a fixed
// symbol table. Each Lookup moves the price by -2% to +2%, so repeated
// lookups behave like a live market. Used for development and to drive
// the websocket price stream.
type Simulated struct {
	mu     sync.Mutex
	names  map[string]string
	prices map[string]decimal.Decimal
}

// NewSimulated creates a provider with the default symbol table.
func NewSimulated() *Simulated {
	return &Simulated{
		names: map[string]string{
			"AAPL":  "Apple Inc.",
			"GOOGL": "Alphabet Inc.",
			"MSFT":  "Microsoft Corporation",
			"TSLA":  "Tesla Inc.",
			"AMZN":  "Amazon.com Inc.",
		},
		prices: map[string]decimal.Decimal{
			"AAPL":  decimal.NewFromFloat(150.00),
			"GOOGL": decimal.NewFromFloat(140.00),
			"MSFT":  decimal.NewFromFloat(380.00),
			"TSLA":  decimal.NewFromFloat(250.00),
			"AMZN":  decimal.NewFromFloat(180.00),
		},
	}
}

// Lookup returns the symbol's current quote after one random-walk step.
func (s *Simulated) Lookup(_ context.Context, symbol string) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.prices[symbol]
	if !ok {
		return nil, models.ErrUnknownSymbol
	}

	// Simulate price change (-2% to +2%), rounded to cents.
	changePercent := (rand.Float64() - 0.5) * 4
	factor := decimal.NewFromFloat(1 + changePercent/100)
	price = price.Mul(factor).Round(2)
	if !price.IsPositive() {
		price = decimal.NewFromFloat(0.01)
	}
	s.prices[symbol] = price

	return &models.Quote{
		Symbol: symbol,
		Name:   s.names[symbol],
		Price:  price,
	}, nil
}

// Symbols returns the known symbols in sorted order.
func (s *Simulated) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbols := make([]string, 0, len(s.prices))
	for sym := range s.prices {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}
