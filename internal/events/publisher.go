package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TradeExecuted is emitted after a trade commits.
type TradeExecuted struct {
	UserID     int             `json:"user_id"`
	Symbol     string          `json:"symbol"`
	Side       string          `json:"side"` // "BUY" or "SELL"
	Shares     int             `json:"shares"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// Publisher delivers trade events to downstream consumers. Publishing
// happens after commit and is best-effort: a failure never rolls back
// or fails the trade.
type Publisher interface {
	Publish(ctx context.Context, event TradeExecuted) error
}

// Noop discards all events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, TradeExecuted) error { return nil }
