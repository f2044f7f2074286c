package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account.
type User struct {
	ID           int             `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	CashBalance  decimal.Decimal `json:"cash_balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Holding is a user's current position in one symbol. A holding whose
// share count has dropped to zero is kept as a ledger artifact, never
// deleted.
type Holding struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Shares    int       `json:"shares"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is an immutable record of one executed trade. Shares is
// the signed delta: positive for a buy, negative for a sell.
type HistoryEntry struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	HoldingID int             `json:"holding_id"`
	Symbol    string          `json:"symbol"`
	Shares    int             `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Quote is a point-in-time price for a symbol as returned by the
// quote provider.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// TradeRequest - what the client sends to buy or sell.
type TradeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Shares int    `json:"shares" binding:"required"`
}

// RegisterRequest - registration form fields.
type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// LoginRequest - login form fields.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Position is one row of the portfolio view: a holding priced at the
// provider's current quote.
type Position struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int             `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}

// PortfolioResponse - what we send back for the portfolio view.
type PortfolioResponse struct {
	Positions   []Position      `json:"positions"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
