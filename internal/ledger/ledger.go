// Package ledger applies buy and sell trades as single atomic units,
// keeping a user's cash balance, per-symbol holdings, and append-only
// trade history consistent with each other.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/papertrade/papertrade/internal/models"
	"github.com/papertrade/papertrade/internal/quotes"
	"github.com/shopspring/decimal"
)

// Ledger executes trades against Postgres. Each Buy/Sell runs its
// check-then-mutate sequence inside one transaction with the relevant
// row locked FOR UPDATE, so two concurrent trades for the same user
// cannot both pass a sufficiency check against a stale balance.
type Ledger struct {
	db       *sql.DB
	provider quotes.Provider
}

// New creates a Ledger over the given database and quote provider.
func New(database *sql.DB, provider quotes.Provider) *Ledger {
	return &Ledger{
		db:       database,
		provider: provider,
	}
}

// TradeResult describes one committed trade.
type TradeResult struct {
	HistoryID  int             `json:"history_id"`
	Symbol     string          `json:"symbol"`
	Shares     int             `json:"shares"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// Buy purchases shares at the quoted price. The quote must come from
// the provider at call time; the caller (not the ledger) resolves it so
// the HTTP layer can report unknown symbols before a transaction opens.
func (l *Ledger) Buy(ctx context.Context, userID int, symbol string, shares int, quote *models.Quote) (*TradeResult, error) {
	if shares < 1 {
		return nil, models.ErrInvalidShareCount
	}
	if quote == nil || !quote.Price.IsPositive() {
		return nil, models.ErrQuoteUnavailable
	}

	cost := quote.Price.Mul(decimal.NewFromInt(int64(shares)))

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if we don't commit

	// 1. Lock the user row and check the balance covers the cost.
	var cashBalance decimal.Decimal
	err = tx.QueryRowContext(ctx,
		"SELECT cash_balance FROM users WHERE id = $1 FOR UPDATE",
		userID,
	).Scan(&cashBalance)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	if cashBalance.LessThan(cost) {
		return nil, models.ErrInsufficientFunds
	}

	// 2. Create or increment the holding.
	var holdingID int
	err = tx.QueryRowContext(ctx, `
        INSERT INTO holdings (user_id, symbol, shares)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, symbol)
        DO UPDATE SET
            shares = holdings.shares + $3,
            updated_at = NOW()
        RETURNING id
    `, userID, symbol, shares).Scan(&holdingID)

	if err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}

	// 3. Append the history entry.
	var historyID int
	err = tx.QueryRowContext(ctx, `
        INSERT INTO history (user_id, holding_id, symbol, shares, price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, userID, holdingID, symbol, shares, quote.Price).Scan(&historyID)

	if err != nil {
		return nil, fmt.Errorf("record trade: %w", err)
	}

	// 4. Debit the cash balance.
	_, err = tx.ExecContext(ctx,
		"UPDATE users SET cash_balance = cash_balance - $1 WHERE id = $2",
		cost, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &TradeResult{
		HistoryID:  historyID,
		Symbol:     symbol,
		Shares:     shares,
		Price:      quote.Price,
		Total:      cost,
		NewBalance: cashBalance.Sub(cost),
	}, nil
}

// Sell sells shares of an existing holding at the provider's current
// price. The price is a fresh lookup at execution time, never a price
// shown to the user earlier. The quote is resolved before the
// transaction opens so no row lock is held across a network call.
func (l *Ledger) Sell(ctx context.Context, userID int, symbol string, shares int) (*TradeResult, error) {
	if shares < 1 {
		return nil, models.ErrInvalidShareCount
	}

	quote, err := l.provider.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	proceeds := quote.Price.Mul(decimal.NewFromInt(int64(shares)))

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Lock the holding row and check the user owns enough shares.
	var holdingID, currentShares int
	err = tx.QueryRowContext(ctx,
		"SELECT id, shares FROM holdings WHERE user_id = $1 AND symbol = $2 FOR UPDATE",
		userID, symbol,
	).Scan(&holdingID, &currentShares)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUnknownSymbol
	}
	if err != nil {
		return nil, fmt.Errorf("read holding: %w", err)
	}

	if currentShares < shares {
		return nil, models.ErrInsufficientShares
	}

	// 2. Decrement the holding. The row is kept even at zero shares;
	// history entries reference it.
	_, err = tx.ExecContext(ctx,
		"UPDATE holdings SET shares = shares - $1, updated_at = NOW() WHERE id = $2",
		shares, holdingID,
	)
	if err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}

	// 3. Append the history entry with a negative delta.
	var historyID int
	err = tx.QueryRowContext(ctx, `
        INSERT INTO history (user_id, holding_id, symbol, shares, price)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, userID, holdingID, symbol, -shares, quote.Price).Scan(&historyID)

	if err != nil {
		return nil, fmt.Errorf("record trade: %w", err)
	}

	// 4. Credit the proceeds.
	var newBalance decimal.Decimal
	err = tx.QueryRowContext(ctx,
		"UPDATE users SET cash_balance = cash_balance + $1 WHERE id = $2 RETURNING cash_balance",
		proceeds, userID,
	).Scan(&newBalance)
	if err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &TradeResult{
		HistoryID:  historyID,
		Symbol:     symbol,
		Shares:     shares,
		Price:      quote.Price,
		Total:      proceeds,
		NewBalance: newBalance,
	}, nil
}

// Snapshot returns the portfolio view: cash, every holding with shares
// still in it priced at the provider's current quote, and the grand
// total. Read-only and non-transactional; prices across symbols may be
// mutually stale by the time they reach the caller.
func (l *Ledger) Snapshot(ctx context.Context, userID int) (*models.PortfolioResponse, error) {
	var cashBalance decimal.Decimal
	err := l.db.QueryRowContext(ctx,
		"SELECT cash_balance FROM users WHERE id = $1",
		userID,
	).Scan(&cashBalance)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `
        SELECT symbol, shares
        FROM holdings
        WHERE user_id = $1 AND shares > 0
        ORDER BY symbol
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("read holdings: %w", err)
	}
	defer rows.Close()

	positions := make([]models.Position, 0)
	total := cashBalance

	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.Symbol, &p.Shares); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}

		quote, err := l.provider.Lookup(ctx, p.Symbol)
		if err != nil {
			return nil, err
		}

		p.Name = quote.Name
		p.Price = quote.Price
		p.Value = quote.Price.Mul(decimal.NewFromInt(int64(p.Shares)))
		total = total.Add(p.Value)
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read holdings: %w", err)
	}

	return &models.PortfolioResponse{
		Positions:   positions,
		CashBalance: cashBalance,
		TotalValue:  total,
	}, nil
}

// History returns all of the user's trades, newest first.
func (l *Ledger) History(ctx context.Context, userID int) ([]models.HistoryEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT id, user_id, holding_id, symbol, shares, price, created_at
        FROM history
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var e models.HistoryEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.HoldingID, &e.Symbol, &e.Shares, &e.Price, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	return entries, nil
}
