// Package auth handles registration, login, and session tracking. The
// ledger never authenticates; it trusts the user id resolved here.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/papertrade/papertrade/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// uniqueViolation is the Postgres error code for a unique constraint.
const uniqueViolation = "23505"

// Service persists and verifies credentials.
type Service struct {
	db           *sql.DB
	startingCash decimal.Decimal
}

// NewService creates a Service. New accounts start with startingCash.
func NewService(database *sql.DB, startingCash decimal.Decimal) *Service {
	return &Service{
		db:           database,
		startingCash: startingCash,
	}
}

// Register creates a new account and returns it. The caller is expected
// to treat a successful registration as a login.
func (s *Service) Register(ctx context.Context, username, password, confirmation string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.ErrMissingField
	}
	if password != confirmation {
		return nil, models.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:    username,
		CashBalance: s.startingCash,
	}
	err = s.db.QueryRowContext(ctx, `
        INSERT INTO users (username, password_hash, cash_balance)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, username, string(hash), s.startingCash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, models.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns the user. The error never
// reveals whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, models.ErrMissingField
	}

	user := &models.User{Username: username}
	err := s.db.QueryRowContext(ctx, `
        SELECT id, password_hash, cash_balance, created_at
        FROM users
        WHERE username = $1
    `, username).Scan(&user.ID, &user.PasswordHash, &user.CashBalance, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}
