package models

import "errors"

// Sentinel errors for business-rule failures. The handler layer maps
// these to HTTP status codes; everything else is a storage fault and
// surfaces as a generic 500.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidShareCount  = errors.New("share count must be a positive integer")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrQuoteUnavailable   = errors.New("quote unavailable")
	ErrDuplicateUsername  = errors.New("username is not available")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
	ErrUserNotFound       = errors.New("user not found")
)
