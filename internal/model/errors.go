package model

import "errors"

// Domain error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// everything else is a 500.
var (
	// ErrNotFound covers unknown tickers and empty series.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument covers malformed periods and too-few tickers.
	ErrInvalidArgument = errors.New("invalid argument")

	// Ledger domain errors. A failed buy/sell leaves the wallet unmodified.
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoPosition         = errors.New("no position in ticker")
	ErrInsufficientShares = errors.New("insufficient shares")
)
