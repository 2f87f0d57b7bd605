package dividends

import "errors"

// Analytics errors. They are returned wrapped, use errors.Is to test them.
var (
	// ErrInsufficientData indicates that there are not enough historical years
	// or data points for the requested analysis.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingCostBasis indicates that no holding has a usable cost basis.
	ErrMissingCostBasis = errors.New("missing cost basis")

	// ErrNoBaselineData indicates that a projection baseline window holds no dividend.
	ErrNoBaselineData = errors.New("no baseline data")

	// ErrInvalidParameter indicates a malformed year, limit, method or scenario.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Ledger errors.
var (
	// ErrInvalidRecord indicates a dividend or holding that fails validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrDuplicateRecord indicates a dividend with the same symbol and ex-date already exists.
	ErrDuplicateRecord = errors.New("duplicate dividend")

	// ErrRecordNotFound indicates that no dividend matches a symbol and ex-date.
	ErrRecordNotFound = errors.New("dividend not found")

	// ErrHoldingNotFound indicates that no holding exists for a symbol.
	ErrHoldingNotFound = errors.New("holding not found")
)
