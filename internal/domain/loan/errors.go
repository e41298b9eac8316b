package loan

import "errors"

// Operation-level errors surfaced synchronously to callers. Every failed
// operation leaves the last-committed state untouched; nothing is retried
// internally.
var (
	ErrNotFound               = errors.New("loan not found")
	ErrInvalidParameter       = errors.New("invalid parameter")
	ErrInvalidState           = errors.New("invalid state")
	ErrMathOverflow           = errors.New("math overflow")
	ErrFundingExpired         = errors.New("funding window is over")
	ErrExceedsLoanAmount      = errors.New("exceeds loan amount")
	ErrInsufficientFunding    = errors.New("loan is not fully funded")
	ErrInsufficientCollateral = errors.New("insufficient collateral")
	ErrTooEarly               = errors.New("too early")
	ErrAlreadyClaimed         = errors.New("already claimed")
	ErrUnauthorized           = errors.New("unauthorized")
)
