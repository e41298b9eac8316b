package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loans-marketplace-backend/internal/domain/escrow"
	loanDomain "loans-marketplace-backend/internal/domain/loan"
	protocolDomain "loans-marketplace-backend/internal/domain/protocol"
)

// writeErr maps domain errors onto HTTP status codes. Lifecycle
// rejections are conflicts: the request was well-formed but the loan's
// committed state forbids it.
func writeErr(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, protocolDomain.ErrNotBootstrapped):
		status = http.StatusNotFound
	case errors.Is(err, loanDomain.ErrInvalidParameter):
		status = http.StatusBadRequest
	case errors.Is(err, loanDomain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, loanDomain.ErrInvalidState),
		errors.Is(err, loanDomain.ErrFundingExpired),
		errors.Is(err, loanDomain.ErrExceedsLoanAmount),
		errors.Is(err, loanDomain.ErrInsufficientFunding),
		errors.Is(err, loanDomain.ErrInsufficientCollateral),
		errors.Is(err, loanDomain.ErrTooEarly),
		errors.Is(err, loanDomain.ErrAlreadyClaimed),
		errors.Is(err, escrow.ErrInsufficientFunds),
		errors.Is(err, protocolDomain.ErrAlreadyBootstrapped):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}
