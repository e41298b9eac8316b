package uow

import (
	"context"

	"loans-marketplace-backend/internal/domain/escrow"
	"loans-marketplace-backend/internal/domain/event"
	"loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/protocol"
	"loans-marketplace-backend/internal/domain/share"
)

type Repos struct {
	Loans    loan.Repository
	Shares   share.Repository
	Escrow   escrow.Repository
	Events   event.Repository
	Protocol protocol.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. The lock is
	// held until the tx ends, so one writer per loan at a time.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
