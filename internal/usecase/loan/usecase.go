package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"loans-marketplace-backend/internal/domain/attestation"
	"loans-marketplace-backend/internal/domain/event"
	domain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/share"
	"loans-marketplace-backend/internal/domain/uow"
	"loans-marketplace-backend/pkg/id"
	"loans-marketplace-backend/pkg/money"

	"gorm.io/gorm"
)

// Usecase is the loan lifecycle engine. Every mutating operation runs
// inside a per-loan locked transaction; time is read once per operation
// from the injected clock, never from a background timer.
type Usecase struct {
	uow       uow.UnitOfWork
	oracle    attestation.Oracle // optional
	publisher event.Publisher    // optional
	now       func() time.Time
}

type Option func(*Usecase)

func WithOracle(o attestation.Oracle) Option { return func(u *Usecase) { u.oracle = o } }
func WithPublisher(p event.Publisher) Option { return func(u *Usecase) { u.publisher = p } }
func WithClock(now func() time.Time) Option  { return func(u *Usecase) { u.now = now } }

func NewUsecase(tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) nowUnix() int64 { return u.now().Unix() }

// publish fans committed events out to external consumers. Best-effort:
// the rows already committed are the audit trail of record.
func (u *Usecase) publish(ctx context.Context, evs []*event.Event) {
	if u.publisher == nil {
		return
	}
	for _, e := range evs {
		if err := u.publisher.Publish(ctx, e); err != nil {
			log.Printf("event publish %s loan=%s: %v", e.Type, e.LoanID, err)
		}
	}
}

// mapErr normalizes storage and arithmetic errors at the usecase boundary.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, money.ErrOverflow):
		return domain.ErrMathOverflow
	default:
		return err
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.BorrowerID) != 32 {
		return nil, fmt.Errorf("%w: borrower_id must be 32-char hex", domain.ErrInvalidParameter)
	}
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidParameter)
	}
	if in.TermSecs < 86_400 {
		return nil, fmt.Errorf("%w: term must be at least one day", domain.ErrInvalidParameter)
	}
	if in.MaxAprBps == 0 || in.MaxAprBps > money.BpsDenominator {
		return nil, fmt.Errorf("%w: max_apr_bps out of range", domain.ErrInvalidParameter)
	}
	if in.MinCollateralBps > money.BpsDenominator {
		return nil, fmt.Errorf("%w: min_collateral_bps out of range", domain.ErrInvalidParameter)
	}
	now := u.nowUnix()
	if in.FundingDeadline <= now {
		return nil, fmt.Errorf("%w: funding_deadline must be in the future", domain.ErrInvalidParameter)
	}

	if u.oracle != nil {
		att, err := u.oracle.Lookup(ctx, in.BorrowerID)
		if err != nil {
			return nil, fmt.Errorf("attestation lookup: %w", err)
		}
		if in.MinCollateralBps < att.RecommendedCollateralBps {
			return nil, fmt.Errorf("%w: min_collateral_bps below oracle recommendation (%d)",
				domain.ErrInvalidParameter, att.RecommendedCollateralBps)
		}
	}

	l := &domain.Loan{
		LoanID:           id.NewID32(),
		BorrowerID:       in.BorrowerID,
		RequestedAmount:  in.Amount,
		TermSecs:         in.TermSecs,
		MaxAprBps:        in.MaxAprBps,
		MinCollateralBps: in.MinCollateralBps,
		FundingDeadline:  in.FundingDeadline,
		State:            domain.StateFunding,
		ActualAprBps:     in.MaxAprBps,
		// principal is outstanding in full from the start; nothing is
		// drawn yet but the conservation invariant holds from drawdown on.
		OutstandingPrincipal: in.Amount,
		StateUpdatedAt:       u.now(),
	}

	var evs []*event.Event
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Block a second open funding request from the same borrower.
		pending, err := r.Loans.GetFundingLoanByBorrowerID(ctx, in.BorrowerID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: borrower already has a funding loan %s",
				domain.ErrInvalidParameter, pending.LoanID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		e := &event.Event{
			Type: event.TypeLoanCreated, LoanID: l.LoanID, ActorID: in.BorrowerID,
			Amount: in.Amount, Total: 0,
		}
		evs = append(evs, e)
		return r.Events.Append(ctx, e)
	})
	if err != nil {
		return nil, mapErr(err)
	}

	u.publish(ctx, evs)
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return dto, nil
}

func (u *Usecase) ListShares(ctx context.Context, loanID string) ([]*ShareDTO, error) {
	var out []*ShareDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByLoanID(ctx, loanID); err != nil {
			return err
		}
		shares, err := r.Shares.ListByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		for _, s := range shares {
			out = append(out, toShareDTO(s))
		}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (u *Usecase) ListEvents(ctx context.Context, loanID string) ([]*event.Event, error) {
	var out []*event.Event
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Loans.GetByLoanID(ctx, loanID); err != nil {
			return err
		}
		var err error
		out, err = r.Events.ListByLoanID(ctx, loanID)
		return err
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:               l.LoanID,
		BorrowerID:           l.BorrowerID,
		State:                string(l.State),
		RequestedAmount:      l.RequestedAmount,
		TermSecs:             l.TermSecs,
		MaxAprBps:            l.MaxAprBps,
		MinCollateralBps:     l.MinCollateralBps,
		FundingDeadline:      l.FundingDeadline,
		FundedAmount:         l.FundedAmount,
		CollateralAmount:     l.CollateralAmount,
		ActualAprBps:         l.ActualAprBps,
		StartTs:              l.StartTs,
		DueTs:                l.DueTs,
		AccruedInterest:      l.AccruedInterest,
		OutstandingPrincipal: l.OutstandingPrincipal,
		TotalRepaidPrincipal: l.TotalRepaidPrincipal,
		TotalRepaidInterest:  l.TotalRepaidInterest,
		CreatedAt:            l.CreatedAt,
	}
}

func toShareDTO(s *share.LenderShare) *ShareDTO {
	return &ShareDTO{
		LoanID:          s.LoanID,
		LenderID:        s.LenderID,
		Principal:       s.Principal,
		RepaidPrincipal: s.RepaidPrincipal,
		RepaidInterest:  s.RepaidInterest,
		ProRataBps:      s.ProRataBps,
	}
}
