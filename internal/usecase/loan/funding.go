package loan

import (
	"context"
	"errors"
	"fmt"

	"loans-marketplace-backend/internal/domain/event"
	domain "loans-marketplace-backend/internal/domain/loan"
	shareDomain "loans-marketplace-backend/internal/domain/share"
	"loans-marketplace-backend/internal/domain/uow"
	"loans-marketplace-backend/pkg/money"

	"gorm.io/gorm"
)

// Fund applies one lender contribution. Share principal and the loan's
// funded aggregate move together inside the locked transaction; when the
// contribution completes the cap the loan finalizes in the same commit.
func (u *Usecase) Fund(ctx context.Context, in FundInput) (*LoanDTO, error) {
	if len(in.LenderID) != 32 {
		return nil, fmt.Errorf("%w: lender_id must be 32-char hex", domain.ErrInvalidParameter)
	}
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidParameter)
	}

	var (
		dto *LoanDTO
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if in.LenderID == l.BorrowerID {
			return fmt.Errorf("%w: borrower cannot fund own loan", domain.ErrUnauthorized)
		}
		if l.State != domain.StateFunding {
			return domain.ErrInvalidState
		}
		if u.nowUnix() > l.FundingDeadline {
			return domain.ErrFundingExpired
		}

		newFunded, err := money.Add(l.FundedAmount, in.Amount)
		if err != nil {
			return err
		}
		if newFunded > l.RequestedAmount {
			return domain.ErrExceedsLoanAmount
		}

		if _, err := r.Escrow.Deposit(ctx, l.FundsEscrow(), in.Amount); err != nil {
			return err
		}

		s, err := r.Shares.GetByLoanAndLender(ctx, l.LoanID, in.LenderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = &shareDomain.LenderShare{LoanID: l.LoanID, LenderID: in.LenderID}
			if err := r.Shares.Create(ctx, s); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if s.Principal, err = money.Add(s.Principal, in.Amount); err != nil {
			return err
		}
		if err := r.Shares.Save(ctx, s); err != nil {
			return err
		}

		l.FundedAmount = newFunded
		e := &event.Event{
			Type: event.TypeLenderFunded, LoanID: l.LoanID, ActorID: in.LenderID,
			Amount: in.Amount, Total: l.FundedAmount,
		}
		evs = append(evs, e)
		if err := r.Events.Append(ctx, e); err != nil {
			return err
		}

		if l.FundedAmount == l.RequestedAmount {
			fundedEv, err := u.completeFunding(ctx, r, l)
			if err != nil {
				return err
			}
			evs = append(evs, fundedEv)
		}

		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	u.publish(ctx, evs)
	return dto, nil
}

// DepositCollateral moves borrower collateral into the loan's collateral
// escrow. Only allowed while the loan is still funding.
func (u *Usecase) DepositCollateral(ctx context.Context, in CollateralInput) (*LoanDTO, error) {
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidParameter)
	}

	var (
		dto *LoanDTO
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if in.BorrowerID != l.BorrowerID {
			return domain.ErrUnauthorized
		}
		if l.State != domain.StateFunding {
			return domain.ErrInvalidState
		}

		newTotal, err := money.Add(l.CollateralAmount, in.Amount)
		if err != nil {
			return err
		}
		if _, err := r.Escrow.Deposit(ctx, l.CollateralEscrow(), in.Amount); err != nil {
			return err
		}

		l.CollateralAmount = newTotal
		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		e := &event.Event{
			Type: event.TypeCollateralDeposited, LoanID: l.LoanID, ActorID: in.BorrowerID,
			Amount: in.Amount, Total: l.CollateralAmount,
		}
		evs = append(evs, e)
		if err := r.Events.Append(ctx, e); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	u.publish(ctx, evs)
	return dto, nil
}

// FinalizeFunding lets the borrower close funding explicitly once the
// requested amount is covered (normally funding auto-completes on the
// contribution that fills the cap).
func (u *Usecase) FinalizeFunding(ctx context.Context, loanID, callerID string) (*LoanDTO, error) {
	var (
		dto *LoanDTO
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if callerID != l.BorrowerID {
			return domain.ErrUnauthorized
		}
		if l.State != domain.StateFunding {
			return domain.ErrInvalidState
		}
		if l.FundedAmount < l.RequestedAmount {
			return domain.ErrInsufficientFunding
		}

		fundedEv, err := u.completeFunding(ctx, r, l)
		if err != nil {
			return err
		}
		evs = append(evs, fundedEv)

		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	u.publish(ctx, evs)
	return dto, nil
}

// completeFunding locks the APR, fixes every lender's pro-rata share and
// moves the loan to Funded. Floor division leaves a residue of basis
// points below 10,000; the largest contributor absorbs it so the shares
// always sum to exactly 10,000.
func (u *Usecase) completeFunding(ctx context.Context, r uow.Repos, l *domain.Loan) (*event.Event, error) {
	l.ActualAprBps = l.MaxAprBps
	l.State = domain.StateFunded

	shares, err := r.Shares.ListByLoanID(ctx, l.LoanID)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, domain.ErrInsufficientFunding
	}

	var sum uint32
	for _, s := range shares {
		bps, err := money.ProRataBps(s.Principal, l.FundedAmount)
		if err != nil {
			return nil, err
		}
		s.ProRataBps = bps
		sum += bps
	}
	// shares are ordered principal DESC, lender ASC: index 0 is the
	// largest contributor.
	shares[0].ProRataBps += money.BpsDenominator - sum

	for _, s := range shares {
		if err := r.Shares.Save(ctx, s); err != nil {
			return nil, err
		}
	}

	e := &event.Event{
		Type: event.TypeLoanFunded, LoanID: l.LoanID, ActorID: l.BorrowerID,
		Amount: l.FundedAmount, Total: l.FundedAmount,
	}
	return e, r.Events.Append(ctx, e)
}
