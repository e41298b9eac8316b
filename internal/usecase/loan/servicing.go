package loan

import (
	"context"
	"fmt"

	"loans-marketplace-backend/internal/domain/event"
	domain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/uow"
	"loans-marketplace-backend/pkg/money"
)

// Drawdown releases the funded principal to the borrower and starts the
// term and accrual clocks.
func (u *Usecase) Drawdown(ctx context.Context, loanID, borrowerID string) (*LoanDTO, error) {
	var (
		dto *LoanDTO
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if borrowerID != l.BorrowerID {
			return domain.ErrUnauthorized
		}
		if l.State != domain.StateFunded {
			return domain.ErrInvalidState
		}

		required, err := money.ShareOf(l.RequestedAmount, l.MinCollateralBps)
		if err != nil {
			return err
		}
		if l.CollateralAmount < required {
			return fmt.Errorf("%w: collateral %d below required %d",
				domain.ErrInsufficientCollateral, l.CollateralAmount, required)
		}

		if _, err := r.Escrow.Withdraw(ctx, l.FundsEscrow(), l.RequestedAmount); err != nil {
			return err
		}

		now := u.nowUnix()
		l.StartTs = now
		l.DueTs = now + l.TermSecs
		l.LastAccrualTs = now
		l.State = domain.StateDrawn
		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		e := &event.Event{
			Type: event.TypeLoanDrawn, LoanID: l.LoanID, ActorID: borrowerID,
			Amount: l.RequestedAmount, Total: l.OutstandingPrincipal,
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

// Repay accrues interest up to now, then applies the payment interest-
// first. A payment exceeding the combined obligations is rejected whole;
// the rolled-back accrual is recomputed on the next touch. Settling the
// loan returns leftover collateral to the borrower in the same commit.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayResult, error) {
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidParameter)
	}

	var (
		out *RepayResult
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if in.BorrowerID != l.BorrowerID {
			return domain.ErrUnauthorized
		}
		if !l.State.Repayable() {
			return domain.ErrInvalidState
		}

		now := u.nowUnix()
		if err := accrue(l, now); err != nil {
			return err
		}

		obligations, err := money.Add(l.AccruedInterest, l.OutstandingPrincipal)
		if err != nil {
			return err
		}
		if in.Amount > obligations {
			return fmt.Errorf("%w: payment %d exceeds outstanding obligations %d",
				domain.ErrInvalidParameter, in.Amount, obligations)
		}

		if _, err := r.Escrow.Deposit(ctx, l.FundsEscrow(), in.Amount); err != nil {
			return err
		}

		paidInterest, paidPrincipal, err := applyWaterfall(l, in.Amount)
		if err != nil {
			return err
		}

		e := &event.Event{
			Type: event.TypeRepayment, LoanID: l.LoanID, ActorID: in.BorrowerID,
			Amount: in.Amount, Total: l.OutstandingPrincipal,
		}
		evs = append(evs, e)
		if err := r.Events.Append(ctx, e); err != nil {
			return err
		}

		if l.AccruedInterest == 0 && l.OutstandingPrincipal == 0 {
			settledEv, err := u.settle(ctx, r, l)
			if err != nil {
				return err
			}
			evs = append(evs, settledEv)
		} else if now > l.DueTs {
			l.State = domain.StateDelinquent
		} else {
			l.State = domain.StateInRepayment
		}

		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = &RepayResult{Loan: toDTO(l), PaidInterest: paidInterest, PaidPrincipal: paidPrincipal}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	u.publish(ctx, evs)
	return out, nil
}

// settle marks the loan Settled and returns whatever collateral the
// escrow still holds, bounded by the recorded collateral amount.
func (u *Usecase) settle(ctx context.Context, r uow.Repos, l *domain.Loan) (*event.Event, error) {
	bal, err := r.Escrow.Balance(ctx, l.CollateralEscrow())
	if err != nil {
		return nil, err
	}
	toReturn := money.Min(l.CollateralAmount, bal)
	if toReturn > 0 {
		if _, err := r.Escrow.Withdraw(ctx, l.CollateralEscrow(), toReturn); err != nil {
			return nil, err
		}
		if l.CollateralAmount, err = money.Sub(l.CollateralAmount, toReturn); err != nil {
			return nil, err
		}
	}

	l.State = domain.StateSettled
	e := &event.Event{
		Type: event.TypeLoanSettled, LoanID: l.LoanID, ActorID: l.BorrowerID,
		Amount: toReturn, Total: l.TotalRepaidPrincipal,
	}
	return e, r.Events.Append(ctx, e)
}
