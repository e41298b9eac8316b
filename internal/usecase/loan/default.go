package loan

import (
	"context"
	"fmt"

	"loans-marketplace-backend/internal/domain/event"
	domain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/uow"
	"loans-marketplace-backend/pkg/money"
)

// MarkDefault moves an overdue loan to Defaulted. Any caller may invoke
// it once the grace period after the due date has elapsed; the seized
// collateral stays in escrow for pro-rata claims.
func (u *Usecase) MarkDefault(ctx context.Context, loanID, callerID string) (*LoanDTO, error) {
	var (
		dto *LoanDTO
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.State.Repayable() {
			return domain.ErrInvalidState
		}
		now := u.nowUnix()
		if now <= l.DueTs+domain.GracePeriodSecs {
			return fmt.Errorf("%w: grace period runs until %d",
				domain.ErrTooEarly, l.DueTs+domain.GracePeriodSecs)
		}

		// accrue one last time so the defaulted obligations are current
		if err := accrue(l, now); err != nil {
			return err
		}

		bal, err := r.Escrow.Balance(ctx, l.CollateralEscrow())
		if err != nil {
			return err
		}
		seized := money.Min(l.CollateralAmount, bal)
		l.CollateralAmount = seized

		l.State = domain.StateDefaulted
		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		e := &event.Event{
			Type: event.TypeLoanDefaulted, LoanID: l.LoanID, ActorID: callerID,
			Amount: seized, Total: l.OutstandingPrincipal,
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

// ClaimDefaultPayout pays one lender their pro-rata slice of the seized
// collateral. At most one payout per lender per loan; the repaid fields
// double as the claimed marker.
func (u *Usecase) ClaimDefaultPayout(ctx context.Context, loanID, lenderID string) (*PayoutResult, error) {
	var (
		out *PayoutResult
		evs []*event.Event
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StateDefaulted {
			return domain.ErrInvalidState
		}

		s, err := r.Shares.GetByLoanAndLender(ctx, l.LoanID, lenderID)
		if err != nil {
			return err
		}
		if s.Claimed() {
			return domain.ErrAlreadyClaimed
		}

		// the pot is the collateral recorded at default time; slicing off
		// the live balance would shrink every claim after the first
		base := l.CollateralAmount
		entitlement, err := money.ShareOf(base, s.ProRataBps)
		if err != nil {
			return err
		}

		if entitlement > 0 {
			if _, err := r.Escrow.Withdraw(ctx, l.CollateralEscrow(), entitlement); err != nil {
				return err
			}
		}

		s.RepaidPrincipal = entitlement
		if err := r.Shares.Save(ctx, s); err != nil {
			return err
		}

		e := &event.Event{
			Type: event.TypeDefaultPayout, LoanID: l.LoanID, ActorID: lenderID,
			Amount: entitlement, Total: base,
		}
		evs = append(evs, e)
		if err := r.Events.Append(ctx, e); err != nil {
			return err
		}
		out = &PayoutResult{LoanID: l.LoanID, LenderID: lenderID, Entitlement: entitlement}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	u.publish(ctx, evs)
	return out, nil
}
