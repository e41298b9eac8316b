package loan

import (
	domain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/pkg/money"
)

// applyWaterfall allocates a payment against the loan: accrued interest
// first, then outstanding principal. The caller has already verified the
// amount does not exceed the combined obligations, so nothing remains.
func applyWaterfall(l *domain.Loan, amount uint64) (paidInterest, paidPrincipal uint64, err error) {
	remaining := amount

	if l.AccruedInterest > 0 && remaining > 0 {
		paidInterest = money.Min(remaining, l.AccruedInterest)
		if l.AccruedInterest, err = money.Sub(l.AccruedInterest, paidInterest); err != nil {
			return 0, 0, err
		}
		if l.TotalRepaidInterest, err = money.Add(l.TotalRepaidInterest, paidInterest); err != nil {
			return 0, 0, err
		}
		remaining -= paidInterest
	}

	if l.OutstandingPrincipal > 0 && remaining > 0 {
		paidPrincipal = money.Min(remaining, l.OutstandingPrincipal)
		if l.OutstandingPrincipal, err = money.Sub(l.OutstandingPrincipal, paidPrincipal); err != nil {
			return 0, 0, err
		}
		if l.TotalRepaidPrincipal, err = money.Add(l.TotalRepaidPrincipal, paidPrincipal); err != nil {
			return 0, 0, err
		}
	}

	return paidInterest, paidPrincipal, nil
}

// accrue advances the interest clock to now. Simple interest on the
// outstanding principal at the locked APR; never retroactive.
func accrue(l *domain.Loan, now int64) error {
	if now <= l.LastAccrualTs {
		return nil
	}
	delta, err := money.AccrueInterest(l.OutstandingPrincipal, l.ActualAprBps, now-l.LastAccrualTs)
	if err != nil {
		return err
	}
	if l.AccruedInterest, err = money.Add(l.AccruedInterest, delta); err != nil {
		return err
	}
	l.LastAccrualTs = now
	return nil
}
