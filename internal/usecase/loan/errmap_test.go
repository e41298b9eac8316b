package loan

import (
	"context"
	"errors"
	"testing"

	domain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/uow"
	"loans-marketplace-backend/internal/testutil/loanmock"
	"loans-marketplace-backend/internal/testutil/uowmock"
	"loans-marketplace-backend/pkg/money"

	"gorm.io/gorm"
)

// mapErr plumbing, checked against function-backed mocks so storage
// failures can be produced at will.

func TestCreate_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("connection lost")
	m := uowmock.New()
	m.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(uow.Repos{Loans: &loanmock.Repo{
			GetFundingLoanByBorrowerIDFn: func(ctx context.Context, borrowerID string) (*domain.Loan, error) {
				return nil, boom
			},
		}})
	}

	uc := NewUsecase(m)
	_, err := uc.Create(context.Background(), CreateLoanInput{
		BorrowerID:      borrowerID,
		Amount:          1_000,
		TermSecs:        86_400,
		MaxAprBps:       100,
		FundingDeadline: uc.nowUnix() + 60,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want storage error to surface, got %v", err)
	}
}

func TestGet_MapsRecordNotFound(t *testing.T) {
	m := uowmock.New()
	m.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(uow.Repos{Loans: &loanmock.Repo{
			GetByLoanIDFn: func(ctx context.Context, loanID string) (*domain.Loan, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}})
	}

	if _, err := NewUsecase(m).Get(context.Background(), borrowerID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMapErr(t *testing.T) {
	if got := mapErr(nil); got != nil {
		t.Fatalf("mapErr(nil)=%v", got)
	}
	if got := mapErr(gorm.ErrRecordNotFound); !errors.Is(got, domain.ErrNotFound) {
		t.Fatalf("record-not-found mapped to %v", got)
	}
	if got := mapErr(money.ErrOverflow); !errors.Is(got, domain.ErrMathOverflow) {
		t.Fatalf("overflow mapped to %v", got)
	}
	other := errors.New("other")
	if got := mapErr(other); !errors.Is(got, other) {
		t.Fatalf("passthrough broken: %v", got)
	}
}
