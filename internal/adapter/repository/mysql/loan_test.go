package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"

	loanDomain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/pkg/id"

	"gorm.io/gorm"
)

func newLoan(borrowerID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:               id.NewID32(),
		BorrowerID:           borrowerID,
		RequestedAmount:      1_000_000,
		TermSecs:             30 * 86_400,
		MaxAprBps:            1200,
		FundingDeadline:      1_700_086_400,
		State:                loanDomain.StateFunding,
		OutstandingPrincipal: 1_000_000,
	}
}

func TestLoanRepository_CreateGetSave(t *testing.T) {
	repo := NewLoanRepository(newTestDB(t))
	ctx := context.Background()
	borrower := strings.Repeat("b", 32)

	l := newLoan(borrower)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.BorrowerID != borrower || got.RequestedAmount != 1_000_000 {
		t.Fatalf("got %+v", got)
	}

	got.State = loanDomain.StateFunded
	got.FundedAmount = 1_000_000
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := repo.GetByLoanIDForUpdate(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanIDForUpdate: %v", err)
	}
	if again.State != loanDomain.StateFunded || again.FundedAmount != 1_000_000 {
		t.Fatalf("after save: %+v", again)
	}
}

func TestLoanRepository_GetByLoanID_NotFound(t *testing.T) {
	repo := NewLoanRepository(newTestDB(t))
	if _, err := repo.GetByLoanID(context.Background(), strings.Repeat("f", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestLoanRepository_GetFundingLoanByBorrowerID(t *testing.T) {
	repo := NewLoanRepository(newTestDB(t))
	ctx := context.Background()
	borrower := strings.Repeat("b", 32)

	settled := newLoan(borrower)
	settled.State = loanDomain.StateSettled
	if err := repo.Create(ctx, settled); err != nil {
		t.Fatalf("Create settled: %v", err)
	}

	// only funding-state loans count
	if _, err := repo.GetFundingLoanByBorrowerID(ctx, borrower); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound with no funding loan, got %v", err)
	}

	open := newLoan(borrower)
	if err := repo.Create(ctx, open); err != nil {
		t.Fatalf("Create open: %v", err)
	}

	got, err := repo.GetFundingLoanByBorrowerID(ctx, borrower)
	if err != nil {
		t.Fatalf("GetFundingLoanByBorrowerID: %v", err)
	}
	if got.LoanID != open.LoanID {
		t.Fatalf("got %s, want %s", got.LoanID, open.LoanID)
	}

	// other borrowers' loans are invisible
	if _, err := repo.GetFundingLoanByBorrowerID(ctx, strings.Repeat("c", 32)); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound for other borrower, got %v", err)
	}
}
