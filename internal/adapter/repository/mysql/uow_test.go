package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"

	loanDomain "loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/uow"

	"gorm.io/gorm"
)

func TestGormUoW_WithinLoanTx_RollsBackWhole(t *testing.T) {
	gdb := newTestDB(t)
	u := NewGormUoW(gdb)
	ctx := context.Background()

	l := newLoan(strings.Repeat("b", 32))
	if err := NewLoanRepository(gdb).Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	err := u.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, got *loanDomain.Loan) error {
		got.FundedAmount = 999
		if err := r.Loans.Save(ctx, got); err != nil {
			return err
		}
		if _, err := r.Escrow.Deposit(ctx, got.FundsEscrow(), 999); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	// both writes must be gone
	after, err := NewLoanRepository(gdb).GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if after.FundedAmount != 0 {
		t.Fatalf("funded_amount=%d survived rollback", after.FundedAmount)
	}
	bal, err := NewEscrowRepository(gdb).Balance(ctx, l.FundsEscrow())
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if bal != 0 {
		t.Fatalf("escrow=%d survived rollback", bal)
	}
}

func TestGormUoW_WithinLoanTx_Commits(t *testing.T) {
	gdb := newTestDB(t)
	u := NewGormUoW(gdb)
	ctx := context.Background()

	l := newLoan(strings.Repeat("b", 32))
	if err := NewLoanRepository(gdb).Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := u.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, got *loanDomain.Loan) error {
		got.FundedAmount = 123
		return r.Loans.Save(ctx, got)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}

	after, err := NewLoanRepository(gdb).GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if after.FundedAmount != 123 {
		t.Fatalf("funded_amount=%d", after.FundedAmount)
	}
}

func TestGormUoW_WithinLoanTx_UnknownLoan(t *testing.T) {
	u := NewGormUoW(newTestDB(t))
	err := u.WithinLoanTx(context.Background(), strings.Repeat("f", 32), func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatal("fn must not run for an unknown loan")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
