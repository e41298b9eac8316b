package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "loans-marketplace-backend/internal/domain/loan"
)

func TestMarkDefault_TooEarly(t *testing.T) {
	uc, clk, _ := newTestEngine(t)
	loanID := fundCollateralAndDraw(t, uc, clk, 200_000)

	// past due but inside the 7-day grace window
	clk.Advance(33 * 24 * time.Hour)
	if _, err := uc.MarkDefault(context.Background(), loanID, lenderA); !errors.Is(err, domain.ErrTooEarly) {
		t.Fatalf("want ErrTooEarly, got %v", err)
	}
}

func TestMarkDefault_NeverRepaidLoan(t *testing.T) {
	uc, clk, _ := newTestEngine(t)
	ctx := context.Background()
	loanID := fundCollateralAndDraw(t, uc, clk, 200_000)

	// term 30d + grace 7d, step one hour past it
	clk.Advance(37*24*time.Hour + time.Hour)
	dto, err := uc.MarkDefault(ctx, loanID, lenderA)
	if err != nil {
		t.Fatalf("MarkDefault: %v", err)
	}
	if dto.State != string(domain.StateDefaulted) {
		t.Fatalf("state=%s", dto.State)
	}

	// second call: terminal state
	if _, err := uc.MarkDefault(ctx, loanID, lenderA); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState on second mark, got %v", err)
	}
}

func TestMarkDefault_FromDelinquent(t *testing.T) {
	uc, clk, _ := newTestEngine(t)
	ctx := context.Background()
	loanID := fundCollateralAndDraw(t, uc, clk, 200_000)

	clk.Advance(32 * 24 * time.Hour)
	if _, err := uc.Repay(ctx, RepayInput{LoanID: loanID, BorrowerID: borrowerID, Amount: 1_000}); err != nil {
		t.Fatalf("Repay: %v", err)
	}

	clk.Advance(6 * 24 * time.Hour) // now > due + grace
	dto, err := uc.MarkDefault(ctx, loanID, lenderB)
	if err != nil {
		t.Fatalf("MarkDefault: %v", err)
	}
	if dto.State != string(domain.StateDefaulted) {
		t.Fatalf("state=%s", dto.State)
	}
}

func TestClaimDefaultPayout_ProRataOnce(t *testing.T) {
	uc, clk, gdb := newTestEngine(t)
	ctx := context.Background()
	loanID := fundCollateralAndDraw(t, uc, clk, 200_000)

	clk.Advance(38 * 24 * time.Hour)
	if _, err := uc.MarkDefault(ctx, loanID, lenderA); err != nil {
		t.Fatalf("MarkDefault: %v", err)
	}

	// 60% and 40% of the 200,000 seized collateral
	resA, err := uc.ClaimDefaultPayout(ctx, loanID, lenderA)
	if err != nil {
		t.Fatalf("Claim A: %v", err)
	}
	if resA.Entitlement != 120_000 {
		t.Fatalf("A entitlement=%d, want 120000", resA.Entitlement)
	}

	resB, err := uc.ClaimDefaultPayout(ctx, loanID, lenderB)
	if err != nil {
		t.Fatalf("Claim B: %v", err)
	}
	if resB.Entitlement != 80_000 {
		t.Fatalf("B entitlement=%d, want 80000", resB.Entitlement)
	}

	if bal := escrowBalance(t, gdb, "loan:"+loanID+":collateral"); bal != 0 {
		t.Fatalf("collateral escrow=%d after both claims", bal)
	}

	// double claim
	if _, err := uc.ClaimDefaultPayout(ctx, loanID, lenderA); !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("want ErrAlreadyClaimed, got %v", err)
	}
}

func TestClaimDefaultPayout_RequiresDefaultedState(t *testing.T) {
	uc, clk, _ := newTestEngine(t)
	loanID := fundCollateralAndDraw(t, uc, clk, 200_000)

	if _, err := uc.ClaimDefaultPayout(context.Background(), loanID, lenderA); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

func TestClaimDefaultPayout_UnknownLender(t *testing.T) {
	uc, clk, _ := newTestEngine(t)
	ctx := context.Background()
	loanID := fundCollateralAndDraw(t, uc, clk, 200_000)

	clk.Advance(38 * 24 * time.Hour)
	if _, err := uc.MarkDefault(ctx, loanID, lenderA); err != nil {
		t.Fatalf("MarkDefault: %v", err)
	}
	if _, err := uc.ClaimDefaultPayout(ctx, loanID, lenderC); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound for non-participant, got %v", err)
	}
}
