package protocol

import (
	"context"
	"errors"
	"strings"
	"testing"

	"loans-marketplace-backend/internal/adapter/repository/mysql"
	escrowDomain "loans-marketplace-backend/internal/domain/escrow"
	eventDomain "loans-marketplace-backend/internal/domain/event"
	loanDomain "loans-marketplace-backend/internal/domain/loan"
	domain "loans-marketplace-backend/internal/domain/protocol"
	shareDomain "loans-marketplace-backend/internal/domain/share"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var adminID = strings.Repeat("a", 32)

func newTestUsecase(t *testing.T) *Usecase {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = gdb.AutoMigrate(
		&loanDomain.Loan{},
		&shareDomain.LenderShare{},
		&escrowDomain.Account{},
		&domain.Config{},
		&eventDomain.Event{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return NewUsecase(mysql.NewGormUoW(gdb))
}

func TestBootstrap_Once(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	if _, err := uc.Get(ctx); !errors.Is(err, domain.ErrNotBootstrapped) {
		t.Fatalf("want ErrNotBootstrapped before bootstrap, got %v", err)
	}

	dto, err := uc.Bootstrap(ctx, BootstrapInput{AdminID: adminID, FeeBps: 50, AssetCode: "USDC"})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if dto.AdminID != adminID || dto.FeeBps != 50 || dto.AssetCode != "USDC" {
		t.Fatalf("config: %+v", dto)
	}

	if _, err := uc.Bootstrap(ctx, BootstrapInput{AdminID: adminID, FeeBps: 50, AssetCode: "USDC"}); !errors.Is(err, domain.ErrAlreadyBootstrapped) {
		t.Fatalf("want ErrAlreadyBootstrapped, got %v", err)
	}

	got, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FeeBps != 50 {
		t.Fatalf("fee_bps=%d", got.FeeBps)
	}
}

func TestBootstrap_Validation(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   BootstrapInput
	}{
		{"short admin", BootstrapInput{AdminID: "admin", FeeBps: 50, AssetCode: "USDC"}},
		{"fee above cap", BootstrapInput{AdminID: adminID, FeeBps: domain.MaxFeeBps + 1, AssetCode: "USDC"}},
		{"empty asset", BootstrapInput{AdminID: adminID, FeeBps: 50}},
	}
	for _, c := range cases {
		if _, err := uc.Bootstrap(ctx, c.in); !errors.Is(err, loanDomain.ErrInvalidParameter) {
			t.Fatalf("%s: want ErrInvalidParameter, got %v", c.name, err)
		}
	}
}

func TestUpdate_AdminGated(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()
	if _, err := uc.Bootstrap(ctx, BootstrapInput{AdminID: adminID, FeeBps: 50, AssetCode: "USDC"}); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	fee := uint32(75)
	if _, err := uc.Update(ctx, UpdateInput{CallerID: strings.Repeat("x", 32), FeeBps: &fee}); !errors.Is(err, loanDomain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for non-admin, got %v", err)
	}

	dto, err := uc.Update(ctx, UpdateInput{CallerID: adminID, FeeBps: &fee})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.FeeBps != 75 {
		t.Fatalf("fee_bps=%d", dto.FeeBps)
	}

	over := uint32(domain.MaxFeeBps + 1)
	if _, err := uc.Update(ctx, UpdateInput{CallerID: adminID, FeeBps: &over}); !errors.Is(err, loanDomain.ErrInvalidParameter) {
		t.Fatalf("want ErrInvalidParameter above fee cap, got %v", err)
	}
}

func TestUpdate_AdminHandover(t *testing.T) {
	uc := newTestUsecase(t)
	ctx := context.Background()
	if _, err := uc.Bootstrap(ctx, BootstrapInput{AdminID: adminID, FeeBps: 50, AssetCode: "USDC"}); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	next := strings.Repeat("c", 32)
	dto, err := uc.Update(ctx, UpdateInput{CallerID: adminID, AdminID: &next})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.AdminID != next {
		t.Fatalf("admin_id=%s", dto.AdminID)
	}

	// the old admin lost their seat
	fee := uint32(10)
	if _, err := uc.Update(ctx, UpdateInput{CallerID: adminID, FeeBps: &fee}); !errors.Is(err, loanDomain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for old admin, got %v", err)
	}
}
