package mysql

import (
	"testing"

	escrowDomain "loans-marketplace-backend/internal/domain/escrow"
	eventDomain "loans-marketplace-backend/internal/domain/event"
	loanDomain "loans-marketplace-backend/internal/domain/loan"
	protocolDomain "loans-marketplace-backend/internal/domain/protocol"
	shareDomain "loans-marketplace-backend/internal/domain/share"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = gdb.AutoMigrate(
		&loanDomain.Loan{},
		&shareDomain.LenderShare{},
		&escrowDomain.Account{},
		&protocolDomain.Config{},
		&eventDomain.Event{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}
