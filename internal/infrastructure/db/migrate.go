package db

import (
	"gorm.io/gorm"

	"loans-marketplace-backend/internal/domain/escrow"
	"loans-marketplace-backend/internal/domain/event"
	"loans-marketplace-backend/internal/domain/loan"
	"loans-marketplace-backend/internal/domain/protocol"
	"loans-marketplace-backend/internal/domain/share"
)

// AutoMigrate creates/updates the marketplace schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loan.Loan{},
		&share.LenderShare{},
		&escrow.Account{},
		&protocol.Config{},
		&event.Event{},
	)
}
