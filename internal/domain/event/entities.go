package event

import (
	"time"
)

type Type string

// One event per state-changing operation, appended in the same
// transaction as the mutation it records.
const (
	TypeLoanCreated         Type = "loan_created"
	TypeLenderFunded        Type = "lender_funded"
	TypeCollateralDeposited Type = "collateral_deposited"
	TypeLoanFunded          Type = "loan_funded"
	TypeLoanDrawn           Type = "loan_drawn"
	TypeRepayment           Type = "repayment"
	TypeLoanSettled         Type = "loan_settled"
	TypeLoanDefaulted       Type = "loan_defaulted"
	TypeDefaultPayout       Type = "default_payout"
)

type Event struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	Type    Type   `gorm:"size:32;column:type;index:idx_events_type" json:"type"`
	LoanID  string `gorm:"size:32;column:loan_id;index:idx_events_loan" json:"loan_id"`
	ActorID string `gorm:"size:32;column:actor_id" json:"actor_id"`

	// Monetary delta of the operation and the resulting aggregate, where
	// one applies (both zero for pure state transitions).
	Amount uint64 `gorm:"column:amount" json:"amount"`
	Total  uint64 `gorm:"column:total" json:"total"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Event) TableName() string { return "loan_events" }
