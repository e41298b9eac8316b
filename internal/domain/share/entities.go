package share

import (
	"time"
)

// LenderShare is one per (lender, loan) pair, created on the lender's
// first contribution. Repaid fields are written only by settlement or
// default payout, each at most once per distribution event.
type LenderShare struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID   string `gorm:"size:32;column:loan_id;uniqueIndex:ux_shares_loan_lender" json:"loan_id"`
	LenderID string `gorm:"size:32;column:lender_id;uniqueIndex:ux_shares_loan_lender" json:"lender_id"`

	// Cumulative contribution; only grows until funding completes.
	Principal uint64 `gorm:"column:principal" json:"principal"`

	RepaidPrincipal uint64 `gorm:"column:repaid_principal" json:"repaid_principal"`
	RepaidInterest  uint64 `gorm:"column:repaid_interest" json:"repaid_interest"`

	// Share of total funding in basis points, fixed at finalization.
	ProRataBps uint32 `gorm:"column:pro_rata_bps" json:"pro_rata_bps"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LenderShare) TableName() string { return "lender_shares" }

// Claimed reports whether this share already received a payout.
func (s *LenderShare) Claimed() bool { return s.RepaidPrincipal > 0 || s.RepaidInterest > 0 }
