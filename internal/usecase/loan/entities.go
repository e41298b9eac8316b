package loan

import (
	"time"
)

type CreateLoanInput struct {
	BorrowerID       string `json:"borrower_id"`
	Amount           uint64 `json:"amount"`
	TermSecs         int64  `json:"term_secs"`
	MaxAprBps        uint32 `json:"max_apr_bps"`
	MinCollateralBps uint32 `json:"min_collateral_bps"`
	FundingDeadline  int64  `json:"funding_deadline"`
}

type FundInput struct {
	LoanID   string `json:"-"`
	LenderID string `json:"lender_id"`
	Amount   uint64 `json:"amount"`
}

type CollateralInput struct {
	LoanID     string `json:"-"`
	BorrowerID string `json:"borrower_id"`
	Amount     uint64 `json:"amount"`
}

type RepayInput struct {
	LoanID     string `json:"-"`
	BorrowerID string `json:"borrower_id"`
	Amount     uint64 `json:"amount"`
}

type LoanDTO struct {
	LoanID     string `json:"loan_id"`
	BorrowerID string `json:"borrower_id"`
	State      string `json:"state"`

	RequestedAmount  uint64 `json:"requested_amount"`
	TermSecs         int64  `json:"term_secs"`
	MaxAprBps        uint32 `json:"max_apr_bps"`
	MinCollateralBps uint32 `json:"min_collateral_bps"`
	FundingDeadline  int64  `json:"funding_deadline"`

	FundedAmount     uint64 `json:"funded_amount"`
	CollateralAmount uint64 `json:"collateral_amount"`
	ActualAprBps     uint32 `json:"actual_apr_bps"`

	StartTs int64 `json:"start_ts,omitempty"`
	DueTs   int64 `json:"due_ts,omitempty"`

	AccruedInterest      uint64 `json:"accrued_interest"`
	OutstandingPrincipal uint64 `json:"outstanding_principal"`
	TotalRepaidPrincipal uint64 `json:"total_repaid_principal"`
	TotalRepaidInterest  uint64 `json:"total_repaid_interest"`

	CreatedAt time.Time `json:"created_at"`
}

type ShareDTO struct {
	LoanID          string `json:"loan_id"`
	LenderID        string `json:"lender_id"`
	Principal       uint64 `json:"principal"`
	RepaidPrincipal uint64 `json:"repaid_principal"`
	RepaidInterest  uint64 `json:"repaid_interest"`
	ProRataBps      uint32 `json:"pro_rata_bps"`
}

type RepayResult struct {
	Loan          *LoanDTO `json:"loan"`
	PaidInterest  uint64   `json:"paid_interest"`
	PaidPrincipal uint64   `json:"paid_principal"`
}

type PayoutResult struct {
	LoanID      string `json:"loan_id"`
	LenderID    string `json:"lender_id"`
	Entitlement uint64 `json:"entitlement"`
}
