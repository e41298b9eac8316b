package loan

import (
	"time"
)

type State string

const (
	StateFunding     State = "funding"
	StateFunded      State = "funded"
	StateDrawn       State = "drawn"
	StateInRepayment State = "in_repayment"
	StateDelinquent  State = "delinquent"
	StateDefaulted   State = "defaulted"
	StateSettled     State = "settled"
)

// Repayable reports whether the accrual clock is running and payments may
// be applied: drawdown has happened and the loan is not terminal.
func (s State) Repayable() bool {
	return s == StateDrawn || s == StateInRepayment || s == StateDelinquent
}

// Terminal states never transition again.
func (s State) Terminal() bool { return s == StateSettled || s == StateDefaulted }

// GracePeriodSecs is the delay after due_ts before a loan may be marked
// defaulted.
const GracePeriodSecs int64 = 7 * 86_400

type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID string `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`

	// Terms, immutable after creation.
	RequestedAmount  uint64 `gorm:"column:requested_amount" json:"requested_amount"`
	TermSecs         int64  `gorm:"column:term_secs" json:"term_secs"`
	MaxAprBps        uint32 `gorm:"column:max_apr_bps" json:"max_apr_bps"`
	MinCollateralBps uint32 `gorm:"column:min_collateral_bps" json:"min_collateral_bps"`
	FundingDeadline  int64  `gorm:"column:funding_deadline" json:"funding_deadline"`

	State State `gorm:"size:16;column:state;default:'funding'" json:"state"`

	// Aggregates, mutated only by funding/collateral/repayment ops.
	FundedAmount     uint64 `gorm:"column:funded_amount" json:"funded_amount"`
	CollateralAmount uint64 `gorm:"column:collateral_amount" json:"collateral_amount"`

	// Locked when funding completes.
	ActualAprBps uint32 `gorm:"column:actual_apr_bps" json:"actual_apr_bps"`

	// Set once at drawdown.
	StartTs int64 `gorm:"column:start_ts" json:"start_ts"`
	DueTs   int64 `gorm:"column:due_ts" json:"due_ts"`

	// Servicing fields, mutated only by repayment ops.
	LastAccrualTs        int64  `gorm:"column:last_accrual_ts" json:"last_accrual_ts"`
	AccruedInterest      uint64 `gorm:"column:accrued_interest" json:"accrued_interest"`
	OutstandingPrincipal uint64 `gorm:"column:outstanding_principal" json:"outstanding_principal"`

	TotalRepaidPrincipal uint64 `gorm:"column:total_repaid_principal" json:"total_repaid_principal"`
	TotalRepaidInterest  uint64 `gorm:"column:total_repaid_interest" json:"total_repaid_interest"`

	StateUpdatedAt time.Time `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// FundsEscrow and CollateralEscrow are the two custodial balances backing
// one loan.
func (l *Loan) FundsEscrow() string      { return "loan:" + l.LoanID + ":funds" }
func (l *Loan) CollateralEscrow() string { return "loan:" + l.LoanID + ":collateral" }
