package share

import "context"

type Repository interface {
	Create(ctx context.Context, s *LenderShare) error
	// GetByLoanAndLender returns gorm.ErrRecordNotFound before the
	// lender's first contribution.
	GetByLoanAndLender(ctx context.Context, loanID, lenderID string) (*LenderShare, error)
	ListByLoanID(ctx context.Context, loanID string) ([]*LenderShare, error)
	Save(ctx context.Context, s *LenderShare) error
}
