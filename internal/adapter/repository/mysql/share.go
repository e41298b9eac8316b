package mysql

import (
	"context"

	shareDomain "loans-marketplace-backend/internal/domain/share"

	"gorm.io/gorm"
)

type ShareRepository struct{ db *gorm.DB }

func NewShareRepository(db *gorm.DB) *ShareRepository { return &ShareRepository{db: db} }

func (r *ShareRepository) Create(ctx context.Context, s *shareDomain.LenderShare) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShareRepository) Save(ctx context.Context, s *shareDomain.LenderShare) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ShareRepository) GetByLoanAndLender(ctx context.Context, loanID, lenderID string) (*shareDomain.LenderShare, error) {
	var out shareDomain.LenderShare
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND lender_id = ?", loanID, lenderID).
		First(&out)
	return &out, res.Error
}

func (r *ShareRepository) ListByLoanID(ctx context.Context, loanID string) ([]*shareDomain.LenderShare, error) {
	var out []*shareDomain.LenderShare
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("principal DESC, lender_id ASC").
		Find(&out)
	return out, res.Error
}
