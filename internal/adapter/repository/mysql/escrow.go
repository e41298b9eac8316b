package mysql

import (
	"context"
	"errors"

	escrowDomain "loans-marketplace-backend/internal/domain/escrow"
	"loans-marketplace-backend/pkg/money"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EscrowRepository struct{ db *gorm.DB }

func NewEscrowRepository(db *gorm.DB) *EscrowRepository { return &EscrowRepository{db: db} }

func (r *EscrowRepository) lockedAccount(ctx context.Context, name string) (*escrowDomain.Account, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var acc escrowDomain.Account
	res := q.Where("name = ?", name).First(&acc)
	return &acc, res.Error
}

func (r *EscrowRepository) Deposit(ctx context.Context, name string, amount uint64) (*escrowDomain.Account, error) {
	acc, err := r.lockedAccount(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acc = &escrowDomain.Account{Name: name}
		if err := r.db.WithContext(ctx).Create(acc).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	newBal, err := money.Add(acc.Balance, amount)
	if err != nil {
		return nil, err
	}
	acc.Balance = newBal
	if err := r.db.WithContext(ctx).Save(acc).Error; err != nil {
		return nil, err
	}
	return acc, nil
}

func (r *EscrowRepository) Withdraw(ctx context.Context, name string, amount uint64) (*escrowDomain.Account, error) {
	acc, err := r.lockedAccount(ctx, name)
	if err != nil {
		return nil, err
	}
	if amount > acc.Balance {
		return nil, escrowDomain.ErrInsufficientFunds
	}
	newBal, err := money.Sub(acc.Balance, amount)
	if err != nil {
		return nil, err
	}
	acc.Balance = newBal
	if err := r.db.WithContext(ctx).Save(acc).Error; err != nil {
		return nil, err
	}
	return acc, nil
}

func (r *EscrowRepository) Balance(ctx context.Context, name string) (uint64, error) {
	var acc escrowDomain.Account
	res := r.db.WithContext(ctx).Where("name = ?", name).First(&acc)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if res.Error != nil {
		return 0, res.Error
	}
	return acc.Balance, nil
}
