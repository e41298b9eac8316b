package escrow

import (
	"errors"
	"time"
)

// ErrInsufficientFunds is returned when a withdrawal exceeds the current
// balance of the named account.
var ErrInsufficientFunds = errors.New("insufficient escrow funds")

// Account is a custodial balance held on behalf of a loan. Balance
// changes commit with the surrounding transaction and are visible to the
// next operation in logical order.
type Account struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	Name    string `gorm:"size:64;uniqueIndex:ux_escrow_name" json:"name"`
	Balance uint64 `gorm:"column:balance" json:"balance"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "escrow_accounts" }
