package protocol

import (
	"errors"
	"time"
)

var (
	ErrNotBootstrapped     = errors.New("protocol config not bootstrapped")
	ErrAlreadyBootstrapped = errors.New("protocol config already bootstrapped")
)

// MaxFeeBps caps the protocol fee at 10%.
const MaxFeeBps uint32 = 1_000

// Config is the process-wide protocol record, created once at bootstrap
// and mutable only by the admin identity.
type Config struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	AdminID   string `gorm:"size:32;column:admin_id" json:"admin_id"`
	FeeBps    uint32 `gorm:"column:fee_bps" json:"fee_bps"`
	AssetCode string `gorm:"size:16;column:asset_code" json:"asset_code"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Config) TableName() string { return "protocol_configs" }
