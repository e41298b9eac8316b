package mysql

import (
	"context"

	protocolDomain "loans-marketplace-backend/internal/domain/protocol"

	"gorm.io/gorm"
)

type ProtocolRepository struct{ db *gorm.DB }

func NewProtocolRepository(db *gorm.DB) *ProtocolRepository { return &ProtocolRepository{db: db} }

func (r *ProtocolRepository) Create(ctx context.Context, c *protocolDomain.Config) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ProtocolRepository) Get(ctx context.Context) (*protocolDomain.Config, error) {
	var out protocolDomain.Config
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	return &out, res.Error
}

func (r *ProtocolRepository) Save(ctx context.Context, c *protocolDomain.Config) error {
	return r.db.WithContext(ctx).Save(c).Error
}
