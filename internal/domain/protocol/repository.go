package protocol

import "context"

type Repository interface {
	Create(ctx context.Context, c *Config) error
	// Get returns gorm.ErrRecordNotFound before bootstrap.
	Get(ctx context.Context) (*Config, error)
	Save(ctx context.Context, c *Config) error
}
