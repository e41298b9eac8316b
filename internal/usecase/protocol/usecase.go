package protocol

import (
	"context"
	"errors"
	"fmt"

	loanDomain "loans-marketplace-backend/internal/domain/loan"
	domain "loans-marketplace-backend/internal/domain/protocol"
	"loans-marketplace-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type BootstrapInput struct {
	AdminID   string `json:"admin_id"`
	FeeBps    uint32 `json:"fee_bps"`
	AssetCode string `json:"asset_code"`
}

type UpdateInput struct {
	CallerID string  `json:"-"`
	FeeBps   *uint32 `json:"fee_bps,omitempty"`
	AdminID  *string `json:"admin_id,omitempty"`
}

type ConfigDTO struct {
	AdminID   string `json:"admin_id"`
	FeeBps    uint32 `json:"fee_bps"`
	AssetCode string `json:"asset_code"`
}

// Bootstrap creates the single protocol config record. Exactly once per
// deployment.
func (u *Usecase) Bootstrap(ctx context.Context, in BootstrapInput) (*ConfigDTO, error) {
	if len(in.AdminID) != 32 {
		return nil, fmt.Errorf("%w: admin_id must be 32-char hex", loanDomain.ErrInvalidParameter)
	}
	if in.FeeBps > domain.MaxFeeBps {
		return nil, fmt.Errorf("%w: fee_bps above %d", loanDomain.ErrInvalidParameter, domain.MaxFeeBps)
	}
	if in.AssetCode == "" {
		return nil, fmt.Errorf("%w: asset_code required", loanDomain.ErrInvalidParameter)
	}

	c := &domain.Config{AdminID: in.AdminID, FeeBps: in.FeeBps, AssetCode: in.AssetCode}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Protocol.Get(ctx)
		switch {
		case err == nil:
			return domain.ErrAlreadyBootstrapped
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return r.Protocol.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return toConfigDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context) (*ConfigDTO, error) {
	var dto *ConfigDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Protocol.Get(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotBootstrapped
		}
		if err != nil {
			return err
		}
		dto = toConfigDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Update mutates protocol parameters; admin only.
func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*ConfigDTO, error) {
	var dto *ConfigDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Protocol.Get(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotBootstrapped
		}
		if err != nil {
			return err
		}
		if in.CallerID != c.AdminID {
			return loanDomain.ErrUnauthorized
		}
		if in.FeeBps != nil {
			if *in.FeeBps > domain.MaxFeeBps {
				return fmt.Errorf("%w: fee_bps above %d", loanDomain.ErrInvalidParameter, domain.MaxFeeBps)
			}
			c.FeeBps = *in.FeeBps
		}
		if in.AdminID != nil {
			if len(*in.AdminID) != 32 {
				return fmt.Errorf("%w: admin_id must be 32-char hex", loanDomain.ErrInvalidParameter)
			}
			c.AdminID = *in.AdminID
		}
		if err := r.Protocol.Save(ctx, c); err != nil {
			return err
		}
		dto = toConfigDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toConfigDTO(c *domain.Config) *ConfigDTO {
	return &ConfigDTO{AdminID: c.AdminID, FeeBps: c.FeeBps, AssetCode: c.AssetCode}
}
