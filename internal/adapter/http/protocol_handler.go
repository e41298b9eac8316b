package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loans-marketplace-backend/internal/usecase/protocol"
)

type ProtocolHandler struct{ uc *protocol.Usecase }

func NewProtocolHandler(uc *protocol.Usecase) *ProtocolHandler { return &ProtocolHandler{uc: uc} }

type bootstrapReq struct {
	AdminID   string `json:"admin_id" validate:"required,hex32"`
	FeeBps    uint32 `json:"fee_bps" validate:"lte=1000"`
	AssetCode string `json:"asset_code" validate:"required"`
}

func (h *ProtocolHandler) Bootstrap(c echo.Context) error {
	var req bootstrapReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Bootstrap(c.Request().Context(), protocol.BootstrapInput{
		AdminID:   req.AdminID,
		FeeBps:    req.FeeBps,
		AssetCode: req.AssetCode,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProtocolHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateConfigReq struct {
	CallerID string  `json:"caller_id" validate:"required,hex32"`
	FeeBps   *uint32 `json:"fee_bps,omitempty"`
	AdminID  *string `json:"admin_id,omitempty"`
}

func (h *ProtocolHandler) Update(c echo.Context) error {
	var req updateConfigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Update(c.Request().Context(), protocol.UpdateInput{
		CallerID: req.CallerID,
		FeeBps:   req.FeeBps,
		AdminID:  req.AdminID,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
