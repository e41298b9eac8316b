package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loans-marketplace-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID       string `json:"borrower_id" validate:"required,hex32"`
	Amount           uint64 `json:"amount" validate:"required,gt=0"`
	TermSecs         int64  `json:"term_secs" validate:"required,gte=86400"`
	MaxAprBps        uint32 `json:"max_apr_bps" validate:"required,gt=0,bps"`
	MinCollateralBps uint32 `json:"min_collateral_bps" validate:"bps"`
	FundingDeadline  int64  `json:"funding_deadline" validate:"required,gt=0"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		BorrowerID:       req.BorrowerID,
		Amount:           req.Amount,
		TermSecs:         req.TermSecs,
		MaxAprBps:        req.MaxAprBps,
		MinCollateralBps: req.MinCollateralBps,
		FundingDeadline:  req.FundingDeadline,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListShares(c echo.Context) error {
	out, err := h.uc.ListShares(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListEvents(c echo.Context) error {
	out, err := h.uc.ListEvents(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type fundReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
	Amount   uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) Fund(c echo.Context) error {
	var req fundReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Fund(c.Request().Context(), loan.FundInput{
		LoanID:   c.Param("loan_id"),
		LenderID: req.LenderID,
		Amount:   req.Amount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type collateralReq struct {
	BorrowerID string `json:"borrower_id" validate:"required,hex32"`
	Amount     uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) DepositCollateral(c echo.Context) error {
	var req collateralReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.DepositCollateral(c.Request().Context(), loan.CollateralInput{
		LoanID:     c.Param("loan_id"),
		BorrowerID: req.BorrowerID,
		Amount:     req.Amount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type callerReq struct {
	CallerID string `json:"caller_id" validate:"required,hex32"`
}

func (h *LoanHandler) FinalizeFunding(c echo.Context) error {
	var req callerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.FinalizeFunding(c.Request().Context(), c.Param("loan_id"), req.CallerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Drawdown(c echo.Context) error {
	var req callerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Drawdown(c.Request().Context(), c.Param("loan_id"), req.CallerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type repayReq struct {
	BorrowerID string `json:"borrower_id" validate:"required,hex32"`
	Amount     uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *LoanHandler) Repay(c echo.Context) error {
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res, err := h.uc.Repay(c.Request().Context(), loan.RepayInput{
		LoanID:     c.Param("loan_id"),
		BorrowerID: req.BorrowerID,
		Amount:     req.Amount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) MarkDefault(c echo.Context) error {
	var req callerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.MarkDefault(c.Request().Context(), c.Param("loan_id"), req.CallerID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type payoutReq struct {
	LenderID string `json:"lender_id" validate:"required,hex32"`
}

func (h *LoanHandler) ClaimDefaultPayout(c echo.Context) error {
	var req payoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	res, err := h.uc.ClaimDefaultPayout(c.Request().Context(), c.Param("loan_id"), req.LenderID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
