package http

import (
	"net/http"
	"strconv"

	loanDomain "otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct {
	uc      *loan.Usecase
	members member.Repository
}

func NewLoanHandler(uc *loan.Usecase, members member.Repository) *LoanHandler {
	return &LoanHandler{uc: uc, members: members}
}

type securityReq struct {
	SecurityType string `json:"security_type"           validate:"required,oneof=Collateral Guarantors"`

	Guarantor1ID uint64 `json:"guarantor1_id,omitempty"`
	Guarantor2ID uint64 `json:"guarantor2_id,omitempty"`

	CollateralDescription  string `json:"collateral_description,omitempty"`
	CollateralValue        string `json:"collateral_value,omitempty"     validate:"omitempty,money"`
	CollateralDocumentPath string `json:"collateral_document_path,omitempty"`
}

type applyLoanReq struct {
	AmountRequested       string `json:"amount_requested"         validate:"required,moneypos"`
	Purpose               string `json:"purpose"                  validate:"required"`
	RepaymentPeriodMonths int    `json:"repayment_period_months"  validate:"required,gte=1"`
	securityReq
}

func (h *LoanHandler) ApplyLoan(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := loan.ApplyInput{
		MemberID:               actor.ID,
		AmountRequested:        decimal.RequireFromString(req.AmountRequested),
		Purpose:                req.Purpose,
		RepaymentPeriodMonths:  req.RepaymentPeriodMonths,
		SecurityType:           loanDomain.SecurityType(req.SecurityType),
		Guarantor1ID:           req.Guarantor1ID,
		Guarantor2ID:           req.Guarantor2ID,
		CollateralDescription:  req.CollateralDescription,
		CollateralDocumentPath: req.CollateralDocumentPath,
	}
	if req.CollateralValue != "" {
		in.CollateralValue = decimal.RequireFromString(req.CollateralValue)
	}

	l, err := h.uc.Apply(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

type editLoanReq struct {
	AmountRequested       string `json:"amount_requested"         validate:"required,moneypos"`
	Purpose               string `json:"purpose"                  validate:"required"`
	RepaymentPeriodMonths int    `json:"repayment_period_months"  validate:"required,gte=1"`
	securityReq
}

func (h *LoanHandler) EditLoan(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	var req editLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := loan.EditInput{
		AmountRequested:        decimal.RequireFromString(req.AmountRequested),
		Purpose:                req.Purpose,
		RepaymentPeriodMonths:  req.RepaymentPeriodMonths,
		SecurityType:           loanDomain.SecurityType(req.SecurityType),
		Guarantor1ID:           req.Guarantor1ID,
		Guarantor2ID:           req.Guarantor2ID,
		CollateralDescription:  req.CollateralDescription,
		CollateralDocumentPath: req.CollateralDocumentPath,
	}
	if req.CollateralValue != "" {
		in.CollateralValue = decimal.RequireFromString(req.CollateralValue)
	}

	l, err := h.uc.Edit(c.Request().Context(), c.Param("loan_number"), actor.ID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	l, err := h.uc.Cancel(c.Request().Context(), c.Param("loan_number"), actor.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	detail, err := h.uc.Get(c.Request().Context(), c.Param("loan_number"), actor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	if !actor.IsExecutive() && actor.Role != member.RoleAuditor {
		return fail(c, loanDomain.ErrNotAuthorized)
	}
	f := loanDomain.ListFilter{Status: loanDomain.Status(c.QueryParam("status"))}
	if raw := c.QueryParam("member_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "member_id must be a positive integer"})
		}
		f.MemberID = id
	}
	reg, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, reg)
}
