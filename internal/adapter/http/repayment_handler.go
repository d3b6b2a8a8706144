package http

import (
	"net/http"

	loanDomain "otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type RepaymentHandler struct {
	uc      *repayment.Usecase
	members member.Repository
}

func NewRepaymentHandler(uc *repayment.Usecase, members member.Repository) *RepaymentHandler {
	return &RepaymentHandler{uc: uc, members: members}
}

type recordRepaymentReq struct {
	Amount         string `json:"amount"                validate:"required,moneypos"`
	PaymentDate    string `json:"payment_date"          validate:"required,datetime=2006-01-02"`
	PaymentMethod  string `json:"payment_method"        validate:"required"`
	TransactionRef string `json:"transaction_reference,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func (h *RepaymentHandler) RecordRepayment(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	if !actor.IsExecutive() {
		return fail(c, loanDomain.ErrNotAuthorized)
	}
	var req recordRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	when, err := parseDate(req.PaymentDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment_date"})
	}
	res, err := h.uc.Record(c.Request().Context(), c.Param("loan_number"), repayment.RecordInput{
		Amount:         decimal.RequireFromString(req.Amount),
		PaymentDate:    when,
		PaymentMethod:  req.PaymentMethod,
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
		RecordedBy:     actor.ID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}
