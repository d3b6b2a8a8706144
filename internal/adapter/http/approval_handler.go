package http

import (
	"net/http"

	loanDomain "otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/usecase/approval"
	"otsc-backend/internal/usecase/disbursement"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApprovalHandler struct {
	uc        *approval.Usecase
	disburser *disbursement.Usecase
	members   member.Repository
}

func NewApprovalHandler(uc *approval.Usecase, disburser *disbursement.Usecase, members member.Repository) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, disburser: disburser, members: members}
}

// requireExecutive loads the actor and enforces the executive role.
func (h *ApprovalHandler) requireExecutive(c echo.Context) (*member.Member, error) {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return nil, err
	}
	if !actor.IsExecutive() {
		return nil, loanDomain.ErrNotAuthorized
	}
	return actor, nil
}

type approveLoanReq struct {
	AmountApproved string `json:"amount_approved" validate:"required,moneypos"`
	Notes          string `json:"notes,omitempty"`
}

func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	actor, err := h.requireExecutive(c)
	if err != nil {
		return fail(c, err)
	}
	var req approveLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	l, err := h.uc.Approve(c.Request().Context(), c.Param("loan_number"), approval.ApproveInput{
		ApproverMemberID: actor.ID,
		AmountApproved:   decimal.RequireFromString(req.AmountApproved),
		Notes:            req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type rejectLoanReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *ApprovalHandler) RejectLoan(c echo.Context) error {
	if _, err := h.requireExecutive(c); err != nil {
		return fail(c, err)
	}
	var req rejectLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	l, err := h.uc.Reject(c.Request().Context(), c.Param("loan_number"), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type disburseLoanReq struct {
	DisbursementDate string `json:"disbursement_date" validate:"required,datetime=2006-01-02"`
	DocumentPath     string `json:"document_path"     validate:"required"`
	Reference        string `json:"reference,omitempty"`
	Method           string `json:"method,omitempty"`
}

func (h *ApprovalHandler) DisburseLoan(c echo.Context) error {
	if _, err := h.requireExecutive(c); err != nil {
		return fail(c, err)
	}
	var req disburseLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	when, err := parseDate(req.DisbursementDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid disbursement_date"})
	}
	l, err := h.disburser.Disburse(c.Request().Context(), c.Param("loan_number"), disbursement.DisburseInput{
		DisbursementDate: when,
		DocumentPath:     req.DocumentPath,
		Reference:        req.Reference,
		Method:           req.Method,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type markDefaultedReq struct {
	RecoveryNotes string `json:"recovery_notes,omitempty"`
}

func (h *ApprovalHandler) MarkDefaulted(c echo.Context) error {
	if _, err := h.requireExecutive(c); err != nil {
		return fail(c, err)
	}
	var req markDefaultedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	l, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_number"), req.RecoveryNotes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
