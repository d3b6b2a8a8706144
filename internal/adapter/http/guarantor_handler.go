package http

import (
	"net/http"

	"otsc-backend/internal/domain/member"
	"otsc-backend/internal/usecase/guarantor"

	"github.com/labstack/echo/v4"
)

type GuarantorHandler struct {
	uc      *guarantor.Usecase
	members member.Repository
}

func NewGuarantorHandler(uc *guarantor.Usecase, members member.Repository) *GuarantorHandler {
	return &GuarantorHandler{uc: uc, members: members}
}

func (h *GuarantorHandler) Approve(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	l, err := h.uc.Approve(c.Request().Context(), c.Param("loan_number"), actor.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type declineReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *GuarantorHandler) Decline(c echo.Context) error {
	actor, err := resolveActor(c, h.members)
	if err != nil {
		return fail(c, err)
	}
	var req declineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	l, err := h.uc.Decline(c.Request().Context(), c.Param("loan_number"), actor.ID, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
