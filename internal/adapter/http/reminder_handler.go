package http

import (
	"net/http"
	"strconv"

	"otsc-backend/internal/usecase/reminder"

	"github.com/labstack/echo/v4"
)

type ReminderHandler struct {
	uc *reminder.Usecase
}

func NewReminderHandler(uc *reminder.Usecase) *ReminderHandler {
	return &ReminderHandler{uc: uc}
}

// Scan is hit by the external daily scheduler.
func (h *ReminderHandler) Scan(c echo.Context) error {
	summary, err := h.uc.Scan(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *ReminderHandler) Overdue(c echo.Context) error {
	loans, err := h.uc.Overdue(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans, "count": len(loans)})
}

func (h *ReminderHandler) Upcoming(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid days parameter"})
		}
		days = n
	}
	loans, err := h.uc.Upcoming(c.Request().Context(), days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans, "count": len(loans)})
}
