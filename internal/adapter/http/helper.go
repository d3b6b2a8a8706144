package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"otsc-backend/internal/domain/loan"
	"otsc-backend/internal/domain/member"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var errBadActorHeader = errors.New("missing or invalid Ax-Member-Id header")

// statusFor maps domain failures to HTTP codes. The calling layer renders
// the human-readable message; here we only pick the class.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadActorHeader):
		return http.StatusUnauthorized
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, member.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrNotAuthorized), errors.Is(err, loan.ErrConflictOfInterest):
		return http.StatusForbidden
	case errors.Is(err, loan.ErrInvalidState), errors.Is(err, loan.ErrDuplicateResponse),
		errors.Is(err, loan.ErrGuarantorsNotApproved):
		return http.StatusConflict
	case errors.Is(err, loan.ErrValidation), errors.Is(err, loan.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// actorID reads the caller's member id from the Ax-Member-Id header. The
// surrounding auth layer is responsible for having verified it.
func actorID(c echo.Context) (uint64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get("Ax-Member-Id"))
	if raw == "" {
		return 0, errBadActorHeader
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errBadActorHeader
	}
	return id, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
