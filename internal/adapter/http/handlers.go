package http

import (
	"errors"
	"net/http"
	"time"

	"otsc-backend/internal/domain/member"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// resolveActor loads the calling member from the Ax-Member-Id header.
func resolveActor(c echo.Context, members member.Repository) (*member.Member, error) {
	id, err := actorID(c)
	if err != nil {
		return nil, err
	}
	m, err := members.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
