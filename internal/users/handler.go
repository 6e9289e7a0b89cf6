package users

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetByID returns a public user profile. The password hash never serializes.
func (h *Handler) GetByID(c echo.Context) error {
	user, err := h.repo.GetByID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "User details retrieved successfully",
		"data":    user,
	})
}
