package posts

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
	Body        string   `json:"body" validate:"required"`
}

type UpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Body        *string  `json:"body"`
	State       *string  `json:"state"`
}

func (h *Handler) Create(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.New(apperr.ErrInvalidCredentials, "unauthorized")
	}

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.ErrValidation, "invalid request")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	post, err := h.svc.Create(c.Request().Context(), claims, CreateFields{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "success", "post": post})
}

func (h *Handler) Update(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.New(apperr.ErrInvalidCredentials, "unauthorized")
	}

	req := new(UpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.ErrValidation, "invalid request")
	}

	post, err := h.svc.Update(c.Request().Context(), claims, c.Param("postId"), UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
		State:       req.State,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "post": post})
}

func (h *Handler) Delete(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.New(apperr.ErrInvalidCredentials, "unauthorized")
	}

	if err := h.svc.Delete(c.Request().Context(), claims.UserID, c.Param("postId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Post deleted successfully"})
}

func (h *Handler) GetByID(c echo.Context) error {
	// Anonymous viewers are allowed; visibility is decided by the service.
	post, err := h.svc.GetByID(c.Request().Context(), middleware.ClaimsFrom(c), c.Param("postId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "post": post})
}

func (h *Handler) ListPublished(c echo.Context) error {
	page := intParam(c, "page")
	limit := intParam(c, "limit")

	result, err := h.svc.ListPublished(c.Request().Context(), page, limit,
		c.QueryParam("search"), c.QueryParam("sortBy"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"total":  result.Total,
		"posts":  result.Posts,
	})
}

func (h *Handler) ListMine(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return apperr.New(apperr.ErrInvalidCredentials, "unauthorized")
	}

	page := intParam(c, "page")
	limit := intParam(c, "limit")

	result, err := h.svc.ListByOwner(c.Request().Context(), claims.UserID, page, limit,
		c.QueryParam("state"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"total":  result.Total,
		"posts":  result.Posts,
	})
}

// intParam returns 0 for absent or non-numeric values; the service substitutes
// its defaults.
func intParam(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
