package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type SignupRequest struct {
	Firstname       string `json:"firstname" validate:"required"`
	Lastname        string `json:"lastname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=3"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Signup(c echo.Context) error {
	req := new(SignupRequest)
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.ErrValidation, "invalid request")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(),
		req.Firstname, req.Lastname, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "User registered successfully",
		"data":    user,
	})
}

func (h *Handler) Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperr.New(apperr.ErrValidation, "invalid request")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Login successful",
		"data": echo.Map{
			"accessToken": token,
			"user":        user,
		},
	})
}
