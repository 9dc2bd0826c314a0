package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/estate-listings/api/internal/dto"
	"github.com/octobees/estate-listings/api/internal/entity"
	middlewarepkg "github.com/octobees/estate-listings/api/internal/middleware"
	"github.com/octobees/estate-listings/api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /auth/signup requests.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var verr service.ValidationError
		switch {
		case errors.As(err, &verr):
			return FieldError(c, verr.Field, verr.Message)
		case errors.Is(err, service.ErrEmailAlreadyExists):
			return Error(c, http.StatusConflict, "email already exists")
		default:
			zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("register user")
			return Error(c, http.StatusInternalServerError, "unable to register user")
		}
	}

	return Success(c, http.StatusCreated, "User registered successfully", toUserResponse(user))
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("login")
		return Error(c, http.StatusInternalServerError, "unable to authenticate")
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: toUserResponse(user)})
}

// Verify handles GET /auth/verify requests.
func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), middlewarepkg.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return Error(c, http.StatusNotFound, "user not found")
		}
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("verify user")
		return Error(c, http.StatusInternalServerError, "unable to verify user")
	}

	return c.JSON(http.StatusOK, dto.VerifyResponse{User: toUserResponse(user)})
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID.String(), Name: user.Name, Email: user.Email}
}
