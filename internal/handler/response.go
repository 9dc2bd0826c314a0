package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIResponse describes the envelope used for confirmations and errors.
// Listing payloads are returned bare.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{Status: "success", Message: message, Data: data})
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{Status: "error", Message: message})
}

// FieldError reports a rejected input field with 400.
func FieldError(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, APIResponse{Status: "error", Message: message, Field: field})
}
