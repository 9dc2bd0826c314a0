package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AIResponse handles GET /ai/response. The assistant is not available yet.
func AIResponse(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "This feature will be available later."})
}
