package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/estate-listings/api/internal/auth"
	"github.com/octobees/estate-listings/api/internal/config"
	"github.com/octobees/estate-listings/api/internal/handler"
	middlewarepkg "github.com/octobees/estate-listings/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Properties *handler.PropertiesHandler
	Media      *handler.MediaHandler
}

// Register wires all HTTP routes for the API. Everything except /healthz is
// mounted under cfg.APIPrefix and passes through limiter when one is given.
// Authenticated routes also confirm the token's account still exists.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, accounts middlewarepkg.AccountChecker, limiter *middlewarepkg.RateLimiter, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	api := e.Group(cfg.APIPrefix)
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	requireAuth := []echo.MiddlewareFunc{middlewarepkg.JWT(jwtManager), middlewarepkg.RequireAccount(accounts)}

	api.POST("/auth/signup", handlers.Auth.Signup)
	api.POST("/auth/login", handlers.Auth.Login)
	api.GET("/auth/verify", handlers.Auth.Verify, requireAuth...)

	api.GET("/properties", handlers.Properties.List)
	api.GET("/properties/:id", handlers.Properties.Get)
	api.GET("/properties/user/properties", handlers.Properties.Mine, requireAuth...)
	api.POST("/properties", handlers.Properties.Create, requireAuth...)
	api.PATCH("/properties/:id", handlers.Properties.Update, requireAuth...)
	api.DELETE("/properties/:id", handlers.Properties.Delete, requireAuth...)
	if handlers.Media != nil {
		api.POST("/properties/images", handlers.Media.UploadImages, requireAuth...)
	}

	api.GET("/ai/response", handler.AIResponse)
}
