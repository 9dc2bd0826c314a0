package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/estate-listings/api/internal/dto"
	middlewarepkg "github.com/octobees/estate-listings/api/internal/middleware"
	"github.com/octobees/estate-listings/api/internal/query"
	"github.com/octobees/estate-listings/api/internal/service"
)

// HeaderPageLimit carries the page size applied to a search, which can be
// lower than the requested limit.
const HeaderPageLimit = "X-Page-Limit"

// PropertiesHandler exposes listing search and owner CRUD endpoints.
type PropertiesHandler struct {
	service *service.PropertiesService
}

// NewPropertiesHandler creates a new handler instance.
func NewPropertiesHandler(service *service.PropertiesService) *PropertiesHandler {
	return &PropertiesHandler{service: service}
}

// List handles GET /properties requests.
func (h *PropertiesHandler) List(c echo.Context) error {
	filter := query.ParseFilter(c.QueryParams())

	page, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err, "failed to fetch properties")
	}
	c.Response().Header().Set(HeaderPageLimit, strconv.Itoa(page.Limit))
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /properties/:id requests.
func (h *PropertiesHandler) Get(c echo.Context) error {
	property, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err, "failed to fetch property")
	}
	return c.JSON(http.StatusOK, property)
}

// Mine handles GET /properties/user/properties requests.
func (h *PropertiesHandler) Mine(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	properties, err := h.service.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err, "failed to fetch user properties")
	}
	return c.JSON(http.StatusOK, properties)
}

// Create handles POST /properties requests.
func (h *PropertiesHandler) Create(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	var req dto.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	property, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, err, "failed to create property")
	}
	return c.JSON(http.StatusCreated, property)
}

// Update handles PATCH /properties/:id requests.
func (h *PropertiesHandler) Update(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	var req dto.UpdatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	property, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return h.fail(c, err, "failed to update property")
	}
	return c.JSON(http.StatusOK, property)
}

// Delete handles DELETE /properties/:id requests.
func (h *PropertiesHandler) Delete(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return h.fail(c, err, "failed to delete property")
	}
	return Success(c, http.StatusOK, "Property deleted successfully", nil)
}

// fail maps service errors onto status codes. Unclassified errors are logged
// and reported with the generic message only.
func (h *PropertiesHandler) fail(c echo.Context, err error, message string) error {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		return FieldError(c, verr.Field, verr.Message)
	case errors.Is(err, service.ErrPropertyNotFound):
		return Error(c, http.StatusNotFound, "property not found")
	case errors.Is(err, service.ErrForbidden):
		return Error(c, http.StatusForbidden, "not authorized to modify this property")
	default:
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Str("path", c.Path()).Msg(message)
		return Error(c, http.StatusInternalServerError, message)
	}
}
