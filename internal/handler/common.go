// Package handler exposes the HTTP surface. Handlers stay thin: bind and
// validate the request, call one service operation, translate the error
// kind to a status code. No business rule lives here.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/middleware"
	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
	"github.com/citywave/table-reservation/internal/service"
	"github.com/citywave/table-reservation/internal/store"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator builds the shared validator instance.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{v: validator.New()}
}

// Validate runs struct-tag validation. The raw validator message is
// returned as-is; writeErr presents it as a 400.
func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.v.Struct(i); err != nil {
		return errors.Join(service.ErrMalformedInput, err)
	}
	return nil
}

// CurrentAdmin returns the admin identity resolved by the auth middleware,
// or nil outside an authenticated route.
func CurrentAdmin(c echo.Context) *model.AdminAccount {
	admin, _ := c.Get(middleware.AdminContextKey).(*model.AdminAccount)
	return admin
}

// reqCtx derives a bounded context for store calls from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// writeErr maps a service error kind to its HTTP status. Unknown errors
// become an opaque 500 so internals never leak into a response body.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMalformedInput), errors.Is(err, service.ErrOutOfRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredential):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrAdminNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	default:
		log.Printf("handler: unhandled error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
