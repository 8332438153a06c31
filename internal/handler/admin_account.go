package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/service"
)

// AdminAccountHandler serves the sub-admin management endpoints. Every
// operation is main-admin only; the service enforces that.
type AdminAccountHandler struct {
	Admins *service.AdminService
}

// NewAdminAccountHandler constructs an AdminAccountHandler.
func NewAdminAccountHandler(admins *service.AdminService) *AdminAccountHandler {
	return &AdminAccountHandler{Admins: admins}
}

type createAdminReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// List returns every stored admin account, passwords included. The main
// admin reads those back to sub-admins; there is no reset flow.
func (h *AdminAccountHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	admins, err := h.Admins.List(ctx, CurrentAdmin(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, admins)
}

// Create provisions a scoped admin account. Duplicate usernames, the root
// login included, come back as 409.
func (h *AdminAccountHandler) Create(c echo.Context) error {
	var req createAdminReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	admin, err := h.Admins.Create(ctx, CurrentAdmin(c), req.Username, req.Password)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, admin)
}

// Delete revokes a scoped admin account. The deleted admin's session dies
// with the record: token resolution fails on the next request.
func (h *AdminAccountHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Admins.Delete(ctx, CurrentAdmin(c), c.Param("id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
