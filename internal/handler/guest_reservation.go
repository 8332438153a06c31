package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/service"
)

// GuestHandler serves the password-authorized guest actions on a single
// table: reserve it, report ticket serials, cancel. No session exists for
// guests; the reservation password is the only proof of ownership.
type GuestHandler struct {
	Reservations *service.ReservationService
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(res *service.ReservationService) *GuestHandler {
	return &GuestHandler{Reservations: res}
}

type reserveReq struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type serialsReq struct {
	Password string `json:"password" validate:"required"`
	Serials  string `json:"serials" validate:"required"`
}

type cancelReq struct {
	Password string `json:"password" validate:"required"`
}

// guestTablePart is what a guest gets back after acting on a table. The
// reservation password is never echoed; verified is derived server-side.
type guestTablePart struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Verified bool   `json:"verified"`
}

// Reserve claims a free table. A lost race against another guest comes
// back as 409 with "already taken"; the client re-renders the floor plan.
func (h *GuestHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	table, err := h.Reservations.Reserve(ctx, c.Param("id"), c.Param("tableId"), service.ReservationForm{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, guestTablePart{
		ID:       table.ID,
		Name:     table.Name,
		Status:   string(table.Status),
		Verified: table.Reservation != nil && table.Reservation.Verified(),
	})
}

// SubmitSerials records the guest's four ticket serial numbers, turning
// the reservation verified and exempting it from the expiry sweep.
func (h *GuestHandler) SubmitSerials(c echo.Context) error {
	var req serialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	table, err := h.Reservations.SubmitSerials(ctx, c.Param("id"), c.Param("tableId"), req.Password, req.Serials)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, guestTablePart{
		ID:       table.ID,
		Name:     table.Name,
		Status:   string(table.Status),
		Verified: table.Reservation != nil && table.Reservation.Verified(),
	})
}

// Cancel releases the guest's own table. The response carries no body;
// the table is free again the moment this returns.
func (h *GuestHandler) Cancel(c echo.Context) error {
	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reservations.Cancel(ctx, c.Param("id"), c.Param("tableId"), req.Password); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
