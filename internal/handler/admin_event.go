package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
	"github.com/citywave/table-reservation/internal/service"
)

// AdminEventHandler serves the authenticated event-management endpoints.
// Ownership rules live in the services; handlers only shuttle the resolved
// admin identity through.
type AdminEventHandler struct {
	Events       *service.EventService
	Repo         *repository.EventRepo
	Reservations *service.ReservationService
}

// NewAdminEventHandler constructs an AdminEventHandler.
func NewAdminEventHandler(events *service.EventService, repo *repository.EventRepo, res *service.ReservationService) *AdminEventHandler {
	return &AdminEventHandler{Events: events, Repo: repo, Reservations: res}
}

type eventReq struct {
	Title           string   `json:"title" validate:"required"`
	Date            string   `json:"date" validate:"required"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	ImageURL        string   `json:"imageUrl"`
	FloorPlanImages []string `json:"floorPlanImages" validate:"max=2"`
	MinTicketSerial int      `json:"minTicketSerial"`
	MaxTicketSerial int      `json:"maxTicketSerial"`
}

type visibilityReq struct {
	Hidden bool `json:"hidden"`
}

type deleteEventsReq struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type createTableReq struct {
	Name string `json:"name" validate:"required"`
}

func (r eventReq) form() service.EventForm {
	return service.EventForm{
		Title:           r.Title,
		Date:            r.Date,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		ImageURL:        r.ImageURL,
		FloorPlanImages: r.FloorPlanImages,
		MinTicketSerial: r.MinTicketSerial,
		MaxTicketSerial: r.MaxTicketSerial,
	}
}

// Me returns the authenticated admin's identity. Used by the dashboard to
// decide which management panels to show.
func (h *AdminEventHandler) Me(c echo.Context) error {
	admin := CurrentAdmin(c)
	return c.JSON(http.StatusOK, accountPart{ID: admin.ID, Username: admin.Username, IsMain: admin.IsMain})
}

// ListEvents returns every event, hidden ones included. Any authenticated
// admin sees the full list; reservation contents on events they do not own
// are still visible here, matching the shared back office.
func (h *AdminEventHandler) ListEvents(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Repo.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent returns one event with full reservation data, owner or main
// admin only. Tables come back in the same display order guests see.
func (h *AdminEventHandler) GetEvent(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.Get(ctx, c.Param("id"))
	if err != nil {
		return writeErr(c, err)
	}
	admin := CurrentAdmin(c)
	if !admin.Owns(event) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this event"})
	}
	model.SortTables(event.Tables)
	return c.JSON(http.StatusOK, event)
}

// CreateEvent publishes a new event owned by the caller.
func (h *AdminEventHandler) CreateEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.Create(ctx, CurrentAdmin(c), req.form())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent replaces the editable metadata of an owned event.
func (h *AdminEventHandler) UpdateEvent(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.UpdateMetadata(ctx, CurrentAdmin(c), c.Param("id"), req.form())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// SetVisibility toggles the public-listing flag on an owned event.
func (h *AdminEventHandler) SetVisibility(c echo.Context) error {
	var req visibilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.SetVisibility(ctx, CurrentAdmin(c), c.Param("id"), req.Hidden)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvents removes the listed events. The batch stops at the first
// id the caller does not own.
func (h *AdminEventHandler) DeleteEvents(c echo.Context) error {
	var req deleteEventsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.Delete(ctx, CurrentAdmin(c), req.IDs); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTable appends a new free table to an owned event.
func (h *AdminEventHandler) CreateTable(c echo.Context) error {
	var req createTableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return writeErr(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	table, err := h.Events.CreateTable(ctx, CurrentAdmin(c), c.Param("id"), req.Name)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, table)
}

// DeleteTable removes a free table. A reserved table must be released
// first; the 409 keeps an admin from silently dropping a guest.
func (h *AdminEventHandler) DeleteTable(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.DeleteTable(ctx, CurrentAdmin(c), c.Param("id"), c.Param("tableId")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReleaseTable frees a reserved table on the admin's authority, typically
// after verifying the guest over the phone. No password is involved.
func (h *AdminEventHandler) ReleaseTable(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reservations.Release(ctx, CurrentAdmin(c), c.Param("id"), c.Param("tableId")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
