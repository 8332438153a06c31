package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
	"github.com/citywave/table-reservation/internal/service"
)

// PublicHandler serves the guest-facing browse endpoints. Responses are
// sanitized: a guest sees which tables are taken, never by whom, and the
// serial range stays between the event owner and the verification flow.
type PublicHandler struct {
	Events       *repository.EventRepo
	Reservations *service.ReservationService
	TTLDays      int
}

// NewPublicHandler constructs a PublicHandler. ttlDays controls the lazy
// expiry sweep that runs before an event detail is rendered.
func NewPublicHandler(events *repository.EventRepo, res *service.ReservationService, ttlDays int) *PublicHandler {
	return &PublicHandler{Events: events, Reservations: res, TTLDays: ttlDays}
}

// tableView is the guest-visible slice of a table.
type tableView struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Status model.TableStatus `json:"status"`
}

// eventSummary is one row of the public listing.
type eventSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	TableCount  int    `json:"tableCount"`
	FreeCount   int    `json:"freeCount"`
}

// eventDetail is the public event page payload.
type eventDetail struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Date            string      `json:"date"`
	Description     string      `json:"description"`
	LongDescription string      `json:"longDescription,omitempty"`
	ImageURL        string      `json:"imageUrl"`
	FloorPlanImages []string    `json:"floorPlanImages,omitempty"`
	Tables          []tableView `json:"tables"`
}

// ListEvents returns every non-hidden event, newest data straight from the
// store. Hidden events simply disappear from this listing; their pages
// remain reachable by id on purpose, matching how unlisted links behave.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	out := make([]eventSummary, 0, len(events))
	for _, e := range events {
		if e.IsHidden {
			continue
		}
		free := 0
		for i := range e.Tables {
			if e.Tables[i].Status == model.TableFree {
				free++
			}
		}
		out = append(out, eventSummary{
			ID:          e.ID,
			Title:       e.Title,
			Date:        e.Date,
			Description: e.Description,
			ImageURL:    e.ImageURL,
			TableCount:  len(e.Tables),
			FreeCount:   free,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetEvent renders one event for guests. Stale unverified reservations are
// swept first, so the availability shown is already reclaimed. Tables come
// back in display order: free before reserved, VIP names first.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	id := c.Param("id")
	if _, err := h.Reservations.SweepExpired(ctx, id, h.TTLDays); err != nil {
		return writeErr(c, err)
	}
	event, err := h.Events.Get(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}

	tables := make([]model.Table, len(event.Tables))
	copy(tables, event.Tables)
	model.SortTables(tables)

	views := make([]tableView, 0, len(tables))
	for i := range tables {
		views = append(views, tableView{ID: tables[i].ID, Name: tables[i].Name, Status: tables[i].Status})
	}
	return c.JSON(http.StatusOK, eventDetail{
		ID:              event.ID,
		Title:           event.Title,
		Date:            event.Date,
		Description:     event.Description,
		LongDescription: event.LongDescription,
		ImageURL:        event.ImageURL,
		FloorPlanImages: event.FloorPlanImages,
		Tables:          views,
	})
}
