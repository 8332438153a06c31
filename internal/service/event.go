package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citywave/table-reservation/internal/model"
	"github.com/citywave/table-reservation/internal/repository"
)

// EventForm carries the admin-editable event fields for create and update.
type EventForm struct {
	Title           string
	Date            string
	Description     string
	LongDescription string
	ImageURL        string
	FloorPlanImages []string
	MinTicketSerial int
	MaxTicketSerial int
}

// EventService implements the event/table aggregate rules: creation,
// metadata edits, visibility, deletion and table management. Every
// operation is gated by ownership (main admin owns everything implicitly).
type EventService struct {
	Events *repository.EventRepo
}

// NewEventService constructs an EventService.
func NewEventService(events *repository.EventRepo) *EventService {
	if events == nil {
		panic("nil event repository passed to NewEventService")
	}
	return &EventService{Events: events}
}

// validateForm checks the field rules shared by create and update.
func validateForm(f EventForm) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrMalformedInput)
	}
	if strings.TrimSpace(f.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrMalformedInput)
	}
	if f.MinTicketSerial > f.MaxTicketSerial {
		return fmt.Errorf("%w: serial range minimum exceeds maximum", ErrMalformedInput)
	}
	if len(f.FloorPlanImages) > model.MaxFloorPlanImages {
		return fmt.Errorf("%w: at most %d floor plan images", ErrMalformedInput, model.MaxFloorPlanImages)
	}
	return nil
}

// Create publishes a new event owned by the calling admin, with an empty
// table list and public visibility.
func (s *EventService) Create(ctx context.Context, admin *model.AdminAccount, f EventForm) (*model.Event, error) {
	if err := validateForm(f); err != nil {
		return nil, err
	}
	event := &model.Event{
		ID:              "evt-" + uuid.NewString(),
		Title:           f.Title,
		Date:            f.Date,
		Description:     f.Description,
		LongDescription: f.LongDescription,
		ImageURL:        f.ImageURL,
		FloorPlanImages: f.FloorPlanImages,
		Tables:          []model.Table{},
		OwnerID:         admin.Username,
		MinTicketSerial: f.MinTicketSerial,
		MaxTicketSerial: f.MaxTicketSerial,
	}
	if err := s.Events.Put(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateMetadata replaces the editable fields of an event. The id, owner
// and table list never change through this path. Shrinking the serial
// range does not re-validate serials already recorded on reservations.
func (s *EventService) UpdateMetadata(ctx context.Context, admin *model.AdminAccount, eventID string, f EventForm) (*model.Event, error) {
	if err := validateForm(f); err != nil {
		return nil, err
	}
	event, err := s.owned(ctx, admin, eventID)
	if err != nil {
		return nil, err
	}
	event.Title = f.Title
	event.Date = f.Date
	event.Description = f.Description
	event.LongDescription = f.LongDescription
	event.ImageURL = f.ImageURL
	event.FloorPlanImages = f.FloorPlanImages
	event.MinTicketSerial = f.MinTicketSerial
	event.MaxTicketSerial = f.MaxTicketSerial
	if err := s.Events.Put(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// SetVisibility toggles the cosmetic hidden flag read by the public
// listing. The reservation machine ignores it.
func (s *EventService) SetVisibility(ctx context.Context, admin *model.AdminAccount, eventID string, hidden bool) (*model.Event, error) {
	event, err := s.owned(ctx, admin, eventID)
	if err != nil {
		return nil, err
	}
	event.IsHidden = hidden
	if err := s.Events.Put(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the listed events. Each id is ownership-checked
// independently; the first failure stops the batch.
func (s *EventService) Delete(ctx context.Context, admin *model.AdminAccount, ids []string) error {
	for _, id := range ids {
		if _, err := s.owned(ctx, admin, id); err != nil {
			return err
		}
		if err := s.Events.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CreateTable appends a FREE table with a fresh id. Duplicate names are
// allowed; the display comparator handles ordering.
func (s *EventService) CreateTable(ctx context.Context, admin *model.AdminAccount, eventID, name string) (*model.Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: table name is required", ErrMalformedInput)
	}
	event, err := s.owned(ctx, admin, eventID)
	if err != nil {
		return nil, err
	}
	table := model.Table{
		ID:     "t-" + uuid.NewString(),
		Name:   name,
		Status: model.TableFree,
	}
	event.Tables = append(event.Tables, table)
	if err := s.Events.Put(ctx, event); err != nil {
		return nil, err
	}
	return &table, nil
}

// DeleteTable removes a FREE table. Deleting a reserved table is refused
// outright rather than silently dropping the guest's reservation.
func (s *EventService) DeleteTable(ctx context.Context, admin *model.AdminAccount, eventID, tableID string) error {
	event, err := s.owned(ctx, admin, eventID)
	if err != nil {
		return err
	}
	for i := range event.Tables {
		if event.Tables[i].ID != tableID {
			continue
		}
		if event.Tables[i].Status == model.TableReserved {
			return fmt.Errorf("%w: table %s is reserved", ErrInvalidState, tableID)
		}
		event.Tables = append(event.Tables[:i], event.Tables[i+1:]...)
		return s.Events.Put(ctx, event)
	}
	return fmt.Errorf("%w: table %s", ErrNotFound, tableID)
}

// Get loads one event without an ownership check; callers that expose
// reservation contents must gate on Owns themselves.
func (s *EventService) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.Events.Get(ctx, eventID)
	if errors.Is(err, repository.ErrEventNotFound) {
		return nil, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	return event, err
}

// owned loads the event and verifies the admin may mutate it.
func (s *EventService) owned(ctx context.Context, admin *model.AdminAccount, eventID string) (*model.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !admin.Owns(event) {
		return nil, fmt.Errorf("%w: %s does not own event %s", ErrPermissionDenied, admin.Username, eventID)
	}
	return event, nil
}
