package model

// MaxFloorPlanImages caps how many floor plan image URLs an event carries.
const MaxFloorPlanImages = 2

// Event is the aggregate root stored in the "events" collection. The whole
// document, tables included, is the unit of optimistic concurrency: every
// mutation is a read-modify-write of one event followed by a single upsert.
//
// Fields:
//  ID              – document id within the "events" collection.
//  Title           – display title.
//  Date            – ISO-8601 local date-time of the event.
//  Description     – short text for the listing page.
//  LongDescription – optional detail text.
//  ImageURL        – cover image URL.
//  FloorPlanImages – zero, one or two floor plan URLs.
//  Tables          – ordered table list; order is assigned at display time.
//  IsHidden        – hides the event from the public listing only.
//  OwnerID         – username of the creating admin; never changed.
//  MinTicketSerial – lower bound (inclusive) for guest ticket serials.
//  MaxTicketSerial – upper bound (inclusive) for guest ticket serials.
type Event struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	ImageURL        string   `json:"imageUrl"`
	FloorPlanImages []string `json:"floorPlanImages,omitempty"`
	Tables          []Table  `json:"tables"`
	IsHidden        bool     `json:"isHidden"`
	OwnerID         string   `json:"ownerId"`
	MinTicketSerial int      `json:"minTicketSerial"`
	MaxTicketSerial int      `json:"maxTicketSerial"`
}

// FindTable returns a pointer into the event's table slice or nil when the
// id is absent. Callers mutate through the pointer and then persist the
// whole event.
func (e *Event) FindTable(tableID string) *Table {
	for i := range e.Tables {
		if e.Tables[i].ID == tableID {
			return &e.Tables[i]
		}
	}
	return nil
}

// SerialInRange reports whether a ticket serial falls inside the event's
// configured bounds.
func (e *Event) SerialInRange(n int) bool {
	return n >= e.MinTicketSerial && n <= e.MaxTicketSerial
}
