package model

import (
	"strconv"
	"strings"
	"time"
)

// RequiredSerialCount is how many ticket serial numbers a guest must report
// before a reservation counts as verified.
const RequiredSerialCount = 4

// Reservation holds the guest data attached to a RESERVED table. It exists
// only while the table is reserved and is cleared atomically with the
// transition back to FREE.
//
// Fields:
//  FirstName     – guest first name.
//  LastName      – guest last name.
//  Phone         – guest contact number.
//  Password      – guest-chosen plain-text password proving ownership.
//  ReservedAt    – when the reservation was made (UTC).
//  TicketSerials – serial numbers reported so far; empty or exactly 4.
type Reservation struct {
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	Password      string    `json:"password"` // plain text by design
	ReservedAt    time.Time `json:"reservedAt"`
	TicketSerials []int     `json:"ticketSerials,omitempty"`
}

// Verified reports whether the guest has recorded the full set of serial
// numbers. Verification is a derived view, not a stored state: serials are
// range-checked when submitted, and later edits to the event's serial range
// do not retroactively unverify a reservation.
func (r *Reservation) Verified() bool {
	return len(r.TicketSerials) == RequiredSerialCount
}

// ParseSerials splits a raw comma-separated guest input into integers.
// Blank segments and non-numeric segments are dropped rather than treated
// as errors; the caller decides whether the surviving count is acceptable.
func ParseSerials(raw string) []int {
	parts := strings.Split(raw, ",")
	serials := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		serials = append(serials, n)
	}
	return serials
}
