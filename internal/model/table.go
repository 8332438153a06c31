package model

import (
	"sort"
	"strings"
	"unicode"
)

// TableStatus enumerates the stored states of a table. The unverified vs
// verified distinction within RESERVED is derived from the reservation's
// serial count, never stored.
type TableStatus string

const (
	// TableFree means the table has no reservation and can be claimed.
	TableFree TableStatus = "FREE"
	// TableReserved means a guest holds the table; Reservation is present.
	TableReserved TableStatus = "RESERVED"
)

// Table is one reservable table inside an event. Invariant: Reservation is
// non-nil if and only if Status is RESERVED.
//
// Fields:
//  ID          – table id, unique within its event.
//  Name        – free-text display name; duplicates are allowed. Names
//                prefixed "VIP" sort ahead of others.
//  Status      – FREE or RESERVED.
//  Reservation – guest data, present only while RESERVED.
type Table struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Status      TableStatus  `json:"status"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// Free clears the reservation and returns the table to FREE. Both fields
// change together so the status/reservation invariant holds at every step.
func (t *Table) Free() {
	t.Status = TableFree
	t.Reservation = nil
}

// Reserve attaches the reservation and flips the table to RESERVED.
func (t *Table) Reserve(r *Reservation) {
	t.Status = TableReserved
	t.Reservation = r
}

// SortTables orders tables for display: FREE before RESERVED, VIP-named
// tables first within each group, remaining ties broken by natural
// (numeric-aware) name comparison. Guests pick premium tables by this
// ordering, so it is part of the contract and kept deterministic.
func SortTables(tables []Table) {
	sort.SliceStable(tables, func(i, j int) bool {
		return tableLess(&tables[i], &tables[j])
	})
}

func tableLess(a, b *Table) bool {
	if a.Status != b.Status {
		return a.Status == TableFree
	}
	av, bv := isVIP(a.Name), isVIP(b.Name)
	if av != bv {
		return av
	}
	return naturalLess(a.Name, b.Name)
}

// isVIP reports whether the trimmed name starts with "VIP", case-insensitively.
func isVIP(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 3 && strings.EqualFold(name[:3], "VIP")
}

// naturalLess compares two names treating runs of digits as numbers, so
// "Stol 2" sorts before "Stol 10". Non-digit runs compare byte-wise after
// lowercasing.
func naturalLess(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		ca, cb := ar[i], br[j]
		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			// Compare the full digit runs numerically; longer runs with the
			// same leading digits are larger.
			si, sj := i, j
			for i < len(ar) && unicode.IsDigit(ar[i]) {
				i++
			}
			for j < len(br) && unicode.IsDigit(br[j]) {
				j++
			}
			na := strings.TrimLeft(string(ar[si:i]), "0")
			nb := strings.TrimLeft(string(br[sj:j]), "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		la, lb := unicode.ToLower(ca), unicode.ToLower(cb)
		if la != lb {
			return la < lb
		}
		i++
		j++
	}
	return len(ar)-i < len(br)-j
}
