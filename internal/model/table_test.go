package model

import (
	"testing"
)

func names(tables []Table) []string {
	out := make([]string, len(tables))
	for i := range tables {
		out[i] = tables[i].Name
	}
	return out
}

func TestSortTables(t *testing.T) {
	reserved := func(name string) Table {
		return Table{ID: name, Name: name, Status: TableReserved, Reservation: &Reservation{Password: "x"}}
	}
	free := func(name string) Table {
		return Table{ID: name, Name: name, Status: TableFree}
	}

	tests := []struct {
		name   string
		tables []Table
		want   []string
	}{
		{
			name:   "free before reserved",
			tables: []Table{reserved("A"), free("B"), reserved("C"), free("D")},
			want:   []string{"B", "D", "A", "C"},
		},
		{
			name:   "vip first within status group",
			tables: []Table{free("Stol 1"), free("VIP 2"), free("vip 1"), free("Stol 2")},
			want:   []string{"vip 1", "VIP 2", "Stol 1", "Stol 2"},
		},
		{
			name:   "numeric aware name order",
			tables: []Table{free("Stol 10"), free("Stol 2"), free("Stol 1")},
			want:   []string{"Stol 1", "Stol 2", "Stol 10"},
		},
		{
			name:   "vip ordering applies to reserved group too",
			tables: []Table{reserved("Stol 1"), reserved("VIP 1"), free("Stol 3")},
			want:   []string{"Stol 3", "VIP 1", "Stol 1"},
		},
		{
			name:   "vip prefix is trimmed and case-insensitive",
			tables: []Table{free("stol"), free("  VIP loza"), free("Vipa")},
			want:   []string{"  VIP loza", "Vipa", "stol"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			SortTables(tc.tables)
			got := names(tc.tables)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d tables, want %d", len(got), len(tc.want))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("position %d: got %q, want %q (full order %v)", i, got[i], tc.want[i], got)
				}
			}
		})
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Stol 2", "Stol 10", true},
		{"Stol 10", "Stol 2", false},
		{"Stol 02", "Stol 2", false}, // leading zeros ignored, numerically equal
		{"A", "B", true},
		{"a", "B", true}, // case-insensitive letter comparison
		{"Stol", "Stol 1", true},
	}
	for _, tc := range tests {
		if got := naturalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestTableFreeClearsReservation(t *testing.T) {
	tbl := Table{ID: "t1", Name: "Stol 1", Status: TableReserved, Reservation: &Reservation{Password: "pw"}}
	tbl.Free()
	if tbl.Status != TableFree {
		t.Errorf("status = %q, want FREE", tbl.Status)
	}
	if tbl.Reservation != nil {
		t.Error("reservation should be nil after Free")
	}
}
