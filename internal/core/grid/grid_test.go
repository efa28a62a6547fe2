package grid

import (
	"testing"
	"time"

	"activitycal/internal/core/datekey"
)

func TestBuild_ShapeAndAlignment(t *testing.T) {
	for year := 1999; year <= 2032; year++ {
		cells := Build(year)
		if len(cells) != Size {
			t.Fatalf("%d: got %d cells, want %d", year, len(cells), Size)
		}
		first := cells[0].DateKey.Time()
		if first.Weekday() != time.Monday {
			t.Fatalf("%d: first cell %s is a %s", year, cells[0].DateKey, first.Weekday())
		}
		jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		if first.After(jan1) || jan1.Sub(first) >= 7*24*time.Hour {
			t.Fatalf("%d: start %s is not the Monday on or before Jan 1", year, cells[0].DateKey)
		}
		for i, c := range cells {
			if c.WeekIndex != i/Days || c.DayIndex != i%Days {
				t.Fatalf("%d: cell %d has position (%d,%d)", year, i, c.WeekIndex, c.DayIndex)
			}
			if c.InTargetYear != (c.DateKey.Year() == year) {
				t.Fatalf("%d: cell %s in-year flag wrong", year, c.DateKey)
			}
			if i > 0 && cells[i-1].DateKey.AddDays(1) != c.DateKey {
				t.Fatalf("%d: cells not consecutive at %d", year, i)
			}
		}
	}
}

func TestBuild_KnownYears(t *testing.T) {
	tests := []struct {
		year  int
		start datekey.Key
	}{
		{2024, "2024-01-01"}, // Jan 1 is a Monday
		{2023, "2022-12-26"}, // Sunday
		{2022, "2021-12-27"}, // Saturday
		{2021, "2020-12-28"}, // Friday
	}
	for _, tc := range tests {
		cells := Build(tc.year)
		if cells[0].DateKey != tc.start {
			t.Fatalf("%d: start = %s, want %s", tc.year, cells[0].DateKey, tc.start)
		}
		if cells[0].InTargetYear != (tc.start.Year() == tc.year) {
			t.Fatalf("%d: first cell in-year flag wrong", tc.year)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a, b := Build(2020), Build(2020)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs between builds", i)
		}
	}
}

func TestAtAndLocate(t *testing.T) {
	cells := Build(2023)
	c, ok := At(cells, 0, 6)
	if !ok || c.DateKey != "2023-01-01" {
		t.Fatalf("At(0,6) = %+v", c)
	}
	if _, ok := At(cells, Weeks, 0); ok {
		t.Fatalf("At out of range should fail")
	}

	w, d, ok := Locate(2023, "2023-07-04")
	if !ok {
		t.Fatalf("Locate failed")
	}
	got, _ := At(cells, w, d)
	if got.DateKey != "2023-07-04" {
		t.Fatalf("Locate round trip = %s", got.DateKey)
	}
	if _, _, ok := Locate(2023, "2025-01-01"); ok {
		t.Fatalf("Locate outside grid should fail")
	}
}
