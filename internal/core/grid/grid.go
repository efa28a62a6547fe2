// Package grid lays a year out as a Monday aligned week by day grid
// The grid is always 53 columns of 7 days enumerated column first
package grid

import (
	"time"

	"activitycal/internal/core/datekey"
)

const (
	// Weeks is the number of columns
	Weeks = 53
	// Days is the number of rows, Monday first
	Days = 7
	// Size is the number of cells of every grid
	Size = Weeks * Days
)

// Cell is one grid position
type Cell struct {
	DateKey      datekey.Key `json:"date"`
	WeekIndex    int         `json:"week"`
	DayIndex     int         `json:"day"`
	InTargetYear bool        `json:"in_year"`
}

// Start returns the Monday on or before January 1 of year in UTC
func Start(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	// Monday=0 .. Sunday=6
	offset := (int(jan1.Weekday()) + 6) % 7
	return jan1.AddDate(0, 0, -offset)
}

// Build returns the Size cells of year
func Build(year int) []Cell {
	start := Start(year)
	cells := make([]Cell, 0, Size)
	for w := 0; w < Weeks; w++ {
		for d := 0; d < Days; d++ {
			cells = append(cells, CellAt(year, start, w, d))
		}
	}
	return cells
}

// CellAt resolves a single cell given the grid start
func CellAt(year int, start time.Time, week, day int) Cell {
	t := start.AddDate(0, 0, week*Days+day)
	return Cell{
		DateKey:      datekey.FromTime(t),
		WeekIndex:    week,
		DayIndex:     day,
		InTargetYear: t.Year() == year,
	}
}

// At returns the cell at (week, day) of a grid built by Build
func At(cells []Cell, week, day int) (Cell, bool) {
	if week < 0 || week >= Weeks || day < 0 || day >= Days || len(cells) != Size {
		return Cell{}, false
	}
	return cells[week*Days+day], true
}

// Locate returns the (week, day) position of k in year's grid
func Locate(year int, k datekey.Key) (week, day int, ok bool) {
	t := k.Time()
	if t.IsZero() {
		return 0, 0, false
	}
	n := int(t.Sub(Start(year)).Hours() / 24)
	if n < 0 || n >= Size {
		return 0, 0, false
	}
	return n / Days, n % Days, true
}
