// Package domain holds DTOs and ports for the timeline API
package domain

import (
	"time"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/daysum"
	"activitycal/internal/core/datekey"
	"activitycal/internal/core/grid"
	"activitycal/internal/core/rank"
	"activitycal/internal/platform/net/http/bind"
)

func init() {
	bind.RegisterTag("datekey", "{0} must be a YYYY-MM-DD date", func(s string) bool {
		return datekey.Key(s).Valid()
	})
}

// IndexInput asks for the whole per day index of a vehicle.
// Now overrides the clock, mostly for previews and tests
type IndexInput struct {
	VehicleID string     `json:"vehicle_id" validate:"required,min=1,max=64" example:"veh_01HZ"`
	Now       *time.Time `json:"now,omitempty" example:"2024-03-10T12:00:00Z"`
}

// GridInput asks for the calendar grid of one year. Year 0 means the selected year
type GridInput struct {
	VehicleID string     `json:"vehicle_id" validate:"required,min=1,max=64" example:"veh_01HZ"`
	Year      int        `json:"year,omitempty" validate:"omitempty,min=1900,max=2100" example:"2024"`
	Now       *time.Time `json:"now,omitempty"`
}

// DayInput asks for the summary of one UTC day
type DayInput struct {
	VehicleID string `json:"vehicle_id" validate:"required,min=1,max=64" example:"veh_01HZ"`
	Date      string `json:"date" validate:"required,datekey" example:"2024-03-15"`
}

// DayRow is one active day of the index
type DayRow struct {
	Date       datekey.Key         `json:"date" example:"2024-03-15"`
	Events     int                 `json:"events" example:"2"`
	Categories []activity.Category `json:"categories"`
	PhotoCount int                 `json:"photo_count" example:"40"`
	Hours      float64             `json:"hours" example:"2.75"`
	ValueUSD   float64             `json:"value_usd" example:"330"`
	Weight     float64             `json:"weight" example:"4.75"`
}

// IndexResp is the heatmap payload
type IndexResp struct {
	VehicleID      string                  `json:"vehicle_id"`
	Days           []DayRow                `json:"days"`
	SelectedYear   *int                    `json:"selected_year"`
	Years          []rank.YearScore        `json:"years"`
	Dropped        int                     `json:"dropped"`
	DroppedBy      map[activity.Source]int `json:"dropped_by,omitempty"`
	DateFallbacks  int                     `json:"date_fallbacks"`
	SourceFailures []string                `json:"source_failures,omitempty"`
	TodayActive    bool                    `json:"today_active"`
}

// GridCell is a grid cell joined with its day bucket
type GridCell struct {
	grid.Cell
	Events int     `json:"events"`
	Weight float64 `json:"weight"`
}

// GridResp is the 53x7 calendar of one year
type GridResp struct {
	VehicleID    string     `json:"vehicle_id"`
	Year         int        `json:"year"`
	SelectedYear *int       `json:"selected_year"`
	MaxWeight    float64    `json:"max_weight"`
	Cells        []GridCell `json:"cells"`
}

// DayResp is the clicked day receipt
type DayResp struct {
	VehicleID string `json:"vehicle_id"`
	daysum.Summary
}
