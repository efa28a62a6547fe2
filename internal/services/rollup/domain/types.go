// Package domain holds the rollup job types and ports
package domain

import "time"

// DayAgg is one row of activity_day_agg
type DayAgg struct {
	VehicleID string
	Day       time.Time
	Events    uint32
	Photos    uint32
	Hours     float64
	ValueUSD  float64
	Weight    float64
	BuiltAt   time.Time
}

// Changed is a vehicle with source rows newer than the watermark
type Changed struct {
	VehicleID string
	ChangedAt time.Time
}

// Cursor is a position in the (changed_at, vehicle_id) order. Vehicles sharing a
// changed_at are told apart by id, so a page boundary inside a tie loses nobody
type Cursor struct {
	At        time.Time
	VehicleID string
}

// Cursor returns the position of c in the change order
func (c Changed) Cursor() Cursor { return Cursor{At: c.ChangedAt, VehicleID: c.VehicleID} }

// Before reports whether c sorts before o
func (c Cursor) Before(o Cursor) bool {
	if !c.At.Equal(o.At) {
		return c.At.Before(o.At)
	}
	return c.VehicleID < o.VehicleID
}

// Pass status values recorded on the watermark row
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// PassStats reports what one pass did
type PassStats struct {
	Status   string    `json:"status"`
	From     time.Time `json:"from"`
	Through  time.Time `json:"through"`
	Vehicles int       `json:"vehicles"`
	Failed   int       `json:"failed"`
	Rows     int       `json:"rows"`
	Elapsed  string    `json:"elapsed"`
}

// FinishInfo is written back when a pass ends
type FinishInfo struct {
	Status       string
	BuiltThrough Cursor
	Vehicles     int
	Rows         int
	ErrText      string
}
