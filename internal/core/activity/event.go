// Package activity defines the canonical activity event and maps raw source records onto it
package activity

import (
	"strconv"
	"strings"

	"activitycal/internal/core/datekey"
)

// Category is the closed set of event categories, it drives estimation policy
type Category string

const (
	// CategoryManual is a user logged work event
	CategoryManual Category = "manual"
	// CategoryDerivedPhoto is synthesized from photo capture dates
	CategoryDerivedPhoto Category = "derived_photo"
	// CategoryAuctionEnded is an auction that closed without a sale
	CategoryAuctionEnded Category = "auction_ended"
	// CategoryAuctionSold is an auction that closed with a sale
	CategoryAuctionSold Category = "auction_sold"
	// CategoryAuctionReserveNotMet is an auction whose reserve was not met
	CategoryAuctionReserveNotMet Category = "auction_reserve_not_met"
	// CategoryScheduledAuction is an upcoming listing
	CategoryScheduledAuction Category = "scheduled_auction"
	// CategoryDocumentation documents work without being work
	CategoryDocumentation Category = "documentation"
	// CategoryOtherWork is general work that is not user logged
	CategoryOtherWork Category = "other_work"
)

var categories = map[Category]struct{}{
	CategoryManual:               {},
	CategoryDerivedPhoto:         {},
	CategoryAuctionEnded:         {},
	CategoryAuctionSold:          {},
	CategoryAuctionReserveNotMet: {},
	CategoryScheduledAuction:     {},
	CategoryDocumentation:        {},
	CategoryOtherWork:            {},
}

// ParseCategory returns the category named by s
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categories[c]
	return c, ok
}

// IsSale reports whether c comes from an auction or listing
func (c Category) IsSale() bool {
	switch c {
	case CategoryAuctionEnded, CategoryAuctionSold, CategoryAuctionReserveNotMet, CategoryScheduledAuction:
		return true
	}
	return false
}

// Source names the collector a record came from, used for dedup and display only
type Source string

const (
	// SourceManual is the vehicle timeline table
	SourceManual Source = "manual"
	// SourcePhotos is the vehicle image table
	SourcePhotos Source = "photos"
	// SourceAuction is auction platform lifecycle rows
	SourceAuction Source = "auction"
	// SourceListing is scheduled listings
	SourceListing Source = "listing"
)

// Event is the canonical activity record
// values are built by Normalize and treated as immutable afterwards
type Event struct {
	ID           string         `json:"id"`
	VehicleID    string         `json:"vehicle_id"`
	Category     Category       `json:"category"`
	Kind         string         `json:"kind,omitempty"`
	DateKey      datekey.Key    `json:"date"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	CostReported *float64       `json:"cost_reported,omitempty"`
	ImageCount   int            `json:"image_count"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Source       Source         `json:"source"`
}

// Meta returns a metadata value
func (e Event) Meta(key string) (any, bool) {
	if e.Metadata == nil {
		return nil, false
	}
	v, ok := e.Metadata[key]
	return v, ok
}

// MetaFloat reads a numeric metadata value, tolerating the shapes JSON decoding produces
func (e Event) MetaFloat(key string) (float64, bool) {
	v, ok := e.Meta(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Reported returns the directly reported amount, 0 when absent
func (e Event) Reported() float64 {
	if e.CostReported == nil {
		return 0
	}
	return *e.CostReported
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func cloneMeta(m map[string]any) map[string]any {
	if len(m) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
