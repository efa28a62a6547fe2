package domain

import (
	"activitycal/internal/core/activity"
	"activitycal/internal/core/datekey"
	"activitycal/internal/core/estimate"
	"activitycal/internal/core/index"
)

// Source names one of the fetched collections
type Source string

// The six collections loaded per vehicle
const (
	SourceManual   Source = "manual_events"
	SourceAuctions Source = "auctions"
	SourceComments Source = "auction_comments"
	SourcePhotos   Source = "photos"
	SourceListings Source = "listings"
	SourceInvoices Source = "invoices"
)

// Vehicle is the owning record, only what the API shows
type Vehicle struct {
	ID   string
	Name string
}

// Rows is everything fetched for a vehicle, in source shape.
// A source that failed is listed in Failures and left empty
type Rows struct {
	Manual   []activity.ManualRecord
	Auctions []activity.AuctionRecord
	Comments map[string][]activity.AuctionComment // by auction id
	Photos   []activity.PhotoRow
	Listings []activity.ListingRecord
	Invoices []estimate.Invoice
	Failures []Source
}

// Snapshot is a normalized and indexed vehicle at one instant
type Snapshot struct {
	Vehicle        Vehicle
	Events         []activity.Event
	PhotoCounts    map[datekey.Key]int
	Invoices       map[string]estimate.Invoice
	Index          index.Index
	Dropped        int
	DroppedBy      map[activity.Source]int
	DateFallbacks  int
	SourceFailures []Source
}
