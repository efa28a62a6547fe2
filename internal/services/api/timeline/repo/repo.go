// Package repo reads the timeline source collections from Postgres
package repo

import (
	"context"
	_ "embed"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/estimate"
	"activitycal/internal/modkit/repokit"
	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/store"
	"activitycal/internal/services/api/timeline/domain"
)

// Schema creates the source tables. Used by integration tests and local setup
//
//go:embed schema.sql
var Schema string

// Repo is the read side of one vehicle's sources
type Repo interface {
	Vehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error)
	ManualEvents(ctx context.Context, vehicleID string) ([]activity.ManualRecord, error)
	Auctions(ctx context.Context, vehicleID string) ([]activity.AuctionRecord, error)
	AuctionComments(ctx context.Context, vehicleID string) (map[string][]activity.AuctionComment, error)
	Photos(ctx context.Context, vehicleID string) ([]activity.PhotoRow, error)
	Listings(ctx context.Context, vehicleID string) ([]activity.ListingRecord, error)
	Invoices(ctx context.Context, vehicleID string) ([]estimate.Invoice, error)
}

type (
	pgRepo   struct{ q repokit.Queryer }
	pgBinder struct{}
)

// NewPG returns a binder for the Postgres repo
func NewPG() repokit.Binder[Repo] { return pgBinder{} }

func (pgBinder) Bind(q repokit.Queryer) Repo { return &pgRepo{q: q} }

// Vehicle returns the vehicle or a not_found error
func (r *pgRepo) Vehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error) {
	v, err := store.One(ctx, r.q, func(row store.Row) (domain.Vehicle, error) {
		var v domain.Vehicle
		return v, row.Scan(&v.ID, &v.Name)
	}, `SELECT id, coalesce(name, '') FROM vehicles WHERE id = $1`, vehicleID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Vehicle{}, perr.WithField(perr.NotFoundf("vehicle %s not found", vehicleID), "vehicle_id")
	}
	if err != nil {
		return domain.Vehicle{}, perr.FromPG(err, "load vehicle")
	}
	return v, nil
}

func (r *pgRepo) ManualEvents(ctx context.Context, vehicleID string) ([]activity.ManualRecord, error) {
	out, err := store.Many(ctx, r.q, scanManual, `
		SELECT id, vehicle_id, coalesce(title, ''), coalesce(description, ''), coalesce(event_type, ''),
		       coalesce(event_date, ''), cost_amount::float8, coalesce(image_urls, '{}'), metadata
		FROM timeline_events
		WHERE vehicle_id = $1
		ORDER BY event_date NULLS LAST, id`, vehicleID)
	return out, perr.FromPG(err, "load manual events")
}

func scanManual(row store.Row) (activity.ManualRecord, error) {
	var m activity.ManualRecord
	err := row.Scan(&m.ID, &m.VehicleID, &m.Title, &m.Description, &m.EventType,
		&m.EventDate, &m.CostAmount, &m.ImageURLs, &m.Metadata)
	return m, err
}

func (r *pgRepo) Auctions(ctx context.Context, vehicleID string) ([]activity.AuctionRecord, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (activity.AuctionRecord, error) {
		var a activity.AuctionRecord
		err := row.Scan(&a.ID, &a.Platform, &a.Outcome, &a.StartDate, &a.EndDate, &a.HighBid, &a.WinningBid,
			&a.TotalBids, &a.CommentsCount, &a.LotNumber, &a.SellerName, &a.WinningBidder, &a.URL)
		return a, err
	}, `
		SELECT id, coalesce(source, ''), coalesce(outcome, ''),
		       coalesce(auction_start_date::text, ''), coalesce(auction_end_date::text, ''),
		       high_bid::float8, winning_bid::float8, coalesce(total_bids, 0), coalesce(comments_count, 0),
		       coalesce(lot_number, ''), coalesce(seller_name, ''), coalesce(winning_bidder, ''), coalesce(url, '')
		FROM auctions
		WHERE vehicle_id = $1
		ORDER BY auction_end_date NULLS LAST, id`, vehicleID)
	return out, perr.FromPG(err, "load auctions")
}

// AuctionComments groups every comment of the vehicle's auctions by auction id
func (r *pgRepo) AuctionComments(ctx context.Context, vehicleID string) (map[string][]activity.AuctionComment, error) {
	type row struct {
		auctionID string
		c         activity.AuctionComment
	}
	rows, err := store.Many(ctx, r.q, func(sr store.Row) (row, error) {
		var x row
		err := sr.Scan(&x.auctionID, &x.c.PostedAt, &x.c.CommentType, &x.c.BidAmount, &x.c.IsLeadingBid)
		return x, err
	}, `
		SELECT c.auction_id, coalesce(c.posted_at::text, ''), coalesce(c.comment_type, ''),
		       c.bid_amount::float8, c.is_leading_bid
		FROM auction_comments c
		JOIN auctions a ON a.id = c.auction_id
		WHERE a.vehicle_id = $1
		ORDER BY c.auction_id, c.posted_at NULLS LAST, c.id`, vehicleID)
	if err != nil {
		return nil, perr.FromPG(err, "load auction comments")
	}
	out := make(map[string][]activity.AuctionComment)
	for _, x := range rows {
		out[x.auctionID] = append(out[x.auctionID], x.c)
	}
	return out, nil
}

func (r *pgRepo) Photos(ctx context.Context, vehicleID string) ([]activity.PhotoRow, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (activity.PhotoRow, error) {
		var p activity.PhotoRow
		return p, row.Scan(&p.ID, &p.TakenAt, &p.CreatedAt, &p.EventID)
	}, `
		SELECT id, coalesce(taken_at, ''), coalesce(created_at::text, ''), coalesce(timeline_event_id, '')
		FROM vehicle_images
		WHERE vehicle_id = $1`, vehicleID)
	return out, perr.FromPG(err, "load photos")
}

func (r *pgRepo) Listings(ctx context.Context, vehicleID string) ([]activity.ListingRecord, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (activity.ListingRecord, error) {
		var (
			l         activity.ListingRecord
			low, high string
		)
		err := row.Scan(&l.ID, &l.Platform, &l.StartDate, &l.EndDate, &l.ListingStatus,
			&l.SaleDate, &l.LotNumber, &low, &high, &l.Location, &l.URL)
		l.EstimateLow, l.EstimateHigh = parseAmount(low), parseAmount(high)
		return l, err
	}, `
		SELECT id, coalesce(platform, ''), coalesce(start_date, ''), coalesce(end_date, ''),
		       coalesce(listing_status, ''),
		       coalesce(metadata->>'sale_date', ''), coalesce(metadata->>'lot_number', ''),
		       coalesce(metadata->>'estimate_low', ''), coalesce(metadata->>'estimate_high', ''),
		       coalesce(metadata->>'location', ''), coalesce(url, '')
		FROM auction_listings
		WHERE vehicle_id = $1
		ORDER BY start_date NULLS LAST, id`, vehicleID)
	return out, perr.FromPG(err, "load listings")
}

func (r *pgRepo) Invoices(ctx context.Context, vehicleID string) ([]estimate.Invoice, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (estimate.Invoice, error) {
		var i estimate.Invoice
		return i, row.Scan(&i.EventID, &i.InvoiceNumber, &i.TotalAmount, &i.Status, &i.PaymentStatus)
	}, `
		SELECT event_id, coalesce(invoice_number, ''), coalesce(total_amount, 0)::float8,
		       coalesce(status, ''), coalesce(payment_status, '')
		FROM invoices
		WHERE vehicle_id = $1
		ORDER BY updated_at DESC, id`, vehicleID)
	return out, perr.FromPG(err, "load invoices")
}
