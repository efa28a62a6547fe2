// Package service loads a vehicle's sources and runs the activity core over them
package service

import (
	"bytes"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/daysum"
	"activitycal/internal/core/datekey"
	"activitycal/internal/core/estimate"
	"activitycal/internal/core/grid"
	"activitycal/internal/core/icalexport"
	"activitycal/internal/core/index"
	"activitycal/internal/core/rank"
	"activitycal/internal/modkit/repokit"
	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/logger"
	pnet "activitycal/internal/platform/net"
	ptime "activitycal/internal/platform/time"
	"activitycal/internal/services/api/timeline/domain"
	trepo "activitycal/internal/services/api/timeline/repo"
)

// Service implements domain.ServicePort and domain.Loader
type Service struct {
	DB    repokit.TxRunner
	Repo  repokit.Binder[trepo.Repo]
	Est   *estimate.Engine
	Clock ptime.Clock
}

// New constructs a timeline service. A nil engine uses the default policy
func New(db repokit.TxRunner, binder repokit.Binder[trepo.Repo], est *estimate.Engine, clock ptime.Clock) *Service {
	if db == nil {
		panic("timeline.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("timeline.Service requires a non-nil repo Binder")
	}
	if est == nil {
		est = estimate.Default()
	}
	if clock == nil {
		clock = ptime.System()
	}
	return &Service{DB: db, Repo: binder, Est: est, Clock: clock}
}

// Index returns every active day, the year to focus and the per year scores
func (s *Service) Index(ctx context.Context, in domain.IndexInput) (domain.IndexResp, error) {
	now := s.Clock.Or(in.Now)
	snap, err := s.Snapshot(ctx, in.VehicleID, now)
	if err != nil {
		return domain.IndexResp{}, err
	}

	out := domain.IndexResp{
		VehicleID:      snap.Vehicle.ID,
		Days:           make([]domain.DayRow, 0, len(snap.Index)),
		Years:          rank.Scores(snap.Index),
		Dropped:        snap.Dropped,
		DateFallbacks:  snap.DateFallbacks,
		SourceFailures: failureNames(snap.SourceFailures),
		TodayActive:    snap.Index.ActiveOn(datekey.FromTime(now)),
	}
	if snap.Dropped > 0 {
		out.DroppedBy = snap.DroppedBy
	}
	for _, d := range snap.Index.Days() {
		out.Days = append(out.Days, dayRow(d))
	}
	if y, ok := rank.SelectYear(snap.Index, snap.Events, now); ok {
		out.SelectedYear = &y
	}
	return out, nil
}

// Grid returns the 53x7 calendar of the requested year, or of the selected year
func (s *Service) Grid(ctx context.Context, in domain.GridInput) (domain.GridResp, error) {
	now := s.Clock.Or(in.Now)
	snap, err := s.Snapshot(ctx, in.VehicleID, now)
	if err != nil {
		return domain.GridResp{}, err
	}

	out := domain.GridResp{VehicleID: snap.Vehicle.ID, Year: in.Year}
	if y, ok := rank.SelectYear(snap.Index, snap.Events, now); ok {
		out.SelectedYear = &y
		if out.Year == 0 {
			out.Year = y
		}
	}
	if out.Year == 0 {
		out.Year = now.UTC().Year()
	}

	cells := grid.Build(out.Year)
	out.Cells = make([]domain.GridCell, len(cells))
	for i, c := range cells {
		gc := domain.GridCell{Cell: c}
		if d, ok := snap.Index.Day(c.DateKey); ok && c.InTargetYear {
			gc.Events = len(d.Events)
			gc.Weight = d.Weight
			out.MaxWeight = max(out.MaxWeight, d.Weight)
		}
		out.Cells[i] = gc
	}
	return out, nil
}

// Day returns the deduplicated receipt of one day
func (s *Service) Day(ctx context.Context, in domain.DayInput) (domain.DayResp, error) {
	key, ok := datekey.Parse(in.Date)
	if !ok {
		return domain.DayResp{}, perr.WithField(perr.InvalidArgf("date %q is not YYYY-MM-DD", in.Date), "date")
	}
	snap, err := s.Snapshot(ctx, in.VehicleID, s.Clock())
	if err != nil {
		return domain.DayResp{}, err
	}

	var events []activity.Event
	if d, ok := snap.Index.Day(key); ok {
		events = d.Events
	}
	sum := daysum.Summarize(events, snap.Invoices, s.Est)
	sum.Date = key
	return domain.DayResp{VehicleID: snap.Vehicle.ID, Summary: sum}, nil
}

// AuctionsICS renders the vehicle's upcoming scheduled auctions as iCalendar
func (s *Service) AuctionsICS(ctx context.Context, vehicleID string) ([]byte, error) {
	now := s.Clock()
	snap, err := s.Snapshot(ctx, vehicleID, now)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	feed := icalexport.Feed{VehicleID: snap.Vehicle.ID, Name: snap.Vehicle.Name, Now: now}
	if err := icalexport.Write(&buf, feed, snap.Events); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInternal, "render calendar")
	}
	return buf.Bytes(), nil
}

// Snapshot loads, normalizes and indexes one vehicle as of now
func (s *Service) Snapshot(ctx context.Context, vehicleID string, now time.Time) (domain.Snapshot, error) {
	ctx = pnet.WithVehicle(ctx, vehicleID)
	r := s.Repo.Bind(s.DB)

	veh, err := r.Vehicle(ctx, vehicleID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	rows, err := s.load(ctx, r, vehicleID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	counts, photoRecs, photoFallbacks := activity.PhotoDays(vehicleID, rows.Photos, now)

	recs := make([]activity.RawRecord, 0, len(rows.Manual)+len(rows.Auctions)+len(rows.Listings)+len(photoRecs))
	for _, m := range rows.Manual {
		recs = append(recs, m)
	}
	for _, a := range rows.Auctions {
		a.Comments = rows.Comments[a.ID]
		recs = append(recs, a)
	}
	for _, l := range rows.Listings {
		recs = append(recs, l)
	}
	recs = append(recs, photoRecs...)

	res := activity.Normalize(vehicleID, recs, now)
	invoices := invoicesByEvent(rows.Invoices)

	snap := domain.Snapshot{
		Vehicle:        veh,
		Events:         res.Events,
		PhotoCounts:    counts,
		Invoices:       invoices,
		Index:          invoiceValues(index.Build(res.Events, counts, s.Est), invoices, s.Est),
		Dropped:        res.Dropped,
		DroppedBy:      res.DroppedBy,
		DateFallbacks:  res.DateFallbacks + photoFallbacks,
		SourceFailures: rows.Failures,
	}
	reportQuality(ctx, snap, photoFallbacks)
	return snap, nil
}

// load fetches the six collections concurrently. A failed source is logged and left empty,
// only cancellation of ctx fails the load
func (s *Service) load(ctx context.Context, r trepo.Repo, vehicleID string) (domain.Rows, error) {
	var (
		rows domain.Rows
		mu   sync.Mutex
	)
	fail := func(src domain.Source, err error) {
		logger.C(ctx).Warn().Err(err).Str("source", string(src)).
			Msg("source fetch failed; continuing without it")
		mu.Lock()
		rows.Failures = append(rows.Failures, src)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	fetch(gctx, g, domain.SourceManual, &rows.Manual, fail, func(c context.Context) ([]activity.ManualRecord, error) {
		return r.ManualEvents(c, vehicleID)
	})
	fetch(gctx, g, domain.SourceAuctions, &rows.Auctions, fail, func(c context.Context) ([]activity.AuctionRecord, error) {
		return r.Auctions(c, vehicleID)
	})
	fetch(gctx, g, domain.SourceComments, &rows.Comments, fail, func(c context.Context) (map[string][]activity.AuctionComment, error) {
		return r.AuctionComments(c, vehicleID)
	})
	fetch(gctx, g, domain.SourcePhotos, &rows.Photos, fail, func(c context.Context) ([]activity.PhotoRow, error) {
		return r.Photos(c, vehicleID)
	})
	fetch(gctx, g, domain.SourceListings, &rows.Listings, fail, func(c context.Context) ([]activity.ListingRecord, error) {
		return r.Listings(c, vehicleID)
	})
	fetch(gctx, g, domain.SourceInvoices, &rows.Invoices, fail, func(c context.Context) ([]estimate.Invoice, error) {
		return r.Invoices(c, vehicleID)
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Rows{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "load cancelled")
	}
	sortFailures(rows.Failures)
	return rows, nil
}

func fetch[T any](ctx context.Context, g *errgroup.Group, src domain.Source, dst *T,
	fail func(domain.Source, error), fn func(context.Context) (T, error)) {
	g.Go(func() error {
		v, err := fn(ctx)
		if err != nil {
			fail(src, err)
			return nil
		}
		*dst = v
		return nil
	})
}

func reportQuality(ctx context.Context, snap domain.Snapshot, photoFallbacks int) {
	log := logger.C(ctx)
	for src, n := range snap.DroppedBy {
		if n > 0 {
			log.Warn().Str("source", string(src)).Int("count", n).Msg("dropped unmappable records")
		}
	}
	if n := snap.DateFallbacks - photoFallbacks; n > 0 {
		log.Warn().Str("source", "events").Int("count", n).Msg("unreadable event dates fell back to today")
	}
	if photoFallbacks > 0 {
		log.Warn().Str("source", string(domain.SourcePhotos)).Int("count", photoFallbacks).
			Msg("unreadable photo dates fell back to today")
	}
}

// invoicesByEvent keeps the first invoice per event, rows arrive newest first
func invoicesByEvent(rows []estimate.Invoice) map[string]estimate.Invoice {
	out := make(map[string]estimate.Invoice, len(rows))
	for _, inv := range rows {
		if inv.EventID == "" {
			continue
		}
		if _, seen := out[inv.EventID]; !seen {
			out[inv.EventID] = inv
		}
	}
	return out
}

// invoiceValues swaps each day's value for the invoiced figures the day receipt shows.
// Hours and weight keep the heuristic so an invoice never cools a day or moves the selected year
func invoiceValues(ix index.Index, invoices map[string]estimate.Invoice, est estimate.Estimator) index.Index {
	if len(invoices) == 0 {
		return ix
	}
	for _, d := range ix {
		billed := false
		value := 0.0
		for _, ev := range d.Events {
			var inv *estimate.Invoice
			if v, ok := invoices[ev.ID]; ok {
				inv = &v
				billed = true
			}
			value += est.Estimate(ev, inv).ValueUSD
		}
		if billed {
			d.ValueUSD = value
		}
	}
	return ix
}

func dayRow(d *index.Day) domain.DayRow {
	row := domain.DayRow{
		Date:       d.Key,
		Events:     len(d.Events),
		Categories: []activity.Category{},
		PhotoCount: d.PhotoCount,
		Hours:      d.Hours,
		ValueUSD:   d.ValueUSD,
		Weight:     d.Weight,
	}
	seen := map[activity.Category]bool{}
	for _, ev := range d.Events {
		if !seen[ev.Category] {
			seen[ev.Category] = true
			row.Categories = append(row.Categories, ev.Category)
		}
	}
	return row
}
