package activity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"activitycal/internal/core/datekey"
)

// Result is the output of a normalization pass
type Result struct {
	Events        []Event
	Dropped       int
	DroppedBy     map[Source]int
	DateFallbacks int
}

// documentation-like manual kinds, these never count as labor
var docKinds = map[string]struct{}{
	"documentation":   {},
	"inspection":      {},
	"work_documented": {},
	"photo_session":   {},
}

// Normalize maps every record onto a canonical event
// malformed or unowned records are dropped and counted, dates that cannot be read fall back to now
func Normalize(vehicleID string, recs []RawRecord, now time.Time) Result {
	res := Result{
		Events:    make([]Event, 0, len(recs)),
		DroppedBy: map[Source]int{},
	}
	for _, rec := range recs {
		var (
			ev Event
			ok bool
			fb bool
		)
		switch r := rec.(type) {
		case ManualRecord:
			ev, fb, ok = fromManual(vehicleID, r, now)
		case PhotoRecord:
			ev, fb, ok = fromPhoto(vehicleID, r, now)
		case AuctionRecord:
			ev, fb, ok = fromAuction(vehicleID, r, now)
		case ListingRecord:
			ev, fb, ok = fromListing(vehicleID, r, now)
		}
		// an event nobody owns cannot be bucketed for any vehicle
		if ok && strings.TrimSpace(ev.VehicleID) == "" {
			ok = false
		}
		if !ok {
			res.Dropped++
			if rec != nil {
				res.DroppedBy[rec.source()]++
			}
			continue
		}
		if fb {
			res.DateFallbacks++
		}
		res.Events = append(res.Events, ev)
	}
	return res
}

// PhotoDays counts photos per UTC day and groups unattached photos into photo records
func PhotoDays(vehicleID string, rows []PhotoRow, now time.Time) (counts map[datekey.Key]int, recs []RawRecord, fallbacks int) {
	counts = map[datekey.Key]int{}
	loose := map[datekey.Key]int{}
	for _, p := range rows {
		k, ok := datekey.Normalize(p.When(), now)
		if !ok {
			fallbacks++
		}
		counts[k]++
		if p.EventID == "" {
			loose[k]++
		}
	}
	keys := make([]datekey.Key, 0, len(loose))
	for k := range loose {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		recs = append(recs, PhotoRecord{VehicleID: vehicleID, Date: string(k), Count: loose[k]})
	}
	return counts, recs, fallbacks
}

func fromManual(vehicleID string, r ManualRecord, now time.Time) (Event, bool, bool) {
	title := strings.TrimSpace(r.Title)
	if r.ID == "" && title == "" {
		return Event{}, false, false
	}
	key, dok := datekey.Normalize(r.EventDate, now)
	kind := strings.ToLower(strings.TrimSpace(r.EventType))

	id := r.ID
	if id == "" {
		id = syntheticID("manual", vehicleID, title, string(key), kind)
	}

	meta := cloneMeta(r.Metadata)
	images := 0
	for _, u := range r.ImageURLs {
		if strings.TrimSpace(u) != "" {
			images++
		}
	}
	// work sessions carry their photo count in metadata rather than urls
	if images == 0 {
		if n, ok := toFloat(meta["image_count"]); ok && n > 0 {
			images = int(n)
		}
	}

	return Event{
		ID:           id,
		VehicleID:    pick(r.VehicleID, vehicleID),
		Category:     categoryForKind(kind),
		Kind:         kind,
		DateKey:      key,
		Title:        title,
		Description:  strings.TrimSpace(r.Description),
		CostReported: positive(r.CostAmount),
		ImageCount:   images,
		Metadata:     meta,
		Source:       SourceManual,
	}, !dok, true
}

func categoryForKind(kind string) Category {
	if c, ok := ParseCategory(kind); ok {
		return c
	}
	if _, ok := docKinds[kind]; ok {
		return CategoryDocumentation
	}
	return CategoryManual
}

func fromPhoto(vehicleID string, r PhotoRecord, now time.Time) (Event, bool, bool) {
	if r.Count <= 0 {
		return Event{}, false, false
	}
	key, dok := datekey.Normalize(r.Date, now)
	vid := pick(r.VehicleID, vehicleID)

	cat := CategoryDerivedPhoto
	title := strings.TrimSpace(r.Title)
	if title != "" {
		cat = CategoryDocumentation
	}
	return Event{
		ID:         syntheticID("photo", vid, string(key)),
		VehicleID:  vid,
		Category:   cat,
		DateKey:    key,
		Title:      title,
		ImageCount: r.Count,
		Metadata:   map[string]any{"photo_count": r.Count},
		Source:     SourcePhotos,
	}, !dok, true
}

func fromAuction(vehicleID string, r AuctionRecord, now time.Time) (Event, bool, bool) {
	when := r.EndDate
	if strings.TrimSpace(when) == "" {
		when = r.StartDate
	}
	if strings.TrimSpace(when) == "" {
		return Event{}, false, false
	}
	key, dok := datekey.Normalize(when, now)
	platform := pick(strings.TrimSpace(r.Platform), "auction")

	outcome := strings.ToLower(strings.TrimSpace(r.Outcome))
	winning := positive(r.WinningBid)
	cat := CategoryAuctionEnded
	switch {
	case outcome == "sold" || winning != nil:
		cat = CategoryAuctionSold
	case outcome == "reserve_not_met" || outcome == "no_sale_reserve":
		cat = CategoryAuctionReserveNotMet
	}

	meta := map[string]any{
		"platform":       platform,
		"outcome":        outcome,
		"total_bids":     r.TotalBids,
		"comments_count": r.CommentsCount,
	}
	setNonEmpty(meta, "lot_number", r.LotNumber)
	setNonEmpty(meta, "seller_name", r.SellerName)
	setNonEmpty(meta, "winning_bidder", r.WinningBidder)
	setNonEmpty(meta, "url", r.URL)
	if hb := positive(r.HighBid); hb != nil {
		meta["high_bid"] = *hb
	}
	if winning != nil {
		meta["winning_bid"] = *winning
	}
	enrichFromComments(meta, r, now)

	src := r.ID
	if src == "" {
		src = platform + "|" + r.StartDate + "|" + r.EndDate
	}

	var cost *float64
	if cat == CategoryAuctionSold {
		cost = winning
		if cost == nil {
			cost = positive(r.HighBid)
		}
	}

	return Event{
		ID:           syntheticID("auction", src),
		VehicleID:    vehicleID,
		Category:     cat,
		DateKey:      key,
		Title:        auctionTitle(cat, platform, cost),
		CostReported: cost,
		Metadata:     meta,
		Source:       SourceAuction,
	}, !dok, true
}

// enrichFromComments folds comment activity into the auction metadata
func enrichFromComments(meta map[string]any, r AuctionRecord, now time.Time) {
	highest := 0.0
	if r.HighBid != nil {
		highest = *r.HighBid
	}
	bids := 0
	var last datekey.Key
	for _, c := range r.Comments {
		if c.BidAmount != nil && *c.BidAmount > 0 {
			bids++
			if *c.BidAmount > highest {
				highest = *c.BidAmount
			}
		} else if strings.EqualFold(c.CommentType, "bid") {
			bids++
		}
		if k, ok := datekey.Normalize(c.PostedAt, now); ok && k > last {
			last = k
		}
	}
	meta["comment_count"] = len(r.Comments)
	meta["bid_count"] = max(bids, r.TotalBids)
	if highest > 0 {
		meta["highest_bid"] = highest
	}
	if last != "" {
		meta["last_comment_at"] = string(last)
	}
}

func fromListing(vehicleID string, r ListingRecord, now time.Time) (Event, bool, bool) {
	when := firstNonEmpty(r.SaleDate, r.StartDate, r.EndDate)
	if when == "" {
		return Event{}, false, false
	}
	key, dok := datekey.Normalize(when, now)
	platform := pick(strings.TrimSpace(r.Platform), "listing")
	status := strings.ToLower(strings.TrimSpace(r.ListingStatus))

	cat := CategoryAuctionEnded
	switch {
	case isFuture(r.StartDate, now) || isFuture(r.EndDate, now):
		cat = CategoryScheduledAuction
	case status == "sold":
		cat = CategoryAuctionSold
	}

	meta := map[string]any{
		"platform": platform,
		"status":   status,
	}
	setNonEmpty(meta, "lot_number", r.LotNumber)
	setNonEmpty(meta, "location", r.Location)
	setNonEmpty(meta, "url", r.URL)
	setNonEmpty(meta, "sale_date", r.SaleDate)
	setNonEmpty(meta, "start_date", r.StartDate)
	setNonEmpty(meta, "end_date", r.EndDate)
	if v := positive(r.EstimateLow); v != nil {
		meta["estimate_low"] = *v
	}
	if v := positive(r.EstimateHigh); v != nil {
		meta["estimate_high"] = *v
	}

	src := r.ID
	if src == "" {
		src = platform + "|" + r.StartDate + "|" + r.EndDate + "|" + r.LotNumber
	}
	return Event{
		ID:        syntheticID("listing", src),
		VehicleID: vehicleID,
		Category:  cat,
		DateKey:   key,
		Title:     listingTitle(cat, platform, r.LotNumber),
		Metadata:  meta,
		Source:    SourceListing,
	}, !dok, true
}

// Upcoming reports whether ev is a scheduled auction that has not finished by now.
// Listings carry their start and end stamps, so one starting later today or still
// running counts the same as it did when Normalize labelled it scheduled
func Upcoming(ev Event, now time.Time) bool {
	if ev.Category != CategoryScheduledAuction {
		return false
	}
	for _, k := range []string{"start_date", "end_date"} {
		if v, ok := ev.Metadata[k].(string); ok && isFuture(v, now) {
			return true
		}
	}
	return ev.DateKey.Valid() && ev.DateKey.After(datekey.FromTime(now))
}

// isFuture reports whether v parses to an instant strictly after now
func isFuture(v string, now time.Time) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07", "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.After(now)
		}
	}
	// day precision only, future means a later UTC day
	k, ok := datekey.Normalize(v, now)
	return ok && k.After(datekey.FromTime(now))
}

// ids are deterministic so a reload yields the same ids
var idSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("activitycal.event"))

func syntheticID(prefix string, parts ...string) string {
	u := uuid.NewSHA1(idSpace, []byte(prefix+":"+strings.Join(parts, "|")))
	return prefix + ":" + u.String()
}

func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	c := *v
	return &c
}

func pick(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func setNonEmpty(m map[string]any, k, v string) {
	if v = strings.TrimSpace(v); v != "" {
		m[k] = v
	}
}
