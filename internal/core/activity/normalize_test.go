package activity

import (
	"strings"
	"testing"
	"time"

	"activitycal/internal/core/datekey"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func TestNormalize_AuctionCategories(t *testing.T) {
	tests := []struct {
		name string
		rec  AuctionRecord
		want Category
	}{
		{name: "outcome sold", rec: AuctionRecord{ID: "a1", Outcome: "SOLD", EndDate: "2023-05-01"}, want: CategoryAuctionSold},
		{name: "winning bid implies sold", rec: AuctionRecord{ID: "a2", Outcome: "ended", WinningBid: f(52000), EndDate: "2023-05-01"}, want: CategoryAuctionSold},
		{name: "reserve not met", rec: AuctionRecord{ID: "a3", Outcome: "reserve_not_met", EndDate: "2023-05-01"}, want: CategoryAuctionReserveNotMet},
		{name: "zero winning bid ignored", rec: AuctionRecord{ID: "a4", Outcome: "ended", WinningBid: f(0), EndDate: "2023-05-01"}, want: CategoryAuctionEnded},
		{name: "no outcome", rec: AuctionRecord{ID: "a5", StartDate: "2023-05-01"}, want: CategoryAuctionEnded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Normalize("veh-1", []RawRecord{tc.rec}, now)
			if len(res.Events) != 1 {
				t.Fatalf("want 1 event, got %d (dropped %d)", len(res.Events), res.Dropped)
			}
			if got := res.Events[0].Category; got != tc.want {
				t.Fatalf("category = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalize_AuctionSoldCarriesAmount(t *testing.T) {
	res := Normalize("veh-1", []RawRecord{AuctionRecord{
		ID: "a1", Platform: "bat", Outcome: "sold", WinningBid: f(52000),
		StartDate: "2023-04-24T17:00:00Z", EndDate: "2023-05-01T17:00:00Z",
		Comments: []AuctionComment{
			{PostedAt: "2023-04-30T10:00:00Z", CommentType: "bid", BidAmount: f(50000)},
			{PostedAt: "2023-05-01T16:59:00Z", CommentType: "bid", BidAmount: f(52000), IsLeadingBid: true},
			{PostedAt: "2023-04-25T08:00:00Z", CommentType: "comment"},
		},
	}}, now)

	ev := res.Events[0]
	if ev.Reported() != 52000 {
		t.Fatalf("reported = %v, want 52000", ev.Reported())
	}
	if ev.DateKey != "2023-05-01" {
		t.Fatalf("date = %q, want end date", ev.DateKey)
	}
	if !strings.HasPrefix(ev.ID, "auction:") {
		t.Fatalf("expected synthetic auction id, got %q", ev.ID)
	}
	if ev.Title != "Sold on Bring a Trailer for $52,000" {
		t.Fatalf("title = %q", ev.Title)
	}
	if hb, _ := ev.MetaFloat("highest_bid"); hb != 52000 {
		t.Fatalf("highest_bid = %v", hb)
	}
	if ev.Metadata["bid_count"] != 2 || ev.Metadata["comment_count"] != 3 {
		t.Fatalf("comment enrichment wrong: %+v", ev.Metadata)
	}
	if ev.Metadata["last_comment_at"] != "2023-05-01" {
		t.Fatalf("last_comment_at = %v", ev.Metadata["last_comment_at"])
	}
}

func TestNormalize_SyntheticIDsStable(t *testing.T) {
	rec := AuctionRecord{ID: "a1", Outcome: "sold", EndDate: "2023-05-01"}
	a := Normalize("v", []RawRecord{rec}, now).Events[0].ID
	b := Normalize("v", []RawRecord{rec}, now.Add(48*time.Hour)).Events[0].ID
	if a != b {
		t.Fatalf("ids differ across loads: %q vs %q", a, b)
	}
	other := Normalize("v", []RawRecord{ListingRecord{ID: "a1", StartDate: "2023-05-01"}}, now).Events[0].ID
	if other == a {
		t.Fatalf("listing and auction ids collided")
	}
}

func TestNormalize_Listings(t *testing.T) {
	tests := []struct {
		name string
		rec  ListingRecord
		want Category
		date datekey.Key
	}{
		{name: "future start", rec: ListingRecord{ID: "l1", StartDate: "2024-05-01", EndDate: "2024-05-08"}, want: CategoryScheduledAuction, date: "2024-05-01"},
		{name: "future end only", rec: ListingRecord{ID: "l2", StartDate: "2024-03-01", EndDate: "2024-03-10T18:00:00Z"}, want: CategoryScheduledAuction, date: "2024-03-01"},
		{name: "sale date preferred", rec: ListingRecord{ID: "l3", StartDate: "2024-05-01", SaleDate: "2024-05-04"}, want: CategoryScheduledAuction, date: "2024-05-04"},
		{name: "past sold", rec: ListingRecord{ID: "l4", StartDate: "2023-01-01", ListingStatus: "sold"}, want: CategoryAuctionSold, date: "2023-01-01"},
		{name: "past unsold", rec: ListingRecord{ID: "l5", StartDate: "2023-01-01", ListingStatus: "ended"}, want: CategoryAuctionEnded, date: "2023-01-01"},
		{name: "same day is not future", rec: ListingRecord{ID: "l6", StartDate: "2024-03-10"}, want: CategoryAuctionEnded, date: "2024-03-10"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Normalize("veh", []RawRecord{tc.rec}, now)
			if len(res.Events) != 1 {
				t.Fatalf("dropped listing: %+v", res)
			}
			ev := res.Events[0]
			if ev.Category != tc.want || ev.DateKey != tc.date {
				t.Fatalf("got (%q,%q), want (%q,%q)", ev.Category, ev.DateKey, tc.want, tc.date)
			}
		})
	}
}

func TestUpcoming(t *testing.T) {
	later := Normalize("veh", []RawRecord{ListingRecord{ID: "l1", StartDate: "2024-03-10T18:00:00Z"}}, now).Events[0]
	live := Normalize("veh", []RawRecord{ListingRecord{ID: "l2", StartDate: "2024-03-01", EndDate: "2024-03-12"}}, now).Events[0]
	for _, e := range []Event{later, live} {
		if e.Category != CategoryScheduledAuction || !Upcoming(e, now) {
			t.Fatalf("%s: category %q upcoming %v", e.ID, e.Category, Upcoming(e, now))
		}
	}
	if Upcoming(later, now.Add(7*time.Hour)) {
		t.Fatalf("listing that started should not stay upcoming")
	}
	if Upcoming(Event{Category: CategoryManual, DateKey: "2030-01-01"}, now) {
		t.Fatalf("only scheduled auctions are upcoming")
	}
	if !Upcoming(Event{Category: CategoryScheduledAuction, DateKey: "2024-03-11"}, now) {
		t.Fatalf("a later day with no stamps is upcoming")
	}
}

func TestNormalize_Manual(t *testing.T) {
	res := Normalize("veh-9", []RawRecord{
		ManualRecord{ID: "m1", Title: "Rear brakes", EventType: "Repair", EventDate: "2023-07-04T09:00:00", ImageURLs: []string{"a", "", "b"}},
		ManualRecord{ID: "m2", Title: "Walkaround", EventType: "inspection", EventDate: "2023-07-05"},
		ManualRecord{ID: "m3", Title: "Session", EventType: "work_documented", EventDate: "2023-07-06", Metadata: map[string]any{"image_count": float64(14)}},
		ManualRecord{ID: "m4", Title: "Other", EventType: "other_work", EventDate: "2023-07-07", CostAmount: f(-5)},
	}, now)

	if len(res.Events) != 4 {
		t.Fatalf("want 4 events, got %d", len(res.Events))
	}
	rep := res.Events[0]
	if rep.Category != CategoryManual || rep.Kind != "repair" || rep.ImageCount != 2 || rep.VehicleID != "veh-9" {
		t.Fatalf("unexpected manual mapping: %+v", rep)
	}
	if res.Events[1].Category != CategoryDocumentation {
		t.Fatalf("inspection should map to documentation, got %q", res.Events[1].Category)
	}
	if res.Events[2].Category != CategoryDocumentation || res.Events[2].ImageCount != 14 {
		t.Fatalf("work session mapping wrong: %+v", res.Events[2])
	}
	if res.Events[3].Category != CategoryOtherWork || res.Events[3].CostReported != nil {
		t.Fatalf("other_work mapping wrong: %+v", res.Events[3])
	}
}

func TestNormalize_DropsAndFallbacks(t *testing.T) {
	res := Normalize("veh", []RawRecord{
		nil,
		ManualRecord{},                           // no identity
		PhotoRecord{Date: "2023-01-01"},          // no photos
		AuctionRecord{ID: "a"},                   // no dates
		ListingRecord{ID: "l"},                   // no dates
		ManualRecord{ID: "ok", EventDate: "???"}, // kept with fallback date
	}, now)

	if res.Dropped != 5 {
		t.Fatalf("dropped = %d, want 5", res.Dropped)
	}
	if res.DroppedBy[SourceManual] != 1 || res.DroppedBy[SourceListing] != 1 {
		t.Fatalf("per source drops wrong: %+v", res.DroppedBy)
	}
	if len(res.Events) != 1 || res.Events[0].DateKey != "2024-03-10" || res.DateFallbacks != 1 {
		t.Fatalf("fallback event wrong: %+v fallbacks=%d", res.Events, res.DateFallbacks)
	}
}

func TestNormalize_DropsUnowned(t *testing.T) {
	recs := []RawRecord{
		ManualRecord{ID: "m1", Title: "Brake job", EventDate: "2024-01-02"},
		ListingRecord{ID: "l1", StartDate: "2024-05-01"},
		ManualRecord{ID: "m2", VehicleID: "veh-2", Title: "Tune up", EventDate: "2024-01-03"},
	}
	res := Normalize("", recs, now)
	if res.Dropped != 2 || res.DroppedBy[SourceManual] != 1 || res.DroppedBy[SourceListing] != 1 {
		t.Fatalf("dropped = %d %+v", res.Dropped, res.DroppedBy)
	}
	if len(res.Events) != 1 || res.Events[0].VehicleID != "veh-2" {
		t.Fatalf("events = %+v", res.Events)
	}
}

func TestPhotoDays(t *testing.T) {
	rows := []PhotoRow{
		{ID: "1", TakenAt: "2019:08:30 14:22:05"},
		{ID: "2", TakenAt: "2019-08-30T23:59:00Z"},
		{ID: "3", CreatedAt: "2019-08-31T01:00:00+02:00", EventID: "m1"},
		{ID: "4", TakenAt: "garbage"},
	}
	counts, recs, fb := PhotoDays("veh", rows, now)

	if counts["2019-08-30"] != 3 {
		t.Fatalf("2019-08-30 count = %d, want 3", counts["2019-08-30"])
	}
	if counts["2024-03-10"] != 1 || fb != 1 {
		t.Fatalf("fallback photo not bucketed on today: %+v fb=%d", counts, fb)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 loose photo records, got %d", len(recs))
	}
	first := recs[0].(PhotoRecord)
	if first.Date != "2019-08-30" || first.Count != 2 {
		t.Fatalf("attached photo leaked into loose record: %+v", first)
	}

	res := Normalize("veh", recs, now)
	if res.Events[0].Category != CategoryDerivedPhoto || res.Events[0].ImageCount != 2 {
		t.Fatalf("photo record mapping wrong: %+v", res.Events[0])
	}
	titled := Normalize("veh", []RawRecord{PhotoRecord{Date: "2019-08-30", Count: 3, Title: "Paint"}}, now)
	if titled.Events[0].Category != CategoryDocumentation {
		t.Fatalf("titled photo record should be documentation")
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory(" Auction_Sold "); !ok || c != CategoryAuctionSold {
		t.Fatalf("ParseCategory failed: %q %v", c, ok)
	}
	if _, ok := ParseCategory("repair"); ok {
		t.Fatalf("repair is not a category")
	}
	if !CategoryScheduledAuction.IsSale() || CategoryManual.IsSale() {
		t.Fatalf("IsSale disagrees with category set")
	}
}
