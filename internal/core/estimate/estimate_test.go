package estimate

import (
	"strings"
	"testing"

	"activitycal/internal/core/activity"
)

func f(v float64) *float64 { return &v }

func TestEstimate_Table(t *testing.T) {
	eng := Default()

	repair := activity.Event{ID: "m1", Category: activity.CategoryManual, Kind: "repair", ImageCount: 40, DateKey: "2023-07-04"}

	tests := []struct {
		name string
		ev   activity.Event
		inv  *Invoice
		want Result
	}{
		{
			name: "repair heuristic",
			ev:   repair,
			want: Result{Hours: 2.75, ValueUSD: 330, Source: SourceHeuristic},
		},
		{
			name: "invoice overrides heuristic",
			ev:   repair,
			inv:  &Invoice{EventID: "m1", TotalAmount: 450, Status: "paid"},
			want: Result{Hours: 0, ValueUSD: 450, Source: SourceInvoice},
		},
		{
			name: "void invoice ignored",
			ev:   repair,
			inv:  &Invoice{EventID: "m1", TotalAmount: 450, Status: "Void"},
			want: Result{Hours: 2.75, ValueUSD: 330, Source: SourceHeuristic},
		},
		{
			name: "zero invoice ignored",
			ev:   repair,
			inv:  &Invoice{EventID: "m1"},
			want: Result{Hours: 2.75, ValueUSD: 330, Source: SourceHeuristic},
		},
		{
			name: "auction sold reported",
			ev:   activity.Event{Category: activity.CategoryAuctionSold, CostReported: f(52000), ImageCount: 100},
			want: Result{Hours: 0, ValueUSD: 52000, Source: SourceReported},
		},
		{
			name: "invoice beats reported sale",
			ev:   activity.Event{Category: activity.CategoryAuctionSold, CostReported: f(52000)},
			inv:  &Invoice{TotalAmount: 1200},
			want: Result{ValueUSD: 1200, Source: SourceInvoice},
		},
		{
			name: "auction ended uses highest bid",
			ev:   activity.Event{Category: activity.CategoryAuctionEnded, Metadata: map[string]any{"highest_bid": 31000.0}},
			want: Result{ValueUSD: 31000, Source: SourceReported},
		},
		{
			name: "reserve not met string bid",
			ev:   activity.Event{Category: activity.CategoryAuctionReserveNotMet, Metadata: map[string]any{"high_bid": "18500"}},
			want: Result{ValueUSD: 18500, Source: SourceReported},
		},
		{
			name: "scheduled auction without amount",
			ev:   activity.Event{Category: activity.CategoryScheduledAuction, ImageCount: 12},
			want: Result{Source: SourceNone},
		},
		{
			name: "documentation zero",
			ev:   activity.Event{Category: activity.CategoryDocumentation, ImageCount: 500},
			want: Result{Source: SourceNone},
		},
		{
			name: "inspection kind zero even as manual",
			ev:   activity.Event{Category: activity.CategoryManual, Kind: "inspection", ImageCount: 30},
			want: Result{Source: SourceNone},
		},
		{
			name: "general manual no bonus",
			ev:   activity.Event{Category: activity.CategoryManual, Kind: "detailing", ImageCount: 10},
			want: Result{Hours: 0.75, ValueUSD: 90, Source: SourceHeuristic},
		},
		{
			name: "derived photo heuristic",
			ev:   activity.Event{Category: activity.CategoryDerivedPhoto, ImageCount: 5},
			want: Result{Hours: 0.5, ValueUSD: 60, Source: SourceHeuristic},
		},
		{
			name: "hours clamp at twelve",
			ev:   activity.Event{Category: activity.CategoryOtherWork, ImageCount: 1000},
			want: Result{Hours: 12, ValueUSD: 1440, Source: SourceHeuristic},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := eng.Estimate(tc.ev, tc.inv)
			if got != tc.want {
				t.Fatalf("Estimate = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestEstimate_DocumentationNeverLabor(t *testing.T) {
	eng := Default()
	for _, n := range []int{0, 1, 19, 20, 400, 1 << 20} {
		got := eng.Estimate(activity.Event{Category: activity.CategoryDocumentation, ImageCount: n}, nil)
		if got.Hours != 0 || got.ValueUSD != 0 {
			t.Fatalf("documentation with %d images produced %+v", n, got)
		}
	}
}

func TestLoadPolicy_OverridesAndMerges(t *testing.T) {
	p, err := LoadPolicy(strings.NewReader("labor_rate: 95\nkind_bonus:\n  Welding: 1.0\n"))
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p.LaborRate != 95 || p.MaxHours != 12 {
		t.Fatalf("scalars not applied over defaults: %+v", p)
	}
	if p.KindBonus["repair"] != 0.5 || p.KindBonus["Welding"] != 1.0 {
		t.Fatalf("kind_bonus did not merge: %+v", p.KindBonus)
	}

	eng := New(p)
	got := eng.Estimate(activity.Event{Category: activity.CategoryManual, Kind: "welding"}, nil)
	if got.Hours != 1.25 || got.ValueUSD != 118.75 {
		t.Fatalf("custom policy estimate = %+v", got)
	}
}

func TestLoadPolicy_Rejects(t *testing.T) {
	cases := []string{
		"labor_rate: -1\n",
		"max_hours: 0\n",
		"images_per_hour: 0\n",
		"kind_bonus:\n  repair: -2\n",
		"unknown_field: 1\n",
		"labor_rate: [\n",
	}
	for _, in := range cases {
		if _, err := LoadPolicy(strings.NewReader(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestLoadPolicy_EmptyIsDefault(t *testing.T) {
	p, err := LoadPolicy(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty policy: %v", err)
	}
	if p.LaborRate != 120 || p.BaseHours != 0.25 || p.ImagesPerHour != 20 {
		t.Fatalf("defaults not applied: %+v", p)
	}
}
