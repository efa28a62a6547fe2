// Package daysum deduplicates one day of events and totals it
package daysum

import (
	"math"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/datekey"
	"activitycal/internal/core/estimate"
	"activitycal/internal/core/index"
	"activitycal/internal/core/textfold"
)

// Provenance discloses whether a day total is authoritative
type Provenance string

const (
	// ProvenanceInvoiced means every costed event was invoiced
	ProvenanceInvoiced Provenance = "invoiced"
	// ProvenanceEstimated means no costed event was invoiced
	ProvenanceEstimated Provenance = "estimated"
	// ProvenanceMixed means some were
	ProvenanceMixed Provenance = "mixed"
)

// Item is a surviving event with its estimate
type Item struct {
	Event    activity.Event    `json:"event"`
	Estimate estimate.Result   `json:"estimate"`
	Invoice  *estimate.Invoice `json:"invoice,omitempty"`
}

// Summary is the drill down of one day
type Summary struct {
	Date       datekey.Key `json:"date"`
	Items      []Item      `json:"items"`
	TotalCost  float64     `json:"total_cost"`
	TotalHours float64     `json:"total_hours"`
	PhotoCount int         `json:"photo_count"`
	Provenance Provenance  `json:"provenance"`
	Duplicates int         `json:"duplicates"`
}

type titleKey struct {
	title string
	day   datekey.Key
}

// Dedup keeps the first occurrence of each real world event
// two events match on equal id, or on equal folded title and day when the title is not empty
func Dedup(raw []activity.Event) (kept []activity.Event, dropped int) {
	ids := make(map[string]struct{}, len(raw))
	titles := make(map[titleKey]struct{}, len(raw))
	kept = make([]activity.Event, 0, len(raw))
	for _, ev := range raw {
		var tk titleKey
		hasTitle := false
		if t := textfold.Fold(ev.Title); t != "" {
			tk, hasTitle = titleKey{title: t, day: ev.DateKey}, true
		}
		_, seenID := ids[ev.ID]
		_, seenTitle := titles[tk]
		if (ev.ID != "" && seenID) || (hasTitle && seenTitle) {
			dropped++
			continue
		}
		if ev.ID != "" {
			ids[ev.ID] = struct{}{}
		}
		if hasTitle {
			titles[tk] = struct{}{}
		}
		kept = append(kept, ev)
	}
	return kept, dropped
}

// Summarize dedups raw and totals cost, hours and photos
// invoice figures win per event, hours are capped like an index day
func Summarize(raw []activity.Event, invoices map[string]estimate.Invoice, est estimate.Estimator) Summary {
	kept, dups := Dedup(raw)
	s := Summary{Items: make([]Item, 0, len(kept)), Duplicates: dups}
	if len(kept) > 0 {
		s.Date = kept[0].DateKey
	}

	invoiced, other := 0, 0
	for _, ev := range kept {
		var inv *estimate.Invoice
		if v, ok := invoices[ev.ID]; ok {
			inv = &v
		}
		r := est.Estimate(ev, inv)
		if r.Source != estimate.SourceInvoice {
			inv = nil
		}
		s.Items = append(s.Items, Item{Event: ev, Estimate: r, Invoice: inv})

		s.TotalCost += r.ValueUSD
		s.TotalHours += r.Hours
		s.PhotoCount += max(ev.ImageCount, 0)
		if r.ValueUSD > 0 {
			if r.Source == estimate.SourceInvoice {
				invoiced++
			} else {
				other++
			}
		}
	}
	s.TotalHours = math.Min(index.MaxDayHours, s.TotalHours)
	s.TotalCost = math.Round(s.TotalCost*100) / 100
	s.Provenance = provenance(invoiced, other)
	return s
}

func provenance(invoiced, other int) Provenance {
	switch {
	case invoiced > 0 && other == 0:
		return ProvenanceInvoiced
	case invoiced > 0:
		return ProvenanceMixed
	}
	return ProvenanceEstimated
}
