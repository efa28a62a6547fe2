// Package index buckets canonical events by UTC day
package index

import (
	"math"
	"sort"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/datekey"
	"activitycal/internal/core/estimate"
)

const (
	// MaxDayHours caps active hours per day, a day models one working day
	MaxDayHours = 12.0
	// MaxPhotoWeight caps the photo contribution to a day weight
	MaxPhotoWeight = 2.0
	// PhotosPerWeight is how many photos add one unit of weight
	PhotosPerWeight = 10.0
)

// Day is one bucket of the index
type Day struct {
	Key        datekey.Key      `json:"date"`
	Events     []activity.Event `json:"events"`
	PhotoCount int              `json:"photo_count"`
	Hours      float64          `json:"hours"`
	ValueUSD   float64          `json:"value_usd"`
	Weight     float64          `json:"weight"`
}

// Index maps a day key to its bucket, rebuilt on every load
type Index map[datekey.Key]*Day

// Build indexes events and photo day counts
// photo only days get a bucket with no events
func Build(events []activity.Event, photoDateCounts map[datekey.Key]int, est estimate.Estimator) Index {
	ix := make(Index, len(events)+len(photoDateCounts))
	for _, ev := range events {
		d := ix.bucket(ev.DateKey)
		d.Events = append(d.Events, ev)
		r := est.Estimate(ev, nil)
		d.Hours = math.Min(MaxDayHours, d.Hours+r.Hours)
		d.ValueUSD += r.ValueUSD
	}
	for k, n := range photoDateCounts {
		if n <= 0 {
			continue
		}
		ix.bucket(k).PhotoCount += n
	}
	for _, d := range ix {
		d.Weight = Weight(d.Hours, d.PhotoCount)
	}
	return ix
}

// Weight is the heat intensity of a day
func Weight(hours float64, photos int) float64 {
	return math.Min(MaxDayHours, hours) + math.Min(MaxPhotoWeight, float64(photos)/PhotosPerWeight)
}

func (ix Index) bucket(k datekey.Key) *Day {
	d, ok := ix[k]
	if !ok {
		d = &Day{Key: k}
		ix[k] = d
	}
	return d
}

// Day returns the bucket for k
func (ix Index) Day(k datekey.Key) (*Day, bool) {
	d, ok := ix[k]
	return d, ok
}

// ActiveOn reports whether any event or photo landed on k
func (ix Index) ActiveOn(k datekey.Key) bool {
	d, ok := ix[k]
	return ok && (len(d.Events) > 0 || d.PhotoCount > 0)
}

// Keys returns the day keys in calendar order
func (ix Index) Keys() []datekey.Key {
	out := make([]datekey.Key, 0, len(ix))
	for k := range ix {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Days returns the buckets in calendar order
func (ix Index) Days() []*Day {
	keys := ix.Keys()
	out := make([]*Day, 0, len(keys))
	for _, k := range keys {
		out = append(out, ix[k])
	}
	return out
}

// Years returns the distinct years present, ascending
func (ix Index) Years() []int {
	seen := map[int]struct{}{}
	for k := range ix {
		if y := k.Year(); y > 0 {
			seen[y] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// Year returns the buckets of one year in calendar order
func (ix Index) Year(year int) []*Day {
	var out []*Day
	for _, d := range ix.Days() {
		if d.Key.Year() == year {
			out = append(out, d)
		}
	}
	return out
}
