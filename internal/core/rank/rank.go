// Package rank picks the calendar year to show first
package rank

import (
	"sort"
	"time"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/datekey"
	"activitycal/internal/core/index"
)

// YearScore is the density of one year
type YearScore struct {
	Year   int     `json:"year"`
	Events int     `json:"events"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// Scores returns per year scores ordered by (score desc, year desc)
// score is the event count plus the summed day weights
func Scores(ix index.Index) []YearScore {
	by := map[int]*YearScore{}
	for k, d := range ix {
		y := k.Year()
		if y == 0 {
			continue
		}
		s, ok := by[y]
		if !ok {
			s = &YearScore{Year: y}
			by[y] = s
		}
		s.Events += len(d.Events)
		s.Weight += d.Weight
	}
	out := make([]YearScore, 0, len(by))
	for _, s := range by {
		s.Score = float64(s.Events) + s.Weight
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Year > out[j].Year
	})
	return out
}

// SelectYear returns the year to focus
// an upcoming scheduled event wins outright, its earliest year is returned
// ok is false when there is nothing to show
func SelectYear(ix index.Index, scheduled []activity.Event, now time.Time) (int, bool) {
	if y, ok := UpcomingYear(scheduled, now); ok {
		return y, true
	}
	scores := Scores(ix)
	if len(scores) == 0 {
		return 0, false
	}
	return scores[0].Year, true
}

// UpcomingYear returns the earliest year holding a scheduled event still ahead of now
func UpcomingYear(scheduled []activity.Event, now time.Time) (int, bool) {
	var first datekey.Key
	for _, ev := range scheduled {
		if !ev.DateKey.Valid() || !activity.Upcoming(ev, now) {
			continue
		}
		if first == "" || ev.DateKey.Before(first) {
			first = ev.DateKey
		}
	}
	if first == "" {
		return 0, false
	}
	return first.Year(), true
}
