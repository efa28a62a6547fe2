// Package icalexport renders upcoming scheduled auctions as an iCalendar feed
package icalexport

import (
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"activitycal/internal/core/activity"
	"activitycal/internal/core/datekey"
)

// ProductID identifies the feed producer
const ProductID = "-//activitycal//scheduled auctions//EN"

// Feed describes one vehicle calendar
type Feed struct {
	VehicleID string
	Name      string
	Now       time.Time
}

// Build returns a calendar holding every scheduled auction dated today or later, plus listings still running
// events are all day, the end is exclusive per RFC 5545
func Build(f Feed, events []activity.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	name := f.Name
	if name == "" {
		name = "Auctions " + f.VehicleID
	}
	cal.SetXWRCalName(name)

	today := datekey.FromTime(f.Now)
	upcoming := make([]activity.Event, 0, len(events))
	for _, ev := range events {
		if ev.Category == activity.CategoryScheduledAuction && (!ev.DateKey.Before(today) || activity.Upcoming(ev, f.Now)) {
			upcoming = append(upcoming, ev)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DateKey < upcoming[j].DateKey })

	for _, ev := range upcoming {
		start := ev.DateKey.Time()
		end := start.AddDate(0, 0, 1)
		if v, ok := ev.Meta("end_date"); ok {
			if s, _ := v.(string); s != "" {
				if k, ok := datekey.Normalize(s, f.Now); ok && k.After(ev.DateKey) {
					end = k.AddDays(1).Time()
				}
			}
		}

		vev := cal.AddEvent(ev.ID + "@activitycal")
		vev.SetDtStampTime(f.Now.UTC())
		vev.SetAllDayStartAt(start)
		vev.SetAllDayEndAt(end)
		vev.SetSummary(ev.Title)
		if desc := describe(ev); desc != "" {
			vev.SetDescription(desc)
		}
		if loc := metaString(ev, "location"); loc != "" {
			vev.SetLocation(loc)
		}
		if u := metaString(ev, "url"); u != "" {
			vev.SetURL(u)
		}
	}
	return cal
}

// Write serializes the feed
func Write(w io.Writer, f Feed, events []activity.Event) error {
	return Build(f, events).SerializeTo(w)
}

func describe(ev activity.Event) string {
	p := message.NewPrinter(language.English)
	var parts []string
	lo, hasLo := ev.MetaFloat("estimate_low")
	hi, hasHi := ev.MetaFloat("estimate_high")
	switch {
	case hasLo && hasHi:
		parts = append(parts, p.Sprintf("Estimate $%d to $%d", int64(lo), int64(hi)))
	case hasLo:
		parts = append(parts, p.Sprintf("Estimate from $%d", int64(lo)))
	case hasHi:
		parts = append(parts, p.Sprintf("Estimate up to $%d", int64(hi)))
	}
	if lot := metaString(ev, "lot_number"); lot != "" {
		parts = append(parts, "Lot "+lot)
	}
	return strings.Join(parts, "; ")
}

func metaString(ev activity.Event, key string) string {
	v, ok := ev.Meta(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
