// Package datekey canonicalizes timestamp-like values into UTC calendar day keys
// Keys are YYYY-MM-DD strings and never carry a time of day. Local time is never consulted
package datekey

import (
	"strings"
	"time"
)

// Layout is the canonical key layout
const Layout = "2006-01-02"

// Key is a UTC calendar day in YYYY-MM-DD form
type Key string

// zoned layouts tried when a timestamp carries an explicit offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07", // postgres timestamptz text
}

// fallback layouts for values that do not start with an ISO date
var looseLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"2006:01:02 15:04:05", // EXIF DateTimeOriginal
	"2006:01:02",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Normalize returns the day key for v
// ok is false when v could not be read and the key fell back to now's UTC day
func Normalize(v string, now time.Time) (Key, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return FromTime(now), false
	}

	if len(v) >= len(Layout) && isISODate(v[:len(Layout)]) {
		head := v[:len(Layout)]
		if len(v) == len(Layout) {
			return Key(head), true
		}
		if sep := v[len(Layout)]; sep == 'T' || sep == 't' || sep == ' ' {
			// an explicit zone pins an instant, so take its UTC day
			for _, layout := range zonedLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return FromTime(t), true
				}
			}
			// naive timestamp keeps its literal date
			return Key(head), true
		}
	}

	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return FromTime(t), true
		}
	}
	return FromTime(now), false
}

// MustNormalize is Normalize without the ok flag, for callers that accept the fallback
func MustNormalize(v string, now time.Time) Key {
	k, _ := Normalize(v, now)
	return k
}

// FromTime returns the UTC day of t
func FromTime(t time.Time) Key {
	return Key(t.UTC().Format(Layout))
}

// Parse validates a strict YYYY-MM-DD key
func Parse(s string) (Key, bool) {
	s = strings.TrimSpace(s)
	if len(s) != len(Layout) || !isISODate(s) {
		return "", false
	}
	return Key(s), true
}

// String implements fmt.Stringer
func (k Key) String() string { return string(k) }

// Valid reports whether k is a well formed calendar day
func (k Key) Valid() bool { return len(k) == len(Layout) && isISODate(string(k)) }

// Time returns midnight UTC of the day, zero time for invalid keys
func (k Key) Time() time.Time {
	t, err := time.Parse(Layout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Year returns the calendar year of the key, 0 when invalid
func (k Key) Year() int {
	if !k.Valid() {
		return 0
	}
	return k.Time().Year()
}

// AddDays shifts the key by n days
func (k Key) AddDays(n int) Key {
	return FromTime(k.Time().AddDate(0, 0, n))
}

// After reports whether k is a later day than o
func (k Key) After(o Key) bool { return k > o }

// Before reports whether k is an earlier day than o
func (k Key) Before(o Key) bool { return k < o }

// isISODate checks shape and calendar validity of a 10 byte YYYY-MM-DD string
func isISODate(s string) bool {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}
