package datekey

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC)

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Key
		ok   bool
	}{
		{name: "date only unchanged", in: "2023-04-01", want: "2023-04-01", ok: true},
		{name: "utc timestamp", in: "2023-04-01T10:15:00Z", want: "2023-04-01", ok: true},
		{name: "fractional utc", in: "2023-04-01T23:59:59.999Z", want: "2023-04-01", ok: true},
		{name: "positive offset crosses back to utc day", in: "2023-04-02T01:00:00+05:00", want: "2023-04-01", ok: true},
		{name: "negative offset crosses forward", in: "2023-04-01T22:00:00-04:00", want: "2023-04-02", ok: true},
		{name: "naive timestamp truncates", in: "2023-04-01T23:30:00", want: "2023-04-01", ok: true},
		{name: "naive space separated", in: "2023-04-01 07:00:00", want: "2023-04-01", ok: true},
		{name: "postgres timestamptz", in: "2023-04-01 23:30:00.123+00", want: "2023-04-01", ok: true},
		{name: "exif", in: "2019:08:30 14:22:05", want: "2019-08-30", ok: true},
		{name: "slashed", in: "2019/08/30", want: "2019-08-30", ok: true},
		{name: "us style", in: "08/30/2019", want: "2019-08-30", ok: true},
		{name: "rfc1123", in: "Fri, 30 Aug 2019 23:00:00 GMT", want: "2019-08-30", ok: true},
		{name: "long month", in: "August 30, 2019", want: "2019-08-30", ok: true},
		{name: "surrounding space", in: "  2020-01-05 ", want: "2020-01-05", ok: true},
		{name: "garbage falls back to now", in: "not a date", want: "2024-06-15", ok: false},
		{name: "empty falls back to now", in: "", want: "2024-06-15", ok: false},
		{name: "impossible day falls back", in: "2023-02-30", want: "2024-06-15", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(tc.in, fixedNow)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Normalize(%q) = (%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNormalize_SameUTCDayStable(t *testing.T) {
	same := []string{
		"2022-11-05",
		"2022-11-05T00:00:00Z",
		"2022-11-05T23:59:59Z",
		"2022-11-05T12:00:00.5+00:00",
		"2022-11-06T03:00:00+09:00",
		"2022-11-04T20:00:00-04:00",
	}
	for _, v := range same {
		if got := MustNormalize(v, fixedNow); got != "2022-11-05" {
			t.Fatalf("Normalize(%q) = %q, want 2022-11-05", v, got)
		}
	}
}

func TestNormalize_IgnoresLocalZone(t *testing.T) {
	prev := time.Local
	t.Cleanup(func() { time.Local = prev })
	time.Local = time.FixedZone("far-east", 14*3600)

	if got := MustNormalize("2022-11-05T23:00:00Z", fixedNow); got != "2022-11-05" {
		t.Fatalf("local zone leaked into key: %q", got)
	}
	local := time.Date(2022, 11, 6, 5, 0, 0, 0, time.Local)
	if got := FromTime(local); got != "2022-11-05" {
		t.Fatalf("FromTime(local) = %q, want utc day 2022-11-05", got)
	}
}

func TestKeyHelpers(t *testing.T) {
	k := Key("2024-02-28")
	if !k.Valid() || k.Year() != 2024 {
		t.Fatalf("unexpected helpers for %q: valid=%v year=%d", k, k.Valid(), k.Year())
	}
	if got := k.AddDays(2); got != "2024-03-01" {
		t.Fatalf("AddDays = %q, want 2024-03-01", got)
	}
	if !k.Before("2024-03-01") || !Key("2025-01-01").After(k) {
		t.Fatalf("ordering helpers disagree with calendar order")
	}
	if Key("bogus").Year() != 0 || !Key("bogus").Time().IsZero() {
		t.Fatalf("invalid key should yield zero values")
	}
	if _, ok := Parse("2024-2-1"); ok {
		t.Fatalf("Parse accepted a non canonical key")
	}
}
