package time

import (
	"testing"
	"time"
)

func TestClockOr(t *testing.T) {
	pinned := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Fixed(pinned)
	if got := c.Or(nil); !got.Equal(pinned) {
		t.Fatalf("Or(nil) = %v, want %v", got, pinned)
	}
	over := time.Date(2020, 1, 1, 0, 0, 0, 0, time.FixedZone("x", 3600))
	if got := c.Or(&over); got.Location() != time.UTC || !got.Equal(over) {
		t.Fatalf("Or(&over) = %v", got)
	}
	var zero time.Time
	if got := c.Or(&zero); !got.Equal(pinned) {
		t.Fatalf("zero override should fall back, got %v", got)
	}
}
