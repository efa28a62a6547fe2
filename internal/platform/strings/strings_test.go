package strings

import (
	"testing"

	"activitycal/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	if got := IfEmpty(nil, []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty kept default: %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{"timeline": "/timeline", " /meta/ ": "/meta"} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
}
