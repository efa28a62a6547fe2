package raw

import "testing"

func TestGetters(t *testing.T) {
	t.Setenv("LOG_LEVEL", " warn ")
	t.Setenv("LOG_CALLER", "on")
	rc := New().Prefix("LOG_")

	if got := rc.Get("LEVEL", "info"); got != "warn" {
		t.Fatalf("Get = %q", got)
	}
	if got := rc.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("Get default = %q", got)
	}
	if !rc.GetBool("CALLER", false) {
		t.Fatalf("GetBool(on) = false")
	}
	if !rc.GetBool("MISSING", true) {
		t.Fatalf("GetBool default ignored")
	}
}
