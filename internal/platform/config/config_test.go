package config

import (
	"reflect"
	"testing"
	"time"

	kit "activitycal/internal/platform/testkit"
)

func TestPrefixKey(t *testing.T) {
	c := New().Prefix("SERVICE_").Prefix("PGSQL_")
	if got := c.Key("DBURL"); got != "SERVICE_PGSQL_DBURL" {
		t.Fatalf("Key = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("AC_")
	t.Setenv("AC_DBURL", "  postgres://x ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayGetters(t *testing.T) {
	c := New().Prefix("ROLLUP_")
	t.Setenv("ROLLUP_WORKERS", "6")
	t.Setenv("ROLLUP_BATCH", "lots")
	t.Setenv("ROLLUP_RATE", "97.5")
	t.Setenv("ROLLUP_ONCE", "true")
	t.Setenv("ROLLUP_EVERY", "90s")
	t.Setenv("ROLLUP_ORIGINS", " a.test, ,b.test ")

	if got := c.MayInt("WORKERS", 4); got != 6 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BATCH", 500); got != 500 {
		t.Fatalf("invalid int should fall back, got %d", got)
	}
	if got := c.MayFloat64("RATE", 120); got != 97.5 {
		t.Fatalf("MayFloat64 = %v", got)
	}
	if !c.MayBool("ONCE", false) {
		t.Fatalf("MayBool = false")
	}
	if got := c.MayDuration("EVERY", time.Minute); got != 90*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayCSV("ORIGINS", nil); !reflect.DeepEqual(got, []string{"a.test", "b.test"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	if got := c.MayString("SCHEDULE", "@every 15m"); got != "@every 15m" {
		t.Fatalf("MayString = %q", got)
	}
}

func TestMayPort(t *testing.T) {
	c := New().Prefix("CORE_API_")
	if got := c.MayPort("PORT", "4000"); got != ":4000" {
		t.Fatalf("default port = %q", got)
	}
	t.Setenv("CORE_API_PORT", "127.0.0.1:9000")
	if got := c.MayPort("PORT", "4000"); got != "127.0.0.1:9000" {
		t.Fatalf("addr passthrough = %q", got)
	}
	t.Setenv("CORE_API_PORT", "70000")
	kit.MustPanic(t, func() { _ = c.MayPort("PORT", "4000") })
}
