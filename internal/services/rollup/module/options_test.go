package module

import (
	"testing"
	"time"

	"activitycal/internal/platform/config"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("ROLLUP_SCHEDULE", "*/5 * * * *")
	t.Setenv("ROLLUP_WORKERS", "8")
	o := FromConfig(config.New())
	if o.Schedule != "*/5 * * * *" || o.Workers != 8 || o.Batch != 200 || o.LeaseTTL != 10*time.Minute {
		t.Fatalf("options = %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := (Options{Schedule: "@every 15m"}).Validate(); err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if err := (Options{Schedule: "every tuesday"}).Validate(); err == nil {
		t.Fatalf("bad schedule accepted")
	}
}
