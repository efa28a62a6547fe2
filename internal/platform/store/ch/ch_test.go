package ch

import "testing"

func TestInsertSQL(t *testing.T) {
	got, err := InsertSQL("activity_day_agg", []string{"vehicle_id", "day", "weight"})
	if err != nil || got != "INSERT INTO activity_day_agg (vehicle_id, day, weight)" {
		t.Fatalf("InsertSQL = %q, %v", got, err)
	}
	if got, _ := InsertSQL(" t ", nil); got != "INSERT INTO t" {
		t.Fatalf("InsertSQL no columns = %q", got)
	}
	for _, bad := range []string{"", "t; DROP TABLE x", "a b"} {
		if _, err := InsertSQL(bad, nil); err == nil {
			t.Fatalf("InsertSQL(%q) should fail", bad)
		}
	}
}

func TestBuildClientInfo(t *testing.T) {
	ci := BuildClientInfo("rollup", "1.2.3")
	if len(ci.Products) != 5 || ci.Products[0].Name != "activitycal" || ci.Products[1].Version != "rollup" {
		t.Fatalf("client info = %+v", ci.Products)
	}
}
