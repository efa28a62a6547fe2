package textfold

import "testing"

func TestFold_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "empty", in: "", out: ""},
		{name: "identity ascii", in: "oil change", out: "oil change"},
		{name: "utf8 repair drops invalid bytes", in: string([]byte{0xff, 'o', 'i', 'l', 0x80}), out: "oil"},
		{name: "case fold", in: "Brake JOB", out: "brake job"},
		{name: "remove zero-widths", in: "b\u200Brake\u200D", out: "brake"},
		{name: "remove combining marks", in: "Pe\u0301rformance Caf\u00e9", out: "performance cafe"},
		{name: "width fold fullwidth", in: "ＢＭＷ e30", out: "bmw e30"},
		{name: "nfkc ligature", in: "oﬃce visit", out: "office visit"},
		{name: "collapse whitespace", in: "  rear\t\tdiff \n rebuild  ", out: "rear diff rebuild"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.in); got != tc.out {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestFoldKeys(t *testing.T) {
	if Fold("Engine Rebuild") != Fold("engine  rebuild") {
		t.Fatalf("expected titles to fold equal")
	}
	if Fold("engine rebuild") == Fold("engine rebuilt") {
		t.Fatalf("expected distinct titles to differ")
	}
}

func TestFold_Idempotent(t *testing.T) {
	in := "  Ｍｉｘｅｄ\u200B Cafe\u0301  Title "
	once := Fold(in)
	if twice := Fold(once); twice != once {
		t.Fatalf("fold not idempotent: %q then %q", once, twice)
	}
}
