package confirm

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		msg  string
		want Verdict
	}{
		{"Ya", Affirmative},
		{"MAU dong", Affirmative},
		{"boleh banget", Affirmative},
		{"saya tertarik", Affirmative},
		{"Tentu saja!", Affirmative},
		{"tidak mau", Affirmative},
		{"Saya cuma mau lewat", Affirmative},
		{"tidak usah", Negative},
		{"gak, langsung aja", Negative},
		{"No thanks", Negative},
		{"ok", Unclear},
		{"", Unclear},
		{"lanjut", Unclear},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := Resolve(tt.msg)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.msg, got, tt.want)
			}
			if got.IncludeCulturalWaypoints() != (tt.want == Affirmative) {
				t.Errorf("IncludeCulturalWaypoints mismatch for %q", tt.msg)
			}
		})
	}
}

func TestResolve_KeywordSet(t *testing.T) {
	for _, kw := range []string{"ya", "mau", "boleh", "tertarik", "tentu"} {
		if !Resolve(kw).IncludeCulturalWaypoints() {
			t.Errorf("%q must include cultural waypoints", kw)
		}
	}
}
