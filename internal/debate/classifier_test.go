package debate

import "testing"

func TestClassifyNonSubstantive(t *testing.T) {
	tests := []struct {
		name               string
		message            string
		wantRule           string
		wantNonSubstantive bool
	}{
		{
			name:               "concession token ok",
			message:            "ok",
			wantRule:           "concession-token",
			wantNonSubstantive: true,
		},
		{
			name:               "concession token with surrounding whitespace and caps",
			message:            "  You WIN  ",
			wantRule:           "concession-token",
			wantNonSubstantive: true,
		},
		{
			name:               "concession phrase i give up",
			message:            "i give up",
			wantRule:           "concession-token",
			wantNonSubstantive: true,
		},
		{
			name:               "laughter hahaha",
			message:            "hahaha",
			wantRule:           "laughter-only",
			wantNonSubstantive: true,
		},
		{
			name:               "laughter xd",
			message:            "XDDD",
			wantRule:           "laughter-only",
			wantNonSubstantive: true,
		},
		{
			name:               "periods only",
			message:            "...",
			wantRule:           "periods-only",
			wantNonSubstantive: true,
		},
		{
			name:               "short dismissive reply",
			message:            "no you're wrong",
			wantRule:           "below-min-length",
			wantNonSubstantive: true,
		},
		{
			name:               "substantive argument",
			message:            "Renewable capacity additions outpaced fossil plants every year since 2015, so your scarcity premise fails.",
			wantNonSubstantive: false,
		},
		{
			name:               "exactly at minimum length counts as substantive",
			message:            "twenty characters aa",
			wantNonSubstantive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, nonSubstantive := classifyNonSubstantive(tt.message)
			if nonSubstantive != tt.wantNonSubstantive {
				t.Fatalf("classifyNonSubstantive(%q) = %v, want %v", tt.message, nonSubstantive, tt.wantNonSubstantive)
			}
			if tt.wantNonSubstantive && rule != tt.wantRule {
				t.Errorf("matched rule = %q, want %q", rule, tt.wantRule)
			}
		})
	}
}

func TestClassifierRuleOrderPrefersConcessionOverLength(t *testing.T) {
	// "whatever" is both a concession token and below the minimum length;
	// the concession rule must win because it fires first.
	rule, nonSubstantive := classifyNonSubstantive("whatever")
	if !nonSubstantive {
		t.Fatal("expected non-substantive classification")
	}
	if rule != "concession-token" {
		t.Errorf("matched rule = %q, want concession-token", rule)
	}
}
