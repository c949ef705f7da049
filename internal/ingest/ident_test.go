package ingest

import "testing"

func TestSynthesizeID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		code     string
		raw      string
		want     string
	}{
		{
			name: "digits prefixed with category code",
			code: "DP",
			raw:  "12",
			want: "DP12",
		},
		{
			name: "float artifact stripped before digits",
			code: "DP",
			raw:  "12.0",
			want: "DP12",
		},
		{
			name: "first digit run wins",
			code: "B",
			raw:  "vol 3 of 7",
			want: "B3",
		},
		{
			name: "no digits keeps cleaned text",
			code: "J",
			raw:  "Annex-A",
			want: "JAnnex-A",
		},
		{
			name: "disallowed characters removed",
			code: "J",
			raw:  "A/B 7*",
			want: "J7",
		},
		{
			name: "empty cell draws unknown id",
			code: "DP",
			raw:  "",
			want: "UNKNOWN_1",
		},
		{
			name: "placeholder cell draws unknown id",
			code: "DP",
			raw:  "-",
			want: "UNKNOWN_1",
		},
		{
			name:     "collision gets numeric suffix",
			existing: []string{"DP12"},
			code:     "DP",
			raw:      "12",
			want:     "DP12_1",
		},
		{
			name:     "suffix advances past taken suffixes",
			existing: []string{"DP12", "DP12_1"},
			code:     "DP",
			raw:      "12",
			want:     "DP12_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(tt.existing, nil)
			got := SynthesizeID(ctx, tt.code, tt.raw)
			if got != tt.want {
				t.Errorf("SynthesizeID(%q, %q) = %q, want %q", tt.code, tt.raw, got, tt.want)
			}
			if !ctx.Taken(got) {
				t.Errorf("SynthesizeID did not claim %q", got)
			}
		})
	}
}

func TestSynthesizeIDUnknownCounterSkipsTaken(t *testing.T) {
	ctx := NewContext([]string{"UNKNOWN_1", "UNKNOWN_2"}, nil)
	if got := SynthesizeID(ctx, "DP", ""); got != "UNKNOWN_3" {
		t.Errorf("SynthesizeID() = %q, want UNKNOWN_3", got)
	}
	if got := SynthesizeID(ctx, "DP", "-"); got != "UNKNOWN_4" {
		t.Errorf("SynthesizeID() = %q, want UNKNOWN_4", got)
	}
}

func TestSynthesizeIDUniqueWithinRun(t *testing.T) {
	ctx := NewContext(nil, nil)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id := SynthesizeID(ctx, "DP", "7")
		if seen[id] {
			t.Fatalf("duplicate id %q synthesized within one run", id)
		}
		seen[id] = true
	}
}
