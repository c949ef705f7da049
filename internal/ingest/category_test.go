package ingest

import "testing"

func TestDeriveSheetCode(t *testing.T) {
	tests := []struct {
		sheet string
		want  string
	}{
		{"DP", "DP"},
		{"Copy of DP", "DP"},
		{"ANNUAL REPORTS", "ANNUAL_REPORTS"},
		{"Copy of Forestry (OE-NADA)", "Forestry_OEND"},
		{"ARCCESS (NADA)", "ARCCESS_ND"},
		{"Reports (Field Survey)", "Reports_FISU"},
		{"Notes (x)", "Notes_X"},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			if got := DeriveSheetCode(tt.sheet); got != tt.want {
				t.Errorf("DeriveSheetCode(%q) = %q, want %q", tt.sheet, got, tt.want)
			}
		})
	}
}

func TestResolveCategory(t *testing.T) {
	taxonomy := map[string]string{
		"DP":  "DISCUSSION PAPER SERIES",
		"AB":  "ANNOTATED BIBLIOGRAPHY",
		"CPB": "CPAF POLICY BRIEF",
	}

	t.Run("direct sheet code lookup", func(t *testing.T) {
		got := ResolveCategory("DP", nil, 0, taxonomy)
		want := Category{Code: "DP", Name: "DISCUSSION PAPER SERIES"}
		if got != want {
			t.Errorf("ResolveCategory() = %+v, want %+v", got, want)
		}
	})

	t.Run("banner cell above header", func(t *testing.T) {
		rows := [][]string{
			{"LIBRARY HOLDINGS"},
			{"", "CPB"},
			{"No.", "Title", "Author"},
			{"1", "Brief One", "-"},
		}
		got := ResolveCategory("Sheet3", rows, 2, taxonomy)
		want := Category{Code: "CPB", Name: "CPAF POLICY BRIEF"}
		if got != want {
			t.Errorf("ResolveCategory() = %+v, want %+v", got, want)
		}
	})

	t.Run("code embedded in sheet name", func(t *testing.T) {
		got := ResolveCategory("Old AB Inventory", nil, 0, taxonomy)
		want := Category{Code: "AB", Name: "ANNOTATED BIBLIOGRAPHY"}
		if got != want {
			t.Errorf("ResolveCategory() = %+v, want %+v", got, want)
		}
	})

	t.Run("unresolvable uses sheet code for both", func(t *testing.T) {
		got := ResolveCategory("Mystery Sheet", nil, 0, map[string]string{"ZZZ": "z"})
		want := Category{Code: "Mystery_Sheet", Name: "Mystery_Sheet"}
		if got != want {
			t.Errorf("ResolveCategory() = %+v, want %+v", got, want)
		}
	})
}
