package ingest

import "testing"

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{
			name: "header on first row",
			rows: [][]string{
				{"No.", "Title", "Author", "Year", "Copies"},
				{"1", "Some Book", "A. Author", "1999", "2"},
			},
			want: 0,
		},
		{
			name: "banner rows above header",
			rows: [][]string{
				{"CISC LIBRARY INVENTORY"},
				{"DP"},
				{""},
				{"DP No.", "Title", "Author/Publisher", "Year Published", "No. of Copies"},
				{"1", "Some Paper", "-", "2001", "1"},
			},
			want: 3,
		},
		{
			name: "single indicator is not enough",
			rows: [][]string{
				{"Title of the collection"},
				{"No.", "Title"},
			},
			want: 1,
		},
		{
			name: "nothing qualifies falls back to row zero",
			rows: [][]string{
				{"some", "random", "cells"},
				{"more", "random", "cells"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := locateHeader(tt.rows, 15)
			if got != tt.want {
				t.Errorf("locateHeader() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocateHeaderRespectsProbeLimit(t *testing.T) {
	rows := [][]string{
		{"banner"},
		{"banner"},
		{"No.", "Title", "Author"},
	}
	if got := locateHeader(rows, 2); got != 0 {
		t.Errorf("locateHeader() = %d, want fallback 0 when header is past the probe window", got)
	}
}
