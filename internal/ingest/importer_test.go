package ingest

import (
	"testing"

	"github.com/cisclib/librarian/internal/catalog"
)

func TestBuildBook(t *testing.T) {
	cat := Category{Code: "FO", Name: "Forestry"}
	cols := ColumnMap{ID: 0, Title: 1, Author: 2, Year: 3, Copies: 4}

	tests := []struct {
		name      string
		row       []string
		want      catalog.Book
		titleless bool
		skip      bool
	}{
		{
			name: "full row",
			row:  []string{"12", "Dendrology", "Harlow", "1996", "3"},
			want: catalog.Book{
				ID:              "FO12",
				Title:           "Dendrology",
				Author:          "Harlow",
				YearPublished:   1996,
				Category:        "Forestry",
				TotalCopies:     3,
				AvailableCopies: 3,
				Status:          catalog.StatusAvailable,
			},
		},
		{
			name: "no copies found marker",
			row:  []string{"13", "Silviculture", "Smith", "1997", "NO COPIES FOUND"},
			want: catalog.Book{
				ID:              "FO13",
				Title:           "Silviculture",
				Author:          "Smith",
				YearPublished:   1997,
				Category:        "Forestry",
				TotalCopies:     0,
				AvailableCopies: 0,
				Status:          catalog.StatusFullyIssued,
			},
		},
		{
			name: "titleless row gets placeholder",
			row:  []string{"7", "", "-", "", "2"},
			want: catalog.Book{
				ID:              "FO7",
				Title:           "[Untitled Book FO7]",
				Author:          "-",
				YearPublished:   0,
				Category:        "Forestry",
				TotalCopies:     2,
				AvailableCopies: 2,
				Status:          catalog.StatusAvailable,
			},
			titleless: true,
		},
		{
			name: "blank row skipped",
			row:  []string{"", "  ", "-", "nan", ""},
			skip: true,
		},
		{
			name: "repeated header row skipped",
			row:  []string{"NO.", "Title", "Author", "Year", "Copies"},
			skip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runCtx := NewContext(nil, FallbackTaxonomy())
			got, titleless, skip := buildBook(runCtx, cat, cols, tt.row)
			if skip != tt.skip {
				t.Fatalf("skip = %v, want %v", skip, tt.skip)
			}
			if skip {
				return
			}
			if titleless != tt.titleless {
				t.Errorf("titleless = %v, want %v", titleless, tt.titleless)
			}
			if got != tt.want {
				t.Errorf("buildBook() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildBookAvailableMatchesTotal(t *testing.T) {
	cat := Category{Code: "AG", Name: "Agriculture"}
	cols := ColumnMap{ID: 0, Title: 1, Author: -1, Year: -1, Copies: 2}
	runCtx := NewContext(nil, FallbackTaxonomy())

	rows := [][]string{
		{"1", "Soil Science", "5"},
		{"2", "Crop Rotation", "0"},
		{"3", "Irrigation", "12.0"},
		{"4", "", "1"},
	}
	for _, row := range rows {
		book, _, skip := buildBook(runCtx, cat, cols, row)
		if skip {
			t.Fatalf("row %v unexpectedly skipped", row)
		}
		if book.AvailableCopies != book.TotalCopies {
			t.Errorf("row %v: available %d != total %d", row, book.AvailableCopies, book.TotalCopies)
		}
	}
}
