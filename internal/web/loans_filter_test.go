package web

import (
	"net/http/httptest"
	"testing"

	"github.com/cisclib/librarian/internal/catalog"
)

func TestLoanFilters(t *testing.T) {
	tests := []struct {
		url        string
		wantDate   catalog.DateFilter
		wantStatus catalog.StatusFilter
		wantOK     bool
	}{
		{"/api/loans", catalog.FilterAll, catalog.StatusAny, true},
		{"/api/loans?date=today", catalog.FilterToday, catalog.StatusAny, true},
		{"/api/loans?date=week&status=returned", catalog.FilterWeek, catalog.StatusReturned, true},
		{"/api/loans?date=month&status=outstanding", catalog.FilterMonth, catalog.StatusOutstanding, true},
		{"/api/loans?date=yesterday", "", "", false},
		{"/api/loans?status=overdue", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			date, status, ok := loanFilters(r)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if date != tt.wantDate || status != tt.wantStatus {
				t.Errorf("got (%q, %q), want (%q, %q)", date, status, tt.wantDate, tt.wantStatus)
			}
		})
	}
}

func TestExportIDs(t *testing.T) {
	tests := []struct {
		url     string
		want    []int
		wantErr bool
	}{
		{"/api/export/loans", nil, false},
		{"/api/export/loans?ids=1", []int{1}, false},
		{"/api/export/loans?ids=3,1,%202", []int{3, 1, 2}, false},
		{"/api/export/loans?ids=1,x", nil, true},
		{"/api/export/loans?ids=0", nil, true},
		{"/api/export/loans?ids=-4", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got, err := exportIDs(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ids = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
