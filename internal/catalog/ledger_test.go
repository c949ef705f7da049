package catalog

import (
	"errors"
	"testing"
)

func TestBorrowTransition(t *testing.T) {
	tests := []struct {
		name       string
		available  int
		wantAvail  int
		wantStatus Status
		wantErr    error
	}{
		{"last copy goes out", 1, 0, StatusFullyIssued, nil},
		{"plenty left", 5, 4, StatusAvailable, nil},
		{"none left", 0, 0, StatusFullyIssued, ErrNoCopiesAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail, status, err := borrowTransition(tt.available)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if avail != tt.wantAvail || status != tt.wantStatus {
				t.Errorf("got (%d, %q), want (%d, %q)", avail, status, tt.wantAvail, tt.wantStatus)
			}
		})
	}
}

func TestReturnTransition(t *testing.T) {
	tests := []struct {
		name       string
		available  int
		total      int
		wantAvail  int
		wantStatus Status
		wantErr    error
	}{
		{"copy comes back", 0, 1, 1, StatusAvailable, nil},
		{"one of many", 2, 5, 3, StatusAvailable, nil},
		{"all already shelved", 3, 3, 3, StatusAvailable, ErrAllCopiesAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail, status, err := returnTransition(tt.available, tt.total)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if avail != tt.wantAvail || status != tt.wantStatus {
				t.Errorf("got (%d, %q), want (%d, %q)", avail, status, tt.wantAvail, tt.wantStatus)
			}
		})
	}
}

func TestResizeTransition(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		available  int
		newTotal   int
		wantAvail  int
		wantStatus Status
		wantErr    error
	}{
		{"grow pool", 3, 1, 5, 3, StatusAvailable, nil},
		{"shrink to outstanding", 3, 1, 2, 0, StatusFullyIssued, nil},
		{"shrink below outstanding", 3, 1, 1, 1, StatusAvailable, ErrBelowOutstandingLoans},
		{"no loans out, shrink to zero", 2, 2, 0, 0, StatusFullyIssued, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail, status, err := resizeTransition(tt.total, tt.available, tt.newTotal)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if avail != tt.wantAvail || status != tt.wantStatus {
				t.Errorf("got (%d, %q), want (%d, %q)", avail, status, tt.wantAvail, tt.wantStatus)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	if statusFor(0) != StatusFullyIssued {
		t.Error("zero available should be fully issued")
	}
	if statusFor(1) != StatusAvailable {
		t.Error("positive available should be available")
	}
}
