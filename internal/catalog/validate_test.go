package catalog

import (
	"errors"
	"testing"
)

func validBorrower() BorrowerFields {
	return BorrowerFields{
		Name:           "Maria Santos",
		ContactNumber:  "0917-555-1234",
		Email:          "maria.santos@example.edu.ph",
		Gender:         "Female",
		Classification: "Student",
	}
}

func TestValidateBorrower(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BorrowerFields)
		wantErr error
	}{
		{"valid", func(f *BorrowerFields) {}, nil},
		{"missing name", func(f *BorrowerFields) { f.Name = "  " }, ErrMissingField},
		{"missing contact", func(f *BorrowerFields) { f.ContactNumber = "" }, ErrMissingField},
		{"missing email", func(f *BorrowerFields) { f.Email = "" }, ErrMissingField},
		{"missing gender", func(f *BorrowerFields) { f.Gender = "" }, ErrMissingField},
		{"missing classification", func(f *BorrowerFields) { f.Classification = "" }, ErrMissingField},
		{"bad email", func(f *BorrowerFields) { f.Email = "not-an-email" }, ErrInvalidEmail},
		{"email without tld", func(f *BorrowerFields) { f.Email = "a@b" }, ErrInvalidEmail},
		{"short phone", func(f *BorrowerFields) { f.ContactNumber = "12345" }, ErrInvalidPhone},
		{"long phone", func(f *BorrowerFields) { f.ContactNumber = "1234567890123456" }, ErrInvalidPhone},
		{"formatted phone ok", func(f *BorrowerFields) { f.ContactNumber = "+63 (917) 555-1234" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validBorrower()
			tt.mutate(&f)
			err := ValidateBorrower(f)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBorrower() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBookFields(t *testing.T) {
	valid := BookFields{
		Title:         "Discussion Paper No. 7",
		Author:        "-",
		YearPublished: 1999,
		Category:      "DISCUSSION PAPER SERIES",
		TotalCopies:   1,
	}

	tests := []struct {
		name    string
		mutate  func(*BookFields)
		wantErr error
	}{
		{"valid", func(f *BookFields) {}, nil},
		{"year zero means unknown", func(f *BookFields) { f.YearPublished = 0 }, nil},
		{"missing title", func(f *BookFields) { f.Title = "" }, ErrMissingField},
		{"missing author", func(f *BookFields) { f.Author = " " }, ErrMissingField},
		{"missing category", func(f *BookFields) { f.Category = "" }, ErrMissingField},
		{"three digit year", func(f *BookFields) { f.YearPublished = 999 }, ErrInvalidYear},
		{"five digit year", func(f *BookFields) { f.YearPublished = 10000 }, ErrInvalidYear},
		{"zero copies", func(f *BookFields) { f.TotalCopies = 0 }, ErrInvalidCopies},
		{"negative copies", func(f *BookFields) { f.TotalCopies = -2 }, ErrInvalidCopies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := ValidateBookFields(f)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBookFields() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"09175551234", true},
		{"+63 917 555 1234", true},
		{"555-1234", false},
		{"123456789012345", true},
		{"1234567890123456", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidPhone(tt.in); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
