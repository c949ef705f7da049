package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// emailRegex accepts the usual local@domain.tld shape.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidPhone reports whether s contains 10 to 15 digits once every
// non-digit character is stripped. This is the single canonical phone
// rule for all flows.
func ValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && digits <= 15
}

// ValidateBorrower checks borrower details before a borrow or an edit.
// All text fields are required; email and phone must pass their checks.
func ValidateBorrower(f BorrowerFields) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("borrower name: %w", ErrMissingField)
	}
	if strings.TrimSpace(f.ContactNumber) == "" {
		return fmt.Errorf("contact number: %w", ErrMissingField)
	}
	if strings.TrimSpace(f.Email) == "" {
		return fmt.Errorf("email: %w", ErrMissingField)
	}
	if strings.TrimSpace(f.Gender) == "" {
		return fmt.Errorf("gender: %w", ErrMissingField)
	}
	if strings.TrimSpace(f.Classification) == "" {
		return fmt.Errorf("classification: %w", ErrMissingField)
	}
	if !ValidEmail(strings.TrimSpace(f.Email)) {
		return ErrInvalidEmail
	}
	if !ValidPhone(f.ContactNumber) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateBookFields checks manually entered book attributes. Ingested
// rows bypass this: the normalizer fills their gaps instead.
func ValidateBookFields(f BookFields) error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("title: %w", ErrMissingField)
	}
	if strings.TrimSpace(f.Author) == "" {
		return fmt.Errorf("author: %w", ErrMissingField)
	}
	if strings.TrimSpace(f.Category) == "" {
		return fmt.Errorf("category: %w", ErrMissingField)
	}
	if f.YearPublished != 0 && (f.YearPublished < 1000 || f.YearPublished > 9999) {
		return ErrInvalidYear
	}
	if f.TotalCopies < 1 {
		return ErrInvalidCopies
	}
	return nil
}
