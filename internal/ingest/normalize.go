package ingest

import (
	"strconv"
	"strings"
)

// placeholder marks an absent cell value after normalization.
const placeholder = "-"

// cleanCell trims a raw cell and collapses spreadsheet artifacts for
// "no value" down to the empty string.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "-", "nan", "none", "n/a":
		return ""
	}
	return s
}

// normalizeText returns the cell value or the placeholder when empty.
func normalizeText(s string) string {
	if c := cleanCell(s); c != "" {
		return c
	}
	return placeholder
}

// normalizeCopies parses a copy count. "NO COPIES FOUND" and anything
// non-numeric become zero; fractional exports like "3.0" round down.
func normalizeCopies(s string) int {
	c := cleanCell(s)
	if c == "" || strings.EqualFold(c, "NO COPIES FOUND") {
		return 0
	}
	if n, err := strconv.Atoi(c); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(c, 64); err == nil {
		return int(f)
	}
	return 0
}

// normalizeYear parses a publication year, zero when absent or unparsable.
func normalizeYear(s string) int {
	c := cleanCell(s)
	if c == "" {
		return 0
	}
	if n, err := strconv.Atoi(c); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(c, 64); err == nil {
		return int(f)
	}
	return 0
}

// isTitleEcho reports whether a row's title cell is just the word
// "title", which happens when a header row repeats mid-sheet.
func isTitleEcho(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), "title")
}

// placeholderTitle builds the stand-in name for a titleless row.
func placeholderTitle(bookID string) string {
	return "[Untitled Book " + bookID + "]"
}
