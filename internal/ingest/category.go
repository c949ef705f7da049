package ingest

import (
	"regexp"
	"sort"
	"strings"
)

var parenRe = regexp.MustCompile(`\((.*?)\)`)

// DeriveSheetCode turns a sheet name into a candidate category code.
// The "Copy of " prefix is stripped, a parenthesized qualifier becomes
// an abbreviation suffix, and spaces become underscores.
func DeriveSheetCode(sheetName string) string {
	code := strings.TrimSpace(strings.Replace(sheetName, "Copy of ", "", 1))

	if m := parenRe.FindStringSubmatch(code); m != nil {
		qualifier := m[1]
		code = strings.TrimSpace(parenRe.ReplaceAllString(code, ""))
		code = code + "_" + abbreviateQualifier(qualifier)
	}

	return strings.ReplaceAll(code, " ", "_")
}

// abbreviateQualifier shortens a parenthesized sheet qualifier. Two
// qualifiers have fixed historical abbreviations; anything else takes
// the first two letters of each word.
func abbreviateQualifier(q string) string {
	switch strings.ToUpper(q) {
	case "OE-NADA":
		return "OEND"
	case "NADA":
		return "ND"
	}
	var b strings.Builder
	for _, word := range strings.Fields(q) {
		if len(word) >= 2 {
			b.WriteString(strings.ToUpper(word[:2]))
		} else {
			b.WriteString(strings.ToUpper(word))
		}
	}
	return b.String()
}

// Category is a resolved sheet category.
type Category struct {
	Code string
	Name string
}

// ResolveCategory maps a data sheet to its category. Resolution runs in
// three stages:
//  1. the derived sheet code looked up in the taxonomy;
//  2. a scan of up to five banner rows above the header for a cell that
//     equals a taxonomy code;
//  3. a substring match of any taxonomy code in the normalized sheet
//     name, else the sheet code stands in for both code and name.
func ResolveCategory(sheetName string, rows [][]string, headerRow int, taxonomy map[string]string) Category {
	code := DeriveSheetCode(sheetName)

	if name, ok := taxonomy[code]; ok {
		return Category{Code: code, Name: name}
	}

	start := headerRow - 5
	if start < 0 {
		start = 0
	}
	for i := start; i < headerRow && i < len(rows); i++ {
		for _, cell := range rows[i] {
			cellUpper := strings.ToUpper(strings.TrimSpace(cell))
			if name, ok := taxonomy[cellUpper]; ok {
				return Category{Code: cellUpper, Name: name}
			}
		}
	}

	// Longest code first so "ANREP_CISC" beats "AR" for the same name.
	normalized := strings.ReplaceAll(strings.ToUpper(sheetName), " ", "_")
	codes := make([]string, 0, len(taxonomy))
	for tc := range taxonomy {
		codes = append(codes, tc)
	}
	sort.Slice(codes, func(i, j int) bool {
		if len(codes[i]) != len(codes[j]) {
			return len(codes[i]) > len(codes[j])
		}
		return codes[i] < codes[j]
	})
	for _, tc := range codes {
		if strings.Contains(normalized, tc) {
			return Category{Code: tc, Name: taxonomy[tc]}
		}
	}

	return Category{Code: code, Name: code}
}
