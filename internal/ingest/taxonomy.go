package ingest

import "strings"

// fallbackTaxonomy is used when the workbook carries no readable
// taxonomy sheet. Codes match the historical catalog's shelving scheme.
var fallbackTaxonomy = map[string]string{
	"AB":           "ANNOTATED BIBLIOGRAPHY",
	"ADG":          "ARTICLES ON DATA GATHERING",
	"AF":           "ARTICLES ON FORESTRY",
	"ALR":          "ARTICLES ON LAND/AGRARIAN REFORM",
	"ANREP_CISC":   "ANNUAL REPORTS_CISC",
	"ANREP_OTHER":  "ANNUAL REPORTS",
	"AR":           "READING MATERIALS ON AGRARIAN REFORM",
	"ARCCESS_ND":   "ARCCESS PROJECTS",
	"ARCCESS_OEND": "OE NADA",
	"ASD":          "ARTICLES ON SUSTAINABLE DEVELOPMENT",
	"B":            "BOOKS",
	"BD":           "ASIAN BIOTECHNOLOGY AND DEVELOPMENT REVIEW",
	"C":            "Census",
	"CARP":         "READING MATERIALS ON COMPREHENSIVE AGRARIAN REFORM PROGRAM (CARP)",
	"CDS":          "CONFERENCE/DIALOGUES/SYMPOSIUM/SEMINAR",
	"CPB":          "CPAF POLICY BRIEF",
	"DFO":          "DEVELOPMENT/FRAMEWORK/OPERATIONAL PLAN",
	"DP":           "DISCUSSION PAPER SERIES",
	"FS":           "READING MATERIALS ON FORESTRY",
	"IDP":          "IARDS/CPAF DEVELOPMENT PLAN",
	"ISF":          "RESEARCH STUDIES ON INTEGRATED SOCIAL FORESTRY (ISF) AREAS",
	"J":            "JOURNAL",
	"M":            "Manuals",
	"MP":           "MASTER PLAN",
	"MS":           "MONOGRAPH SERIES",
	"OP":           "OCCASIONAL PAPER",
	"P":            "PROCEEDINGS",
	"PAM":          "PAMPHLETS",
}

// FallbackTaxonomy returns a copy of the built-in category table.
func FallbackTaxonomy() map[string]string {
	out := make(map[string]string, len(fallbackTaxonomy))
	for k, v := range fallbackTaxonomy {
		out[k] = v
	}
	return out
}

// taxonomy sheet column vocab, checked as case-insensitive substrings.
var (
	taxonomyCodeTerms = []string{"CODE", "ABBREV", "ABBREVIATION", "ID"}
	taxonomyNameTerms = []string{"TITLE", "NAME", "DESCRIPTION"}
)

// parseTaxonomy reads code-to-name pairs from the taxonomy sheet's rows.
// The header row is probed within the first maxProbe rows: the first row
// whose cells match both a code term and a name term wins. Returns nil
// when no usable header is found.
func parseTaxonomy(rows [][]string, maxProbe int) map[string]string {
	for i := 0; i < maxProbe && i < len(rows); i++ {
		codeCol, nameCol := -1, -1
		for j, cell := range rows[i] {
			cellUpper := strings.ToUpper(cell)
			if codeCol < 0 && containsAny(cellUpper, taxonomyCodeTerms) {
				codeCol = j
				continue
			}
			if nameCol < 0 && containsAny(cellUpper, taxonomyNameTerms) {
				nameCol = j
			}
		}
		if codeCol < 0 || nameCol < 0 {
			continue
		}

		out := map[string]string{}
		for _, row := range rows[i+1:] {
			code := cleanCell(cellAt(row, codeCol))
			name := cleanCell(cellAt(row, nameCol))
			if code != "" && name != "" {
				out[code] = name
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// cellAt returns the cell at index i, tolerating ragged rows.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
