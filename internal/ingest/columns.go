package ingest

import "strings"

// Role names a catalog field a workbook column can map to.
type Role string

const (
	RoleID     Role = "id"
	RoleTitle  Role = "title"
	RoleAuthor Role = "author"
	RoleYear   Role = "year"
	RoleCopies Role = "copies"
)

// ColumnMap holds the resolved column index per role. Absent roles stay
// at -1 and the corresponding field gets a placeholder value.
type ColumnMap struct {
	ID     int
	Title  int
	Author int
	Year   int
	Copies int
}

// fieldRule maps header-cell vocabulary to a role. Rules run in order
// per column and the first matching rule claims it; across columns a
// later match overwrites an earlier assignment for the same role.
type fieldRule struct {
	role  Role
	terms []string
}

var fieldRules = []fieldRule{
	{role: RoleTitle, terms: []string{"title"}},
	{role: RoleAuthor, terms: []string{"author", "publisher", "compiler"}},
	{role: RoleYear, terms: []string{"year", "date", "published"}},
	{role: RoleCopies, terms: []string{"copies", "copy", "quantity"}},
}

// idQualifierTerms mark a category-coded identifier column ("DP No.").
var idQualifierTerms = []string{"no", "number", "id"}

// idFallbackTerms find an identifier column when the first pass failed.
var idFallbackTerms = []string{"id", "number", "code", "call no"}

// MapColumns resolves which header column holds which catalog field.
// The identifier chain and the field chain run independently per column,
// so a label can claim id and another role at once. The category code
// gets first claim on the id column: a header like "DP No." is the
// identifier column for the DP sheet; otherwise a bare "no." label
// qualifies unless it belongs to the copies column. Returns ok=false
// when no identifier column can be found at all; such sheets are
// skipped.
func MapColumns(header []string, categoryCode string) (ColumnMap, bool) {
	cm := ColumnMap{ID: -1, Title: -1, Author: -1, Year: -1, Copies: -1}
	codeLower := strings.ToLower(categoryCode)

	for j, cell := range header {
		cellLower := strings.ToLower(cell)

		if codeLower != "" && strings.Contains(cellLower, codeLower) &&
			containsAnyFold(cellLower, idQualifierTerms) {
			cm.ID = j
		} else if strings.Contains(cellLower, "no.") && !strings.Contains(cellLower, "copies") {
			cm.ID = j
		}

		for _, rule := range fieldRules {
			if containsAnyFold(cellLower, rule.terms) {
				cm.setRole(rule.role, j)
				break
			}
		}
	}

	if cm.ID < 0 {
		for j, cell := range header {
			if containsAnyFold(strings.ToLower(cell), idFallbackTerms) {
				cm.ID = j
				break
			}
		}
	}

	return cm, cm.ID >= 0
}

func (cm *ColumnMap) setRole(r Role, col int) {
	switch r {
	case RoleID:
		cm.ID = col
	case RoleTitle:
		cm.Title = col
	case RoleAuthor:
		cm.Author = col
	case RoleYear:
		cm.Year = col
	case RoleCopies:
		cm.Copies = col
	}
}

func containsAnyFold(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
