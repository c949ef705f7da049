package ingest

import "strings"

// headerIndicators are the column-name fragments that mark a header row.
// Matching is case-insensitive substring.
var headerIndicators = []string{"title", "author", "publisher", "no.", "id", "year", "copies"}

// minHeaderMatches is how many indicator hits a row needs to be accepted
// as the header. One hit is too easy to get from stray prose.
const minHeaderMatches = 2

// locateHeader scans the first maxProbe rows for the column-header row.
// Falls back to row 0 when nothing qualifies, which matches how clean
// exports without decorative banner rows are laid out.
func locateHeader(rows [][]string, maxProbe int) int {
	for i := 0; i < maxProbe && i < len(rows); i++ {
		matches := 0
		for _, cell := range rows[i] {
			cellLower := strings.ToLower(cell)
			for _, ind := range headerIndicators {
				if strings.Contains(cellLower, ind) {
					matches++
					break
				}
			}
		}
		if matches >= minHeaderMatches {
			return i
		}
	}
	return 0
}
