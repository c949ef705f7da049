package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	idAllowedRe  = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	idNumericRe  = regexp.MustCompile(`\d+`)
	trailingZero = regexp.MustCompile(`\.0$`)
)

// SynthesizeID turns a raw identifier cell into a unique catalog id.
// Spreadsheet float artifacts (a trailing ".0") and disallowed
// characters are stripped first. Empty or placeholder cells draw the
// next UNKNOWN_n id. Otherwise the id is categoryCode plus the first
// digit run (or the whole cleaned value when it has no digits), with
// _1, _2, ... suffixes appended until the id is free. The returned id
// is claimed in the run context.
func SynthesizeID(ctx *Context, categoryCode, raw string) string {
	cleaned := strings.TrimSpace(trailingZero.ReplaceAllString(strings.TrimSpace(raw), ""))
	cleaned = idAllowedRe.ReplaceAllString(cleaned, "")

	var base string
	if cleaned == "" || cleaned == "-" || strings.EqualFold(cleaned, "nan") {
		base = ctx.NextUnknown()
	} else if digits := idNumericRe.FindString(cleaned); digits != "" {
		base = categoryCode + digits
	} else {
		base = categoryCode + cleaned
	}

	unique := base
	for n := 1; ctx.Taken(unique); n++ {
		unique = base + "_" + strconv.Itoa(n)
	}
	ctx.Claim(unique)
	return unique
}
