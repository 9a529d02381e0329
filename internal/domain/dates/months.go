// Package dates implements the Spanish-locale date handling used by
// notification documents: month localization and selection of the
// notification dates rendered into each document.
package dates

import (
	"strings"
	"time"
)

// DeliveryLayout is the fixed layout of CPanel delivery timestamps once
// the Spanish month abbreviation has been translated to English.
const DeliveryLayout = "2 Jan 2006 15:04:05"

// Abbreviation order matters: "sept" must be tried before "sep".
var monthAbbrevs = []string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "sep", "oct", "nov", "dic",
}

// Spanish month abbreviation to the English token understood by time.Parse.
var monthAbbrevEN = map[string]string{
	"ene": "Jan", "feb": "Feb", "mar": "Mar", "abr": "Apr",
	"may": "May", "jun": "Jun", "jul": "Jul", "ago": "Aug",
	"sept": "Sep", "sep": "Sep", "oct": "Oct", "nov": "Nov", "dic": "Dec",
}

// Spanish month abbreviation to the full Spanish month name.
var monthFull = map[string]string{
	"ene": "enero", "feb": "febrero", "mar": "marzo", "abr": "abril",
	"may": "mayo", "jun": "junio", "jul": "julio", "ago": "agosto",
	"sept": "septiembre", "sep": "septiembre", "oct": "octubre",
	"nov": "noviembre", "dic": "diciembre",
}

// ExpandMonth replaces the first month abbreviation token in a date string
// with its full Spanish name, e.g. "11 feb 2026 10:30:45" becomes
// "11 de febrero de 2026 10:30:45". The abbreviation must be a token
// surrounded by spaces. Strings without a known abbreviation are returned
// unchanged (trimmed); malformed input never produces an error.
func ExpandMonth(text string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, abbrev := range monthAbbrevs {
		if !strings.Contains(lower, " "+abbrev+" ") {
			continue
		}
		parts := strings.Fields(trimmed)
		for i, p := range parts {
			if strings.ToLower(p) == abbrev {
				parts[i] = "de " + monthFull[abbrev] + " de"
				break
			}
		}
		return strings.Join(parts, " ")
	}
	return trimmed
}

// TranslateMonth rewrites the first Spanish month abbreviation token to its
// English 3-letter equivalent so the fixed-layout parser can read it.
func TranslateMonth(text string) string {
	parts := strings.Fields(strings.TrimSpace(text))
	for i, p := range parts {
		if en, ok := monthAbbrevEN[strings.ToLower(p)]; ok {
			parts[i] = en
			break
		}
	}
	return strings.Join(parts, " ")
}

// ParseDeliveryTimestamp parses a CPanel delivery timestamp with Spanish
// month abbreviations, e.g. "11 feb 2026 10:30:45".
func ParseDeliveryTimestamp(text string) (time.Time, error) {
	return time.Parse(DeliveryLayout, TranslateMonth(text))
}
