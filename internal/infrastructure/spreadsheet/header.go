// Package spreadsheet reads the uploaded workbooks and CSV exports and
// writes the payment-orders result workbook.
package spreadsheet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"razones/internal/shared/errors"
)

// Clerks export these files from Excel and CPanel with inconsistent casing
// and the occasional lost accent, so headers are matched after folding.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldHeader(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// columnIndexes locates the required columns in a header row. The returned
// map is keyed by the folded column name.
func columnIndexes(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		folded := foldHeader(h)
		if _, ok := idx[folded]; !ok {
			idx[folded] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[foldHeader(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(
			"missing required columns", strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns the trimmed cell at position i, tolerating short rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
