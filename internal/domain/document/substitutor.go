package document

import "strings"

// Replacement binds a placeholder token to its replacement text.
// Replacements are applied in slice order.
type Replacement struct {
	Token string
	Value string
}

// Substitute replaces every placeholder occurrence across all structural
// regions of the document, in place.
func Substitute(doc Document, replacements []Replacement) {
	for _, p := range doc.Paragraphs() {
		substituteParagraph(p, replacements)
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				for _, p := range cell.Paragraphs() {
					substituteParagraph(p, replacements)
				}
			}
		}
	}
	for _, section := range doc.Sections() {
		for _, p := range section.Header() {
			substituteParagraph(p, replacements)
		}
		for _, p := range section.Footer() {
			substituteParagraph(p, replacements)
		}
	}
}

// substituteParagraph resolves each token in two passes. First it replaces
// inside individual runs, which preserves per-run formatting. A token split
// across run boundaries survives that pass; for those the paragraph text is
// rebuilt, replaced as a whole, and assigned to the first run while the
// remaining runs are blanked. That collapses formatting boundaries for the
// paragraph but guarantees the placeholder is resolved.
func substituteParagraph(p Paragraph, replacements []Replacement) {
	for _, r := range replacements {
		if !strings.Contains(p.Text(), r.Token) {
			continue
		}

		runs := p.Runs()
		for _, run := range runs {
			if strings.Contains(run.Text(), r.Token) {
				run.SetText(strings.ReplaceAll(run.Text(), r.Token, r.Value))
			}
		}

		joined := joinRuns(runs)
		if strings.Contains(joined, r.Token) && len(runs) > 0 {
			full := strings.ReplaceAll(joined, r.Token, r.Value)
			for i := len(runs) - 1; i > 0; i-- {
				runs[i].SetText("")
			}
			runs[0].SetText(full)
		}
	}
}

func joinRuns(runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.Text())
	}
	return b.String()
}
