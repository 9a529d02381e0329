// Package document defines a capability view over rich-text documents and
// the placeholder substitution applied to notification templates. Any
// document library able to expose ordered formatting runs can sit behind
// these interfaces.
package document

// Run is one formatting run inside a paragraph.
type Run interface {
	Text() string
	SetText(text string)
}

// Paragraph is an ordered sequence of runs. Text is the concatenation of
// the run texts.
type Paragraph interface {
	Runs() []Run
	Text() string
}

// TableCell holds paragraphs.
type TableCell interface {
	Paragraphs() []Paragraph
}

// TableRow holds cells.
type TableRow interface {
	Cells() []TableCell
}

// Table holds rows.
type Table interface {
	Rows() []TableRow
}

// Section exposes the header and footer paragraphs of one document section.
type Section interface {
	Header() []Paragraph
	Footer() []Paragraph
}

// Document exposes every structural region substitution must reach:
// body paragraphs, table cells, and per-section headers and footers.
type Document interface {
	Paragraphs() []Paragraph
	Tables() []Table
	Sections() []Section
}
