package docx

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strings"

	"razones/internal/domain/document"
)

// filePart is one zip entry. Parsed parts carry the paragraph structure and
// the list of text runs eligible for rewriting.
type filePart struct {
	name       string
	data       []byte
	paragraphs []*paragraph
	tables     []*table
	runs       []*textRun
}

// parseBody parses word/document.xml: paragraphs outside tables become body
// paragraphs, top-level w:tbl elements become tables.
func (p *filePart) parseBody() {
	tblRanges := elementRanges(p.data, "w:tbl")

	for _, pr := range elementRanges(p.data, "w:p") {
		if insideAny(pr, tblRanges) {
			continue
		}
		p.paragraphs = append(p.paragraphs, p.newParagraph(pr))
	}

	for _, tr := range tblRanges {
		p.tables = append(p.tables, p.newTable(tr))
	}
}

// parseFlat parses a header or footer part: every paragraph, wherever it
// sits, is exposed directly.
func (p *filePart) parseFlat() {
	for _, pr := range elementRanges(p.data, "w:p") {
		p.paragraphs = append(p.paragraphs, p.newParagraph(pr))
	}
}

func (p *filePart) newParagraph(r span) *paragraph {
	para := &paragraph{}
	for _, tr := range elementRangesWithin(p.data, r, "w:t") {
		run := &textRun{elem: tr, text: unescapeXML(string(elementContent(p.data, tr)))}
		para.runs = append(para.runs, run)
		p.runs = append(p.runs, run)
	}
	return para
}

func (p *filePart) newTable(r span) *table {
	t := &table{}
	for _, rowRange := range elementRangesWithin(p.data, r, "w:tr") {
		row := &tableRow{}
		for _, cellRange := range elementRangesWithin(p.data, rowRange, "w:tc") {
			cell := &tableCell{}
			for _, paraRange := range elementRangesWithin(p.data, cellRange, "w:p") {
				cell.paragraphs = append(cell.paragraphs, p.newParagraph(paraRange))
			}
			row.cells = append(row.cells, cell)
		}
		t.rows = append(t.rows, row)
	}
	return t
}

// render returns the part bytes with every modified run's w:t element
// rewritten in place.
func (p *filePart) render() []byte {
	var dirty []*textRun
	for _, run := range p.runs {
		if run.dirty {
			dirty = append(dirty, run)
		}
	}
	if len(dirty) == 0 {
		return p.data
	}

	sort.Slice(dirty, func(i, j int) bool { return dirty[i].elem[0] < dirty[j].elem[0] })

	var b bytes.Buffer
	last := 0
	for _, run := range dirty {
		b.Write(p.data[last:run.elem[0]])
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escapeXML(run.text))
		b.WriteString(`</w:t>`)
		last = run.elem[1]
	}
	b.Write(p.data[last:])
	return b.Bytes()
}

// textRun is one w:t element. elem spans the whole element including tags.
type textRun struct {
	elem  span
	text  string
	dirty bool
}

func (r *textRun) Text() string { return r.text }

func (r *textRun) SetText(text string) {
	r.text = text
	r.dirty = true
}

type paragraph struct {
	runs []*textRun
}

func (p *paragraph) Runs() []document.Run {
	out := make([]document.Run, len(p.runs))
	for i, r := range p.runs {
		out[i] = r
	}
	return out
}

func (p *paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

type tableCell struct {
	paragraphs []*paragraph
}

func (c *tableCell) Paragraphs() []document.Paragraph {
	return asParagraphs(c.paragraphs)
}

type tableRow struct {
	cells []*tableCell
}

func (r *tableRow) Cells() []document.TableCell {
	out := make([]document.TableCell, len(r.cells))
	for i, c := range r.cells {
		out[i] = c
	}
	return out
}

type table struct {
	rows []*tableRow
}

func (t *table) Rows() []document.TableRow {
	out := make([]document.TableRow, len(t.rows))
	for i, r := range t.rows {
		out[i] = r
	}
	return out
}

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func unescapeXML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return xmlUnescaper.Replace(s)
}

func escapeXML(s string) string {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
