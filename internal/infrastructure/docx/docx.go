// Package docx adapts .docx packages to the document capability interfaces.
//
// Only the text content of w:t elements is ever rewritten; every other byte
// of the package, including parts that are not parsed at all, is preserved
// exactly as read. That keeps template formatting intact no matter what the
// template contains.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"regexp"

	"razones/internal/domain/document"
)

var headerFooterName = regexp.MustCompile(`^word/(header|footer)\d*\.xml$`)

// File is an opened .docx package.
type File struct {
	parts   []*filePart
	body    *filePart
	headers []*filePart
	footers []*filePart
}

// Open reads a .docx package and parses its body, header, and footer parts.
func Open(path string) (*File, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx %s: %w", path, err)
	}
	defer r.Close()

	f := &File{}
	for _, entry := range r.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open docx part %s: %w", entry.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read docx part %s: %w", entry.Name, err)
		}

		p := &filePart{name: entry.Name, data: data}
		switch {
		case entry.Name == "word/document.xml":
			p.parseBody()
			f.body = p
		case headerFooterName.MatchString(entry.Name):
			p.parseFlat()
			if headerFooterName.FindStringSubmatch(entry.Name)[1] == "header" {
				f.headers = append(f.headers, p)
			} else {
				f.footers = append(f.footers, p)
			}
		}
		f.parts = append(f.parts, p)
	}

	if f.body == nil {
		return nil, fmt.Errorf("not a docx package: %s has no word/document.xml", path)
	}
	return f, nil
}

// Save writes the package to path. Unmodified parts are written byte-for-byte
// as they were read.
func (f *File) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, p := range f.parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("failed to add part %s: %w", p.name, err)
		}
		if _, err := w.Write(p.render()); err != nil {
			return fmt.Errorf("failed to write part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}

// Paragraphs returns the body paragraphs outside tables.
func (f *File) Paragraphs() []document.Paragraph {
	return asParagraphs(f.body.paragraphs)
}

// Tables returns the body tables.
func (f *File) Tables() []document.Table {
	out := make([]document.Table, len(f.body.tables))
	for i, t := range f.body.tables {
		out[i] = t
	}
	return out
}

// Sections returns a single section exposing all header and footer parts.
func (f *File) Sections() []document.Section {
	return []document.Section{&section{file: f}}
}

type section struct {
	file *File
}

func (s *section) Header() []document.Paragraph {
	var out []document.Paragraph
	for _, p := range s.file.headers {
		out = append(out, asParagraphs(p.paragraphs)...)
	}
	return out
}

func (s *section) Footer() []document.Paragraph {
	var out []document.Paragraph
	for _, p := range s.file.footers {
		out = append(out, asParagraphs(p.paragraphs)...)
	}
	return out
}

func asParagraphs(ps []*paragraph) []document.Paragraph {
	out := make([]document.Paragraph, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}
