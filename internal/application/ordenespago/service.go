// Package ordenespago reconciles immediate payment order numbers extracted
// from notification PDF filenames against the collection workbook.
package ordenespago

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"razones/internal/shared/logger"
)

// pdfPattern captures the order suffix from filenames such as
// "NOTIFICACION-JC-PIC-2024-0153.pdf".
var pdfPattern = regexp.MustCompile(`(?i)-(\d+-\d+)\.pdf$`)

const accountPrefix = "JC-PIC-"

// Record is one payment order recovered from a PDF filename.
type Record struct {
	AccountRef string
	Attachment string
}

// BaseRow is one row of the payment orders workbook.
type BaseRow struct {
	OrderNumber string
	ClientName  string
	CedulaRUC   string
}

// ResultRow is one reconciled row of the result workbook.
type ResultRow struct {
	Email      string
	ClientName string
	TitleID    string
	AccountRef string
	Attachment string
}

type Service struct {
	logger logger.Interface
}

func NewService(log logger.Interface) *Service {
	return &Service{logger: log}
}

// ExtractRecords parses payment order references out of PDF filenames,
// preserving input order. Filenames that do not match the expected pattern
// are skipped.
func (s *Service) ExtractRecords(pdfNames []string) []Record {
	records := make([]Record, 0, len(pdfNames))
	for _, name := range pdfNames {
		base := filepath.Base(name)
		m := pdfPattern.FindStringSubmatch(base)
		if m == nil {
			s.logger.Warn("pdf filename does not match order pattern, skipping", "file", base)
			continue
		}
		records = append(records, Record{
			AccountRef: accountPrefix + m[1],
			Attachment: base,
		})
	}
	return records
}

// Reconcile left-joins extracted records against the workbook rows on the
// order number. Records without a workbook match still produce a result row
// with empty client fields, so every processed PDF stays visible.
func (s *Service) Reconcile(base []BaseRow, records []Record) []ResultRow {
	byOrder := make(map[string]BaseRow, len(base))
	for _, row := range base {
		key := strings.TrimSpace(row.OrderNumber)
		if key == "" {
			continue
		}
		if _, ok := byOrder[key]; !ok {
			byOrder[key] = row
		}
	}

	results := make([]ResultRow, 0, len(records))
	for _, rec := range records {
		row := ResultRow{
			AccountRef: strings.TrimPrefix(rec.AccountRef, accountPrefix),
			Attachment: rec.Attachment,
		}
		if match, ok := byOrder[rec.AccountRef]; ok {
			row.ClientName = match.ClientName
			row.TitleID = match.CedulaRUC
		} else {
			s.logger.Warn("payment order not found in workbook", "order", rec.AccountRef)
		}
		results = append(results, row)
	}
	return results
}

// ResultFileName returns the dated name of the reconciliation workbook.
func ResultFileName(now time.Time) string {
	return fmt.Sprintf("NOTIFICACIONESCOACTIVA_OPI_%s.xlsx", now.Format("2006-01-02"))
}
