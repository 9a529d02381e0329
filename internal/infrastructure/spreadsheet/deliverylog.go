package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"

	"razones/internal/domain/delivery"
	"razones/internal/shared/errors"
)

// CPanel delivery-log columns.
const (
	colSender    = "Remitente"
	colRecipient = "Destinatario"
	colSentAt    = "Fecha Envío CPanel"
)

// ReadDeliveryLog reads the CPanel CSV export into delivery records.
func ReadDeliveryLog(path string) ([]delivery.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open delivery log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewValidationError("failed to read the delivery CSV", err.Error())
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError("the delivery CSV is empty")
	}

	idx, err := columnIndexes(rows[0], []string{colSender, colRecipient, colSentAt})
	if err != nil {
		return nil, err
	}

	var out []delivery.Record
	for _, row := range rows[1:] {
		r := delivery.Record{
			Sender:    cell(row, idx[foldHeader(colSender)]),
			Recipient: cell(row, idx[foldHeader(colRecipient)]),
			SentAt:    cell(row, idx[foldHeader(colSentAt)]),
		}
		if r == (delivery.Record{}) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
