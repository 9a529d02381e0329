package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"razones/internal/shared/errors"
)

// Client workbook columns.
const (
	colEmail      = "Email"
	colClientName = "NOMBRE_CLIENTE"
	colTitleID    = "NUMERO_TITULO"
	colAccountRef = "CUENTA_CONTRATO"
)

// ClientRow is one row of the uploaded client workbook.
type ClientRow struct {
	Email      string
	ClientName string
	TitleID    string
	AccountRef string
}

// ReadClientRows reads the first sheet of the client workbook, validating
// that the required columns are present.
func ReadClientRows(path string) ([]ClientRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewValidationError("failed to read the Excel file", err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError("the Excel file is empty")
	}

	idx, err := columnIndexes(rows[0], []string{colEmail, colClientName, colTitleID, colAccountRef})
	if err != nil {
		return nil, err
	}

	var out []ClientRow
	for _, row := range rows[1:] {
		r := ClientRow{
			Email:      cell(row, idx[foldHeader(colEmail)]),
			ClientName: cell(row, idx[foldHeader(colClientName)]),
			TitleID:    cell(row, idx[foldHeader(colTitleID)]),
			AccountRef: cell(row, idx[foldHeader(colAccountRef)]),
		}
		if r == (ClientRow{}) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
