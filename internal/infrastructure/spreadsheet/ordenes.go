package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"razones/internal/shared/errors"
)

// Payment-orders base workbook columns.
const (
	colOrderNumber = "ORDEN DE PAGO INMEDIATO"
	colOrderClient = "Nombre cliente"
	colCedulaRUC   = "Cédula/RUC"
)

const resultSheet = "Resultado"

// OrderBaseRow is one row of the payment-orders base workbook.
type OrderBaseRow struct {
	OrderNumber string
	ClientName  string
	CedulaRUC   string
}

// OrderResultRow is one row of the reconciled output workbook.
type OrderResultRow struct {
	Email      string
	ClientName string
	TitleID    string
	AccountRef string
	Attachment string
}

// ReadOrderBase reads the first sheet of the payment-orders base workbook.
func ReadOrderBase(path string) ([]OrderBaseRow, error) {
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

	idx, err := columnIndexes(rows[0], []string{colOrderNumber, colOrderClient, colCedulaRUC})
	if err != nil {
		return nil, err
	}

	var out []OrderBaseRow
	for _, row := range rows[1:] {
		r := OrderBaseRow{
			OrderNumber: cell(row, idx[foldHeader(colOrderNumber)]),
			ClientName:  cell(row, idx[foldHeader(colOrderClient)]),
			CedulaRUC:   cell(row, idx[foldHeader(colCedulaRUC)]),
		}
		if r == (OrderBaseRow{}) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// WriteOrderResult renders the reconciled rows as an xlsx workbook.
func WriteOrderResult(rows []OrderResultRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return nil, fmt.Errorf("failed to name result sheet: %w", err)
	}

	header := []interface{}{"Email", "NOMBRE_CLIENTE", "NUMERO_TITULO", "CUENTA_CONTRATO", "Attachment"}
	if err := f.SetSheetRow(resultSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		values := []interface{}{r.Email, r.ClientName, r.TitleID, r.AccountRef, r.Attachment}
		if err := f.SetSheetRow(resultSheet, cellRef, &values); err != nil {
			return nil, fmt.Errorf("failed to write result row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render result workbook: %w", err)
	}
	return buf, nil
}
