package ordenespago

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"razones/internal/shared/logger"
)

func newTestService() *Service {
	return NewService(logger.NewLogger())
}

func TestExtractRecords(t *testing.T) {
	svc := newTestService()

	records := svc.ExtractRecords([]string{
		"NOTIFICACION-JC-PIC-2024-0153.pdf",
		"uploads/razon-2023-77.PDF",
		"sin-patron.pdf",
		"informe.txt",
	})

	require.Len(t, records, 2)
	assert.Equal(t, Record{AccountRef: "JC-PIC-2024-0153", Attachment: "NOTIFICACION-JC-PIC-2024-0153.pdf"}, records[0])
	assert.Equal(t, Record{AccountRef: "JC-PIC-2023-77", Attachment: "razon-2023-77.PDF"}, records[1])
}

func TestExtractRecordsEmpty(t *testing.T) {
	svc := newTestService()
	assert.Empty(t, svc.ExtractRecords(nil))
}

func TestReconcileMatchesWorkbookRows(t *testing.T) {
	svc := newTestService()

	base := []BaseRow{
		{OrderNumber: " JC-PIC-2024-0153 ", ClientName: "Ana Lopez", CedulaRUC: "1712345678"},
		{OrderNumber: "JC-PIC-2023-77", ClientName: "Bob Diaz", CedulaRUC: "0998877665"},
	}
	records := []Record{
		{AccountRef: "JC-PIC-2024-0153", Attachment: "a.pdf"},
		{AccountRef: "JC-PIC-2023-77", Attachment: "b.pdf"},
	}

	results := svc.Reconcile(base, records)
	require.Len(t, results, 2)
	assert.Equal(t, ResultRow{ClientName: "Ana Lopez", TitleID: "1712345678", AccountRef: "2024-0153", Attachment: "a.pdf"}, results[0])
	assert.Equal(t, ResultRow{ClientName: "Bob Diaz", TitleID: "0998877665", AccountRef: "2023-77", Attachment: "b.pdf"}, results[1])
}

func TestReconcileUnmatchedRecordKeepsAttachment(t *testing.T) {
	svc := newTestService()

	results := svc.Reconcile(nil, []Record{{AccountRef: "JC-PIC-2025-1", Attachment: "x.pdf"}})
	require.Len(t, results, 1)
	assert.Equal(t, ResultRow{AccountRef: "2025-1", Attachment: "x.pdf"}, results[0])
}

func TestReconcileFirstWorkbookRowWinsOnDuplicateOrder(t *testing.T) {
	svc := newTestService()

	base := []BaseRow{
		{OrderNumber: "JC-PIC-2024-1", ClientName: "Primera", CedulaRUC: "111"},
		{OrderNumber: "JC-PIC-2024-1", ClientName: "Segunda", CedulaRUC: "222"},
	}
	results := svc.Reconcile(base, []Record{{AccountRef: "JC-PIC-2024-1", Attachment: "a.pdf"}})
	require.Len(t, results, 1)
	assert.Equal(t, "Primera", results[0].ClientName)
}

func TestResultFileName(t *testing.T) {
	now := time.Date(2026, time.February, 11, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "NOTIFICACIONESCOACTIVA_OPI_2026-02-11.xlsx", ResultFileName(now))
}
