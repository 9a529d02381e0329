package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"razones/internal/application/ordenespago"
	"razones/internal/domain/run"
	"razones/internal/interfaces/http/handlers/testutil"
	"razones/internal/shared/logger"
)

func newOrdenesRouter(repo run.Repository) *gin.Engine {
	log := logger.NewLogger()
	h := NewOrdenesPagoHandler(ordenespago.NewService(log), repo, log)

	engine := gin.New()
	engine.POST("/api/procesar-ordenes-pago", h.Process)
	return engine
}

func ordersWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"ORDEN DE PAGO INMEDIATO", "Nombre cliente", "Cédula/RUC"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestOrdenesPagoProcessReturnsResultWorkbook(t *testing.T) {
	repo := &mockRunRepo{}
	engine := newOrdenesRouter(repo)

	excel := ordersWorkbook(t, [][]interface{}{
		{"JC-PIC-2024-0153", "Ana Lopez", "1712345678"},
	})

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/procesar-ordenes-pago", nil, []testutil.FileField{
		{Field: "excel", Name: "ordenes.xlsx", Content: excel},
		{Field: "pdfs", Name: "NOTIFICACION-JC-PIC-2024-0153.pdf", Content: []byte("%PDF-1.4")},
		{Field: "pdfs", Name: "NOTIFICACION-JC-PIC-2025-9.pdf", Content: []byte("%PDF-1.4")},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "NOTIFICACIONESCOACTIVA_OPI_")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Resultado")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Email", "NOMBRE_CLIENTE", "NUMERO_TITULO", "CUENTA_CONTRATO", "Attachment"}, rows[0])
	assert.Equal(t, "Ana Lopez", rows[1][1])
	assert.Equal(t, "2024-0153", rows[1][3])
	// The unmatched PDF still appears, with client fields left blank.
	assert.Equal(t, "2025-9", rows[2][3])
	assert.Equal(t, "NOTIFICACION-JC-PIC-2025-9.pdf", rows[2][4])

	require.Len(t, repo.created, 1)
	assert.Equal(t, run.KindOrdenesPago, repo.created[0].Kind)
}

func TestOrdenesPagoProcessRequiresPDFs(t *testing.T) {
	engine := newOrdenesRouter(&mockRunRepo{})

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/procesar-ordenes-pago", nil, []testutil.FileField{
		{Field: "excel", Name: "ordenes.xlsx", Content: ordersWorkbook(t, nil)},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PDF")
}

func TestOrdenesPagoProcessNoOrderNumbers(t *testing.T) {
	engine := newOrdenesRouter(&mockRunRepo{})

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/procesar-ordenes-pago", nil, []testutil.FileField{
		{Field: "excel", Name: "ordenes.xlsx", Content: ordersWorkbook(t, nil)},
		{Field: "pdfs", Name: "sin-patron.pdf", Content: []byte("%PDF-1.4")},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "empty_result", resp.Error.Type)
}
