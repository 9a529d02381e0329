package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	razonesApp "razones/internal/application/razones"
	"razones/internal/domain/run"
	"razones/internal/infrastructure/docx"
	"razones/internal/interfaces/http/handlers/testutil"
	"razones/internal/shared/logger"
)

type mockRunRepo struct {
	created   []*run.Run
	createErr error
	listRuns  []run.Run
	listErr   error
}

func (m *mockRunRepo) Create(_ context.Context, r *run.Run) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, r)
	return nil
}

func (m *mockRunRepo) List(_ context.Context, _ int) ([]run.Run, error) {
	return m.listRuns, m.listErr
}

type docxLoader struct{}

func (docxLoader) Load(path string) (razonesApp.Template, error) {
	return docx.Open(path)
}

func newRazonesRouter(repo run.Repository) *gin.Engine {
	log := logger.NewLogger()
	svc := razonesApp.NewService(docxLoader{}, log)
	h := NewRazonesHandler(svc, repo, "cobranzaypatrocinio@cobypat.com", log)

	engine := gin.New()
	engine.POST("/api/generar-razones", h.Generate)
	return engine
}

func clientWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Email", "NOMBRE_CLIENTE", "NUMERO_TITULO", "CUENTA_CONTRATO"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func templateDocx(t *testing.T) []byte {
	t.Helper()

	const wNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	body := `<w:p><w:r><w:t xml:space="preserve">Titulo TITULO_CREDITO de NOMBRE_CLIENTE (CEDULA_CLIENTE), CORREO, notificado: FECHAS</w:t></w:r></w:p>`

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	write := func(name, data string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document `+wNS+`><w:body>`+body+`</w:body></w:document>`)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestRazonesGenerateReturnsArchive(t *testing.T) {
	repo := &mockRunRepo{}
	engine := newRazonesRouter(repo)

	excel := clientWorkbook(t, [][]interface{}{
		{"ana@example.com", "Ana Lopez", "1718", "5001"},
		{"bob@example.com", "Bob Diaz", "2020", "5002"},
	})
	csvLog := []byte("Remitente,Destinatario,Fecha Envío CPanel\n" +
		"cobranzaypatrocinio@cobypat.com,ana@example.com,11 feb. 2026 14:30:00\n")

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/generar-razones", nil, []testutil.FileField{
		{Field: "excel", Name: "clientes.xlsx", Content: excel},
		{Field: "plantilla", Name: "plantilla.docx", Content: templateDocx(t)},
		{Field: "csv_fechas", Name: "fechas.csv", Content: csvLog},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "razones_notificacion.zip")

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	names := []string{zr.File[0].Name, zr.File[1].Name}
	assert.Contains(t, names, "Razon_5001_1718.docx")
	assert.Contains(t, names, "Razon_5002_2020.docx")

	require.Len(t, repo.created, 1)
	assert.Equal(t, run.KindRazones, repo.created[0].Kind)
	assert.Equal(t, 2, repo.created[0].DocumentCount)
}

func TestRazonesGenerateMissingWorkbook(t *testing.T) {
	engine := newRazonesRouter(&mockRunRepo{})

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/generar-razones", nil, []testutil.FileField{
		{Field: "plantilla", Name: "plantilla.docx", Content: templateDocx(t)},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestRazonesGenerateRejectsWrongExtension(t *testing.T) {
	engine := newRazonesRouter(&mockRunRepo{})

	// .xls included: legacy workbooks are out of contract, callers must
	// convert to .xlsx first.
	for _, name := range []string{"clientes.csv", "clientes.xls"} {
		req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/generar-razones", nil, []testutil.FileField{
			{Field: "excel", Name: name, Content: []byte("Email\n")},
			{Field: "plantilla", Name: "plantilla.docx", Content: templateDocx(t)},
		})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Contains(t, w.Body.String(), ".xlsx", name)
	}
}

func TestRazonesGenerateEmptyWorkbook(t *testing.T) {
	engine := newRazonesRouter(&mockRunRepo{})

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/generar-razones", nil, []testutil.FileField{
		{Field: "excel", Name: "clientes.xlsx", Content: clientWorkbook(t, nil)},
		{Field: "plantilla", Name: "plantilla.docx", Content: templateDocx(t)},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "empty_result", resp.Error.Type)
}

func TestRazonesGenerateRunRecordingIsBestEffort(t *testing.T) {
	repo := &mockRunRepo{createErr: assert.AnError}
	engine := newRazonesRouter(repo)

	req := testutil.NewMultipartRequest(t, http.MethodPost, "/api/generar-razones", nil, []testutil.FileField{
		{Field: "excel", Name: "clientes.xlsx", Content: clientWorkbook(t, [][]interface{}{
			{"ana@example.com", "Ana Lopez", "1718", "5001"},
		})},
		{Field: "plantilla", Name: "plantilla.docx", Content: templateDocx(t)},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
