package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"razones/internal/application/ordenespago"
	"razones/internal/domain/run"
	"razones/internal/infrastructure/spreadsheet"
	"razones/internal/shared/errors"
	"razones/internal/shared/logger"
	"razones/internal/shared/utils"
)

// OrdenesPagoHandler handles payment order reconciliation requests
type OrdenesPagoHandler struct {
	service *ordenespago.Service
	runs    run.Repository
	logger  logger.Interface
}

// NewOrdenesPagoHandler creates a new OrdenesPagoHandler
func NewOrdenesPagoHandler(
	service *ordenespago.Service,
	runs run.Repository,
	logger logger.Interface,
) *OrdenesPagoHandler {
	return &OrdenesPagoHandler{
		service: service,
		runs:    runs,
		logger:  logger,
	}
}

// Process handles POST /api/procesar-ordenes-pago
func (h *OrdenesPagoHandler) Process(c *gin.Context) {
	excelFile, err := c.FormFile("excel")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("the payment orders workbook is required", "field: excel"))
		return
	}
	if err := requireExtension(excelFile, ".xlsx"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read the upload", err.Error()))
		return
	}
	pdfFiles := form.File["pdfs"]
	if len(pdfFiles) == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("at least one notification PDF is required", "field: pdfs"))
		return
	}

	// Only the filenames carry the order numbers, the PDF contents are
	// never read.
	pdfNames := make([]string, 0, len(pdfFiles))
	for _, f := range pdfFiles {
		if err := requireExtension(f, ".pdf"); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		pdfNames = append(pdfNames, f.Filename)
	}

	workDir, err := os.MkdirTemp("", "ordenes-*")
	if err != nil {
		h.logger.Error("failed to create working directory", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to prepare the processing workspace")
		return
	}
	defer os.RemoveAll(workDir)

	excelPath := filepath.Join(workDir, "ordenes.xlsx")
	if err := c.SaveUploadedFile(excelFile, excelPath); err != nil {
		h.logger.Error("failed to store payment orders workbook", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to store the uploaded workbook")
		return
	}

	base, err := spreadsheet.ReadOrderBase(excelPath)
	if err != nil {
		h.logger.Warn("payment orders workbook rejected", "file", excelFile.Filename, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	records := h.service.ExtractRecords(pdfNames)
	if len(records) == 0 {
		utils.ErrorResponseWithError(c, errors.NewEmptyResultError("none of the PDF filenames carry a payment order number"))
		return
	}

	baseRows := make([]ordenespago.BaseRow, 0, len(base))
	for _, b := range base {
		baseRows = append(baseRows, ordenespago.BaseRow{
			OrderNumber: b.OrderNumber,
			ClientName:  b.ClientName,
			CedulaRUC:   b.CedulaRUC,
		})
	}

	results := h.service.Reconcile(baseRows, records)

	rows := make([]spreadsheet.OrderResultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, spreadsheet.OrderResultRow{
			Email:      r.Email,
			ClientName: r.ClientName,
			TitleID:    r.TitleID,
			AccountRef: r.AccountRef,
			Attachment: r.Attachment,
		})
	}

	buf, err := spreadsheet.WriteOrderResult(rows)
	if err != nil {
		h.logger.Error("failed to build result workbook", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to build the result workbook")
		return
	}

	fileName := ordenespago.ResultFileName(time.Now())
	h.recordOrdenesRun(c, []string{fileName})

	utils.AttachmentResponse(c, fileName,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *OrdenesPagoHandler) recordOrdenesRun(c *gin.Context, files []string) {
	if h.runs == nil {
		return
	}
	r, err := run.New(run.KindOrdenesPago, files)
	if err == nil {
		err = h.runs.Create(c.Request.Context(), r)
	}
	if err != nil {
		h.logger.Warn("failed to record processing run", "error", err)
	}
}
