package handlers

import (
	"archive/zip"
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	razonesApp "razones/internal/application/razones"
	"razones/internal/domain/delivery"
	"razones/internal/domain/run"
	"razones/internal/infrastructure/spreadsheet"
	"razones/internal/shared/errors"
	"razones/internal/shared/logger"
	"razones/internal/shared/utils"
)

// RazonesHandler handles notification document generation requests
type RazonesHandler struct {
	service       *razonesApp.Service
	runs          run.Repository
	defaultSender string
	logger        logger.Interface
}

// NewRazonesHandler creates a new RazonesHandler
func NewRazonesHandler(
	service *razonesApp.Service,
	runs run.Repository,
	defaultSender string,
	logger logger.Interface,
) *RazonesHandler {
	return &RazonesHandler{
		service:       service,
		runs:          runs,
		defaultSender: defaultSender,
		logger:        logger,
	}
}

// Generate handles POST /api/generar-razones
func (h *RazonesHandler) Generate(c *gin.Context) {
	excelFile, err := c.FormFile("excel")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("the client workbook is required", "field: excel"))
		return
	}
	templateFile, err := c.FormFile("plantilla")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("the document template is required", "field: plantilla"))
		return
	}

	if err := requireExtension(excelFile, ".xlsx"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := requireExtension(templateFile, ".docx"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	csvFile, err := c.FormFile("csv_fechas")
	if err != nil && err != http.ErrMissingFile {
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to read the delivery log upload", err.Error()))
		return
	}
	if csvFile != nil {
		if err := requireExtension(csvFile, ".csv"); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	sender := strings.TrimSpace(c.PostForm("remitente"))
	if sender == "" {
		sender = h.defaultSender
	}

	workDir, err := os.MkdirTemp("", "razones-*")
	if err != nil {
		h.logger.Error("failed to create working directory", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to prepare the generation workspace")
		return
	}
	defer os.RemoveAll(workDir)

	excelPath := filepath.Join(workDir, "clientes.xlsx")
	if err := c.SaveUploadedFile(excelFile, excelPath); err != nil {
		h.logger.Error("failed to store client workbook", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to store the uploaded workbook")
		return
	}
	templatePath := filepath.Join(workDir, "plantilla.docx")
	if err := c.SaveUploadedFile(templateFile, templatePath); err != nil {
		h.logger.Error("failed to store template", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to store the uploaded template")
		return
	}

	clientRows, err := spreadsheet.ReadClientRows(excelPath)
	if err != nil {
		h.logger.Warn("client workbook rejected", "file", excelFile.Filename, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	var index delivery.Index
	if csvFile != nil {
		csvPath := filepath.Join(workDir, "fechas.csv")
		if err := c.SaveUploadedFile(csvFile, csvPath); err != nil {
			h.logger.Error("failed to store delivery log", "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to store the uploaded delivery log")
			return
		}

		records, err := spreadsheet.ReadDeliveryLog(csvPath)
		if err != nil {
			h.logger.Warn("delivery log rejected", "file", csvFile.Filename, "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
		index, err = delivery.BuildIndex(records, sender)
		if err != nil {
			h.logger.Warn("delivery log rejected", "file", csvFile.Filename, "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	rows := make([]razonesApp.Row, 0, len(clientRows))
	for _, r := range clientRows {
		rows = append(rows, razonesApp.Row{
			Email:      r.Email,
			ClientName: r.ClientName,
			TitleID:    r.TitleID,
			AccountRef: r.AccountRef,
		})
	}

	outputDir := filepath.Join(workDir, "salida")
	if err := os.Mkdir(outputDir, 0o755); err != nil {
		h.logger.Error("failed to create output directory", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to prepare the generation workspace")
		return
	}

	paths, err := h.service.Generate(c.Request.Context(), rows, templatePath, outputDir, index)
	if err != nil {
		h.logger.Error("generation failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if len(paths) == 0 {
		utils.ErrorResponseWithError(c, errors.NewEmptyResultError("no documents were generated from the workbook"))
		return
	}

	archive, names, err := zipFiles(paths)
	if err != nil {
		h.logger.Error("failed to archive generated documents", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to package the generated documents")
		return
	}

	h.recordRun(c, run.KindRazones, names)

	utils.AttachmentResponse(c, "razones_notificacion.zip", "application/zip", archive.Bytes())
}

func (h *RazonesHandler) recordRun(c *gin.Context, kind run.Kind, files []string) {
	if h.runs == nil {
		return
	}
	r, err := run.New(kind, files)
	if err == nil {
		err = h.runs.Create(c.Request.Context(), r)
	}
	if err != nil {
		// History is best effort, the caller still gets the archive.
		h.logger.Warn("failed to record generation run", "kind", kind, "error", err)
	}
}

func requireExtension(file *multipart.FileHeader, ext string) error {
	if !strings.EqualFold(filepath.Ext(file.Filename), ext) {
		return errors.NewValidationError(
			fmt.Sprintf("the file %s must have the %s extension", file.Filename, ext))
	}
	return nil
}

func zipFiles(paths []string) (*bytes.Buffer, []string, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	names := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		name := filepath.Base(path)
		entry, err := w.Create(name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, nil, fmt.Errorf("failed to write %s to archive: %w", name, err)
		}
		names = append(names, name)
	}

	if err := w.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf, names, nil
}
