// Package razones generates one notification document per credit title by
// filling a Word template with client data and delivery dates.
package razones

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"razones/internal/domain/dates"
	"razones/internal/domain/delivery"
	"razones/internal/domain/document"
	"razones/internal/shared/logger"
)

// Placeholder tokens recognized in templates, applied in this order.
const (
	TokenTituloCredito = "TITULO_CREDITO"
	TokenNombreCliente = "NOMBRE_CLIENTE"
	TokenCedulaCliente = "CEDULA_CLIENTE"
	TokenCorreo        = "CORREO"
	TokenFechas        = "FECHAS"
)

// Row is one validated row of the client workbook.
type Row struct {
	Email      string
	ClientName string
	TitleID    string
	AccountRef string
}

// Template is one freshly loaded template instance, substituted in place
// and then persisted.
type Template interface {
	document.Document
	Save(path string) error
}

// TemplateLoader loads a fresh Template per generated document, so
// substitutions never leak across outputs.
type TemplateLoader interface {
	Load(path string) (Template, error)
}

type Service struct {
	templates TemplateLoader
	logger    logger.Interface
}

func NewService(templates TemplateLoader, log logger.Interface) *Service {
	return &Service{
		templates: templates,
		logger:    log,
	}
}

// Generate writes one document per distinct title to outputDir and returns
// the generated paths in title order. Rows sharing a title are merged: the
// first row supplies the client fields, and every row's email joins the
// CORREO list. A nil delivery index leaves FECHAS empty. Zero input rows
// produce an empty result, not an error; the caller decides whether that is
// a user-facing failure.
func (s *Service) Generate(ctx context.Context, rows []Row, templatePath, outputDir string, index delivery.Index) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	var norm delivery.Index
	if index != nil {
		norm = index.Normalized()
	}

	var titleOrder []string
	firstRow := make(map[string]Row)
	emails := make(map[string][]string)
	emailSeen := make(map[string]map[string]bool)

	for _, row := range rows {
		title := row.TitleID
		if _, ok := firstRow[title]; !ok {
			firstRow[title] = row
			titleOrder = append(titleOrder, title)
			emailSeen[title] = make(map[string]bool)
		}
		key := normalizeEmail(row.Email)
		if row.Email != "" && !emailSeen[title][key] {
			emailSeen[title][key] = true
			emails[title] = append(emails[title], row.Email)
		}
	}

	paths := make([]string, 0, len(titleOrder))
	for _, title := range titleOrder {
		rep := firstRow[title]

		fechas := ""
		if norm != nil {
			fechas = dates.FormatNotificationDates(strings.Join(norm[normalizeEmail(rep.Email)], ", "))
		}

		tpl, err := s.templates.Load(templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load template: %w", err)
		}

		document.Substitute(tpl, []document.Replacement{
			{Token: TokenTituloCredito, Value: rep.AccountRef},
			{Token: TokenNombreCliente, Value: rep.ClientName},
			{Token: TokenCedulaCliente, Value: title},
			{Token: TokenCorreo, Value: strings.Join(emails[title], ", ")},
			{Token: TokenFechas, Value: fechas},
		})

		path := filepath.Join(outputDir, fmt.Sprintf("Razon_%s_%s.docx", rep.AccountRef, title))
		if err := tpl.Save(path); err != nil {
			return nil, fmt.Errorf("failed to save document for title %s: %w", title, err)
		}
		paths = append(paths, path)

		s.logger.Debug("generated notification document", "title", title, "path", path)
	}

	return paths, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
