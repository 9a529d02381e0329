// Package run records generation runs: one row per accepted request that
// produced output documents, kept for the clerks' audit trail.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"razones/internal/shared/id"
)

type Kind string

const (
	KindRazones     Kind = "razones"
	KindOrdenesPago Kind = "ordenes_pago"
)

// Run is one completed generation run.
type Run struct {
	ID            uint           `gorm:"primaryKey" json:"-"`
	SID           string         `gorm:"size:32;uniqueIndex" json:"id"`
	Kind          Kind           `gorm:"size:20;index" json:"kind"`
	DocumentCount int            `json:"document_count"`
	Files         datatypes.JSON `json:"files"`
	CreatedAt     time.Time      `json:"created_at"`
}

// New builds a run for the given kind and generated file names.
func New(kind Kind, files []string) (*Run, error) {
	sid, err := id.NewRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	encoded, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("failed to encode file list: %w", err)
	}

	return &Run{
		SID:           sid,
		Kind:          kind,
		DocumentCount: len(files),
		Files:         datatypes.JSON(encoded),
	}, nil
}

// FileNames decodes the stored file list.
func (r *Run) FileNames() ([]string, error) {
	var files []string
	if len(r.Files) == 0 {
		return files, nil
	}
	if err := json.Unmarshal(r.Files, &files); err != nil {
		return nil, fmt.Errorf("failed to decode file list: %w", err)
	}
	return files, nil
}

// Repository persists and lists runs.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	List(ctx context.Context, limit int) ([]Run, error)
}
