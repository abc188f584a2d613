package model

import "time"

// ExportRecord is the audit entry written after a successful export.
// It describes the export only; the generated bytes are never stored.
type ExportRecord struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id,omitempty"`
	Title       string    `json:"title"`
	Format      string    `json:"format"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
