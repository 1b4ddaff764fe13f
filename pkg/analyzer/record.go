package analyzer

import (
	"context"
	"time"
)

// Record is the analysis outcome handed to the persistence collaborator.
type Record struct {
	FileName         string    `json:"file_name"`
	OverallScore     float64   `json:"overall_score"`
	MarkdownReport   string    `json:"markdown_report"`
	PDFReport        string    `json:"pdf_report"`
	ComplianceStatus string    `json:"compliance_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Store persists analysis records. Implementations live outside the pipeline.
type Store interface {
	SaveRecord(ctx context.Context, rec Record) (err error)
}

// Notifier delivers result notifications. Implementations live outside the
// pipeline.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (err error)
}
