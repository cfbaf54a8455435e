package history

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no entry carries the requested id.
var ErrNotFound = errors.New("report not found in history")

// Entry is one generated report.
type Entry struct {
	ID             string    `json:"id"`
	OutputPath     string    `json:"output_path"`
	Format         string    `json:"format"`
	InputPath      string    `json:"input_path"`
	Sheet          string    `json:"sheet,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
	RowCount       int       `json:"row_count"`
	TotalBudgeted  float64   `json:"total_budgeted"`
	TotalRemaining float64   `json:"total_remaining"`
	Utilization    float64   `json:"utilization"`
	SizeBytes      int64     `json:"size_bytes"`
	StatusIncluded bool      `json:"status_included"`
}
