package report

import (
	"errors"
	"fmt"
	"time"
)

// Download conventions for the analysis text.
const (
	DownloadFilename = "medical_analysis.txt"
	DownloadMIME     = "text/plain"
)

var ErrNotFound = errors.New("report not found")

// ContentDisposition is the header value that makes browsers save the report
// under DownloadFilename.
func ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", DownloadFilename)
}

// ReportID identifier type
type ReportID string

// Report is a successful analysis kept for later retrieval and download.
type Report struct {
	ID            ReportID  `json:"id"`
	Vendor        string    `json:"vendor"`
	Model         string    `json:"model"`
	PromptVersion string    `json:"prompt_version"`
	RowCount      int       `json:"row_count"`
	ObjectKey     string    `json:"object_key"`
	URL           string    `json:"url,omitempty"`
	Text          string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// ObjectKey lays reports out by creation month.
func ObjectKey(id ReportID, createdAt time.Time) string {
	return fmt.Sprintf("reports/%04d/%02d/%s.txt", createdAt.Year(), int(createdAt.Month()), id)
}
