package middleware

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Input validation and sanitization utilities

var (
	ErrNotCSV        = errors.New("only .csv files are accepted")
	ErrUploadTooBig  = errors.New("uploaded file is too large")
	ErrInvalidReport = errors.New("invalid report id format")
)

// ValidateUpload checks the uploaded file name and size before parsing.
func ValidateUpload(filename string, size, maxBytes int64) error {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ErrNotCSV
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w (max %d bytes)", ErrUploadTooBig, maxBytes)
	}
	return nil
}

// ValidateReportID validates report id format (uuid)
func ValidateReportID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidReport)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidReport
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
