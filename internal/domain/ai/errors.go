package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

var (
	ErrMissingAPIKey = errors.New("api key is empty")
	ErrEmptyRequest  = errors.New("analysis request is empty")
	ErrNoContent     = errors.New("vendor returned no text")
)

// Kind is the normalized failure category shared by every vendor adapter.
type Kind string

const (
	KindAuthFailure      Kind = "auth_failure"
	KindTransportFailure Kind = "transport_failure"
	KindVendorError      Kind = "vendor_error"
	KindEmptyResponse    Kind = "empty_response"
	KindTimeout          Kind = "timeout"
)

// AnalysisError is the only error type returned by Client implementations.
// Error() deliberately omits the wrapped vendor message, which may quote the
// credential back; use Unwrap for diagnostics.
type AnalysisError struct {
	Kind       Kind
	Vendor     string
	StatusCode int
	Err        error
}

func (e *AnalysisError) Error() string {
	msg := fmt.Sprintf("ai: %s %s", e.Vendor, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	return msg
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Is lets callers test errors.Is(err, ErrQuotaExceeded) on rate-limited calls.
func (e *AnalysisError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.StatusCode == http.StatusTooManyRequests
}

// NewError builds an AnalysisError without a status code.
func NewError(kind Kind, vendor string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Vendor: vendor, Err: err}
}

// Precheck validates the inputs that must never reach the network.
func Precheck(vendor string, cfg Config, request string) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return NewError(KindAuthFailure, vendor, ErrMissingAPIKey)
	}
	if strings.TrimSpace(request) == "" {
		return NewError(KindVendorError, vendor, ErrEmptyRequest)
	}
	return nil
}

// Classify maps a failed vendor call to an AnalysisError. status is the last
// HTTP status observed for the call, or 0 when no response arrived.
func Classify(vendor string, status int, err error) *AnalysisError {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae
	}
	out := &AnalysisError{Vendor: vendor, StatusCode: status, Err: err}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		out.Kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		out.Kind = KindTimeout
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		out.Kind = KindAuthFailure
	case status >= 300:
		out.Kind = KindVendorError
	case status >= 200:
		// response arrived but could not be decoded into text
		out.Kind = KindEmptyResponse
	default:
		out.Kind = KindTransportFailure
	}
	return out
}
