package ai

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
)

// DefaultTimeout bounds a single vendor call when the host does not set one.
const DefaultTimeout = 60 * time.Second

// Service wraps a vendor client with a deadline and outcome logging. It never
// retries; the host decides whether to ask the user to try again.
type Service struct {
	client  ai.Client
	vendor  string
	model   string
	timeout time.Duration
}

// NewService builds the service. A zero timeout disables the deadline.
func NewService(client ai.Client, vendor, model string, timeout time.Duration) *Service {
	return &Service{client: client, vendor: vendor, model: model, timeout: timeout}
}

func (s *Service) Vendor() string { return s.vendor }
func (s *Service) Model() string  { return s.model }

// Analyze submits the request once. Any failure comes back as *ai.AnalysisError.
func (s *Service) Analyze(ctx context.Context, request string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.client.Analyze(ctx, request)
	duration := time.Since(start)
	if err != nil {
		ae := ai.Classify(s.vendor, 0, err)
		if ae.Kind == ai.KindTransportFailure && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			// some SDKs drop the context error from the chain
			cp := *ae
			cp.Kind = ai.KindTimeout
			ae = &cp
		}
		log.Printf("ai analyze failed: vendor=%s model=%s kind=%s status=%d duration=%s",
			s.vendor, s.model, ae.Kind, ae.StatusCode, duration)
		return "", ae
	}
	log.Printf("ai analyze done: vendor=%s model=%s chars=%d duration=%s", s.vendor, s.model, len(text), duration)
	return text, nil
}
