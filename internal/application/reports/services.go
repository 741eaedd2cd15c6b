package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/labinterpreter/internal/application"
	appai "github.com/bryanwahyu/labinterpreter/internal/application/ai"
	"github.com/bryanwahyu/labinterpreter/internal/domain/labresults"
	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/prompt"
	"github.com/bryanwahyu/labinterpreter/internal/infra/labcsv"
)

// Service implements the upload → prompt → analysis → report use-cases.
// Repo and Artifacts are optional; without them reports are not archived.
type Service struct {
	AI        *appai.Service
	Repo      domain.Repository
	Artifacts domain.ArtifactStore
	Clock     application.Clock
}

// PreviewResult is what the user sees before spending a vendor call.
type PreviewResult struct {
	Rows          []labresults.ResultRow `json:"rows"`
	Prompt        string                 `json:"prompt"`
	PromptVersion string                 `json:"prompt_version"`
}

type AnalyzeResult struct {
	ID       string `json:"id,omitempty"`
	Vendor   string `json:"vendor"`
	Model    string `json:"model"`
	RowCount int    `json:"row_count"`
	domain.Presentation
	DownloadURL string `json:"download_url,omitempty"`
}

// Preview parses the table and builds the prompt without calling a vendor.
func (s *Service) Preview(csv io.Reader) (PreviewResult, error) {
	rows, err := labcsv.Parse(csv)
	if err != nil {
		return PreviewResult{}, err
	}
	return PreviewResult{Rows: rows, Prompt: prompt.BuildPrompt(rows), PromptVersion: prompt.Version}, nil
}

// Analyze runs the full pipeline. The returned result always carries a
// Presentation; err is non-nil when the analysis did not succeed so hosts can
// pick a status code.
func (s *Service) Analyze(ctx context.Context, csv io.Reader) (AnalyzeResult, error) {
	res := AnalyzeResult{Vendor: s.AI.Vendor(), Model: s.AI.Model()}

	rows, err := labcsv.Parse(csv)
	if err != nil {
		res.Presentation = domain.Present("", err)
		return res, err
	}
	res.RowCount = len(rows)

	text, err := s.AI.Analyze(ctx, prompt.BuildPrompt(rows))
	res.Presentation = domain.Present(text, err)
	if err != nil {
		return res, err
	}

	rep, err := s.archive(ctx, text, len(rows))
	if err != nil {
		// the analysis itself succeeded; the user still gets the text
		log.Printf("report archive failed: vendor=%s err=%v", res.Vendor, err)
		return res, nil
	}
	if rep != nil {
		res.ID = string(rep.ID)
		res.DownloadURL = rep.URL
	}
	return res, nil
}

func (s *Service) archive(ctx context.Context, text string, rowCount int) (*domain.Report, error) {
	if s.Repo == nil || s.Artifacts == nil {
		return nil, nil
	}
	now := s.now()
	rep := &domain.Report{
		ID:            domain.ReportID(uuid.New().String()),
		Vendor:        s.AI.Vendor(),
		Model:         s.AI.Model(),
		PromptVersion: prompt.Version,
		RowCount:      rowCount,
		CreatedAt:     now,
	}
	rep.ObjectKey = domain.ObjectKey(rep.ID, now)

	url, err := s.Artifacts.Put(ctx, rep.ObjectKey, text)
	if err != nil {
		return nil, fmt.Errorf("upload report text: %w", err)
	}
	rep.URL = url
	if err := s.Repo.Save(ctx, rep); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return rep, nil
}

// Get ambil 1 report by id
func (s *Service) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	if s.Repo == nil {
		return nil, domain.ErrNotFound
	}
	return s.Repo.Get(ctx, id)
}

// Latest ambil N report terakhir
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Report, error) {
	if s.Repo == nil {
		return []*domain.Report{}, nil
	}
	return s.Repo.Latest(ctx, limit)
}

// Download returns the archived report text.
func (s *Service) Download(ctx context.Context, id domain.ReportID) ([]byte, error) {
	rep, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Artifacts == nil {
		return nil, domain.ErrNotFound
	}
	data, err := s.Artifacts.Get(ctx, rep.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("fetch report %s: %w", id, err)
	}
	return data, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

// IsInputError reports whether err came from the uploaded table.
func IsInputError(err error) bool {
	var ie *labresults.InputError
	return errors.As(err, &ie)
}
