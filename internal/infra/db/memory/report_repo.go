package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/report"
)

// ReportRepository keeps report metadata in process memory. Used when no
// database is configured and by the CLI.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[domain.ReportID]domain.Report
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[domain.ReportID]domain.Report)}
}

func (r *ReportRepository) Save(_ context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rep
	cp.Text = ""
	r.reports[rep.ID] = cp
	return nil
}

func (r *ReportRepository) Get(_ context.Context, id domain.ReportID) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rep, nil
}

// Latest returns up to limit reports, newest first.
func (r *ReportRepository) Latest(_ context.Context, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	out := make([]*domain.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		rep := rep
		out = append(out, &rep)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
