package report

import "context"

// Repository port for persisting report metadata
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Get(ctx context.Context, id ReportID) (*Report, error)
	Latest(ctx context.Context, limit int) ([]*Report, error)
}

// ArtifactStore holds the report text itself.
type ArtifactStore interface {
	Put(ctx context.Context, key string, text string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}
