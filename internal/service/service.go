package service

import (
	"context"

	"github.com/callguard/spam-checker/internal/domain"
)

type Service interface {
	// CheckNumber runs a cached spam-reputation lookup. Results fresher
	// than the 24h window are served from the store without touching the
	// provider; a missing add-on score defaults to 0 (clean).
	CheckNumber(ctx context.Context, phoneNumber string) (*domain.LookupResult, error)

	// Classify always queries the provider live, bypassing the store, and
	// fails with domain.ErrScoreUnavailable when the score is absent.
	Classify(ctx context.Context, phoneNumber string) (*domain.Classification, error)

	// Search scans the cache and recent history for matching reports.
	Search(ctx context.Context, query string) ([]*domain.SearchHit, error)

	// Fetch renders the full analysis report for a cached result id.
	Fetch(ctx context.Context, id string) (*domain.Report, error)
}
