package service

import (
	"context"

	"github.com/callguard/spam-checker/internal/domain"
)

// Store is the result cache plus the recent-activity log. It doubles as the
// backing index for the search tool, so implementations must support a full
// scan. The memory backend preserves insertion order in All; the scylla and
// redis backends return entries in unspecified scan order.
type Store interface {
	// Get returns the cached result for id, or nil when absent.
	Get(ctx context.Context, id string) (*domain.LookupResult, error)

	// Put stores a result under its own id, overwriting any prior entry.
	Put(ctx context.Context, result *domain.LookupResult) error

	// All returns every cached result.
	All(ctx context.Context) ([]*domain.LookupResult, error)

	// AppendHistory records a completed lookup in the activity log.
	// Implementations bound the log; only the newest entries survive.
	AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error

	// RecentHistory returns up to n of the newest log entries,
	// oldest first.
	RecentHistory(ctx context.Context, n int) ([]*domain.HistoryEntry, error)
}
