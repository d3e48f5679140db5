package services

import (
	"context"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"
)

// Ensure Analytics implements the interface.
var _ driving.AnalyticsService = (*Analytics)(nil)

// DefaultRecentQueries is the recent-query window used when callers pass
// a non-positive limit.
const DefaultRecentQueries = 10

// Analytics provides read-side aggregation over the metadata store.
// Every call re-queries the store; there is no caching.
type Analytics struct {
	store          driven.MetadataStore
	embeddingModel string
}

// NewAnalytics creates an analytics service. The embedding model name is
// reported alongside document stats for display.
func NewAnalytics(store driven.MetadataStore, embeddingModel string) *Analytics {
	return &Analytics{store: store, embeddingModel: embeddingModel}
}

// DocumentStats returns document count, total word count and per-file-type
// counts from the store.
func (a *Analytics) DocumentStats(ctx context.Context) (*domain.DocumentStats, error) {
	stats, err := a.store.DocumentStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.EmbeddingModel = a.embeddingModel
	return stats, nil
}

// SearchAnalytics returns query-log aggregates and the limit most recent
// query texts, newest first.
func (a *Analytics) SearchAnalytics(ctx context.Context, limit int) (*domain.SearchAnalytics, error) {
	if limit <= 0 {
		limit = DefaultRecentQueries
	}
	return a.store.QueryStats(ctx, limit)
}
