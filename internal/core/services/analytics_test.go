package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
)

func TestAnalytics_DocumentStats(t *testing.T) {
	store := storagemem.NewStore()
	ctx := context.Background()

	require.NoError(t, store.InsertDocument(ctx, &domain.Document{
		DocID: "d1", Title: "One", Content: "a b c", WordCount: 3, FileType: "text",
	}))
	require.NoError(t, store.InsertDocument(ctx, &domain.Document{
		DocID: "d2", Title: "Two", Content: "a b", WordCount: 2,
	}))

	a := NewAnalytics(store, "test-model")
	stats, err := a.DocumentStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalDocuments)
	assert.Equal(t, 5, stats.TotalWords)
	assert.Equal(t, "test-model", stats.EmbeddingModel)
	assert.Equal(t, map[string]int{"text": 1, "unknown": 1}, stats.FileTypes)
}

func TestAnalytics_SearchAnalyticsDefaultLimit(t *testing.T) {
	store := storagemem.NewStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 15; i++ {
		require.NoError(t, store.InsertQueryLog(ctx, &domain.QueryLogEntry{
			QueryText:        "query",
			Timestamp:        base.Add(time.Duration(i) * time.Second),
			ResultsCount:     2,
			ExecutionSeconds: 0.5,
		}))
	}

	a := NewAnalytics(store, "test-model")

	// Non-positive limit falls back to the default window.
	stats, err := a.SearchAnalytics(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, stats.TotalSearches)
	assert.Len(t, stats.RecentQueries, DefaultRecentQueries)
	assert.InDelta(t, 0.5, stats.AvgExecutionSeconds, 0.001)
	assert.InDelta(t, 2.0, stats.AvgResults, 0.001)
}

func TestAnalytics_NoCachingBetweenCalls(t *testing.T) {
	store := storagemem.NewStore()
	ctx := context.Background()
	a := NewAnalytics(store, "test-model")

	stats, err := a.DocumentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDocuments)

	require.NoError(t, store.InsertDocument(ctx, &domain.Document{DocID: "d1", WordCount: 1}))

	stats, err = a.DocumentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments, "each call must re-query the store")
}
