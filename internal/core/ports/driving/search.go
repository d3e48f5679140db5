package driving

import (
	"context"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
)

// AddDocumentInput carries the caller-supplied fields of a new document.
// FilePath and FileType are optional.
type AddDocumentInput struct {
	Title    string
	Content  string
	FilePath string
	FileType string
}

// SearchEngine exposes the ingestion, indexing and retrieval operations.
type SearchEngine interface {
	// AddDocument persists a new document and buffers it for the next
	// index build. Returns the generated document ID.
	AddDocument(ctx context.Context, in AddDocumentInput) (string, error)

	// BuildIndex chunks and embeds every buffered document and swaps in
	// a fresh vector index. A no-op when the buffer is empty.
	BuildIndex(ctx context.Context) error

	// Search embeds the query, retrieves the topK most similar chunks,
	// joins document metadata and logs the query.
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)
}

// AnalyticsService exposes read-side aggregation over the metadata store.
type AnalyticsService interface {
	// DocumentStats re-queries document aggregates.
	DocumentStats(ctx context.Context) (*domain.DocumentStats, error)

	// SearchAnalytics re-queries query-log aggregates. A non-positive
	// limit uses the default recent-query window.
	SearchAnalytics(ctx context.Context, limit int) (*domain.SearchAnalytics, error)
}
