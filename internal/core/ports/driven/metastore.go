package driven

import (
	"context"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
)

// MetadataStore persists document records and query-log records.
// Backed by SQLite for durable storage.
type MetadataStore interface {
	// InsertDocument durably persists a document record.
	// Returns domain.ErrDuplicateID if the DocID is already present.
	// The uniqueness check and the insert are atomic.
	InsertDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by DocID.
	// Returns domain.ErrNotFound for a missing key, never panics.
	GetDocument(ctx context.Context, docID string) (*domain.Document, error)

	// ListDocuments returns all documents ordered by creation time.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// InsertQueryLog appends an immutable query-log entry.
	// Returns domain.ErrStorageUnavailable when the store cannot be written.
	InsertQueryLog(ctx context.Context, entry *domain.QueryLogEntry) error

	// DocumentStats aggregates document count, total word count and
	// per-file-type counts. Documents without a file type land in the
	// "unknown" bucket.
	DocumentStats(ctx context.Context) (*domain.DocumentStats, error)

	// QueryStats aggregates the query log: total searches, mean
	// execution time, mean result count and the limit most recent
	// query texts ordered newest first (insertion order breaks ties).
	QueryStats(ctx context.Context, limit int) (*domain.SearchAnalytics, error)

	// Close releases resources.
	Close() error
}
