// Package memory provides an in-memory MetadataStore for tests and
// ephemeral runs. Data is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MetadataStore = (*Store)(nil)

// unknownFileType is the stats bucket for documents without a file type.
const unknownFileType = "unknown"

// Store is an in-memory metadata store.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]domain.Document
	docOrder []string
	queries  []domain.QueryLogEntry
	closed   bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]domain.Document),
	}
}

// Close marks the store unavailable. Subsequent writes fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// InsertDocument stores a document, rejecting duplicate IDs.
func (s *Store) InsertDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStorageUnavailable
	}
	if _, exists := s.docs[doc.DocID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, doc.DocID)
	}

	s.docs[doc.DocID] = *doc
	s.docOrder = append(s.docOrder, doc.DocID)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(_ context.Context, docID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents in insertion order.
func (s *Store) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.docOrder))
	for _, id := range s.docOrder {
		docs = append(docs, s.docs[id])
	}
	return docs, nil
}

// InsertQueryLog appends a query-log entry.
func (s *Store) InsertQueryLog(_ context.Context, entry *domain.QueryLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStorageUnavailable
	}
	s.queries = append(s.queries, *entry)
	return nil
}

// DocumentStats aggregates document count, total words and file-type counts.
func (s *Store) DocumentStats(_ context.Context) (*domain.DocumentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.DocumentStats{
		FileTypes: make(map[string]int),
	}
	for _, doc := range s.docs {
		stats.TotalDocuments++
		stats.TotalWords += doc.WordCount

		fileType := doc.FileType
		if fileType == "" {
			fileType = unknownFileType
		}
		stats.FileTypes[fileType]++
	}
	return stats, nil
}

// QueryStats aggregates the query log, newest queries first.
func (s *Store) QueryStats(_ context.Context, limit int) (*domain.SearchAnalytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.SearchAnalytics{
		TotalSearches: len(s.queries),
	}
	if len(s.queries) == 0 {
		return stats, nil
	}

	for i := range s.queries {
		stats.AvgExecutionSeconds += s.queries[i].ExecutionSeconds
		stats.AvgResults += float64(s.queries[i].ResultsCount)
	}
	stats.AvgExecutionSeconds /= float64(len(s.queries))
	stats.AvgResults /= float64(len(s.queries))

	// Newest first; equal timestamps keep reverse insertion order to
	// match the SQLite store's timestamp DESC, id DESC ordering.
	indices := make([]int, len(s.queries))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		ta, tb := s.queries[indices[a]].Timestamp, s.queries[indices[b]].Timestamp
		if ta.Equal(tb) {
			return indices[a] > indices[b]
		}
		return ta.After(tb)
	})

	if limit > len(indices) {
		limit = len(indices)
	}
	for _, idx := range indices[:limit] {
		stats.RecentQueries = append(stats.RecentQueries, s.queries[idx].QueryText)
	}
	return stats, nil
}
