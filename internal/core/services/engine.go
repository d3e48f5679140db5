package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/semsearch-cli/internal/chunker"
	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/semsearch-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.SearchEngine = (*Engine)(nil)

// UnindexedPolicy selects the behaviour of Search before any successful
// index build.
type UnindexedPolicy int

const (
	// UnindexedReturnEmpty degrades an unindexed search to an empty
	// result list plus a logged diagnostic.
	UnindexedReturnEmpty UnindexedPolicy = iota

	// UnindexedReturnError surfaces domain.ErrIndexNotBuilt instead.
	UnindexedReturnError
)

// IndexFactory produces an empty vector index for one build generation.
// The engine builds into a fresh index and swaps it in atomically, so the
// factory is called once per successful or attempted build.
type IndexFactory func() driven.VectorIndex

// Engine orchestrates document ingestion, index construction and
// similarity-ranked retrieval.
//
// Concurrency: the buffer and the current index are guarded by a RWMutex.
// BuildIndex holds the write lock for the index swap only (embedding runs
// against a snapshot of the buffer), Search holds the read lock for the
// duration of a call so it sees one consistent index. At most one build
// mutates the engine at a time.
type Engine struct {
	store    driven.MetadataStore
	embedder driven.EmbeddingService
	newIndex IndexFactory
	splitter *chunker.Splitter
	policy   UnindexedPolicy
	topK     int

	// buildMu serialises BuildIndex calls; embedding runs outside mu
	// so searches keep the old index until the swap.
	buildMu sync.Mutex

	mu     sync.RWMutex
	buffer []domain.Document
	index  driven.VectorIndex
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithUnindexedPolicy sets the behaviour of Search before the first
// successful index build. Defaults to UnindexedReturnEmpty.
func WithUnindexedPolicy(p UnindexedPolicy) EngineOption {
	return func(e *Engine) { e.policy = p }
}

// WithDefaultTopK sets the result count used when Search is wrapped by
// callers that pass the configured default. Defaults to 5.
func WithDefaultTopK(k int) EngineOption {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// NewEngine creates an engine and reloads its document buffer from the
// metadata store, so a restarted process indexes the same documents the
// store already holds.
func NewEngine(
	ctx context.Context,
	store driven.MetadataStore,
	embedder driven.EmbeddingService,
	newIndex IndexFactory,
	splitter *chunker.Splitter,
	opts ...EngineOption,
) (*Engine, error) {
	e := &Engine{
		store:    store,
		embedder: embedder,
		newIndex: newIndex,
		splitter: splitter,
		policy:   UnindexedReturnEmpty,
		topK:     5,
	}

	for _, opt := range opts {
		opt(e)
	}

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload document buffer: %w", err)
	}
	e.buffer = docs

	logger.Info("Engine initialised with %d persisted documents", len(docs))
	return e, nil
}

// DefaultTopK returns the configured default result count.
func (e *Engine) DefaultTopK() int { return e.topK }

// Indexed reports whether a successful index build has happened.
func (e *Engine) Indexed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index != nil
}

// BufferLen reports the number of buffered documents.
func (e *Engine) BufferLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.buffer)
}

// AddDocument persists a new document and appends it to the in-memory
// buffer. The store write happens first: the buffer only mutates once the
// record is durable, which keeps buffer and store consistent on failure.
// Documents added after the last build stay absent from the current index
// until the next BuildIndex call.
func (e *Engine) AddDocument(ctx context.Context, in driving.AddDocumentInput) (string, error) {
	now := time.Now().UTC()
	doc := domain.Document{
		DocID:          uuid.NewString(),
		Title:          in.Title,
		Content:        in.Content,
		FilePath:       in.FilePath,
		FileType:       in.FileType,
		WordCount:      domain.CountWords(in.Content),
		EmbeddingModel: e.embedder.ModelName(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.store.InsertDocument(ctx, &doc); err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			return "", err
		}
		logger.Warn("Persisting document failed: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrDocumentPersist, err)
	}

	e.mu.Lock()
	e.buffer = append(e.buffer, doc)
	e.mu.Unlock()

	logger.Info("Document added: %s (%d words)", doc.DocID, doc.WordCount)
	return doc.DocID, nil
}

// BuildIndex chunks every buffered document, embeds each chunk and swaps
// in a fresh vector index. The previous index stays in effect if any step
// fails. An empty buffer is a logged no-op.
func (e *Engine) BuildIndex(ctx context.Context) error {
	logger.Section("Index Build")

	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	e.mu.RLock()
	docs := make([]domain.Document, len(e.buffer))
	copy(docs, e.buffer)
	e.mu.RUnlock()

	if len(docs) == 0 {
		logger.Warn("No documents to index")
		return nil
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		chunks = append(chunks, e.splitter.Split(doc)...)
	}
	logger.Debug("Chunked %d documents into %d chunks", len(docs), len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logger.Warn("Embedding failed: %v", err)
		return fmt.Errorf("%w: embed chunks: %v", domain.ErrIndexBuild, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: embedder returned %d vectors for %d chunks",
			domain.ErrIndexBuild, len(vectors), len(chunks))
	}

	fresh := e.newIndex()
	for i, chunk := range chunks {
		if err := fresh.Upsert(ctx, chunk.ID, vectors[i], chunk); err != nil {
			fresh.Close() //nolint:errcheck
			return fmt.Errorf("%w: index chunk %s: %v", domain.ErrIndexBuild, chunk.ID, err)
		}
	}

	e.mu.Lock()
	old := e.index
	e.index = fresh
	e.mu.Unlock()

	if old != nil {
		old.Close() //nolint:errcheck
	}

	logger.Info("Index built with %d chunks", fresh.Len())
	return nil
}

// Search embeds the query, retrieves the topK most similar chunks, joins
// document metadata from the store and records a query-log entry.
// Missing document metadata is tolerated: the hit is returned with zero
// enrichment fields. Failures after the index check degrade to an empty
// result list plus a logged diagnostic, matching the unindexed policy
// philosophy of keeping interactive callers non-fatal.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, top-k: %d", query, topK)

	if topK <= 0 {
		return nil, fmt.Errorf("%w: top-k must be positive, got %d", domain.ErrInvalidQuery, topK)
	}

	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.index == nil {
		if e.policy == UnindexedReturnError {
			return nil, domain.ErrIndexNotBuilt
		}
		logger.Warn("Index not built, returning no results")
		return []domain.SearchResult{}, nil
	}

	vector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return []domain.SearchResult{}, nil
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	hits, err := e.index.Query(ctx, vector, topK)
	if err != nil {
		logger.Warn("Vector index query failed: %v", err)
		return []domain.SearchResult{}, nil
	}
	logger.Debug("Vector index: %d hits", len(hits))

	results := e.hydrateResults(ctx, hits)

	elapsed := time.Since(start).Seconds()
	entry := domain.QueryLogEntry{
		QueryText:        query,
		Timestamp:        start.UTC(),
		ResultsCount:     len(results),
		AvgSimilarity:    meanSimilarity(results),
		ExecutionSeconds: elapsed,
	}
	if err := e.store.InsertQueryLog(ctx, &entry); err != nil {
		// Analytics bookkeeping must not break retrieval.
		logger.Warn("Query log write failed: %v", err)
	}

	logger.Info("Search completed in %.3fs with %d results", elapsed, len(results))
	return results, nil
}

// hydrateResults joins document metadata onto vector hits, preserving the
// similarity-descending order the index returned.
func (e *Engine) hydrateResults(ctx context.Context, hits []driven.VectorHit) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(hits))

	for _, hit := range hits {
		result := domain.SearchResult{
			DocID:      hit.Payload.DocID,
			Text:       hit.Payload.Text,
			Similarity: hit.Similarity,
			Position:   hit.Payload.Position,
		}

		doc, err := e.store.GetDocument(ctx, hit.Payload.DocID)
		switch {
		case err == nil:
			result.Title = doc.Title
			result.FilePath = doc.FilePath
			result.FileType = doc.FileType
			result.WordCount = doc.WordCount
			result.CreatedAt = doc.CreatedAt
		case errors.Is(err, domain.ErrNotFound):
			logger.Debug("No metadata for document %s, returning bare hit", hit.Payload.DocID)
		default:
			logger.Warn("Metadata lookup for %s failed: %v", hit.Payload.DocID, err)
		}

		results = append(results, result)
	}

	return results
}

// meanSimilarity returns the arithmetic mean of result similarities,
// zero for an empty result set.
func meanSimilarity(results []domain.SearchResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for i := range results {
		sum += results[i].Similarity
	}
	return sum / float64(len(results))
}
