package driven

import (
	"context"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
)

// VectorIndex holds chunk vectors and answers top-k similarity queries.
// The index carries no persistence contract: it is rebuilt in full on
// every index build and replaced atomically by the engine.
type VectorIndex interface {
	// Upsert inserts or replaces the vector for the given chunk.
	Upsert(ctx context.Context, chunkID string, vector []float32, payload domain.Chunk) error

	// Query finds the k nearest chunks to the query vector, ordered by
	// non-increasing similarity. Ties keep insertion order.
	Query(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Len reports the number of indexed chunks.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64

	// Payload is the chunk stored alongside the vector.
	Payload domain.Chunk
}
