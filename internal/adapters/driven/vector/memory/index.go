// Package memory provides a brute-force in-memory VectorIndex using
// cosine similarity. The index is rebuilt in full on every index build,
// so there is no persistence or deletion surface.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry pairs a stored vector with its precomputed magnitude and payload.
type entry struct {
	chunkID   string
	vector    []float32
	magnitude float64
	payload   domain.Chunk
}

// Index is a brute-force cosine similarity index.
type Index struct {
	mu      sync.RWMutex
	dim     int
	entries []entry
	byID    map[string]int
}

// New creates an empty index. The dimension is fixed by the first vector
// inserted.
func New() *Index {
	return &Index{byID: make(map[string]int)}
}

// Upsert inserts or replaces the vector for the given chunk.
func (i *Index) Upsert(_ context.Context, chunkID string, vector []float32, payload domain.Chunk) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector for chunk %s", chunkID)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dim == 0 {
		i.dim = len(vector)
	} else if len(vector) != i.dim {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vector), i.dim)
	}

	e := entry{
		chunkID:   chunkID,
		vector:    vector,
		magnitude: magnitude(vector),
		payload:   payload,
	}

	if idx, ok := i.byID[chunkID]; ok {
		i.entries[idx] = e
		return nil
	}
	i.byID[chunkID] = len(i.entries)
	i.entries = append(i.entries, e)
	return nil
}

// Query returns the k most similar chunks by cosine similarity, ordered
// by non-increasing score. Ties keep insertion order. Zero-magnitude
// stored vectors are skipped.
func (i *Index) Query(_ context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.entries) == 0 {
		return nil, nil
	}
	if len(vector) != i.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(vector), i.dim)
	}

	qm := magnitude(vector)
	if qm == 0 {
		return nil, nil
	}

	hits := make([]driven.VectorHit, 0, len(i.entries))
	for idx := range i.entries {
		e := &i.entries[idx]
		if e.magnitude == 0 {
			continue
		}
		score := dot(vector, e.vector) / (qm * e.magnitude)
		if math.IsNaN(score) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:    e.chunkID,
			Similarity: score,
			Payload:    e.payload,
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Similarity > hits[b].Similarity
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Len reports the number of indexed chunks.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Close releases the stored vectors.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries = nil
	i.byID = nil
	return nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for j := range a {
		sum += float64(a[j]) * float64(b[j])
	}
	return sum
}

func magnitude(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
