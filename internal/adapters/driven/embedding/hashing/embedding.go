// Package hashing provides an offline, deterministic embedding service
// using the feature-hashing trick: tokens are hashed into a fixed number
// of buckets and the resulting count vector is L2-normalised.
//
// The embeddings carry no semantics beyond token overlap, which is enough
// for tests and the self-test command to exercise the full pipeline
// without a network or a model.
package hashing

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions is the default bucket count.
const DefaultDimensions = 256

// ModelName is the reported model identifier.
const ModelName = "feature-hash-v1"

// tokenPattern matches word tokens, including apostrophes.
var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)

// EmbeddingService is a deterministic local embedder.
type EmbeddingService struct {
	dimensions int
}

// New creates a hashing embedder with the given dimension count.
// A non-positive dimensions falls back to DefaultDimensions.
func New(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed hashes each token of text into a bucket and L2-normalises the
// resulting vector. Identical text always yields an identical vector.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, s.dimensions)

	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		h := fnv.New32a()
		h.Write([]byte(token)) //nolint:errcheck // fnv never fails
		vector[int(h.Sum32())%s.dimensions]++
	}

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= inv
		}
	}

	return vector, nil
}

// EmbedBatch embeds each text independently.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the bucket count.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the reported model identifier.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; there is no remote service.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
