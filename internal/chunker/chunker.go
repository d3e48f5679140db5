// Package chunker provides a fixed-size sliding-window text splitter.
package chunker

import (
	"fmt"

	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 512

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// Splitter splits document content into overlapping fixed-size chunks.
// A Splitter is immutable after construction; Split on identical input
// always yields an identical chunk sequence.
type Splitter struct {
	size    int
	overlap int
}

// New creates a splitter with the given chunk size and overlap, both in
// runes. Returns domain.ErrInvalidChunkConfig unless size > 0 and
// 0 <= overlap < size.
func New(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunkConfig, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must satisfy 0 <= overlap < %d",
			domain.ErrInvalidChunkConfig, overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size in runes.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the configured overlap in runes.
func (s *Splitter) Overlap() int { return s.overlap }

// Split produces the chunk sequence for a document. The window advances
// by size-overlap each step and the final chunk may be shorter than size.
// Empty content produces no chunks. Chunk IDs are derived from the
// document ID and position so a rebuild reproduces the same IDs.
func (s *Splitter) Split(doc domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	runes := []rune(doc.Content)
	step := s.size - s.overlap

	chunks := make([]domain.Chunk, 0, len(runes)/step+1)
	position := 0

	for start := 0; start < len(runes); start += step {
		end := start + s.size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, domain.Chunk{
			ID:       fmt.Sprintf("%s:%d", doc.DocID, position),
			DocID:    doc.DocID,
			Text:     string(runes[start:end]),
			Position: position,
		})
		position++

		if end == len(runes) {
			break
		}
	}

	return chunks
}
