package domain

import (
	"strings"
	"time"
)

// Document represents an ingested document with its metadata.
// DocID is unique across the metadata store and immutable after creation.
type Document struct {
	// DocID is the unique identifier for the document.
	DocID string

	// Title is the human-readable title.
	Title string

	// Content is the full text content. This is the complete document
	// text before chunking.
	Content string

	// FilePath is the original location, if any.
	FilePath string

	// FileType classifies the document (e.g. "text", "pdf"). Empty means unknown.
	FileType string

	// WordCount is the whitespace-delimited token count of Content,
	// derived once at creation time.
	WordCount int

	// EmbeddingModel is the name of the model configured when the
	// document was added.
	EmbeddingModel string

	// CreatedAt is when the document was first added.
	CreatedAt time.Time

	// UpdatedAt is when the document metadata was last written.
	UpdatedAt time.Time
}

// CountWords returns the whitespace-delimited token count used for
// Document.WordCount.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// Chunk is a bounded text segment derived from a document. Chunks are the
// unit actually embedded and indexed. They are rebuilt fresh on every index
// build and live only inside the vector index.
type Chunk struct {
	// ID identifies the chunk within one index generation.
	// Derived deterministically from the document ID and position.
	ID string

	// DocID links to the source Document.
	DocID string

	// Text is the chunk content.
	Text string

	// Position is the ordinal position within the document.
	Position int
}

// QueryLogEntry records a single search call. Entries are immutable and
// never updated or deleted.
type QueryLogEntry struct {
	// QueryText is the raw query string.
	QueryText string

	// Timestamp is when the search ran.
	Timestamp time.Time

	// ResultsCount is the size of the returned result set.
	ResultsCount int

	// AvgSimilarity is the arithmetic mean of the result similarity
	// scores, zero when the result set is empty.
	AvgSimilarity float64

	// ExecutionSeconds is the wall-clock duration of the search.
	ExecutionSeconds float64
}
