package domain

import "time"

// SearchResult represents a single ranked retrieval hit.
type SearchResult struct {
	// DocID is the source document of the matched chunk.
	DocID string

	// Title is the document title. Empty when the document metadata
	// could not be found (the hit is still returned).
	Title string

	// Text is the matched chunk content.
	Text string

	// Similarity is the cosine similarity score of the chunk.
	Similarity float64

	// Position is the chunk's ordinal position within the document.
	Position int

	// FilePath, FileType, WordCount and CreatedAt are enrichment
	// fields joined from the metadata store. Zero-valued when the
	// document record is missing.
	FilePath  string
	FileType  string
	WordCount int
	CreatedAt time.Time
}

// DocumentStats aggregates the document side of the metadata store.
type DocumentStats struct {
	// TotalDocuments is the number of stored documents.
	TotalDocuments int

	// TotalWords is the sum of WordCount across all documents.
	TotalWords int

	// FileTypes maps file type to document count. Documents without a
	// file type are counted under the "unknown" bucket.
	FileTypes map[string]int

	// EmbeddingModel is the configured embedding model name.
	EmbeddingModel string
}

// SearchAnalytics aggregates the query-log side of the metadata store.
type SearchAnalytics struct {
	// TotalSearches is the number of logged queries.
	TotalSearches int

	// AvgExecutionSeconds is the mean wall-clock search duration.
	AvgExecutionSeconds float64

	// AvgResults is the mean result count per search.
	AvgResults float64

	// RecentQueries holds the most recent query texts, newest first.
	RecentQueries []string
}
