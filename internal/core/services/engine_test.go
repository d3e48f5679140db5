package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/embedding/hashing"
	storagemem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/semsearch-cli/internal/chunker"
	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"
)

// failingEmbedder returns an error from every call.
type failingEmbedder struct {
	hashing.EmbeddingService
}

func (f *failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedding backend down")
}

func (f *failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedding backend down")
}

// newTestEngine builds an engine over in-memory adapters.
func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *storagemem.Store) {
	t.Helper()

	store := storagemem.NewStore()
	splitter, err := chunker.New(64, 8)
	require.NoError(t, err)

	eng, err := NewEngine(context.Background(), store, hashing.New(64),
		func() driven.VectorIndex { return vectormem.New() }, splitter, opts...)
	require.NoError(t, err)

	return eng, store
}

func addDocs(t *testing.T, eng *Engine, inputs ...driving.AddDocumentInput) []string {
	t.Helper()
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := eng.AddDocument(context.Background(), in)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestAddDocument_PersistsWordCount(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	docID, err := eng.AddDocument(ctx, driving.AddDocumentInput{
		Title:   "Word Counting",
		Content: "five words of test content",
	})
	require.NoError(t, err)
	require.NotEmpty(t, docID)

	doc, err := store.GetDocument(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, 5, doc.WordCount)
	assert.Equal(t, "Word Counting", doc.Title)
	assert.Equal(t, hashing.ModelName, doc.EmbeddingModel)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestAddDocument_UniqueIDs(t *testing.T) {
	eng, _ := newTestEngine(t)

	ids := addDocs(t, eng,
		driving.AddDocumentInput{Title: "A", Content: "alpha"},
		driving.AddDocumentInput{Title: "B", Content: "beta"},
	)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Equal(t, 2, eng.BufferLen())
}

func TestAddDocument_PersistFailureLeavesBufferUntouched(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, store.Close())

	_, err := eng.AddDocument(ctx, driving.AddDocumentInput{Title: "X", Content: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentPersist)
	assert.Equal(t, 0, eng.BufferLen())
}

func TestBuildIndex_EmptyBufferIsNoOp(t *testing.T) {
	eng, _ := newTestEngine(t)

	require.NoError(t, eng.BuildIndex(context.Background()))
	assert.False(t, eng.Indexed())
}

func TestBuildIndex_EmbedderFailure(t *testing.T) {
	store := storagemem.NewStore()
	splitter, err := chunker.New(64, 8)
	require.NoError(t, err)

	eng, err := NewEngine(context.Background(), store, &failingEmbedder{},
		func() driven.VectorIndex { return vectormem.New() }, splitter)
	require.NoError(t, err)

	addDocs(t, eng, driving.AddDocumentInput{Title: "A", Content: "alpha beta"})

	err = eng.BuildIndex(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexBuild)
	assert.False(t, eng.Indexed())
}

func TestSearch_InvalidTopK(t *testing.T) {
	eng, _ := newTestEngine(t)

	for _, k := range []int{0, -1} {
		_, err := eng.Search(context.Background(), "anything", k)
		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	}
}

func TestSearch_UnindexedReturnsEmpty(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	addDocs(t, eng, driving.AddDocumentInput{Title: "A", Content: "alpha"})

	results, err := eng.Search(ctx, "alpha", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	// An unindexed search must not touch the query log.
	stats, err := store.QueryStats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSearches)
}

func TestSearch_UnindexedErrorPolicy(t *testing.T) {
	eng, store := newTestEngine(t, WithUnindexedPolicy(UnindexedReturnError))
	ctx := context.Background()

	_, err := eng.Search(ctx, "alpha", 3)
	assert.ErrorIs(t, err, domain.ErrIndexNotBuilt)

	stats, err := store.QueryStats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSearches)
}

func TestSearch_EndToEndScenario(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	ids := addDocs(t, eng,
		driving.AddDocumentInput{Title: "ML", Content: "machine learning trains models from data", FileType: "text"},
		driving.AddDocumentInput{Title: "Cooking", Content: "slow roasted vegetables with olive oil", FileType: "text"},
		driving.AddDocumentInput{Title: "NLP", Content: "natural language processing and machine learning", FileType: "text"},
		driving.AddDocumentInput{Title: "Gardening", Content: "plant tomatoes in well drained soil"},
		driving.AddDocumentInput{Title: "DB", Content: "relational databases store structured records", FileType: "sql"},
	)
	require.NoError(t, eng.BuildIndex(ctx))
	require.True(t, eng.Indexed())

	results, err := eng.Search(ctx, "machine learning", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 3)

	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	for i := range results {
		assert.True(t, known[results[i].DocID], "result references unknown document")
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity,
				"results must be ordered by non-increasing similarity")
		}
	}
	// Token overlap makes the ML documents the best matches.
	assert.Contains(t, []string{"ML", "NLP"}, results[0].Title)

	docStats, err := store.DocumentStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, docStats.TotalDocuments)
	assert.Equal(t, 3, docStats.FileTypes["text"])
	assert.Equal(t, 1, docStats.FileTypes["sql"])
	assert.Equal(t, 1, docStats.FileTypes["unknown"])

	searchStats, err := store.QueryStats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, searchStats.TotalSearches)
	assert.Equal(t, []string{"machine learning"}, searchStats.RecentQueries)
	assert.InDelta(t, float64(len(results)), searchStats.AvgResults, 0.001)
}

func TestSearch_LogsMeanSimilarity(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	addDocs(t, eng, driving.AddDocumentInput{Title: "A", Content: "alpha beta gamma"})
	require.NoError(t, eng.BuildIndex(ctx))

	results, err := eng.Search(ctx, "alpha", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	stats, err := store.QueryStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSearches)
}

func TestSearch_DocumentsAddedAfterBuildAreAbsent(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	addDocs(t, eng, driving.AddDocumentInput{Title: "Old", Content: "indexed words here"})
	require.NoError(t, eng.BuildIndex(ctx))

	newIDs := addDocs(t, eng, driving.AddDocumentInput{Title: "New", Content: "zebra quokka platypus"})

	results, err := eng.Search(ctx, "zebra quokka platypus", 5)
	require.NoError(t, err)
	for i := range results {
		assert.NotEqual(t, newIDs[0], results[i].DocID,
			"document added after build must be absent until rebuild")
	}

	// After a rebuild the new document becomes retrievable.
	require.NoError(t, eng.BuildIndex(ctx))
	results, err = eng.Search(ctx, "zebra quokka platypus", 5)
	require.NoError(t, err)
	found := false
	for i := range results {
		if results[i].DocID == newIDs[0] {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSearch_MissingMetadataTolerated(t *testing.T) {
	// Index a chunk whose document is absent from the store: the hit is
	// still returned with zero enrichment fields.
	store := storagemem.NewStore()
	splitter, err := chunker.New(64, 8)
	require.NoError(t, err)

	embedder := hashing.New(64)
	index := vectormem.New()
	ctx := context.Background()

	vec, err := embedder.Embed(ctx, "orphan chunk text")
	require.NoError(t, err)
	require.NoError(t, index.Upsert(ctx, "ghost:0", vec, domain.Chunk{
		ID: "ghost:0", DocID: "ghost", Text: "orphan chunk text", Position: 0,
	}))

	eng, err := NewEngine(ctx, store, embedder,
		func() driven.VectorIndex { return index }, splitter)
	require.NoError(t, err)
	eng.index = index

	results, err := eng.Search(ctx, "orphan chunk", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ghost", results[0].DocID)
	assert.Empty(t, results[0].Title)
	assert.Zero(t, results[0].WordCount)
}

func TestNewEngine_ReloadsBufferFromStore(t *testing.T) {
	store := storagemem.NewStore()
	ctx := context.Background()

	require.NoError(t, store.InsertDocument(ctx, &domain.Document{
		DocID: "persisted-1", Title: "Persisted", Content: "survives restarts",
	}))

	splitter, err := chunker.New(64, 8)
	require.NoError(t, err)

	eng, err := NewEngine(ctx, store, hashing.New(64),
		func() driven.VectorIndex { return vectormem.New() }, splitter)
	require.NoError(t, err)
	assert.Equal(t, 1, eng.BufferLen())

	// The reloaded document is indexable without re-adding it.
	require.NoError(t, eng.BuildIndex(ctx))
	results, err := eng.Search(ctx, "survives restarts", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persisted-1", results[0].DocID)
}

func TestDefaultTopK(t *testing.T) {
	eng, _ := newTestEngine(t, WithDefaultTopK(7))
	assert.Equal(t, 7, eng.DefaultTopK())

	eng2, _ := newTestEngine(t)
	assert.Equal(t, 5, eng2.DefaultTopK())
}
