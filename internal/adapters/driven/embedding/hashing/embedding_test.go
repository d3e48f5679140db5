package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot, ma, mb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		ma += float64(a[i]) * float64(a[i])
		mb += float64(b[i]) * float64(b[i])
	}
	if ma == 0 || mb == 0 {
		return 0
	}
	return dot / (math.Sqrt(ma) * math.Sqrt(mb))
}

func TestNew_DimensionFallback(t *testing.T) {
	assert.Equal(t, DefaultDimensions, New(0).Dimensions())
	assert.Equal(t, DefaultDimensions, New(-5).Dimensions())
	assert.Equal(t, 64, New(64).Dimensions())
}

func TestEmbed_Deterministic(t *testing.T) {
	svc := New(128)
	ctx := context.Background()

	first, err := svc.Embed(ctx, "neural networks learn representations")
	require.NoError(t, err)
	second, err := svc.Embed(ctx, "neural networks learn representations")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 128)
}

func TestEmbed_L2Normalised(t *testing.T) {
	svc := New(64)

	vector, err := svc.Embed(context.Background(), "the quick brown fox jumps over the lazy dog")
	require.NoError(t, err)

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	svc := New(64)
	ctx := context.Background()

	lower, err := svc.Embed(ctx, "machine learning")
	require.NoError(t, err)
	mixed, err := svc.Embed(ctx, "Machine LEARNING")
	require.NoError(t, err)

	assert.Equal(t, lower, mixed)
}

func TestEmbed_EmptyText(t *testing.T) {
	svc := New(32)

	vector, err := svc.Embed(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, vector, 32)
	for _, v := range vector {
		assert.Zero(t, v)
	}
}

func TestEmbed_TokenOverlapSimilarity(t *testing.T) {
	svc := New(256)
	ctx := context.Background()

	base, err := svc.Embed(ctx, "deep learning models process natural language")
	require.NoError(t, err)
	related, err := svc.Embed(ctx, "deep learning models classify images")
	require.NoError(t, err)
	unrelated, err := svc.Embed(ctx, "sourdough bread requires patient fermentation")
	require.NoError(t, err)

	assert.Greater(t, cosine(base, related), cosine(base, unrelated),
		"shared tokens should score higher than disjoint tokens")
}

func TestEmbed_PunctuationIgnored(t *testing.T) {
	svc := New(64)
	ctx := context.Background()

	plain, err := svc.Embed(ctx, "hello world")
	require.NoError(t, err)
	punctuated, err := svc.Embed(ctx, "hello, world!")
	require.NoError(t, err)

	assert.Equal(t, plain, punctuated)
}

func TestEmbedBatch(t *testing.T) {
	svc := New(64)
	ctx := context.Background()

	texts := []string{"first text", "second text", ""}
	batch, err := svc.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	for i, text := range texts {
		single, err := svc.Embed(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single, batch[i])
	}
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc := New(64)

	batch, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestModelMetadata(t *testing.T) {
	svc := New(64)

	assert.Equal(t, ModelName, svc.ModelName())
	assert.NoError(t, svc.Ping(context.Background()))
	assert.NoError(t, svc.Close())
}
