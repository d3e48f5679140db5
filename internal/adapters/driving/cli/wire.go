package cli

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/embedding/hashing"
	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/storage/sqlite"
	vectormem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/semsearch-cli/internal/chunker"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/semsearch-cli/internal/core/services"
)

// Wired bundles the constructed services and their teardown.
type Wired struct {
	Engine    *services.Engine
	Analytics *services.Analytics
	Close     func() error
}

// Wire builds the metadata store, embedding service, chunker and engine
// from the configuration.
func Wire(ctx context.Context, cfg *configfile.Config) (*Wired, error) {
	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		store.Close() //nolint:errcheck
		return nil, err
	}

	splitter, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		store.Close() //nolint:errcheck
		return nil, err
	}

	opts := []services.EngineOption{services.WithDefaultTopK(cfg.DefaultTopK)}
	if cfg.RaiseOnUnindexed {
		opts = append(opts, services.WithUnindexedPolicy(services.UnindexedReturnError))
	}

	eng, err := services.NewEngine(ctx, store, embedder,
		func() driven.VectorIndex { return vectormem.New() },
		splitter, opts...)
	if err != nil {
		store.Close() //nolint:errcheck
		return nil, err
	}

	return &Wired{
		Engine:    eng,
		Analytics: services.NewAnalytics(store, embedder.ModelName()),
		Close: func() error {
			if err := embedder.Close(); err != nil {
				return err
			}
			return store.Close()
		},
	}, nil
}

// newEmbedder selects the embedding service from configuration.
func newEmbedder(cfg *configfile.Config) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.EmbeddingModel,
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  os.Getenv(cfg.APIKeyEnv),
			BaseURL: cfg.BaseURL,
			Model:   cfg.EmbeddingModel,
		})
	case "hashing":
		return hashing.New(hashing.DefaultDimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
