// Package file provides the TOML-based configuration for the semsearch CLI.
//
// Configuration is stored in a TOML file; by default ~/.semsearch/config.toml.
// A missing file yields the defaults.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when the file omits a field.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 50
	DefaultTopK         = 5
	DefaultProvider     = "hashing"
)

// Config holds the orchestration-boundary configuration.
type Config struct {
	// Provider selects the embedding service: "ollama", "openai" or "hashing".
	Provider string `toml:"provider"`

	// EmbeddingModel is the model name passed to the provider. Empty
	// uses the provider's default.
	EmbeddingModel string `toml:"embedding_model"`

	// BaseURL overrides the provider's API base URL.
	BaseURL string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key for
	// providers that need one (default: OPENAI_API_KEY).
	APIKeyEnv string `toml:"api_key_env"`

	// ChunkSize is the chunk window in runes (default: 512).
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the window overlap in runes (default: 50).
	ChunkOverlap int `toml:"chunk_overlap"`

	// DefaultTopK is the result count used when a search does not
	// specify one (default: 5).
	DefaultTopK int `toml:"default_top_k"`

	// DBPath is the SQLite database file. Empty uses
	// ~/.semsearch/data/metadata.db.
	DBPath string `toml:"db_path"`

	// RaiseOnUnindexed makes search return an error instead of an empty
	// result list before the first index build.
	RaiseOnUnindexed bool `toml:"raise_on_unindexed"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".semsearch", "config.toml"), nil
}

// Load reads the config from path. A missing file returns the defaults;
// a malformed file is an error. If path is empty the default location is
// used.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as TOML, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyDefaults fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ChunkOverlap == 0 {
		c.ChunkOverlap = DefaultChunkOverlap
	}
	if c.DefaultTopK == 0 {
		c.DefaultTopK = DefaultTopK
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = "OPENAI_API_KEY"
	}
}

// Validate checks field combinations the chunker and engine rely on.
func (c *Config) Validate() error {
	switch c.Provider {
	case "ollama", "openai", "hashing":
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Provider)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap %d must satisfy 0 <= overlap < chunk_size %d",
			c.ChunkOverlap, c.ChunkSize)
	}
	if c.DefaultTopK <= 0 {
		return fmt.Errorf("default_top_k must be positive, got %d", c.DefaultTopK)
	}
	return nil
}
