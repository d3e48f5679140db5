package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/embedding/hashing"
	storagemem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/storage/memory"
	vectormem "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/semsearch-cli/internal/chunker"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/semsearch-cli/internal/core/services"
)

// setupTestServices wires the commands to in-memory adapters and returns
// a cleanup that restores the unconfigured state.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	store := storagemem.NewStore()
	embedder := hashing.New(64)
	splitter, err := chunker.New(64, 8)
	require.NoError(t, err)

	eng, err := services.NewEngine(context.Background(), store, embedder,
		func() driven.VectorIndex { return vectormem.New() }, splitter)
	require.NoError(t, err)

	cfg := &configfile.Config{}
	Configure(eng, services.NewAnalytics(store, embedder.ModelName()), cfg)

	return func() {
		Configure(nil, nil, nil)
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "semsearch", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "load")
	assert.Contains(t, commandNames, "index")
	assert.Contains(t, commandNames, "search")
	assert.Contains(t, commandNames, "demo")
	assert.Contains(t, commandNames, "stats")
	assert.Contains(t, commandNames, "selftest")
	assert.Contains(t, commandNames, "version")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "db", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}
}

func TestRequireEngine(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	assert.NoError(t, requireEngine())

	Configure(nil, nil, nil)
	err := requireEngine()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestVersionCmd_Output(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "semsearch version")
}
