// Package cli provides the cobra command surface for semsearch.
//
// Commands are thin wrappers over the core services: they parse flags,
// call the driving ports and format output. All business logic lives in
// internal/core/services.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/semsearch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/semsearch-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	flagConfig  string
	flagDB      string
	flagVerbose bool
)

// Services wired by Configure. Commands check for nil before use.
var (
	engine    driving.SearchEngine
	analytics driving.AnalyticsService
	appConfig *configfile.Config
	cleanup   func() error
)

var rootCmd = &cobra.Command{
	Use:   "semsearch",
	Short: "Semantic document search over a local metadata store",
	Long: `semsearch ingests documents, builds an embedding index over their chunks
and answers similarity-ranked queries. Document metadata and query
analytics are persisted in SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return setup(cmd)
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if cleanup != nil {
			return cleanup()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.semsearch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose pipeline logging to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the config and wires the services, unless a test already
// injected them via Configure.
func setup(cmd *cobra.Command) error {
	if engine != nil && analytics != nil {
		return nil
	}

	cfg, err := configfile.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}

	wired, err := Wire(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	engine = wired.Engine
	analytics = wired.Analytics
	appConfig = cfg
	cleanup = wired.Close
	return nil
}

// Configure injects pre-built services, bypassing setup. Used by tests.
func Configure(e driving.SearchEngine, a driving.AnalyticsService, cfg *configfile.Config) {
	engine = e
	analytics = a
	appConfig = cfg
	cleanup = nil
}

// requireEngine guards commands that need the search engine.
func requireEngine() error {
	if engine == nil {
		return errors.New("search engine not configured")
	}
	return nil
}
