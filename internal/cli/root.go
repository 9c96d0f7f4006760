package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/battlekeep/battlekeep/internal/factory"
	redisstorage "github.com/battlekeep/battlekeep/internal/storage/redis"
)

var (
	cfg *Config
	app *factory.App
	out *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg, _ = DefaultConfig()
	if cfg == nil {
		cfg = &Config{Output: "text"}
	}

	rootCmd := &cobra.Command{
		Use:   "battlekeep",
		Short: "Admin tool for the battlekeep account store",
		Long: `battlekeep is an admin tool for the battlekeep account store.

It operates directly on the backing store: inspecting accounts, replacing
settings, and importing, exporting, or deleting the entities nested in a
user's aggregate.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			redisCfg := redisstorage.DefaultConfig()
			redisCfg.URL = cfg.RedisURL

			var err error
			app, err = factory.New(factory.Config{
				Logger:      logger,
				RedisConfig: &redisCfg,
			})
			if err != nil {
				return err
			}

			out = NewOutput(cfg.Output)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return app.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Store connection URL (env: BATTLEKEEP_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newEntityCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
