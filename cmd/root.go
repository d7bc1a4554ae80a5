package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/expertmaker/internal/catalog"
	"github.com/abhisek/expertmaker/internal/config"
	"github.com/abhisek/expertmaker/internal/logger"
	"github.com/abhisek/expertmaker/internal/store"
	"github.com/abhisek/expertmaker/internal/studio"
)

var rootCmd = &cobra.Command{
	Use:   "expertmaker",
	Short: "Study planner with quizzes and belt ranks",
	Long:  "ExpertMaker builds multi-week study plans from a topic catalog, quizzes you on each session, and tracks a belt and stripe rank.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// cfg is populated before any command runs.
var cfg *config.Config

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EXPERTMAKER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/expertmaker/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	c, err := config.Load(file)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.LogLevel = lvl
	}
	logger.Setup(c.LogLevel, os.Stderr)
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (EXPERTMAKER_DB or config file), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openService opens the store and builds the study service. The returned
// close func must be called when the command is done.
func openService(cmd *cobra.Command) (*studio.Service, func(), error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	slog.Debug("store opened", "path", dbPath)

	opts := []studio.Option{studio.WithLogger(slog.Default())}
	if cfg != nil {
		opts = append(opts,
			studio.WithRankDefaults(cfg.Rank.Rules()),
			studio.WithStrictTopics(cfg.Strict))
	}
	svc := studio.New(st, catalog.Default(), opts...)
	return svc, func() { st.Close() }, nil
}
