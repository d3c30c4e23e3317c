package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/battlecard/internal/config"
	"github.com/abhisek/battlecard/internal/logger"
	"github.com/abhisek/battlecard/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "battlecard",
	Short: "Spaced-repetition study cards in the terminal",
	Long: "Battlecard plays one due study card at a time, reveals it section by section, " +
		"checks you with a quick quiz and sends your recall rating back to the scheduler.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("api", "", "Backend base URL (overrides BATTLECARD_API_URL)")
	pf.String("db", "", "Path to SQLite journal (overrides BATTLECARD_DB)")
	pf.String("log-file", "", "Log file path (overrides BATTLECARD_LOG_FILE)")
	pf.Duration("reveal-latency", 0, "Base delay between reveal steps (overrides BATTLECARD_REVEAL_LATENCY)")
	pf.String("diagram-url", "", "Kroki-compatible renderer URL (overrides BATTLECARD_DIAGRAM_URL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides, flags
// taking priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("api"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetDuration("reveal-latency"); v > 0 {
		cfg.RevealLatency = v
	}
	if v, _ := flags.GetString("diagram-url"); v != "" {
		cfg.DiagramURL = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the journal at the configured path.
func openStore(cfg *config.Config) (*store.Store, error) {
	if err := config.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openLogger opens the file logger, falling back to a no-op logger when the
// file cannot be created.
func openLogger(cfg *config.Config) *logger.Logger {
	if err := config.EnsureDir(cfg.LogFile); err != nil {
		return logger.Nop()
	}
	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return logger.Nop()
	}
	return log
}
