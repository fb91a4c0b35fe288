package main

import (
	"fmt"
	"log/slog"
	"os"

	"region-tracer/internal/app"
	"region-tracer/internal/config"
	"region-tracer/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "regiontool",
	Short: "Inspect and rework region annotation documents",
	Long: `regiontool works with the SVG documents written by the region tracer:
it reports per-colour areas, rewrites documents in canonical form and
replays recorded editing sessions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default is the user config directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log engine activity to stderr")
}

// newEngine builds an engine from the persistent flags.
func newEngine(cmd *cobra.Command) (*app.Engine, config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, cfg, err
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)
	logger.Debug("config loaded", "path", path, "snap_threshold", cfg.SnapThreshold)

	return app.New(app.WithConfig(cfg), app.WithLogger(logger)), cfg, nil
}

// importFile loads a document file into a fresh engine.
func importFile(cmd *cobra.Command, path string) (*app.Engine, error) {
	e, _, err := newEngine(cmd)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := e.Import(data, "", path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}
