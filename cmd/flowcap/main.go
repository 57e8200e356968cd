package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flowcap/internal/config"
	"flowcap/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// cfg is resolved once in setup and read by every subcommand.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "flowcap",
	Short: "Record, describe, and replay development workflows",
	Long: "Flowcap records development workflows as parameterized manifests and\n" +
		"replays them on demand: screenshot capture across viewports, demo\n" +
		"generation, and manifest-driven workflow execution.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "config file (default ./"+config.DefaultFileName+" if present)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(screenshotCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func setup(_ *cobra.Command, _ []string) error {
	var err error
	switch {
	case rootFlags.configPath != "":
		cfg, err = config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return err
		}
	default:
		cfg = config.Default()
		if _, statErr := os.Stat(config.DefaultFileName); statErr == nil {
			cfg, err = config.LoadFromPath(config.DefaultFileName)
			if err != nil {
				return err
			}
		}
	}

	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.LogFormat = rootFlags.logFormat
	}

	logging.Init(cfg.SlogLevel(), cfg.LogFormat)
	slog.Debug("configuration resolved",
		slog.String("recordings_root", cfg.RecordingsRoot),
		slog.String("output_dir", cfg.OutputDir))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
