package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/tablesep/pkg/dataset"
)

var RootCmd = &cobra.Command{
	Use:   "tablesep",
	Short: "Table separator target generation",
	Long: `Build row and column separator targets for table structure recognition
from page images, table annotations and OCR word boxes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		ll, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}

		switch strings.ToUpper(ll) {
		case "DEBUG":
			level = slog.LevelDebug
		case "WARN":
			level = slog.LevelWarn
		case "ERROR":
			level = slog.LevelError
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		handler := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(handler)

		return nil
	},
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	ll := os.Getenv("LOG_LEVEL")
	if ll == "" {
		ll = "INFO"
	}
	RootCmd.PersistentFlags().String("log-level", ll, "The logging level for the command")
	RootCmd.PersistentFlags().String("config", os.Getenv("TABLESEP_CONFIG"), "Path to a YAML dataset config")
}

// loadConfig reads --config, falling back to the defaults when it is unset
func loadConfig(cmd *cobra.Command) (dataset.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return dataset.Config{}, err
	}
	if path == "" {
		return dataset.DefaultConfig(), nil
	}
	slog.Debug("Loading config", "path", path)
	return dataset.LoadConfig(path)
}
