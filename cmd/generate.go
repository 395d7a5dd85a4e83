package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lehigh-university-libraries/tablesep/pkg/dataset"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate separator targets for every record of a split",
	Long: `Generate row and column separator targets for every page of a split.

Each record is read from <root>/images, <root>/labels and <root>/ocr. The
full-resolution masks are written as <id>_rows.png and <id>_cols.png and a
YAML manifest records the bands and resized targets of every record.`,
	RunE: runGenerate,
}

var (
	genRoot        string
	genOut         string
	genManifest    string
	genWorkers     int
	genFailFast    bool
	genResize      string
	genLeadMargin  int
	genAugment     string
	genAugmentProb float64
	genSeed        uint64
)

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genRoot, "root", "", "Dataset root directory (overrides config)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Directory for mask strips (skipped if not specified)")
	generateCmd.Flags().StringVar(&genManifest, "manifest", "manifest.yaml", "Path to write the run manifest")
	generateCmd.Flags().IntVarP(&genWorkers, "workers", "w", 0, "Records processed in parallel (overrides config)")
	generateCmd.Flags().BoolVar(&genFailFast, "fail-fast", false, "Stop on the first failing record")
	generateCmd.Flags().StringVar(&genResize, "resize", "", "Fixed output size as WIDTHxHEIGHT (overrides config)")
	generateCmd.Flags().IntVar(&genLeadMargin, "lead-margin", 0, "Pixels each band extends past the preceding content (overrides config)")
	generateCmd.Flags().StringVar(&genAugment, "augment", "", "Augmentation to apply: none, pad (overrides config)")
	generateCmd.Flags().Float64Var(&genAugmentProb, "augment-prob", 0, "Probability an augmentation is applied (overrides config)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0, "Base seed for augmentation (overrides config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd.Flags(), &cfg); err != nil {
		return err
	}

	split, err := dataset.Open(cfg)
	if err != nil {
		return err
	}
	slog.Info("Generating separator targets", "root", cfg.Root, "records", split.Len(), "workers", cfg.Workers)

	start := time.Now()
	gen := &dataset.Generator{Split: split, OutDir: genOut, FailFast: genFailFast}
	manifest, err := gen.Run(cmd.Context())
	if err != nil {
		return err
	}

	if genManifest != "" {
		if err := dataset.SaveManifest(genManifest, manifest); err != nil {
			return err
		}
	}

	fmt.Printf("Run %s: %d records, %d failures in %s\n", manifest.RunID, len(manifest.Records), len(manifest.Failures), time.Since(start).Round(time.Millisecond))
	for _, f := range manifest.Failures {
		fmt.Printf("  %s: %s\n", f.ID, f.Error)
	}
	return nil
}

// applyOverrides copies every explicitly set generate flag onto cfg
func applyOverrides(flags *pflag.FlagSet, cfg *dataset.Config) error {
	if flags.Changed("root") {
		cfg.Root = genRoot
	}
	if flags.Changed("workers") {
		cfg.Workers = genWorkers
	}
	if flags.Changed("resize") {
		w, h, err := parseSize(genResize)
		if err != nil {
			return err
		}
		cfg.Resize.Fixed = true
		cfg.Resize.Width, cfg.Resize.Height = w, h
	}
	if flags.Changed("lead-margin") {
		cfg.LeadMargin = genLeadMargin
	}
	if flags.Changed("augment") {
		cfg.Augment.Name = genAugment
	}
	if flags.Changed("augment-prob") {
		cfg.Augment.Probability = genAugmentProb
	}
	if flags.Changed("seed") {
		cfg.Augment.Seed = genSeed
	}
	return cfg.Validate()
}

// parseSize parses WIDTHxHEIGHT
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}
