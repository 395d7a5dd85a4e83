package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/tablesep/pkg/components"
	"github.com/lehigh-university-libraries/tablesep/pkg/dataset"
	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/providers"
	"github.com/lehigh-university-libraries/tablesep/pkg/tesseract"
	"github.com/lehigh-university-libraries/tablesep/pkg/vision"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Create OCR records for pages that have none",
	Long: `Detect words on every page of a split that has no OCR record yet and save
them under <root>/ocr as Vision style JSON or hOCR.

Providers: vision (Google Cloud Vision, needs GOOGLE_APPLICATION_CREDENTIALS),
tesseract (needs a build with -tags ocr) and components (connected ink
components, no OCR engine).`,
	RunE: runOCR,
}

var (
	ocrRoot      string
	ocrProvider  string
	ocrFormat    string
	ocrLanguages []string
	ocrTimeout   time.Duration
	ocrOverwrite bool
)

func init() {
	RootCmd.AddCommand(ocrCmd)

	ocrCmd.Flags().StringVar(&ocrRoot, "root", "", "Dataset root directory (overrides config)")
	ocrCmd.Flags().StringVar(&ocrProvider, "provider", "components", "Provider to use: vision, tesseract, components")
	ocrCmd.Flags().StringVar(&ocrFormat, "format", "json", "Output format: json, hocr")
	ocrCmd.Flags().StringSliceVar(&ocrLanguages, "languages", nil, "Language hints passed to the provider")
	ocrCmd.Flags().DurationVar(&ocrTimeout, "timeout", 2*time.Minute, "Timeout per page")
	ocrCmd.Flags().BoolVar(&ocrOverwrite, "overwrite", false, "Replace existing OCR records")
}

func newRegistry() *providers.Registry {
	registry := providers.NewRegistry()
	registry.Register(vision.New())
	registry.Register(tesseract.New())
	registry.Register(components.New())
	return registry
}

type ocrOptions struct {
	Config    providers.Config
	Format    string
	Overwrite bool
	Workers   int
}

func runOCR(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = ocrRoot
	}

	split, err := dataset.Open(cfg)
	if err != nil {
		return err
	}

	opts := ocrOptions{
		Config: providers.Config{
			Provider:  ocrProvider,
			Languages: ocrLanguages,
			Timeout:   ocrTimeout,
		},
		Format:    ocrFormat,
		Overwrite: ocrOverwrite,
		Workers:   cfg.Workers,
	}

	written, skipped, err := detectMissing(cmd.Context(), split, newRegistry(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d OCR records, skipped %d existing\n", written, skipped)
	return nil
}

// detectMissing writes an OCR record for every page lacking one
func detectMissing(ctx context.Context, split *dataset.Split, registry *providers.Registry, opts ocrOptions) (int, int, error) {
	var ext string
	switch opts.Format {
	case "json":
		ext = ".json"
	case "hocr":
		ext = ".hocr"
	default:
		return 0, 0, fmt.Errorf("unsupported OCR format: %s", opts.Format)
	}
	if !registry.HasProvider(opts.Config.Provider) {
		return 0, 0, fmt.Errorf("unsupported provider: %s", opts.Config.Provider)
	}

	if err := os.MkdirAll(split.OCRDir(), 0755); err != nil {
		return 0, 0, fmt.Errorf("failed to create OCR directory: %w", err)
	}

	var written, skipped atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.Workers, 1))

	for i := 0; i < split.Len(); i++ {
		if _, err := split.OCRPath(i); err == nil && !opts.Overwrite {
			skipped.Add(1)
			continue
		}
		eg.Go(func() error {
			imagePath := split.ImagePath(i)
			page, err := dataset.DecodeGray(imagePath)
			if err != nil {
				return err
			}
			words, err := registry.DetectWords(ctx, opts.Config, imagePath)
			if err != nil {
				return fmt.Errorf("record %s: %w", split.ID(i), err)
			}

			out := filepath.Join(split.OCRDir(), split.ID(i)+ext)
			b := page.Bounds()
			if err := hocr.SaveWords(out, words, b.Dx(), b.Dy()); err != nil {
				return err
			}
			slog.Debug("Saved OCR record", "record", split.ID(i), "words", len(words), "path", out)
			written.Add(1)
			return nil
		})
	}

	err := eg.Wait()
	return int(written.Load()), int(skipped.Load()), err
}
