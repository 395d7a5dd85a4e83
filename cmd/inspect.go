package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/lehigh-university-libraries/tablesep/pkg/dataset"
	"github.com/lehigh-university-libraries/tablesep/pkg/separator"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect ID",
	Short: "Show the separator bands of one record",
	Long: `Print the row and column bands synthesised for one record and optionally
write the page with the bands tinted over it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectRoot    string
	inspectOverlay string
)

var (
	rowTint = color.NRGBA{R: 220, G: 40, B: 40, A: 255}
	colTint = color.NRGBA{R: 40, G: 80, B: 220, A: 255}
)

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectRoot, "root", "", "Dataset root directory (overrides config)")
	inspectCmd.Flags().StringVarP(&inspectOverlay, "overlay", "o", "", "Write a PNG of the page with bands tinted")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = inspectRoot
	}

	split, err := dataset.Open(cfg)
	if err != nil {
		return err
	}
	i, ok := split.Index(args[0])
	if !ok {
		return fmt.Errorf("record %s not found under %s", args[0], cfg.Root)
	}

	rec, err := split.ReadRecord(i)
	if err != nil {
		return err
	}
	b := rec.Page.Bounds()
	slog.Info("Loaded record", "record", rec.ID, "width", b.Dx(), "height", b.Dy())

	printSpans("Rows", rec.Labels.RowSpans)
	printSpans("Columns", rec.Labels.ColSpans)

	if inspectOverlay == "" {
		return nil
	}
	return writeOverlay(inspectOverlay, renderOverlay(rec.Page, rec.Labels))
}

func printSpans(title string, spans []separator.Span) {
	fmt.Printf("%s (%d)\n", title, len(spans))
	for _, s := range spans {
		fmt.Printf("  line %5d  band [%d, %d)  width %d\n", s.Line, s.Start, s.End, s.Len())
	}
}

// renderOverlay tints row bands red and column bands blue over the page
func renderOverlay(page *image.Gray, labels *separator.Labels) *image.RGBA {
	b := page.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, page, b.Min, draw.Src)

	alpha := image.NewUniform(color.Alpha{A: 96})
	for _, s := range labels.RowSpans {
		r := image.Rect(b.Min.X, b.Min.Y+s.Start, b.Max.X, b.Min.Y+s.End)
		draw.DrawMask(out, r, image.NewUniform(rowTint), image.Point{}, alpha, image.Point{}, draw.Over)
	}
	for _, s := range labels.ColSpans {
		r := image.Rect(b.Min.X+s.Start, b.Min.Y, b.Min.X+s.End, b.Max.Y)
		draw.DrawMask(out, r, image.NewUniform(colTint), image.Point{}, alpha, image.Point{}, draw.Over)
	}
	return out
}

func writeOverlay(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create overlay: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	slog.Info("Wrote overlay", "path", path)
	return f.Close()
}
