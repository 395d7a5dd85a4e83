package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	yaml "go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/tablesep/pkg/separator"
)

// Manifest summarises one generation run
type Manifest struct {
	RunID     string    `yaml:"run_id"`
	CreatedAt string    `yaml:"created_at"`
	Config    Config    `yaml:"config"`
	Records   []Entry   `yaml:"records"`
	Failures  []Failure `yaml:"failures,omitempty"`
}

// Entry describes the targets produced for one record
type Entry struct {
	ID        string `yaml:"id"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	OutWidth  int    `yaml:"out_width"`
	OutHeight int    `yaml:"out_height"`
	// RowBands and ColBands are the full-resolution bands per grid line
	RowBands []separator.Span `yaml:"row_bands,flow"`
	ColBands []separator.Span `yaml:"col_bands,flow"`
	// RowTargets and ColTargets are the positive runs at output resolution
	RowTargets []separator.Span `yaml:"row_targets,flow"`
	ColTargets []separator.Span `yaml:"col_targets,flow"`
}

type Failure struct {
	ID    string `yaml:"id"`
	Error string `yaml:"error"`
}

// Generator runs every record of a split through the pipeline
type Generator struct {
	Split *Split
	// OutDir receives <id>_rows.png and <id>_cols.png; empty skips them
	OutDir string
	// FailFast cancels the run on the first failing record
	FailFast bool
}

// Run processes records in parallel, bounded by the split's worker count
func (g *Generator) Run(ctx context.Context) (*Manifest, error) {
	cfg := g.Split.Config()
	if g.OutDir != "" {
		if err := os.MkdirAll(g.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	n := g.Split.Len()
	entries := make([]*Entry, n)
	failures := make([]error, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			entry, err := g.process(i)
			if err != nil {
				if g.FailFast {
					return fmt.Errorf("record %s: %w", g.Split.ID(i), err)
				}
				slog.Error("Error processing record", "record", g.Split.ID(i), "err", err)
				failures[i] = err
				return nil
			}
			slog.Debug("Processed record", "record", entry.ID, "rows", len(entry.RowBands), "cols", len(entry.ColBands), "duration", time.Since(start))
			entries[i] = entry
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	m := &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().Format(time.RFC3339),
		Config:    cfg,
	}
	for i := 0; i < n; i++ {
		switch {
		case entries[i] != nil:
			m.Records = append(m.Records, *entries[i])
		case failures[i] != nil:
			m.Failures = append(m.Failures, Failure{ID: g.Split.ID(i), Error: failures[i].Error()})
		}
	}

	slog.Info("Generation completed", "records", len(m.Records), "failures", len(m.Failures))
	return m, nil
}

func (g *Generator) process(i int) (*Entry, error) {
	rec, sample, err := g.Split.item(i)
	if err != nil {
		return nil, err
	}

	if g.OutDir != "" {
		if err := WriteStrip(filepath.Join(g.OutDir, rec.ID+"_rows.png"), rec.Labels.Rows, true); err != nil {
			return nil, err
		}
		if err := WriteStrip(filepath.Join(g.OutDir, rec.ID+"_cols.png"), rec.Labels.Cols, false); err != nil {
			return nil, err
		}
	}

	return &Entry{
		ID:         rec.ID,
		Width:      sample.Width,
		Height:     sample.Height,
		OutWidth:   sample.Image.Width,
		OutHeight:  sample.Image.Height,
		RowBands:   rec.Labels.RowSpans,
		ColBands:   rec.Labels.ColSpans,
		RowTargets: separator.Runs(sample.Rows),
		ColTargets: separator.Runs(sample.Cols),
	}, nil
}

// SaveManifest writes m as YAML
func SaveManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest written by SaveManifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
