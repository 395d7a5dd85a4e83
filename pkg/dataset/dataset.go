// Package dataset pairs page images with table annotations and OCR records
// on disk and turns each record into a resized image with row and column
// separator targets.
package dataset

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/tablesep/pkg/augment"
	"github.com/lehigh-university-libraries/tablesep/pkg/hocr"
	"github.com/lehigh-university-libraries/tablesep/pkg/separator"
	"github.com/lehigh-university-libraries/tablesep/pkg/table"
)

// ErrTableCount is returned when an annotation does not hold exactly one table
var ErrTableCount = errors.New("annotation must contain exactly one table")

// OCRExtensions lists the OCR record formats in lookup order
var OCRExtensions = []string{".json", ".hocr", ".html"}

// Split is an ordered collection of records sharing one directory layout
type Split struct {
	cfg       Config
	files     []string
	ids       []string
	augmenter augment.Augmenter
}

// Record is a page at full resolution with its separator masks
type Record struct {
	ID string
	// Page is the grayscale page after augmentation
	Page *image.Gray
	// Image is Page replicated into three float32 channels
	Image  Tensor
	Labels *separator.Labels
}

// Sample is a training pair at output resolution
type Sample struct {
	Image Tensor
	// Rows and Cols hold 1 where a separator lies, 0 elsewhere
	Rows []uint8
	Cols []uint8
	ID   string
	// Width and Height are the page dimensions before resizing
	Width  int
	Height int
}

// Open lists the images of the split in name order
func Open(cfg Config) (*Split, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	aug, err := augment.New(cfg.Augment.Name, cfg.Augment.Probability, cfg.Augment.MaxBorder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(cfg.dir(cfg.Images))
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	s := &Split{cfg: cfg, augmenter: aug}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		s.files = append(s.files, e.Name())
	}
	sort.Strings(s.files)
	for _, f := range s.files {
		s.ids = append(s.ids, strings.TrimSuffix(f, filepath.Ext(f)))
	}

	return s, nil
}

func (c Config) dir(sub string) string {
	if filepath.IsAbs(sub) {
		return sub
	}
	return filepath.Join(c.Root, sub)
}

// Len returns the number of records
func (s *Split) Len() int {
	return len(s.ids)
}

// ID returns the identifier of record i, its image name without extension
func (s *Split) ID(i int) string {
	return s.ids[i]
}

// Index returns the position of the record with the given id
func (s *Split) Index(id string) (int, bool) {
	for i, v := range s.ids {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Split) Config() Config {
	return s.cfg
}

// ImagePath returns the page image path of record i
func (s *Split) ImagePath(i int) string {
	return filepath.Join(s.cfg.dir(s.cfg.Images), s.files[i])
}

// OCRDir returns the directory holding OCR records
func (s *Split) OCRDir() string {
	return s.cfg.dir(s.cfg.OCR)
}

// OCRPath returns the first existing OCR file of record i
func (s *Split) OCRPath(i int) (string, error) {
	base := filepath.Join(s.OCRDir(), s.ids[i])
	for _, ext := range OCRExtensions {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, nil
		}
	}
	return "", fmt.Errorf("no OCR file for %s in %s", s.ids[i], s.OCRDir())
}

func (s *Split) loadTable(i int) (*table.Table, error) {
	path := filepath.Join(s.cfg.dir(s.cfg.Labels), s.ids[i]+".xml")
	doc, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	if len(doc.Tables) != 1 {
		return nil, fmt.Errorf("%w: %s has %d", ErrTableCount, path, len(doc.Tables))
	}
	return doc.Tables[0], nil
}

// ReadRecord loads record i, applies augmentation and synthesises its
// full-resolution separator masks
func (s *Split) ReadRecord(i int) (*Record, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("record %d out of range [0,%d)", i, s.Len())
	}
	id := s.ids[i]

	page, err := DecodeGray(s.ImagePath(i))
	if err != nil {
		return nil, err
	}
	ocrPath, err := s.OCRPath(i)
	if err != nil {
		return nil, err
	}
	words, err := hocr.LoadWords(ocrPath)
	if err != nil {
		return nil, err
	}
	tbl, err := s.loadTable(i)
	if err != nil {
		return nil, err
	}

	if _, noop := s.augmenter.(augment.None); !noop {
		seed := s.cfg.Augment.Seed + uint64(i)
		res, err := s.augmenter.Augment(tbl, cloneGray(page), append([]hocr.WordBox(nil), words...), seed)
		if err != nil {
			return nil, fmt.Errorf("augmenting %s: %w", id, err)
		}
		switch r := res.(type) {
		case augment.Replaced:
			tbl, page, words = r.Table, r.Image, r.Words
		case augment.Unchanged:
			if tbl, err = s.loadTable(i); err != nil {
				return nil, err
			}
		}
	}

	b := page.Bounds()
	labels, err := separator.Synthesize(b.Dx(), b.Dy(), words, tbl, separator.Options{LeadMargin: s.cfg.LeadMargin})
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}

	return &Record{
		ID:     id,
		Page:   page,
		Image:  GrayToRGB(page),
		Labels: labels,
	}, nil
}

// Item returns record i resized and normalised, with targets resampled to
// the output resolution
func (s *Split) Item(i int) (*Sample, error) {
	_, sample, err := s.item(i)
	return sample, err
}

func (s *Split) item(i int) (*Record, *Sample, error) {
	rec, err := s.ReadRecord(i)
	if err != nil {
		return nil, nil, err
	}

	b := rec.Page.Bounds()
	ow, oh := OutputSize(b.Dx(), b.Dy(), s.cfg.Resize)

	img := GrayToRGB(ResizeGray(rec.Page, ow, oh))
	Normalize(&img, s.cfg.Normalize)

	rows, cols := rec.Labels.Resize(ow, oh)
	return rec, &Sample{
		Image:  img,
		Rows:   rows,
		Cols:   cols,
		ID:     rec.ID,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
