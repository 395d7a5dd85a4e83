package separator

import (
	"errors"
	"fmt"
	"sort"
)

// ErrGridLineOutOfRange is returned for a grid line that lies outside the
// page along its axis
var ErrGridLineOutOfRange = errors.New("grid line outside page")

// Options tunes band synthesis
type Options struct {
	// LeadMargin extends each band this many pixels toward the content
	// preceding the grid line. Zero starts the band on the last occupied
	// coordinate before the line.
	LeadMargin int
}

// Span is a half-open pixel interval [Start, End) painted for grid line Line
type Span struct {
	Line  int `yaml:"line,omitempty" json:"line,omitempty"`
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Spans computes the separator band of every interior grid line. occupied
// must be ascending. Lines at 0 or length are skipped. If occupied has no
// coordinate on one side of a line the band runs to the page edge there.
func Spans(lines, occupied []int, length int, opts Options) ([]Span, error) {
	var spans []Span
	for _, c := range lines {
		if c == 0 || c == length {
			continue
		}
		if c < 0 || c > length {
			return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrGridLineOutOfRange, c, length)
		}

		prev, next := neighbours(occupied, c)
		if prev < 0 {
			prev = 0
		}
		if next < 0 {
			next = length
		}

		spans = append(spans, Span{
			Line:  c,
			Start: max(prev-opts.LeadMargin, 0),
			End:   min(next, length),
		})
	}
	return spans, nil
}

// neighbours returns the greatest coordinate below c and the smallest above
// it, or -1 where none exists
func neighbours(occupied []int, c int) (int, int) {
	i := sort.SearchInts(occupied, c)
	prev := -1
	if i > 0 {
		prev = occupied[i-1]
	}
	for i < len(occupied) && occupied[i] <= c {
		i++
	}
	next := -1
	if i < len(occupied) {
		next = occupied[i]
	}
	return prev, next
}

// Paint renders spans into a mask of the given length. Overlapping spans
// form their union.
func Paint(spans []Span, length int) []uint8 {
	mask := make([]uint8, length)
	for _, s := range spans {
		for i := max(s.Start, 0); i < min(s.End, length); i++ {
			mask[i] = Foreground
		}
	}
	return mask
}

// Bands is Spans followed by Paint
func Bands(lines, occupied []int, length int, opts Options) ([]uint8, error) {
	spans, err := Spans(lines, occupied, length, opts)
	if err != nil {
		return nil, err
	}
	return Paint(spans, length), nil
}

// Runs lists the maximal runs of non-zero values in mask
func Runs(mask []uint8) []Span {
	var runs []Span
	start := -1
	for i, v := range mask {
		switch {
		case v != 0 && start < 0:
			start = i
		case v == 0 && start >= 0:
			runs = append(runs, Span{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, Span{Start: start, End: len(mask)})
	}
	return runs
}
