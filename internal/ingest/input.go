// Package ingest turns raw user input from the terminal into validated
// draw parameters.
package ingest

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Validation failures the UI translates into user-facing messages.
var (
	ErrNotANumber    = errors.New("not a whole number")
	ErrNegativeCount = errors.New("count must not be negative")
	ErrInvertedRange = errors.New("minimum exceeds maximum")
)

// ParseCount parses a tag count typed by the user. Surrounding whitespace
// is forgiven; anything that is not a non-negative integer is not.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d: %w", n, ErrNegativeCount)
	}
	return n, nil
}

// Range is an inclusive draw-size interval.
type Range struct {
	Min int
	Max int
}

// ParseRange parses the two bounds of a random draw size. Both bounds must
// pass ParseCount, and the interval must not be inverted.
func ParseRange(minS, maxS string) (Range, error) {
	min, err := ParseCount(minS)
	if err != nil {
		return Range{}, err
	}
	max, err := ParseCount(maxS)
	if err != nil {
		return Range{}, err
	}
	return NewRange(min, max)
}

// NewRange validates an interval given directly as integers.
func NewRange(min, max int) (Range, error) {
	if min < 0 {
		return Range{}, fmt.Errorf("%d: %w", min, ErrNegativeCount)
	}
	if max < 0 {
		return Range{}, fmt.Errorf("%d: %w", max, ErrNegativeCount)
	}
	if min > max {
		return Range{}, fmt.Errorf("%d > %d: %w", min, max, ErrInvertedRange)
	}
	return Range{Min: min, Max: max}, nil
}

// Roll picks a size from the interval uniformly, bounds included. A nil rng
// falls back to the shared source.
func (r Range) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	span := r.Max - r.Min + 1
	if span <= 0 {
		// Max-Min+1 overflows int only for the full [0, MaxInt]
		// interval, where Int already is the uniform inclusive draw.
		if rng == nil {
			return rand.Int()
		}
		return rng.Int()
	}
	if rng == nil {
		return r.Min + rand.Intn(span)
	}
	return r.Min + rng.Intn(span)
}
