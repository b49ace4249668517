package ingest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
		err   error
	}{
		{name: "plain", input: "15", want: 15},
		{name: "zero", input: "0", want: 0},
		{name: "padded", input: "  42  ", want: 42},
		{name: "negative", input: "-1", err: ErrNegativeCount},
		{name: "letters", input: "ten", err: ErrNotANumber},
		{name: "float", input: "3.5", err: ErrNotANumber},
		{name: "empty", input: "", err: ErrNotANumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCount(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("5", "10")
	require.NoError(t, err)
	require.Equal(t, Range{Min: 5, Max: 10}, r)

	_, err = ParseRange("10", "5")
	require.ErrorIs(t, err, ErrInvertedRange)

	_, err = ParseRange("x", "5")
	require.ErrorIs(t, err, ErrNotANumber)

	_, err = ParseRange("5", "-2")
	require.ErrorIs(t, err, ErrNegativeCount)
}

func TestNewRange(t *testing.T) {
	r, err := NewRange(3, 3)
	require.NoError(t, err)
	require.Equal(t, Range{Min: 3, Max: 3}, r)

	_, err = NewRange(-1, 5)
	require.ErrorIs(t, err, ErrNegativeCount)

	_, err = NewRange(6, 5)
	require.ErrorIs(t, err, ErrInvertedRange)
}

func TestRollStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	r := Range{Min: 5, Max: 10}

	hit := make(map[int]bool)
	for i := 0; i < 200; i++ {
		n := r.Roll(rng)
		require.GreaterOrEqual(t, n, 5)
		require.LessOrEqual(t, n, 10)
		hit[n] = true
	}
	// 200 rolls over 6 values: every value should appear.
	require.Len(t, hit, 6)
}

func TestRollDegenerateInterval(t *testing.T) {
	require.Equal(t, 7, Range{Min: 7, Max: 7}.Roll(nil))
}

func TestRollFullIntInterval(t *testing.T) {
	r, err := NewRange(0, math.MaxInt)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	var positive bool
	for i := 0; i < 5; i++ {
		n := r.Roll(rng)
		require.GreaterOrEqual(t, n, 0)
		if n > 0 {
			positive = true
		}
	}
	require.True(t, positive, "the widest interval must not collapse to its minimum")
}
