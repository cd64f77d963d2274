package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrNotPerfectSquare is returned when a sample count cannot form a square grid
var ErrNotPerfectSquare = errors.New("sample count must be a positive perfect square")

// intervalInset keeps samples off the lower edge of each stratum
const intervalInset = 1e-6

// Interval is a closed range [Min, Max] of a pixel extent
type Interval struct {
	Min, Max float64
}

// Random returns a uniform value in [Min, Max)
func (in Interval) Random(random *rand.Rand) float64 {
	return in.Min + (in.Max-in.Min)*random.Float64()
}

// Contains reports whether x lies within the interval
func (in Interval) Contains(x float64) bool {
	return x >= in.Min && x <= in.Max
}

// SqrtSamples returns the integer square root of n, or an error when n is
// not a positive perfect square
func SqrtSamples(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNotPerfectSquare, n)
	}
	m := int(math.Round(math.Sqrt(float64(n))))
	if m*m != n {
		return 0, fmt.Errorf("%w: got %d", ErrNotPerfectSquare, n)
	}
	return m, nil
}

// GenerateIntervals partitions [0, s] into n equal strata
func GenerateIntervals(n int, s float64) []Interval {
	intervals := make([]Interval, n)
	for i := range intervals {
		intervals[i] = Interval{
			Min: s*float64(i)/float64(n) + intervalInset,
			Max: s * float64(i+1) / float64(n),
		}
	}
	return intervals
}

// MultiJitter generates n multi-jittered sub-pixel offsets in (0, s) x (0, s).
//
// Sample i always occupies x-stratum i. Samples are grouped into sqrt(n)
// coarse blocks along x; inside a block every sample draws a y-stratum that
// no earlier sample used and whose coarse y-block is still free in this
// block. The result has one sample per fine row, one per fine column and one
// per coarse cell.
func MultiJitter(n int, s float64, random *rand.Rand) ([]Vec2, error) {
	m, err := SqrtSamples(n)
	if err != nil {
		return nil, err
	}

	intervals := GenerateIntervals(n, s)
	usedFine := make([]bool, n)
	offsets := make([]Vec2, 0, n)
	candidates := make([]int, 0, n)

	for block := 0; block < m; block++ {
		usedCoarse := make([]bool, m)
		for i := block * m; i < (block+1)*m; i++ {
			candidates = candidates[:0]
			for yi := 0; yi < n; yi++ {
				if !usedFine[yi] && !usedCoarse[yi/m] {
					candidates = append(candidates, yi)
				}
			}
			// Each coarse y-block gives up one stratum per x-block, so a
			// free block always has a free stratum left.
			yi := candidates[random.Intn(len(candidates))]
			usedFine[yi] = true
			usedCoarse[yi/m] = true

			offsets = append(offsets, NewVec2(
				intervals[i].Random(random),
				intervals[yi].Random(random),
			))
		}
	}

	return offsets, nil
}

// SamplingConfig contains the image and anti-aliasing parameters of a render
type SamplingConfig struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Rays per pixel, a perfect square
	PixelExtent     float64 // Side length of a pixel on the view plane
}

// ErrInvalidSamplingConfig is returned for non-positive image or pixel sizes
var ErrInvalidSamplingConfig = errors.New("invalid sampling config")

// Validate checks the render preconditions before any pixel is produced
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidSamplingConfig, c.Width, c.Height)
	}
	if !(c.PixelExtent > 0) {
		return fmt.Errorf("%w: pixel extent %g", ErrInvalidSamplingConfig, c.PixelExtent)
	}
	if _, err := SqrtSamples(c.SamplesPerPixel); err != nil {
		return err
	}
	return nil
}
