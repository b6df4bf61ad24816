package facefilter

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/facefilter/internal/depth"
)

// MaxScore is the best score a segment can reach: half from occupied ring
// cells, half from empty outside cells.
const MaxScore = 20000

// ErrDegenerateMask is returned when the mask geometry leaves the ring or the
// outside with no cells, which would make the per-cell weights undefined.
var ErrDegenerateMask = errors.New("degenerate mask geometry")

// Mask is the square convolution kernel scoring "occupied ring, empty
// outside" around a segment. It is immutable once built.
type Mask struct {
	side         int
	weights      []int16
	ringCount    int
	outsideCount int
}

// BuildMask constructs a (maxDiameter+2)-sided kernel. Cells whose distance d
// from the centre satisfies minRadius <= d <= maxRadius form the ring and share
// +MaxScore/2 equally; cells with d >= maxRadius form the outside and share
// -MaxScore/2 equally; anything closer than minRadius is an unscored hole.
func BuildMask(maxDiameter, minDiameter int) (*Mask, error) {
	if maxDiameter <= 0 {
		return nil, fmt.Errorf("%w: maxDiameter must be positive, got %d", ErrDegenerateMask, maxDiameter)
	}
	if minDiameter < 0 || minDiameter > maxDiameter {
		return nil, fmt.Errorf("%w: minDiameter %d outside [0, %d]", ErrDegenerateMask, minDiameter, maxDiameter)
	}

	const (
		hole = iota
		ring
		outside
	)

	side := maxDiameter + 2
	maxRadius := float64(maxDiameter) / 2
	minRadius := float64(minDiameter) / 2
	cx := .5 + maxRadius
	cy := cx

	class := make([]int, side*side)
	ringCount, outsideCount := 0, 0
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := math.Sqrt(dx*dx + dy*dy)
			switch {
			case d >= minRadius && d <= maxRadius:
				class[y*side+x] = ring
				ringCount++
			case d >= maxRadius:
				class[y*side+x] = outside
				outsideCount++
			}
		}
	}

	if ringCount == 0 || outsideCount == 0 {
		return nil, fmt.Errorf("%w: ring=%d outside=%d cells", ErrDegenerateMask, ringCount, outsideCount)
	}
	ringScore := MaxScore / 2 / ringCount
	outsideScore := MaxScore / 2 / outsideCount
	if ringScore == 0 || outsideScore == 0 {
		return nil, fmt.Errorf("%w: per-cell score rounds to zero (ring=%d outside=%d cells)", ErrDegenerateMask, ringCount, outsideCount)
	}

	weights := make([]int16, side*side)
	for i, c := range class {
		switch c {
		case ring:
			weights[i] = int16(ringScore)
		case outside:
			weights[i] = -int16(outsideScore)
		}
	}

	return &Mask{
		side:         side,
		weights:      weights,
		ringCount:    ringCount,
		outsideCount: outsideCount,
	}, nil
}

// Side returns the kernel side length.
func (m *Mask) Side() int { return m.side }

// Center returns the offset aligning the kernel centre with a segment.
func (m *Mask) Center() int { return m.side / 2 }

// At returns the weight at kernel cell (mx, my).
func (m *Mask) At(mx, my int) int16 { return m.weights[my*m.side+mx] }

// RingCount returns the number of positively weighted cells.
func (m *Mask) RingCount() int { return m.ringCount }

// OutsideCount returns the number of negatively weighted cells.
func (m *Mask) OutsideCount() int { return m.outsideCount }

// Balance returns the sum of positive weights and the sum of the magnitudes
// of negative weights. Both are MaxScore/2 up to integer rounding.
func (m *Mask) Balance() (positive, negative int) {
	for _, w := range m.weights {
		if w > 0 {
			positive += int(w)
		} else {
			negative -= int(w)
		}
	}
	return positive, negative
}

// Grid returns a copy of the weights.
func (m *Mask) Grid() *depth.Grid[int16] {
	g := depth.NewGrid[int16](m.side, m.side)
	copy(g.Values, m.weights)
	return g
}
