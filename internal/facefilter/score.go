package facefilter

import (
	"github.com/banshee-data/facefilter/internal/depth"
)

// EvaluateLayer convolves mask over one layer's occupancy grid and returns a
// score per segment.
func EvaluateLayer(layer *depth.Grid[uint32], mask *Mask) *depth.Grid[int32] {
	scores := depth.NewGrid[int32](layer.Width, layer.Height)
	evaluateLayerInto(layer, mask, scores)
	return scores
}

// evaluateLayerInto scores every segment. A positive weight counts when the
// neighbour is occupied, a negative weight counts (as its magnitude) when the
// neighbour is empty. Neighbours outside the grid are absent and count for
// nothing either way.
func evaluateLayerInto(layer *depth.Grid[uint32], mask *Mask, scores *depth.Grid[int32]) {
	side := mask.Side()
	c := mask.Center()
	for y := 0; y < layer.Height; y++ {
		for x := 0; x < layer.Width; x++ {
			var score int32
			for my := 0; my < side; my++ {
				ty := y + my - c
				if ty < 0 || ty >= layer.Height {
					continue
				}
				row := ty * layer.Width
				for mx := 0; mx < side; mx++ {
					tx := x + mx - c
					if tx < 0 || tx >= layer.Width {
						continue
					}
					w := mask.At(mx, my)
					occupied := layer.Values[row+tx] != 0
					switch {
					case w > 0 && occupied:
						score += int32(w)
					case w < 0 && !occupied:
						score -= int32(w)
					}
				}
			}
			scores.Values[y*layer.Width+x] = score
		}
	}
}

// scoreLimit is the score a segment must exceed to become a candidate.
func scoreLimit(threshold float64) float64 {
	return MaxScore * threshold
}

// SegmentFilter is the per-segment decision grid. 0 means unselected; a value
// in [1, layers) is the deepest layer detected at that segment; a value above
// layers marks a selection propagated from a neighbour (stored as
// layer+layers).
type SegmentFilter struct {
	layers int
	grid   *depth.Grid[uint8]
}

// NewSegmentFilter allocates an all-unselected filter.
func NewSegmentFilter(segments, layers int) *SegmentFilter {
	return &SegmentFilter{layers: layers, grid: depth.NewGrid[uint8](segments, segments)}
}

// Reset unselects every segment.
func (sf *SegmentFilter) Reset() { sf.grid.Fill(0) }

// Grid returns the live encoded grid.
func (sf *SegmentFilter) Grid() *depth.Grid[uint8] { return sf.grid }

// Layer returns the effective layer of segment i with the propagation flag
// stripped; 0 means unselected.
func (sf *SegmentFilter) Layer(i int) int {
	v := int(sf.grid.Values[i])
	if v > sf.layers {
		return v - sf.layers
	}
	return v
}

// Propagated reports whether segment i was selected by propagation.
func (sf *SegmentFilter) Propagated(i int) bool {
	return int(sf.grid.Values[i]) > sf.layers
}

// isSeed reports whether an encoded value is a direct detection.
func (sf *SegmentFilter) isSeed(v uint8) bool {
	return v > 0 && int(v) < sf.layers
}

// SelectCandidates records layer j on every segment scoring above limit,
// keeping the deeper layer when a segment already matched. It returns the
// number of candidate segments in this layer.
func (sf *SegmentFilter) SelectCandidates(scores *depth.Grid[int32], j int, limit float64) int {
	n := 0
	layer := uint8(j)
	for i, s := range scores.Values {
		if float64(s) > limit {
			n++
			if layer > sf.grid.Values[i] {
				sf.grid.Values[i] = layer
			}
		}
	}
	return n
}

// Counts returns the number of directly selected and propagated segments
// and the deepest effective layer.
func (sf *SegmentFilter) Counts() (selected, propagated, deepest int) {
	for i, v := range sf.grid.Values {
		if v == 0 {
			continue
		}
		if sf.Propagated(i) {
			propagated++
		} else {
			selected++
		}
		if l := sf.Layer(i); l > deepest {
			deepest = l
		}
	}
	return selected, propagated, deepest
}
