package facefilter

import (
	"github.com/banshee-data/facefilter/internal/depth"
)

// LayeredSegments is the per-frame occupancy histogram: for each depth layer,
// a segments×segments grid counting the samples that fell into each segment.
type LayeredSegments struct {
	segments int
	layers   []*depth.Grid[uint32]
}

// NewLayeredSegments allocates an empty histogram.
func NewLayeredSegments(layers, segments int) *LayeredSegments {
	ls := &LayeredSegments{segments: segments, layers: make([]*depth.Grid[uint32], layers)}
	for i := range ls.layers {
		ls.layers[i] = depth.NewGrid[uint32](segments, segments)
	}
	return ls
}

// Layers returns the number of depth layers.
func (ls *LayeredSegments) Layers() int { return len(ls.layers) }

// Segments returns the number of segments per side.
func (ls *LayeredSegments) Segments() int { return ls.segments }

// Layer returns the live counter grid of layer j.
func (ls *LayeredSegments) Layer(j int) *depth.Grid[uint32] { return ls.layers[j] }

// Reset zeroes every counter.
func (ls *LayeredSegments) Reset() {
	for _, g := range ls.layers {
		g.Fill(0)
	}
}

// PlacePoints bins every non-zero sample of f and returns how many were placed.
// Counters accumulate; call Reset first for a fresh frame.
func (ls *LayeredSegments) PlacePoints(f *depth.Frame, q Quantizer) int {
	columns := segmentColumns(f.Width, ls.segments)
	placed := 0
	i := 0
	for y := 0; y < f.Height; y++ {
		rowBase := (y * ls.segments / f.Height) * ls.segments
		for x := 0; x < f.Width; x++ {
			v := f.Values[i]
			i++
			if v == 0 {
				continue
			}
			ls.layers[q.DepthToLayer(int(v))].Values[rowBase+columns[x]]++
			placed++
		}
	}
	return placed
}

// SegmentOf returns the segment coordinates covering pixel (x, y).
func SegmentOf(x, y, width, height, segments int) (sx, sy int) {
	return x * segments / width, y * segments / height
}

// segmentColumns precomputes the segment column of every pixel column.
func segmentColumns(width, segments int) []int {
	cols := make([]int, width)
	for x := range cols {
		cols[x] = x * segments / width
	}
	return cols
}
