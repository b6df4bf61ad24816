package facefilter

import (
	"github.com/banshee-data/facefilter/internal/depth"
)

// FilterDepthData zeroes every sample deeper than its segment allows and
// returns the number of non-zero samples left. A segment at effective layer l
// admits depths up to LayerToDepth(l+1); an unselected segment admits nothing.
func FilterDepthData(f *depth.Frame, sf *SegmentFilter, q Quantizer) int {
	segments := sf.grid.Width
	allowed := make([]int, len(sf.grid.Values))
	for i := range allowed {
		if l := sf.Layer(i); l != 0 {
			allowed[i] = q.LayerToDepth(l + 1)
		}
	}

	columns := segmentColumns(f.Width, segments)
	retained := 0
	i := 0
	for y := 0; y < f.Height; y++ {
		rowBase := (y * segments / f.Height) * segments
		for x := 0; x < f.Width; x++ {
			if int(f.Values[i]) > allowed[rowBase+columns[x]] {
				f.Values[i] = 0
			} else if f.Values[i] != 0 {
				retained++
			}
			i++
		}
	}
	return retained
}
