package facefilter

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/facefilter/internal/depth"
)

// Tracer receives intermediate grids while a frame is processed. Tracing is
// diagnostic only: errors are logged and never affect the filter.
type Tracer interface {
	Trace(name string, index int, g *depth.Grid[int64]) error
}

// Trace point names.
const (
	TraceMask             = "mask"
	TraceLayer            = "layer"
	TraceScore            = "score"
	TraceSegmentFilter    = "segmentFilter"
	TraceSegmentSelection = "segmentSelection"
)

// Stats summarises the last processed frame.
type Stats struct {
	Frame              uint64 // 1-based count of frames processed by this instance
	Width              int
	Height             int
	InputPoints        int // non-zero samples before filtering
	RetainedPoints     int // non-zero samples after filtering
	SelectedSegments   int // segments matched directly by the mask
	PropagatedSegments int // segments selected by propagation
	DeepestLayer       int // deepest effective layer in the segment filter; 0 if none
}

// RetainedRatio returns RetainedPoints/InputPoints, or 0 for an empty frame.
func (s Stats) RetainedRatio() float64 {
	if s.InputPoints == 0 {
		return 0
	}
	return float64(s.RetainedPoints) / float64(s.InputPoints)
}

// HistogramTransform is the face filter. One instance owns its working
// buffers; concurrent frames need separate instances.
type HistogramTransform struct {
	params Params
	quant  Quantizer
	mask   *Mask
	limit  float64

	segments *LayeredSegments
	filter   *SegmentFilter
	scores   []*depth.Grid[int32] // indexed by layer; edge layers unused

	tracer Tracer
	frames uint64
	last   Stats
}

// NewHistogramTransform validates p and builds the mask. tracer may be nil.
func NewHistogramTransform(p Params, tracer Tracer) (*HistogramTransform, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	mask, err := BuildMask(p.MaskMaxDiameter, p.MaskMinDiameter)
	if err != nil {
		return nil, err
	}

	t := &HistogramTransform{
		params:   p,
		quant:    Quantizer{Layers: p.LayersCount, DepthMax: p.DepthMax},
		mask:     mask,
		limit:    scoreLimit(p.ScoreThreshold),
		segments: NewLayeredSegments(p.LayersCount, p.SegmentsCount),
		filter:   NewSegmentFilter(p.SegmentsCount, p.LayersCount),
		scores:   make([]*depth.Grid[int32], p.LayersCount),
		tracer:   tracer,
	}
	for j := 1; j < p.LayersCount-1; j++ {
		t.scores[j] = depth.NewGrid[int32](p.SegmentsCount, p.SegmentsCount)
	}
	return t, nil
}

// Params returns the configuration the instance was built with.
func (t *HistogramTransform) Params() Params { return t.params }

// Mask returns the instance's kernel.
func (t *HistogramTransform) Mask() *Mask { return t.mask }

// Quantizer returns the depth quantiser.
func (t *HistogramTransform) Quantizer() Quantizer { return t.quant }

// LastStats returns the statistics of the most recent processed frame.
func (t *HistogramTransform) LastStats() Stats { return t.last }

// Transform filters f in place. Nil or malformed frames pass through.
func (t *HistogramTransform) Transform(f *depth.Frame) {
	if !f.Valid() || f.Width == 0 || f.Height == 0 {
		diagf("skipping malformed frame")
		return
	}

	t.frames++
	traceGrid(t, TraceMask, 0, t.mask.Grid())

	t.segments.Reset()
	t.filter.Reset()

	input := t.segments.PlacePoints(f, t.quant)
	t.ApplyMask()
	retained := FilterDepthData(f, t.filter, t.quant)

	selected, propagated, deepest := t.filter.Counts()
	t.last = Stats{
		Frame:              t.frames,
		Width:              f.Width,
		Height:             f.Height,
		InputPoints:        input,
		RetainedPoints:     retained,
		SelectedSegments:   selected,
		PropagatedSegments: propagated,
		DeepestLayer:       deepest,
	}
	diagf("frame=%d input=%d retained=%d selected=%d propagated=%d deepest_layer=%d",
		t.frames, input, retained, selected, propagated, deepest)
}

// ApplyMask scores every interior layer against the mask, records candidates
// in the segment filter and then propagates the selection. The first and
// last layers carry no reliable signal and are skipped.
func (t *HistogramTransform) ApplyMask() {
	last := t.params.LayersCount - 1

	if t.params.ParallelLayers {
		var g errgroup.Group
		for j := 1; j < last; j++ {
			g.Go(func() error {
				evaluateLayerInto(t.segments.Layer(j), t.mask, t.scores[j])
				return nil
			})
		}
		_ = g.Wait()
	}

	for j := 1; j < last; j++ {
		layer := t.segments.Layer(j)
		traceGrid(t, TraceLayer, j, layer)
		if !t.params.ParallelLayers {
			evaluateLayerInto(layer, t.mask, t.scores[j])
		}
		traceGrid(t, TraceScore, j, t.scores[j])

		n := t.filter.SelectCandidates(t.scores[j], j, t.limit)
		if n > 0 {
			tracef("layer=%d candidates=%d", j, n)
		}
		traceGrid(t, TraceSegmentFilter, j, t.filter.Grid())
	}

	Propagate(t.filter, t.mask, t.params.Propagation)
	traceGrid(t, TraceSegmentSelection, 0, t.filter.Grid())
}

// traceGrid hands a copy of g to the tracer, if any.
func traceGrid[T constraints.Integer](t *HistogramTransform, name string, index int, g *depth.Grid[T]) {
	if t.tracer == nil {
		return
	}
	if err := t.tracer.Trace(name, index, depth.Widen(g)); err != nil {
		opsf("trace %s[%d] failed: %v", name, index, err)
	}
}
