package facefilter

import (
	"fmt"
	"math"

	"github.com/banshee-data/facefilter/internal/config"
)

// PropagationMode selects how selections spread to neighbouring segments.
type PropagationMode string

const (
	// PropagateRowMajor is the legacy single forward sweep: the first seed in
	// row-major order claims an unselected neighbour.
	PropagateRowMajor PropagationMode = config.PropagationRowMajor
	// PropagateDeepest gives an unselected neighbour the deepest layer among
	// all seeds whose footprint covers it, independent of scan order.
	PropagateDeepest PropagationMode = config.PropagationDeepest
)

// Params holds the fixed configuration of one HistogramTransform.
type Params struct {
	LayersCount     int             // depth quantisation bins (default: 30)
	SegmentsCount   int             // segments per image side (default: 20)
	DepthMax        int             // depth mapped to the last layer (default: 4000)
	MaskMaxDiameter int             // outer ring diameter in segments (default: 5)
	MaskMinDiameter int             // inner hole diameter in segments (default: 1)
	ScoreThreshold  float64         // fraction of MaxScore a segment must exceed (default: 0.78)
	Propagation     PropagationMode // default: row_major
	ParallelLayers  bool            // score layers concurrently (default: false)
}

// DefaultParams returns the built-in defaults.
func DefaultParams() Params {
	return ParamsFromTuning(config.EmptyTuningConfig())
}

// ParamsFromTuning builds Params from a loaded TuningConfig.
func ParamsFromTuning(cfg *config.TuningConfig) Params {
	return Params{
		LayersCount:     cfg.GetLayersCount(),
		SegmentsCount:   cfg.GetSegmentsCount(),
		DepthMax:        cfg.GetDepthMax(),
		MaskMaxDiameter: cfg.GetMaskMaxDiameter(),
		MaskMinDiameter: cfg.GetMaskMinDiameter(),
		ScoreThreshold:  cfg.GetScoreThreshold(),
		Propagation:     PropagationMode(cfg.GetPropagation()),
		ParallelLayers:  cfg.GetParallelLayers(),
	}
}

// Validate checks every parameter. Mask geometry beyond simple ranges is
// checked by BuildMask.
func (p Params) Validate() error {
	if p.LayersCount < 3 {
		return fmt.Errorf("LayersCount must be at least 3, got %d", p.LayersCount)
	}
	// Propagated entries are stored as layer+LayersCount in one byte.
	if 2*p.LayersCount-1 > math.MaxUint8 {
		return fmt.Errorf("LayersCount must be at most %d, got %d", (math.MaxUint8+1)/2, p.LayersCount)
	}
	if p.SegmentsCount < 1 {
		return fmt.Errorf("SegmentsCount must be positive, got %d", p.SegmentsCount)
	}
	if p.DepthMax < p.LayersCount || p.DepthMax > math.MaxUint16 {
		return fmt.Errorf("DepthMax must be in [LayersCount, %d], got %d", math.MaxUint16, p.DepthMax)
	}
	if p.MaskMaxDiameter < 1 {
		return fmt.Errorf("MaskMaxDiameter must be positive, got %d", p.MaskMaxDiameter)
	}
	if p.MaskMinDiameter < 0 || p.MaskMinDiameter > p.MaskMaxDiameter {
		return fmt.Errorf("MaskMinDiameter must be in [0, MaskMaxDiameter], got %d", p.MaskMinDiameter)
	}
	if p.ScoreThreshold <= 0 || p.ScoreThreshold >= 1 {
		return fmt.Errorf("ScoreThreshold must be in (0, 1), got %f", p.ScoreThreshold)
	}
	switch p.Propagation {
	case PropagateRowMajor, PropagateDeepest:
	default:
		return fmt.Errorf("unknown Propagation %q", p.Propagation)
	}
	return nil
}

// WithLayersCount sets the number of depth layers.
func (p Params) WithLayersCount(n int) Params {
	p.LayersCount = n
	return p
}

// WithSegmentsCount sets the number of segments per image side.
func (p Params) WithSegmentsCount(n int) Params {
	p.SegmentsCount = n
	return p
}

// WithDepthMax sets the depth mapped to the last layer.
func (p Params) WithDepthMax(d int) Params {
	p.DepthMax = d
	return p
}

// WithMask sets the ring diameters in segments.
func (p Params) WithMask(maxDiameter, minDiameter int) Params {
	p.MaskMaxDiameter = maxDiameter
	p.MaskMinDiameter = minDiameter
	return p
}

// WithScoreThreshold sets the selection threshold as a fraction of MaxScore.
func (p Params) WithScoreThreshold(f float64) Params {
	p.ScoreThreshold = f
	return p
}

// WithPropagation sets the propagation mode.
func (p Params) WithPropagation(m PropagationMode) Params {
	p.Propagation = m
	return p
}

// WithParallelLayers enables or disables concurrent layer scoring.
func (p Params) WithParallelLayers(enabled bool) Params {
	p.ParallelLayers = enabled
	return p
}
