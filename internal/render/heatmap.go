package render

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/facefilter/internal/depth"
)

// Size of PNG output.
var (
	PNGWidth  = 8 * vg.Inch
	PNGHeight = 6 * vg.Inch
)

// gridXYZ adapts a grid to plotter.GridXYZ. Image row 0 is drawn at the
// top, so rows are flipped against the plot's upward Y axis.
type gridXYZ[T constraints.Integer] struct {
	g *depth.Grid[T]
}

func (a gridXYZ[T]) Dims() (c, r int) { return a.g.Width, a.g.Height }

func (a gridXYZ[T]) Z(c, r int) float64 {
	return float64(a.g.At(c, a.g.Height-1-r))
}

func (a gridXYZ[T]) X(c int) float64 { return float64(c) }

func (a gridXYZ[T]) Y(r int) float64 { return float64(r) }

// valueRange returns the minimum and maximum of g.
func valueRange[T constraints.Integer](g *depth.Grid[T]) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values {
		f := float64(v)
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	return lo, hi
}

// WritePNG renders g as a heatmap PNG.
func WritePNG[T constraints.Integer](w io.Writer, g *depth.Grid[T], title string) error {
	if !g.Valid() || len(g.Values) == 0 {
		return fmt.Errorf("render png: empty grid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y (flipped)"

	hm := plotter.NewHeatMap(gridXYZ[T]{g: g}, palette.Heat(64, 1))
	lo, hi := valueRange(g)
	if lo == hi {
		hi = lo + 1
	}
	hm.Min, hm.Max = lo, hi
	hm.Rasterized = true
	p.Add(hm)

	wt, err := p.WriterTo(PNGWidth, PNGHeight, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}
