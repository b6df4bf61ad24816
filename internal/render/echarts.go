package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"golang.org/x/exp/constraints"

	"github.com/banshee-data/facefilter/internal/depth"
)

// MaxHTMLCells bounds the number of heatmap cells per axis in HTML output;
// larger grids are reduced by taking the maximum of each block.
const MaxHTMLCells = 160

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Downsample reduces g so neither side exceeds limit, keeping the maximum
// of each stride x stride block. It returns g itself when no reduction is
// needed, along with the stride used.
func Downsample[T constraints.Integer](g *depth.Grid[T], limit int) (*depth.Grid[T], int) {
	stride := 1
	for (g.Width+stride-1)/stride > limit || (g.Height+stride-1)/stride > limit {
		stride++
	}
	if stride == 1 {
		return g, 1
	}

	out := depth.NewGrid[T]((g.Width+stride-1)/stride, (g.Height+stride-1)/stride)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			ox, oy := x/stride, y/stride
			v := g.At(x, y)
			first := x%stride == 0 && y%stride == 0
			if first || v > out.At(ox, oy) {
				out.Set(ox, oy, v)
			}
		}
	}
	return out, stride
}

// WriteHTML renders g as an interactive go-echarts heatmap page.
func WriteHTML[T constraints.Integer](w io.Writer, g *depth.Grid[T], title string) error {
	if !g.Valid() || len(g.Values) == 0 {
		return fmt.Errorf("render html: empty grid")
	}
	small, stride := Downsample(g, MaxHTMLCells)

	xs := make([]int, small.Width)
	for i := range xs {
		xs[i] = i * stride
	}
	// Category axes grow upward; image row 0 goes on the top category.
	ys := make([]int, small.Height)
	for i := range ys {
		ys[i] = (small.Height - 1 - i) * stride
	}

	data := make([]opts.HeatMapData, 0, len(small.Values))
	for y := 0; y < small.Height; y++ {
		for x := 0; x < small.Width; x++ {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, small.Height - 1 - y, small.At(x, y)}})
		}
	}

	lo, hi := valueRange(g)
	if lo == hi {
		hi = lo + 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "720px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%dx%d stride=%d", g.Width, g.Height, stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xs, Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys, Name: "y"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	hm.SetXAxis(xs).AddSeries(title, data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
