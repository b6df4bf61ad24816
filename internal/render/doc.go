// Package render draws integer grids (depth frames, layer histograms, scores,
// segment filters) as heatmaps: PNG through gonum/plot for reports, and a
// self-contained HTML page through go-echarts for interactive inspection.
package render
