// Package synth generates synthetic depth frames for tests and tooling.
package synth

import (
	"math"
	"math/rand"

	"github.com/banshee-data/facefilter/internal/depth"
)

// Ring describes a face silhouette: a band of samples at Depth around the
// centre of the central segment, with radii measured in segments so the same
// description scales with any frame size.
type Ring struct {
	Segments    int     // segment grid the radii refer to
	InnerRadius float64 // hole radius, segments
	OuterRadius float64 // band outer radius, segments
	Depth       uint16  // band depth
	Background  uint16  // depth everywhere else; 0 for no return
}

// DefaultRing is a face that fills exactly the ring of the default 5/1 mask on
// a 20×20 segment grid at depth 1500, with no background.
func DefaultRing() Ring {
	return Ring{Segments: 20, InnerRadius: 0.9, OuterRadius: 2.0, Depth: 1500}
}

// Center returns the pixel coordinates of the ring centre.
func (r Ring) Center(width, height int) (cx, cy float64) {
	mid := float64(r.Segments/2) + 0.5
	return mid * float64(width) / float64(r.Segments), mid * float64(height) / float64(r.Segments)
}

// Contains reports whether pixel (x, y) lies in the band.
func (r Ring) Contains(x, y, width, height int) bool {
	cx, cy := r.Center(width, height)
	u := (float64(x) - cx) / (float64(width) / float64(r.Segments))
	v := (float64(y) - cy) / (float64(height) / float64(r.Segments))
	d := math.Sqrt(u*u + v*v)
	return d >= r.InnerRadius && d <= r.OuterRadius
}

// Frame renders the ring into a new width×height frame.
func (r Ring) Frame(width, height int) *depth.Frame {
	f := depth.NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r.Contains(x, y, width, height) {
				f.Set(x, y, r.Depth)
			} else {
				f.Set(x, y, r.Background)
			}
		}
	}
	return f
}

// Uniform returns a frame where every sample is d.
func Uniform(width, height int, d uint16) *depth.Frame {
	f := depth.NewFrame(width, height)
	f.Fill(d)
	return f
}

// Noise returns a frame of uniformly distributed samples in [lo, hi], with
// roughly dropout of them set to 0. The same seed yields the same frame.
func Noise(width, height int, lo, hi uint16, dropout float64, seed int64) *depth.Frame {
	rng := rand.New(rand.NewSource(seed))
	f := depth.NewFrame(width, height)
	span := int(hi) - int(lo) + 1
	for i := range f.Values {
		if rng.Float64() < dropout {
			continue
		}
		f.Values[i] = lo + uint16(rng.Intn(span))
	}
	return f
}
