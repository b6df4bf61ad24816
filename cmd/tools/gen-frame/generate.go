package main

import (
	"fmt"
	"math"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/synth"
)

func generate(kind string, width, height, face, wall int, seed int64) (*depth.Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	for _, d := range []int{face, wall} {
		if d < 0 || d > math.MaxUint16 {
			return nil, fmt.Errorf("depth %d out of range", d)
		}
	}

	r := synth.DefaultRing()
	r.Depth = uint16(face)
	switch kind {
	case "ring":
		return r.Frame(width, height), nil
	case "wall":
		r.Background = uint16(wall)
		return r.Frame(width, height), nil
	case "uniform":
		return synth.Uniform(width, height, uint16(face)), nil
	case "noise":
		return synth.Noise(width, height, 400, 4000, 0.1, seed), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
