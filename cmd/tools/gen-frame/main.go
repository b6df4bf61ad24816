// Command gen-frame writes synthetic depth frames as CSV for exercising the
// face filter without a sensor.
package main

import (
	"flag"
	"log"

	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/tracefile"
)

func main() {
	kind := flag.String("kind", "ring", "frame kind: ring, wall, uniform or noise")
	width := flag.Int("width", 640, "frame width")
	height := flag.Int("height", 480, "frame height")
	depthMM := flag.Int("depth", 1500, "face (or uniform) depth")
	wallMM := flag.Int("wall", 2500, "background depth for -kind wall")
	seed := flag.Int64("seed", 1, "random seed for -kind noise")
	out := flag.String("out", "", "output CSV path (default: generated temp path)")
	flag.Parse()

	frame, err := generate(*kind, *width, *height, *depthMM, *wallMM, *seed)
	if err != nil {
		log.Fatalf("gen-frame: %v", err)
	}

	fsys := fsutil.OSFileSystem{}
	path := *out
	if path == "" {
		path, err = tracefile.SaveTemp(fsys, tracefile.NewPathGenerator("", ""), frame)
	} else {
		err = tracefile.Save(fsys, path, frame)
	}
	if err != nil {
		log.Fatalf("gen-frame: %v", err)
	}
	log.Printf("wrote %s frame %dx%d to %s", *kind, *width, *height, path)
}
