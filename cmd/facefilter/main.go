// Command facefilter removes background from a depth frame stored as CSV,
// keeping only samples at or in front of the detected face.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/facefilter/internal/facefilter"
	"github.com/banshee-data/facefilter/internal/runstore"
	"github.com/banshee-data/facefilter/internal/version"
)

func main() {
	var o options
	flag.StringVar(&o.in, "in", "", "input depth frame (CSV)")
	flag.IntVar(&o.width, "width", 640, "frame width")
	flag.IntVar(&o.height, "height", 480, "frame height")
	flag.StringVar(&o.configPath, "config", "", "tuning config (JSON); defaults apply when empty")
	flag.StringVar(&o.out, "out", "", "write the filtered frame to this CSV path")
	flag.BoolVar(&o.trace, "trace", false, "dump intermediate grids")
	flag.StringVar(&o.traceDir, "trace-dir", "", "directory for trace dumps (overrides config)")
	flag.StringVar(&o.dbPath, "db", "", "record run statistics in this sqlite DB")
	flag.StringVar(&o.png, "png", "", "render the filtered frame as a PNG heatmap")
	flag.StringVar(&o.html, "html", "", "render the filtered frame as an HTML heatmap")
	verbose := flag.Bool("verbose", false, "log filter diagnostics to stderr")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("facefilter"))
		return
	}

	if o.in == "" {
		log.Fatalf("-in is required")
	}
	if *verbose {
		facefilter.SetLogWriters(os.Stderr, os.Stderr, nil)
		runstore.SetLogWriters(os.Stderr, os.Stderr)
	} else {
		facefilter.SetLogWriters(os.Stderr, nil, nil)
		runstore.SetLogWriters(os.Stderr, nil)
	}

	if err := run(o, os.Stdout); err != nil {
		log.Fatalf("facefilter: %v", err)
	}
}
