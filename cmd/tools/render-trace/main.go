// Command render-trace turns a grid dumped by the face filter (or any depth
// CSV) into PNG and/or HTML heatmaps.
package main

import (
	"flag"
	"io"
	"log"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/render"
	"github.com/banshee-data/facefilter/internal/tracefile"
)

func main() {
	in := flag.String("in", "", "trace CSV")
	width := flag.Int("width", 640, "grid width (20 for segment grids, 7 for the default mask)")
	height := flag.Int("height", 480, "grid height")
	pngPath := flag.String("png", "", "PNG output path")
	htmlPath := flag.String("html", "", "HTML output path")
	title := flag.String("title", "", "chart title (default: input path)")
	flag.Parse()

	if *in == "" || (*pngPath == "" && *htmlPath == "") {
		log.Fatalf("usage: render-trace -in trace.csv -width W -height H [-png out.png] [-html out.html]")
	}
	if *title == "" {
		*title = *in
	}
	if err := renderTrace(fsutil.OSFileSystem{}, *in, *width, *height, *pngPath, *htmlPath, *title); err != nil {
		log.Fatalf("render-trace: %v", err)
	}
}

func renderTrace(fsys fsutil.FileSystem, in string, width, height int, pngPath, htmlPath, title string) error {
	// Scores are negative, so load signed.
	g, err := tracefile.Load[int64](fsys, in, width, height)
	if err != nil {
		return err
	}
	if pngPath != "" {
		if err := create(fsys, pngPath, g, title, render.WritePNG[int64]); err != nil {
			return err
		}
		log.Printf("wrote %s", pngPath)
	}
	if htmlPath != "" {
		if err := create(fsys, htmlPath, g, title, render.WriteHTML[int64]); err != nil {
			return err
		}
		log.Printf("wrote %s", htmlPath)
	}
	return nil
}

func create(fsys fsutil.FileSystem, path string, g *depth.Grid[int64], title string,
	write func(io.Writer, *depth.Grid[int64], string) error) error {
	w, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if err := write(w, g, title); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
