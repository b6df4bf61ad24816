package main

import (
	"context"
	"fmt"
	"io"

	"github.com/banshee-data/facefilter/internal/config"
	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/facefilter"
	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/render"
	"github.com/banshee-data/facefilter/internal/runstore"
	"github.com/banshee-data/facefilter/internal/tracefile"
)

type options struct {
	in, out       string
	width, height int
	configPath    string
	trace         bool
	traceDir      string
	dbPath        string
	png, html     string

	fs fsutil.FileSystem
}

func run(o options, stdout io.Writer) error {
	fsys := o.fs
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}

	cfg := config.EmptyTuningConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadTuningConfig(o.configPath); err != nil {
			return err
		}
	}
	params := facefilter.ParamsFromTuning(cfg)

	var tracer facefilter.Tracer
	if o.trace || cfg.GetTraceEnabled() {
		dir := cfg.GetTraceDir()
		if o.traceDir != "" {
			dir = o.traceDir
		}
		ft := tracefile.NewFileTracer(fsys, dir, cfg.GetTracePrefix())
		fmt.Fprintf(stdout, "tracing to %s_*.csv\n", ft.Base)
		tracer = ft
	}

	ht, err := facefilter.NewHistogramTransform(params, tracer)
	if err != nil {
		return err
	}
	pipeline := buildPipeline(cfg, ht)

	frame, err := tracefile.LoadFrame(fsys, o.in, o.width, o.height)
	if err != nil {
		return err
	}
	pipeline.Transform(frame)

	st := ht.LastStats()
	if st.Frame == 0 {
		fmt.Fprintf(stdout, "frame %dx%d skipped (expected %dx%d)\n",
			frame.Width, frame.Height, cfg.GetExpectedWidth(), cfg.GetExpectedHeight())
	} else {
		fmt.Fprintf(stdout, "input=%d retained=%d (%.1f%%) selected=%d propagated=%d deepest_layer=%d\n",
			st.InputPoints, st.RetainedPoints, 100*st.RetainedRatio(),
			st.SelectedSegments, st.PropagatedSegments, st.DeepestLayer)
	}

	if o.out != "" {
		if err := tracefile.Save(fsys, o.out, frame); err != nil {
			return err
		}
	}
	if err := writeRenders(fsys, o, frame); err != nil {
		return err
	}
	if o.dbPath != "" && st.Frame > 0 {
		if err := recordRun(o.dbPath, o.in, params, st, stdout); err != nil {
			return err
		}
	}
	return nil
}

// buildPipeline clips, then filters; when the config fixes a frame size the
// whole chain only runs on frames of that size.
func buildPipeline(cfg *config.TuningConfig, ht *facefilter.HistogramTransform) depth.Transform {
	var stages depth.Pipeline
	if cfg.GetClipNear() > 0 || cfg.GetClipFar() > 0 {
		stages = append(stages, depth.ClipTransform{
			Near: uint16(cfg.GetClipNear()),
			Far:  uint16(cfg.GetClipFar()),
		})
	}
	stages = append(stages, ht)

	w, h := cfg.GetExpectedWidth(), cfg.GetExpectedHeight()
	if w > 0 && h > 0 {
		return depth.NewFixedSizeTransform(w, h, stages)
	}
	return stages
}

func writeRenders(fsys fsutil.FileSystem, o options, frame *depth.Frame) error {
	if o.png != "" {
		if err := writeTo(fsys, o.png, func(w io.Writer) error {
			return render.WritePNG(w, frame, "filtered "+o.in)
		}); err != nil {
			return err
		}
	}
	if o.html != "" {
		if err := writeTo(fsys, o.html, func(w io.Writer) error {
			return render.WriteHTML(w, frame, "filtered "+o.in)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeTo(fsys fsutil.FileSystem, path string, fn func(io.Writer) error) error {
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func recordRun(dbPath, source string, p facefilter.Params, st facefilter.Stats, stdout io.Writer) error {
	store, err := runstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	r, err := store.CreateRun(ctx, source, p)
	if err != nil {
		return err
	}
	if err := store.RecordFrame(ctx, r.ID, st); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "recorded run %s\n", r.ID)
	return nil
}
