package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/runstore"
	"github.com/banshee-data/facefilter/internal/synth"
	"github.com/banshee-data/facefilter/internal/tracefile"
)

func faceWithWallCSV(t *testing.T, fsys fsutil.FileSystem, path string) {
	t.Helper()
	r := synth.DefaultRing()
	r.Background = 2500
	require.NoError(t, tracefile.Save(fsys, path, r.Frame(640, 480)))
}

func TestRun_FiltersWall(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	faceWithWallCSV(t, fsys, "/in.csv")

	var out bytes.Buffer
	err := run(options{in: "/in.csv", out: "/out.csv", width: 640, height: 480, fs: fsys}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "selected=")

	filtered, err := tracefile.LoadFrame(fsys, "/out.csv", 640, 480)
	require.NoError(t, err)
	for i, v := range filtered.Values {
		require.True(t, v == 0 || v == 1500, "pixel %d kept wall depth %d", i, v)
	}
	assert.NotZero(t, filtered.CountNonZero())
}

func TestRun_TraceRenderAndRecord(t *testing.T) {
	dir := t.TempDir()
	fsys := fsutil.OSFileSystem{}
	in := filepath.Join(dir, "in.csv")
	faceWithWallCSV(t, fsys, in)

	o := options{
		in:       in,
		width:    640,
		height:   480,
		trace:    true,
		traceDir: filepath.Join(dir, "traces"),
		dbPath:   filepath.Join(dir, "runs.db"),
		png:      filepath.Join(dir, "out.png"),
		html:     filepath.Join(dir, "out.html"),
	}
	var out bytes.Buffer
	require.NoError(t, run(o, &out))
	assert.Contains(t, out.String(), "recorded run")

	traces, err := filepath.Glob(filepath.Join(dir, "traces", "*_segmentSelection.csv"))
	require.NoError(t, err)
	assert.Len(t, traces, 1)

	for _, p := range []string{o.png, o.html} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}

	store, err := runstore.Open(o.dbPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.ListRuns(t.Context())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, in, runs[0].Source)
}

func TestRun_FixedSizeSkipsMismatchedFrame(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tuning.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"expected_width": 320, "expected_height": 240}`), 0644))

	fsys := fsutil.NewMemoryFileSystem()
	faceWithWallCSV(t, fsys, "/in.csv")

	var out bytes.Buffer
	err := run(options{in: "/in.csv", out: "/out.csv", width: 640, height: 480, configPath: cfgPath, fs: fsys}, &out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "frame 640x480 skipped"))

	in, err := fsys.ReadFile("/in.csv")
	require.NoError(t, err)
	got, err := fsys.ReadFile("/out.csv")
	require.NoError(t, err)
	assert.Equal(t, in, got, "skipped frame passes through unchanged")
}

func TestRun_MalformedInput(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	fsys.WriteFile("/in.csv", []byte("1,2\n"))

	err := run(options{in: "/in.csv", width: 3, height: 1, fs: fsys}, &bytes.Buffer{})
	assert.ErrorIs(t, err, tracefile.ErrMissingSeparator)
}

func TestRun_BadConfig(t *testing.T) {
	err := run(options{in: "/in.csv", width: 3, height: 1, configPath: "tuning.yaml", fs: fsutil.NewMemoryFileSystem()}, &bytes.Buffer{})
	assert.Error(t, err)
}
