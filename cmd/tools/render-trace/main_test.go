package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/tracefile"
)

func TestRenderTrace(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	g, err := depth.GridFrom(3, 2, []int64{-357, 500, 0, 20000, 19996, -357})
	require.NoError(t, err)
	require.NoError(t, tracefile.Save(fsys, "/score.csv", g))

	require.NoError(t, renderTrace(fsys, "/score.csv", 3, 2, "/score.png", "/score.html", "score 11"))

	png, err := fsys.ReadFile("/score.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	html, err := fsys.ReadFile("/score.html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "score 11")
}

func TestRenderTrace_WrongSize(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	fsys.WriteFile("/mask.csv", []byte("1,2\n3,4\n"))
	err := renderTrace(fsys, "/mask.csv", 2, 3, "/m.png", "", "mask")
	assert.ErrorIs(t, err, tracefile.ErrRowCount)
}
