package tracefile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/timeutil"
)

func TestPathGenerator_Format(t *testing.T) {
	gen := NewPathGenerator("", "")
	gen.Clock = timeutil.NewMockClock(time.Date(2015, 9, 2, 21, 32, 1, 0, time.Local))

	assert.Equal(t, "/tmp/kinect-2015-09-02--21-32-01--00000.csv", gen.Next())
	assert.Equal(t, "/tmp/kinect-2015-09-02--21-32-01--00001.csv", gen.Next())
}

func TestPathGenerator_UniqueWithinSecond(t *testing.T) {
	gen := NewPathGenerator("/data", "run")
	gen.Clock = timeutil.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		p := gen.Next()
		require.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
}

func TestPathGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewPathGenerator("/tmp", "kinect")
	gen.Clock = timeutil.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))

	const workers, per = 8, 50
	out := make(chan string, workers*per)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < per; i++ {
				out <- gen.Next()
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(out)

	seen := make(map[string]bool)
	for p := range out {
		require.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
	assert.Len(t, seen, workers*per)
}

func TestSaveTemp(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	gen := NewPathGenerator("/tmp/dumps", "kinect")
	gen.Clock = timeutil.NewMockClock(time.Date(2015, 9, 2, 21, 32, 1, 0, time.Local))

	g, err := depth.FrameFrom(2, 1, []uint16{1500, 0})
	require.NoError(t, err)

	path, err := SaveTemp(fsys, gen, g)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dumps/kinect-2015-09-02--21-32-01--00000.csv", path)
	assert.True(t, fsys.Exists("/tmp/dumps"))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1500,0\n", string(data))
}
