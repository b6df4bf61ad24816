package tracefile

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/fsutil"
	"github.com/banshee-data/facefilter/internal/timeutil"
)

// Default location and prefix for generated dump paths.
const (
	DefaultDir    = "/tmp"
	DefaultPrefix = "kinect"
)

// PathGenerator produces unique dump paths of the form
// <dir>/<prefix>-YYYY-MM-DD--HH-MM-SS--NNNNN.csv. The counter is per
// generator and strictly increasing, so two paths from one generator never
// collide even within the same second. Safe for concurrent use.
type PathGenerator struct {
	Dir    string
	Prefix string
	Clock  timeutil.Clock

	counter atomic.Uint64
}

// NewPathGenerator returns a generator using the local wall clock. Empty
// dir or prefix select the defaults.
func NewPathGenerator(dir, prefix string) *PathGenerator {
	if dir == "" {
		dir = DefaultDir
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &PathGenerator{Dir: dir, Prefix: prefix, Clock: timeutil.RealClock{}}
}

// Next returns the next path.
func (p *PathGenerator) Next() string {
	n := p.counter.Add(1) - 1
	now := p.Clock.Now()
	name := fmt.Sprintf("%s-%s--%05d.csv", p.Prefix, now.Format("2006-01-02--15-04-05"), n)
	return filepath.Join(p.Dir, name)
}

// SaveTemp writes g to the next generated path and returns that path.
func SaveTemp[T constraints.Integer](fsys fsutil.FileSystem, gen *PathGenerator, g *depth.Grid[T]) (string, error) {
	path := gen.Next()
	if err := fsys.MkdirAll(gen.Dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", gen.Dir, err)
	}
	if err := Save(fsys, path, g); err != nil {
		return "", err
	}
	return path, nil
}
