package tracefile

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/fsutil"
)

// FileTracer writes each trace point to <Base>_<index>_<name>.csv. Later
// frames overwrite the files of earlier ones.
type FileTracer struct {
	FS   fsutil.FileSystem
	Base string

	mu      sync.Mutex
	written map[string]struct{}
	dirMade bool
}

// NewFileTracer returns a tracer writing under dir with a base name of
// prefix plus a short random run tag, so concurrent processes sharing dir
// do not clobber each other.
func NewFileTracer(fsys fsutil.FileSystem, dir, prefix string) *FileTracer {
	if dir == "" {
		dir = DefaultDir
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	tag := uuid.NewString()[:8]
	return &FileTracer{FS: fsys, Base: filepath.Join(dir, prefix+"-"+tag)}
}

// Path returns the file a trace point is written to.
func (t *FileTracer) Path(name string, index int) string {
	return fmt.Sprintf("%s_%02d_%s.csv", t.Base, index, name)
}

// Trace saves g.
func (t *FileTracer) Trace(name string, index int, g *depth.Grid[int64]) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.dirMade {
		if err := t.FS.MkdirAll(filepath.Dir(t.Base), 0755); err != nil {
			return fmt.Errorf("trace %s: %w", name, err)
		}
		t.dirMade = true
	}
	path := t.Path(name, index)
	if err := Save(t.FS, path, g); err != nil {
		return fmt.Errorf("trace %s: %w", name, err)
	}
	if t.written == nil {
		t.written = make(map[string]struct{})
	}
	t.written[path] = struct{}{}
	return nil
}

// Written returns the distinct paths written so far, sorted.
func (t *FileTracer) Written() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	paths := make([]string, 0, len(t.written))
	for p := range t.written {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
