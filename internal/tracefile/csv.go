package tracefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/banshee-data/facefilter/internal/depth"
	"github.com/banshee-data/facefilter/internal/fsutil"
)

// maxLineBytes bounds a single row; int64 values at 640 columns need ~13KB.
const maxLineBytes = 16 << 20

// Write serialises g row by row.
func Write[T constraints.Integer](w io.Writer, g *depth.Grid[T]) error {
	if !g.Valid() {
		return fmt.Errorf("write grid: invalid grid")
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for y := 0; y < g.Height; y++ {
		row := g.Values[y*g.Width : (y+1)*g.Width]
		for x, v := range row {
			buf = appendInt(buf[:0], v)
			if x == g.Width-1 {
				buf = append(buf, '\n')
			} else {
				buf = append(buf, ',')
			}
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("write grid row %d: %w", y, err)
			}
		}
	}
	return bw.Flush()
}

// Read parses a width x height grid. Any deviation from the format is
// reported as a *FormatError.
func Read[T constraints.Integer](r io.Reader, width, height int) (*depth.Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read grid: invalid dimensions %dx%d", width, height)
	}
	g := depth.NewGrid[T](width, height)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	row := 0
	for sc.Scan() {
		if row >= height {
			return nil, &FormatError{Row: row, Column: -1, Kind: ErrRowCount,
				Detail: fmt.Sprintf("more than %d rows", height)}
		}
		line := strings.TrimSuffix(sc.Text(), "\r")
		if err := parseRow(line, row, g.Values[row*width:(row+1)*width]); err != nil {
			return nil, err
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid row %d: %w", row, err)
	}
	if row != height {
		return nil, &FormatError{Row: row, Column: -1, Kind: ErrRowCount,
			Detail: fmt.Sprintf("got %d, want %d", row, height)}
	}
	return g, nil
}

func parseRow[T constraints.Integer](line string, row int, dst []T) error {
	width := len(dst)
	pos := 0
	for col := 0; col < width; col++ {
		start := pos
		if pos < len(line) && line[pos] == '-' {
			pos++
		}
		for pos < len(line) && line[pos] >= '0' && line[pos] <= '9' {
			pos++
		}
		if pos == start {
			if pos == len(line) {
				return &FormatError{Row: row, Column: col, Kind: ErrTooFewColumns}
			}
			return &FormatError{Row: row, Column: col, Kind: ErrInvalidValue,
				Detail: fmt.Sprintf("unexpected %q", line[pos])}
		}
		v, err := parseInt[T](line[start:pos])
		if err != nil {
			return &FormatError{Row: row, Column: col, Kind: ErrInvalidValue, Detail: err.Error()}
		}
		dst[col] = v

		if col == width-1 {
			if pos != len(line) {
				return &FormatError{Row: row, Column: col, Kind: ErrTooManyColumns,
					Detail: fmt.Sprintf("trailing %q", line[pos:])}
			}
			break
		}
		if pos == len(line) {
			return &FormatError{Row: row, Column: col, Kind: ErrMissingSeparator}
		}
		if line[pos] != ',' {
			return &FormatError{Row: row, Column: col, Kind: ErrInvalidSeparator,
				Detail: fmt.Sprintf("got %q", line[pos])}
		}
		pos++
	}
	return nil
}

func signed[T constraints.Integer]() bool {
	var zero T
	return ^zero < zero
}

func bitSize[T constraints.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

func parseInt[T constraints.Integer](s string) (T, error) {
	if signed[T]() {
		v, err := strconv.ParseInt(s, 10, bitSize[T]())
		return T(v), err
	}
	v, err := strconv.ParseUint(s, 10, bitSize[T]())
	return T(v), err
}

func appendInt[T constraints.Integer](buf []byte, v T) []byte {
	if signed[T]() {
		return strconv.AppendInt(buf, int64(v), 10)
	}
	return strconv.AppendUint(buf, uint64(v), 10)
}

// Save writes g to path on fsys.
func Save[T constraints.Integer](fsys fsutil.FileSystem, path string, g *depth.Grid[T]) error {
	w, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(w, g); err != nil {
		w.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Load reads a width x height grid from path on fsys. Format errors carry
// the path.
func Load[T constraints.Integer](fsys fsutil.FileSystem, path string, width, height int) (*depth.Grid[T], error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file for reading: %w", err)
	}
	defer f.Close()

	g, err := Read[T](f, width, height)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return g, nil
}

// LoadFrame loads a depth frame.
func LoadFrame(fsys fsutil.FileSystem, path string, width, height int) (*depth.Frame, error) {
	return Load[uint16](fsys, path, width, height)
}
