package depth

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Grid is a row-major width×height grid that always carries its own bounds.
type Grid[T constraints.Integer] struct {
	Width  int
	Height int
	Values []T
}

// NewGrid allocates a zeroed grid.
func NewGrid[T constraints.Integer](width, height int) *Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("depth: negative grid dimensions %dx%d", width, height))
	}
	return &Grid[T]{Width: width, Height: height, Values: make([]T, width*height)}
}

// GridFrom wraps values without copying. The slice length must equal width*height.
func GridFrom[T constraints.Integer](width, height int, values []T) (*Grid[T], error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("negative grid dimensions %dx%d", width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("grid %dx%d needs %d values, got %d", width, height, width*height, len(values))
	}
	return &Grid[T]{Width: width, Height: height, Values: values}, nil
}

// Valid reports whether the grid is non-nil and its slice matches its bounds.
func (g *Grid[T]) Valid() bool {
	return g != nil && g.Width >= 0 && g.Height >= 0 && len(g.Values) == g.Width*g.Height
}

// Idx returns the row-major index of (x, y).
func (g *Grid[T]) Idx(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the value at (x, y).
func (g *Grid[T]) At(x, y int) T {
	return g.Values[g.Idx(x, y)]
}

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) {
	g.Values[g.Idx(x, y)] = v
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.Values {
		g.Values[i] = v
	}
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{Width: g.Width, Height: g.Height, Values: make([]T, len(g.Values))}
	copy(out.Values, g.Values)
	return out
}

// CountNonZero returns the number of cells holding a non-zero value.
func (g *Grid[T]) CountNonZero() int {
	n := 0
	for _, v := range g.Values {
		if v != 0 {
			n++
		}
	}
	return n
}

// Widen copies any integer grid into an int64 grid, the common currency of
// trace sinks and renderers.
func Widen[T constraints.Integer](g *Grid[T]) *Grid[int64] {
	out := &Grid[int64]{Width: g.Width, Height: g.Height, Values: make([]int64, len(g.Values))}
	for i, v := range g.Values {
		out.Values[i] = int64(v)
	}
	return out
}
