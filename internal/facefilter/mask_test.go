package facefilter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMask_DefaultGeometry(t *testing.T) {
	m, err := BuildMask(5, 1)
	require.NoError(t, err)

	assert.Equal(t, 7, m.Side())
	assert.Equal(t, 3, m.Center())
	assert.Equal(t, 20, m.RingCount())
	assert.Equal(t, 28, m.OutsideCount())

	assert.Equal(t, int16(0), m.At(3, 3), "centre is the unscored hole")
	assert.Equal(t, int16(500), m.At(4, 3), "distance 1 is ring")
	assert.Equal(t, int16(500), m.At(5, 4), "distance sqrt(5) is ring")
	assert.Equal(t, int16(-357), m.At(5, 5), "distance sqrt(8) is outside")
	assert.Equal(t, int16(-357), m.At(0, 0), "corner is outside")

	pos, neg := m.Balance()
	assert.Equal(t, 10000, pos)
	assert.Equal(t, 9996, neg)
}

func TestBuildMask_IsSymmetric(t *testing.T) {
	m, err := BuildMask(9, 3)
	require.NoError(t, err)
	n := m.Side() - 1
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			if m.At(x, y) != m.At(n-x, y) || m.At(x, y) != m.At(x, n-y) || m.At(x, y) != m.At(y, x) {
				t.Fatalf("mask not symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestBuildMask_BalanceProperty(t *testing.T) {
	built := 0
	for maxD := 1; maxD <= 25; maxD++ {
		for minD := 0; minD <= maxD; minD++ {
			m, err := BuildMask(maxD, minD)
			if err != nil {
				if !errors.Is(err, ErrDegenerateMask) {
					t.Fatalf("BuildMask(%d,%d) unexpected error %v", maxD, minD, err)
				}
				continue
			}
			built++
			pos, neg := m.Balance()
			// Integer division loses strictly less than one unit per cell.
			if pos > MaxScore/2 || MaxScore/2-pos >= m.RingCount() {
				t.Errorf("BuildMask(%d,%d) positive sum %d not within rounding of %d", maxD, minD, pos, MaxScore/2)
			}
			if neg > MaxScore/2 || MaxScore/2-neg >= m.OutsideCount() {
				t.Errorf("BuildMask(%d,%d) negative sum %d not within rounding of %d", maxD, minD, neg, MaxScore/2)
			}
		}
	}
	assert.Greater(t, built, 100)
}

func TestBuildMask_Degenerate(t *testing.T) {
	tests := []struct {
		name       string
		maxD, minD int
	}{
		{"zero diameter", 0, 0},
		{"negative diameter", -3, 0},
		{"hole larger than ring", 3, 5},
		{"no ring cells", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildMask(tt.maxD, tt.minD)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDegenerateMask), "got %v", err)
		})
	}
}

func TestMask_GridIsACopy(t *testing.T) {
	m, err := BuildMask(5, 1)
	require.NoError(t, err)
	g := m.Grid()
	g.Set(4, 3, 0)
	assert.Equal(t, int16(500), m.At(4, 3))
}
