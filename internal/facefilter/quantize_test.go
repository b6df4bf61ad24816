package facefilter

import (
	"fmt"
	"testing"
)

func TestQuantizer_RoundTrip(t *testing.T) {
	cases := []Quantizer{
		{Layers: 30, DepthMax: 4000},
		{Layers: 7, DepthMax: 100},
		{Layers: 3, DepthMax: 3},
		{Layers: 64, DepthMax: 65535},
		{Layers: 128, DepthMax: 1000},
	}
	for _, q := range cases {
		t.Run(fmt.Sprintf("%d_%d", q.Layers, q.DepthMax), func(t *testing.T) {
			for v := 0; v < q.DepthMax; v++ {
				l := q.DepthToLayer(v)
				if l < 0 || l >= q.Layers {
					t.Fatalf("DepthToLayer(%d) = %d out of range", v, l)
				}
				if got := q.DepthToLayer(q.LayerToDepth(l)); got != l {
					t.Fatalf("DepthToLayer(LayerToDepth(%d)) = %d", l, got)
				}
				if v < q.LayerToDepth(l) || v >= q.LayerToDepth(l+1) {
					t.Fatalf("depth %d not inside layer %d range [%d, %d)", v, l, q.LayerToDepth(l), q.LayerToDepth(l+1))
				}
			}
		})
	}
}

func TestQuantizer_ClampsToLastLayer(t *testing.T) {
	q := Quantizer{Layers: 30, DepthMax: 4000}
	for _, v := range []int{4000, 4001, 65535} {
		if got := q.DepthToLayer(v); got != 29 {
			t.Errorf("DepthToLayer(%d) = %d, want 29", v, got)
		}
	}
	if got := q.LayerToDepth(30); got != 4000 {
		t.Errorf("LayerToDepth(30) = %d, want 4000", got)
	}
	if got := q.DepthToLayer(1500); got != 11 {
		t.Errorf("DepthToLayer(1500) = %d, want 11", got)
	}
	if got := q.LayerToDepth(12); got != 1600 {
		t.Errorf("LayerToDepth(12) = %d, want 1600", got)
	}
}
