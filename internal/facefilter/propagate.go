package facefilter

// Propagate dilates the direct selections over the non-negative footprint
// of mask (ring and hole cells) into unselected neighbours, flagging each
// write as propagated. Propagated entries never seed further writes. It
// returns the number of segments newly selected.
func Propagate(sf *SegmentFilter, mask *Mask, mode PropagationMode) int {
	if mode == PropagateDeepest {
		return propagateDeepest(sf, mask)
	}
	return propagateRowMajor(sf, mask)
}

// propagateRowMajor is a single forward sweep in row-major order; the first
// seed to reach an unselected segment claims it.
func propagateRowMajor(sf *SegmentFilter, mask *Mask) int {
	g := sf.grid
	side := mask.Side()
	c := mask.Center()
	written := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.Values[y*g.Width+x]
			if !sf.isSeed(v) {
				continue
			}
			flagged := v + uint8(sf.layers)
			for my := 0; my < side; my++ {
				ty := y + my - c
				if ty < 0 || ty >= g.Height {
					continue
				}
				for mx := 0; mx < side; mx++ {
					tx := x + mx - c
					if tx < 0 || tx >= g.Width {
						continue
					}
					t := ty*g.Width + tx
					if mask.At(mx, my) >= 0 && g.Values[t] == 0 {
						g.Values[t] = flagged
						written++
					}
				}
			}
		}
	}
	return written
}

// propagateDeepest gives each unselected segment the deepest layer among the
// seeds covering it. The result does not depend on scan order.
func propagateDeepest(sf *SegmentFilter, mask *Mask) int {
	g := sf.grid
	side := mask.Side()
	c := mask.Center()
	best := make([]uint8, len(g.Values))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.Values[y*g.Width+x]
			if !sf.isSeed(v) {
				continue
			}
			for my := 0; my < side; my++ {
				ty := y + my - c
				if ty < 0 || ty >= g.Height {
					continue
				}
				for mx := 0; mx < side; mx++ {
					tx := x + mx - c
					if tx < 0 || tx >= g.Width {
						continue
					}
					t := ty*g.Width + tx
					if mask.At(mx, my) >= 0 && g.Values[t] == 0 && v > best[t] {
						best[t] = v
					}
				}
			}
		}
	}
	written := 0
	for t, v := range best {
		if v != 0 {
			g.Values[t] = v + uint8(sf.layers)
			written++
		}
	}
	return written
}
