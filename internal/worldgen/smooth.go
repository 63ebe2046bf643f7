package worldgen

import "github.com/vovakirdan/tui-craft/internal/core"

// smooth relaxes neighbor pairs steeper than MaxInclination. Passes
// alternate direction and stop when nothing violates, when a pass makes
// no change, or at SmoothPassCap. No accepted fix increases the number
// of violating pairs, so no pass does either.
func (gen *Generator) smooth(rep *Report) {
	maxInc := gen.params.MaxInclination
	h := gen.heights
	n := len(h)

	for pass := 0; pass < gen.params.SmoothPassCap; pass++ {
		if countViolations(h, maxInc) == 0 {
			break
		}

		changed := false
		for k := 0; k < n-1; k++ {
			i := k
			if pass%2 == 1 {
				i = n - 2 - k
			}
			left, right, ok := relaxPair(h, i, maxInc)
			if !ok {
				continue
			}
			gen.setHeight(i, left)
			gen.setHeight(i+1, right)
			changed = true
		}
		rep.SmoothPasses++

		if !changed {
			rep.Stalled = true
			break
		}
		gen.emit(StageSmoothing)
	}

	rep.Violations = countViolations(h, maxInc)
	rep.Settled = rep.Violations == 0
	rep.CapReached = !rep.Settled && !rep.Stalled && rep.SmoothPasses >= gen.params.SmoothPassCap
}

// relaxPair proposes new heights for columns i and i+1 when their step
// exceeds maxInc. Heights are row indices, so the larger value is the
// lower terrain. The split fix raises the lower column by the rounded-up
// half of the excess and lowers the other by the rest; the one-sided fixes
// move a single column by the whole excess. The first candidate that does
// not add violations among pairs (i-1, i), (i, i+1) and (i+1, i+2) wins.
func relaxPair(h []int, i, maxInc int) (left, right int, ok bool) {
	a, b := h[i], h[i+1]
	d := b - a
	if core.Abs(d) <= maxInc {
		return a, b, false
	}
	excess := core.Abs(d) - maxInc
	up := (excess + 1) / 2
	down := excess / 2

	var candidates [3][2]int
	if d > 0 {
		candidates = [3][2]int{{a + down, b - up}, {a + excess, b}, {a, b - excess}}
	} else {
		candidates = [3][2]int{{a - up, b + down}, {a - excess, b}, {a, b + excess}}
	}

	before := localViolations(h, i, maxInc)
	defer func() { h[i], h[i+1] = a, b }()
	for _, c := range candidates {
		h[i], h[i+1] = c[0], c[1]
		if localViolations(h, i, maxInc) <= before {
			return c[0], c[1], true
		}
	}
	return a, b, false
}

// localViolations counts violating pairs among the three that touch
// columns i and i+1.
func localViolations(h []int, i, maxInc int) int {
	count := 0
	for j := i - 1; j <= i+1; j++ {
		if j < 0 || j+1 >= len(h) {
			continue
		}
		if core.Abs(h[j]-h[j+1]) > maxInc {
			count++
		}
	}
	return count
}

func countViolations(h []int, maxInc int) int {
	count := 0
	for j := 0; j+1 < len(h); j++ {
		if core.Abs(h[j]-h[j+1]) > maxInc {
			count++
		}
	}
	return count
}
