// Package euclid computes Bjorklund/Euclidean rhythm distributions: the
// maximally-even placement of p onsets among s steps, plus the rotation
// and groove-morph variants the pattern engine's euclid family needs.
package euclid

// Bjorklund returns a boolean mask of length steps with pulses onsets
// distributed as evenly as possible, using the canonical algorithm:
// start with `pulses` singleton "front" buckets of [true] and
// `steps-pulses` singleton "back" buckets of [false], then repeatedly
// append one back bucket onto each front bucket (consuming both) until
// fewer than two back buckets remain, and recurse on the shrunk front/back
// partition. Concatenating the final buckets yields the distribution.
//
// Degenerate cases: pulses <= 0 yields an all-false mask; pulses >= steps
// yields an all-true mask.
func Bjorklund(pulses, steps int) []bool {
	if steps <= 0 {
		return nil
	}
	if pulses <= 0 {
		return make([]bool, steps)
	}
	if pulses >= steps {
		out := make([]bool, steps)
		for i := range out {
			out[i] = true
		}
		return out
	}

	front := make([][]bool, pulses)
	for i := range front {
		front[i] = []bool{true}
	}
	back := make([][]bool, steps-pulses)
	for i := range back {
		back[i] = []bool{false}
	}

	for len(back) > 1 {
		n := min(len(front), len(back))
		newFront := make([][]bool, 0, n)
		for i := 0; i < n; i++ {
			newFront = append(newFront, append(append([]bool{}, front[i]...), back[i]...))
		}
		var newBack [][]bool
		if len(front) > n {
			newBack = front[n:]
		} else {
			newBack = back[n:]
		}
		front, back = newFront, newBack
	}

	out := make([]bool, 0, steps)
	for _, b := range front {
		out = append(out, b...)
	}
	for _, b := range back {
		out = append(out, b...)
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Rotate left-rotates mask by r steps (r may be negative or exceed len).
func Rotate(mask []bool, r int) []bool {
	n := len(mask)
	if n == 0 {
		return mask
	}
	r = ((r % n) + n) % n
	out := make([]bool, n)
	for i := range mask {
		out[i] = mask[(i+r)%n]
	}
	return out
}

// Legato converts an onset/rest mask into a mask of run-lengths: each
// true entry reports how many steps it should hold before the next
// onset (including itself), so a caller can stretch each hit to fill the
// gap until the following one instead of leaving silence.
func Legato(mask []bool) []int {
	n := len(mask)
	holds := make([]int, n)
	lastOnset := -1
	for i := n - 1; i >= 0; i-- {
		if mask[i] {
			lastOnset = i
		}
	}
	if lastOnset == -1 {
		return holds
	}
	// walk forward, each onset's hold extends to the next onset (wrapping).
	onsets := make([]int, 0, n)
	for i, v := range mask {
		if v {
			onsets = append(onsets, i)
		}
	}
	for k, idx := range onsets {
		var next int
		if k+1 < len(onsets) {
			next = onsets[k+1]
		} else {
			next = onsets[0] + n
		}
		holds[idx] = next - idx
	}
	return holds
}

// Groove morphs between the strict Bjorklund distribution (groove=0) and
// perfectly even spacing of pulses onsets across steps positions
// (groove=1) by linearly interpolating each hit's position, then
// snapping to the nearest step. amt is clamped to [0,1].
func Groove(pulses, steps int, amt float64) []bool {
	if amt <= 0 {
		return Bjorklund(pulses, steps)
	}
	if amt > 1 {
		amt = 1
	}
	bj := Bjorklund(pulses, steps)
	bjPositions := positionsOf(bj)
	evenPositions := evenSpacing(pulses, steps)

	out := make([]bool, steps)
	for i := 0; i < len(bjPositions) && i < len(evenPositions); i++ {
		p := float64(bjPositions[i])*(1-amt) + evenPositions[i]*amt
		idx := int(p + 0.5)
		if idx >= steps {
			idx = steps - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx] = true
	}
	return out
}

func positionsOf(mask []bool) []int {
	var out []int
	for i, v := range mask {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func evenSpacing(pulses, steps int) []float64 {
	out := make([]float64, pulses)
	if pulses == 0 {
		return out
	}
	step := float64(steps) / float64(pulses)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}
