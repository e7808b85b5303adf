package curve

// EffectiveAmp returns the amplification coefficient in effect at time now
// for a linear ramp from initial to target over [start, stop] (unix seconds).
// Interpolation truncates toward the start value, so the ramp is monotonic
// and never overshoots the target in either direction.
func EffectiveAmp(now int64, initial, target uint64, start, stop int64) uint64 {
	if now <= start || initial == target {
		return initial
	}
	if now >= stop || stop <= start {
		return target
	}

	elapsed := uint64(now - start)
	window := uint64(stop - start)
	if target >= initial {
		return initial + (target-initial)*elapsed/window
	}
	return initial - (initial-target)*elapsed/window
}
