package util

import "math"

// EMA is an exponential moving average. The first sample seeds the state.
type EMA struct {
	alpha, prev float64
	ok          bool
}

func NewEMA(alpha float64) *EMA { return &EMA{alpha: Clamp01(alpha)} }
func (e *EMA) Next(v float64) float64 {
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

// Reset drops the smoothing state so the next sample seeds it again.
func (e *EMA) Reset() { e.prev, e.ok = 0, false }

// DeltaU64 returns now-prev, or ok=false when the counter went backwards
// (wrap, reset, or a snapshot taken from a different source).
func DeltaU64(now, prev uint64) (uint64, bool) {
	if now >= prev {
		return now - prev, true
	}
	return 0, false
}

func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	// guard against NaN
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// Clamp bounds x to [lo, hi]; NaN becomes lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
