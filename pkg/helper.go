package pkg

import "math"

// PassRate returns the share of passed outcomes among decided ones as a
// percentage rounded to one decimal.
func PassRate(passed, decided int) float64 {
	if decided <= 0 {
		return 0
	}
	rate := float64(passed) / float64(decided) * 100
	return math.Round(rate*10) / 10
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
