package stats

import "math"

// percent returns part/whole*100, or 0 when whole is not positive.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ratio returns part/whole, or 0 when whole is not positive.
func ratio(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// mean returns sum/n, or 0 when n is not positive.
func mean(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return finite(sum / float64(n))
}

// finite maps NaN and infinities to 0 so they never reach a caller.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// amount sanitizes a stored monetary value.
func amount(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}
