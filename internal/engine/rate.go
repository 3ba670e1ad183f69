package engine

import "math"

// RateUnknown marks a rate that was absent or unusable upstream. It never
// compares equal to any normalized rate.
const RateUnknown float64 = -1

// NormalizeRate maps a raw rate onto the percent scale [0,100]. Upstream
// sources disagree on units: some send fractions (0.28), some send percents
// (28). Values above 1 are taken as already-percent, the rest are scaled by
// 100. Normalization happens at every read site, never at ingestion, so the
// raw records stay byte-faithful to what the scraper produced.
func NormalizeRate(v float64) float64 {
	if math.IsNaN(v) || v == RateUnknown {
		return RateUnknown
	}
	if v <= 1 {
		v *= 100
	}
	return clamp(v, 0, 100)
}

// KnownRate reports whether v carries a usable value.
func KnownRate(v float64) bool {
	return v != RateUnknown
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
