// Package visibility computes the synthetic 0-100 observing score for a site.
//
// The score combines a deterministic part (elevation and latitude) with one
// uniform draw that stands in for transient weather. Two calls with identical
// inputs therefore return different scores unless the same Rand state is
// supplied; this is intended. The score is a heuristic, not a physical model.
package visibility

import (
	"math"
	"math/rand/v2"
)

const (
	MinScore = 0.0
	MaxScore = 100.0

	baseScore        = 80.0
	maxAltitudeBonus = 20.0
	metersPerPoint   = 200.0
	latitudeWeight   = 10.0
	weatherSpread    = 20.0
	degreesToPole    = 90.0
	excellentAbove   = 80.0
	goodAbove        = 60.0
	fairAbove        = 40.0
	networkExcellent = 85.0
	networkGoodAbove = 70.0
)

// Rand is the randomness source the scorer and demo data draw from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns an independent generator seeded from the runtime source.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Uniform draws a value in [lo, hi).
func Uniform(r Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// IntRange draws an integer in [lo, hi], both ends inclusive.
func IntRange(r Rand, lo, hi int) int {
	n := lo + int(r.Float64()*float64(hi-lo+1))
	if n > hi {
		return hi
	}
	return n
}

// AltitudeBonus grows by one point per 200 m and stops at 20 (4000 m).
func AltitudeBonus(elevation float64) float64 {
	return math.Min(maxAltitudeBonus, elevation/metersPerPoint)
}

// LatitudeBonus scales |latitude|/90 to at most 10 points.
func LatitudeBonus(latitude float64) float64 {
	return math.Abs(latitude) / degreesToPole * latitudeWeight
}

// Deterministic returns the score before weather noise and clamping.
// Longitude is accepted but does not contribute.
func Deterministic(latitude, longitude, elevation float64) float64 {
	return baseScore + AltitudeBonus(elevation) + LatitudeBonus(latitude)
}

// Score returns the visibility score in [0, 100] using a single weather draw
// from rng in [-20, 20).
func Score(latitude, longitude, elevation float64, rng Rand) float64 {
	weather := Uniform(rng, -weatherSpread, weatherSpread)
	return Clamp(Deterministic(latitude, longitude, elevation) + weather)
}

// Clamp bounds v to [0, 100]. NaN maps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return MinScore
	}
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// Label maps a score to a qualitative rating. Comparisons are strict, so a
// boundary value takes the lower label.
func Label(score float64) string {
	switch {
	case score > excellentAbove:
		return "Excellent"
	case score > goodAbove:
		return "Good"
	case score > fairAbove:
		return "Fair"
	default:
		return "Poor"
	}
}

// NetworkLabel is the coarser rating used in the network overview.
func NetworkLabel(score float64) string {
	switch {
	case score > networkExcellent:
		return "Excellent"
	case score > networkGoodAbove:
		return "Good"
	default:
		return "Fair"
	}
}
