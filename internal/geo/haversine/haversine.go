// Package haversine computes arc distances on a spherical Earth.
//
// All functions are pure and safe for concurrent use. Inputs are taken
// as-is: out-of-range or non-finite coordinates are not rejected and
// simply produce meaningless (possibly NaN) results.
package haversine

import (
	"iter"
	"math"
	"slices"

	"geodistance-service/internal/domain"
)

// Earth's quadratic mean radius for WGS84.
const EarthRadiusInMeters = 6372797.560856

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// hav returns the haversine of the central angle between c1 and c2.
// Mathematically it lies in [0, 1]; rounding can push it slightly past 1
// for near-antipodal points.
func hav(c1, c2 domain.Coordinates) float64 {
	lonh := math.Sin(degToRad(c1.Lon-c2.Lon) * 0.5)
	lonh *= lonh
	lath := math.Sin(degToRad(c1.Lat-c2.Lat) * 0.5)
	lath *= lath
	tmp := math.Cos(degToRad(c1.Lat)) * math.Cos(degToRad(c2.Lat))
	return lath + tmp*lonh
}

// arc turns a haversine value into a distance on a sphere of the given radius.
// h > 1 yields NaN.
func arc(h, radius float64) float64 {
	return 2.0 * radius * math.Asin(math.Sqrt(h))
}

// DistanceOnSphere returns the great-circle distance between c1 and c2 on
// a sphere of the given radius, in the radius' unit.
func DistanceOnSphere(c1, c2 domain.Coordinates, radius float64) float64 {
	return arc(hav(c1, c2), radius)
}

// Distance returns the great-circle distance in meters between two
// coordinate pairs given in degrees.
//
// The asin argument is not clamped, so near-antipodal inputs can yield NaN.
// Use ClampedDistance when that matters more than bit-for-bit output.
func Distance(c1, c2 domain.Coordinates) float64 {
	return DistanceOnSphere(c1, c2, EarthRadiusInMeters)
}

// ClampedDistance is Distance with the asin argument clamped to [0, 1].
// For finite inputs it never returns NaN.
func ClampedDistance(c1, c2 domain.Coordinates) float64 {
	return arc(clampUnit(hav(c1, c2)), EarthRadiusInMeters)
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// PathDistance returns the length in meters of the path visiting points in
// order: the sum of Distance over every adjacent pair. Sequences with fewer
// than two points have length 0.
//
// points is consumed in a single forward pass, so one-shot iterators work.
func PathDistance[L domain.Located](points iter.Seq[L]) float64 {
	var (
		sum  float64
		prev domain.Coordinates
		seen bool
	)

	for p := range points {
		cur := p.Location()
		if seen {
			sum += Distance(prev, cur)
		}
		prev = cur
		seen = true
	}

	return sum
}

// Length is PathDistance over a slice.
func Length[L domain.Located](points []L) float64 {
	return PathDistance(slices.Values(points))
}
