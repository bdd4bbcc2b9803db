package hdbscan

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric computes the raw distance between two feature vectors.
// Implementations must be symmetric and non-negative.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// For two zero vectors, the result is NaN (0/0).
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	dot := floats.Dot(a, b)
	return 1.0 - dot/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

// mutualReachability returns the mutual reachability distance between points
// i and j: the maximum of their core distances and their raw distance.
func mutualReachability(rawDistance, coreI, coreJ float64) float64 {
	return math.Max(rawDistance, math.Max(coreI, coreJ))
}
