package hdbscan

import (
	"reflect"
	"testing"
)

func TestComputeCoreDistances(t *testing.T) {
	data := [][]float64{{0}, {1}, {3}, {7}}
	nq := NewBruteForceNeighbors(data, EuclideanMetric{}, 1)

	// k counts the point itself, so k=2 is the nearest other point.
	got := ComputeCoreDistances(nq, len(data), 2)
	want := []float64{1, 1, 2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("k=2: got %v, want %v", got, want)
	}
}

func TestComputeCoreDistancesKOne(t *testing.T) {
	data := [][]float64{{0}, {1}, {3}}
	nq := NewBruteForceNeighbors(data, EuclideanMetric{}, 1)

	got := ComputeCoreDistances(nq, len(data), 1)
	want := []float64{0, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("k=1: got %v, want %v", got, want)
	}
}

func TestComputeCoreDistancesKClamped(t *testing.T) {
	data := [][]float64{{0}, {1}, {3}, {7}}
	nq := NewBruteForceNeighbors(data, EuclideanMetric{}, 1)

	// k larger than the dataset clamps to n: each core distance becomes the
	// distance to the farthest point.
	got := ComputeCoreDistances(nq, len(data), 10)
	want := []float64{7, 6, 4, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("k=10: got %v, want %v", got, want)
	}
}
