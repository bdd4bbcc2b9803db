package hdbscan

import "sync"

// Neighbor is a single nearest-neighbor query result.
type Neighbor struct {
	Index    int
	Distance float64
}

// NeighborQuery supplies, for every point in a dataset, its k nearest
// neighbors sorted ascending by distance. The point itself is included in
// its own result at distance 0.
type NeighborQuery interface {
	QueryAll(k int) [][]Neighbor
}

// BruteForceNeighbors is a brute-force NeighborQuery over an in-memory
// dataset. Queries for distinct points are independent, so QueryAll splits
// the points across a worker pool.
type BruteForceNeighbors struct {
	data    [][]float64
	metric  DistanceMetric
	workers int
}

// NewBruteForceNeighbors creates a brute-force neighbor query over data.
// workers controls the parallelism of QueryAll; values <= 1 run sequentially.
func NewBruteForceNeighbors(data [][]float64, metric DistanceMetric, workers int) *BruteForceNeighbors {
	return &BruteForceNeighbors{data: data, metric: metric, workers: workers}
}

// Query returns the k nearest neighbors of point, sorted ascending by
// distance. k is clamped to the dataset size. If point is a dataset row,
// the result includes it at distance 0.
func (b *BruteForceNeighbors) Query(point []float64, k int) []Neighbor {
	if k > len(b.data) {
		k = len(b.data)
	}

	// Sorted insertion into a bounded slice. k is typically small, so the
	// shift is cheaper than a heap.
	nearest := make([]Neighbor, 0, k)
	for j, candidate := range b.data {
		d := b.metric.Distance(point, candidate)
		if len(nearest) == k && d >= nearest[k-1].Distance {
			continue
		}

		pos := len(nearest)
		for pos >= 1 && d < nearest[pos-1].Distance {
			pos--
		}
		if len(nearest) < k {
			nearest = append(nearest, Neighbor{})
		}
		copy(nearest[pos+1:], nearest[pos:])
		nearest[pos] = Neighbor{Index: j, Distance: d}
	}
	return nearest
}

// QueryAll returns the k nearest neighbors of every dataset point.
// Each worker owns a contiguous range of points and a disjoint slice of the
// result, so no synchronization is needed for writes.
func (b *BruteForceNeighbors) QueryAll(k int) [][]Neighbor {
	n := len(b.data)
	result := make([][]Neighbor, n)

	if b.workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			result[i] = b.Query(b.data[i], k)
		}
		return result
	}

	var wg sync.WaitGroup
	pointsPerWorker := (n + b.workers - 1) / b.workers

	for w := 0; w < b.workers; w++ {
		start := w * pointsPerWorker
		end := start + pointsPerWorker
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				result[i] = b.Query(b.data[i], k)
			}
		}(start, end)
	}

	wg.Wait()
	return result
}
