package hdbscan

// ComputeCoreDistances computes the core distance of every point: the
// distance to its k-th nearest neighbor, where k counts the point itself.
// k == 1 therefore yields all zeros. Returns a slice of length n.
func ComputeCoreDistances(nq NeighborQuery, n, k int) []float64 {
	core := make([]float64, n)
	if k <= 1 {
		return core
	}
	if k > n {
		k = n
	}

	neighbors := nq.QueryAll(k)
	for i := 0; i < n; i++ {
		core[i] = neighbors[i][k-1].Distance
	}
	return core
}
