package hdbscan

import "sort"

// findProminentClusters produces the final flat clustering from the
// propagated cluster tree and the per-level label snapshots. Every point
// whose snapshot label at a prominent cluster's birth level matches that
// cluster keeps the label; all other points stay noise.
func findProminentClusters(res *hierarchyResult, numPoints int) []int {
	solution := res.clusters.node(rootLabel).propagatedDescendants

	// Group the selected clusters by the hierarchy level they were born at.
	clustersByLevel := make(map[int][]int)
	for _, label := range solution {
		level := res.clusters.node(label).hierarchyLevel
		clustersByLevel[level] = append(clustersByLevel[level], label)
	}

	levels := make([]int, 0, len(clustersByLevel))
	for level := range clustersByLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	clusterLabels := make([]int, numPoints)
	for _, level := range levels {
		selected := make(map[int]struct{}, len(clustersByLevel[level]))
		for _, label := range clustersByLevel[level] {
			selected[label] = struct{}{}
		}

		for i, label := range res.snapshots[level] {
			if _, ok := selected[label]; ok {
				clusterLabels[i] = label
			}
		}
	}
	return clusterLabels
}
