package hdbscan

// calculateOutlierScores computes the GLOSH outlier score for every point.
// A point that never fell to noise has noise level 0 and scores exactly 0.
// Otherwise the score relates the level at which the point was shed to the
// lowest level at which any descendant of its last cluster survived:
//
//	score = 1 - lowestChildSplitLevel(lastCluster) / noiseLevel
//
// Higher scores indicate stronger outliers.
func calculateOutlierScores(res *hierarchyResult) []float64 {
	numPoints := len(res.pointNoiseLevels)
	scores := make([]float64, numPoints)

	for i := 0; i < numPoints; i++ {
		epsilon := res.pointNoiseLevels[i]
		if epsilon == 0 {
			continue
		}
		epsilonMax := res.clusters.node(res.pointLastClusters[i]).propagatedLowestChildSplitLevel
		scores[i] = 1 - epsilonMax/epsilon
	}
	return scores
}
