package hdbscan

import (
	"math"
	"sort"
)

// maxOutlierScore is the prediction-time outlier score ceiling assigned to
// noise when the training data contained no noise points to learn from.
const maxOutlierScore = 0.9999

// ClusterExemplar is a representative training point retained for
// prediction: its cluster label, the source point's outlier score and
// feature vector, and the admission radius used to decide whether an
// unseen point near this exemplar belongs to the cluster.
type ClusterExemplar struct {
	Label         int
	OutlierScore  float64
	Features      []float64
	MaxDistToEdge float64
}

// computeExemplars selects the exemplar points for every non-noise cluster.
// The total exemplar budget is round(sqrt(n/2)) plus the number of label
// groups, split across clusters proportionally to their size with at least
// one per cluster. Within a cluster, members with the lowest outlier scores
// are the most central and are chosen first; duplicate scores collapse so
// the retained set favors distinct score values.
//
// Each exemplar's MaxDistToEdge is the maximum distance from it to any
// remaining (non-exemplar) member of its cluster.
func computeExemplars(data [][]float64, labels []int, scores []float64, metric DistanceMetric) []ClusterExemplar {
	n := len(data)
	assignments := groupByLabel(labels)

	totalExemplars := int(math.Round(math.Sqrt(float64(n)/2))) + len(assignments)

	clusterLabels := make([]int, 0, len(assignments))
	for label := range assignments {
		clusterLabels = append(clusterLabels, label)
	}
	sort.Ints(clusterLabels)

	var exemplars []ClusterExemplar
	for _, label := range clusterLabels {
		if label == NoiseLabel {
			continue
		}
		members := assignments[label]

		// Collapse duplicate outlier scores, keeping the last member seen
		// per score, then order by score ascending.
		byScore := make(map[float64]int, len(members))
		for _, point := range members {
			byScore[scores[point]] = point
		}
		distinct := make([]float64, 0, len(byScore))
		for score := range byScore {
			distinct = append(distinct, score)
		}
		sort.Float64s(distinct)

		count := len(members) * totalExemplars / n
		if count < 1 {
			count = 1
		}
		if count > len(distinct) {
			count = len(distinct)
		}

		start := len(exemplars)
		for _, score := range distinct[:count] {
			point := byScore[score]
			exemplars = append(exemplars, ClusterExemplar{
				Label:        label,
				OutlierScore: score,
				Features:     data[point],
			})
		}

		// Admission radius: the farthest non-exemplar member. A cluster
		// fully consumed by exemplars admits exact matches only.
		for i := start; i < len(exemplars); i++ {
			maxDist := 0.0
			for _, score := range distinct[count:] {
				d := metric.Distance(exemplars[i].Features, data[byScore[score]])
				if d > maxDist {
					maxDist = d
				}
			}
			exemplars[i].MaxDistToEdge = maxDist
		}
	}
	return exemplars
}

// noisePointsOutlierScore returns the score assigned to points predicted as
// noise: the highest outlier score observed among noise points in training,
// or a fixed near-1 ceiling when training produced no noise at all.
func noisePointsOutlierScore(labels []int, scores []float64) float64 {
	found := false
	bound := 0.0
	for i, label := range labels {
		if label == NoiseLabel {
			found = true
			if scores[i] > bound {
				bound = scores[i]
			}
		}
	}
	if !found {
		return maxOutlierScore
	}
	return bound
}

func groupByLabel(labels []int) map[int][]int {
	groups := make(map[int][]int)
	for i, label := range labels {
		groups[label] = append(groups[label], i)
	}
	return groups
}
