package hdbscan

// hierarchyResult bundles the outputs of the hierarchy builder: the cluster
// tree, the per-level label snapshots, and for every point the edge weight
// at which it became noise together with the cluster it fell from.
type hierarchyResult struct {
	clusters          *clusterTree
	snapshots         map[int][]int
	pointNoiseLevels  []float64
	pointLastClusters []int
}

// computeHierarchyAndClusterTree decomposes the EMST into the HDBSCAN*
// hierarchy by removing edges from the highest weight down. Each round
// removes every edge tied at the current weight, then examines the affected
// clusters: a cluster splits when two or more connected components of at
// least minClusterSize points remain, and merely sheds the undersized
// components to noise otherwise.
//
// The EMST's adjacency lists are destroyed in the process.
func computeHierarchyAndClusterTree(emst *ExtendedMinimumSpanningTree, minClusterSize int) (*hierarchyResult, error) {
	n := emst.NumVertices()

	res := &hierarchyResult{
		clusters:          newClusterTree(n),
		snapshots:         make(map[int][]int),
		pointNoiseLevels:  make([]float64, n),
		pointLastClusters: make([]int, n),
	}

	// Every point starts in the root cluster.
	currentClusterLabels := make([]int, n)
	for i := range currentClusterLabels {
		currentClusterLabels[i] = rootLabel
	}

	hierarchyLevel := 0
	nextClusterLabel := rootLabel + 1
	nextLevelSignificant := true
	currentEdgeIndex := emst.NumEdges() - 1

	// Clusters touched by edge removal must be examined in descending label
	// order; vertex order does not matter.
	affectedClusterLabels := make(map[int]struct{})
	affectedVertices := make(map[int]struct{})

	for currentEdgeIndex >= 0 {
		currentEdgeWeight := emst.Weight(currentEdgeIndex)
		var newClusters []*cluster

		// Remove all edges tied at the current weight as one round.
		for currentEdgeIndex >= 0 && emst.Weight(currentEdgeIndex) == currentEdgeWeight {
			first := emst.FirstVertex(currentEdgeIndex)
			second := emst.SecondVertex(currentEdgeIndex)
			emst.removeEdge(first, second)

			if currentClusterLabels[first] != NoiseLabel {
				affectedVertices[first] = struct{}{}
				affectedVertices[second] = struct{}{}
				affectedClusterLabels[currentClusterLabels[first]] = struct{}{}
			}
			currentEdgeIndex--
		}

		if len(affectedClusterLabels) == 0 {
			continue
		}

		for len(affectedClusterLabels) > 0 {
			examinedClusterLabel := maxKey(affectedClusterLabels)
			delete(affectedClusterLabels, examinedClusterLabel)

			examinedVertices := make(map[int]struct{})
			for v := range affectedVertices {
				if currentClusterLabels[v] == examinedClusterLabel {
					examinedVertices[v] = struct{}{}
					delete(affectedVertices, v)
				}
			}

			var firstChildCluster map[int]struct{}
			var firstChildFrontier []int
			numChildClusters := 0

			// Partition the affected vertices into connected components by
			// traversing the post-removal adjacency graph. The first valid
			// component is left partially explored until a second valid
			// component confirms an actual split; undersized or edgeless
			// components are fully explored so they can be labeled noise.
			for len(examinedVertices) > 0 {
				constructing := make(map[int]struct{})
				var frontier []int
				anyEdges := false
				countedChild := false

				rootVertex := maxKey(examinedVertices)
				constructing[rootVertex] = struct{}{}
				frontier = append(frontier, rootVertex)
				delete(examinedVertices, rootVertex)

				for len(frontier) > 0 {
					vertex := frontier[0]
					frontier = frontier[1:]

					for _, neighbor := range emst.edgeList(vertex) {
						anyEdges = true
						if _, seen := constructing[neighbor]; !seen {
							constructing[neighbor] = struct{}{}
							frontier = append(frontier, neighbor)
							delete(examinedVertices, neighbor)
						}
					}

					if !countedChild && len(constructing) >= minClusterSize && anyEdges {
						countedChild = true
						numChildClusters++

						// Suspend exploration of the first valid component.
						if firstChildCluster == nil {
							firstChildCluster = constructing
							firstChildFrontier = frontier
							break
						}
					}
				}

				if numChildClusters >= 2 && len(constructing) >= minClusterSize && anyEdges {
					// A fully explored component can coincide with the
					// suspended first component; don't count it twice.
					if _, same := constructing[maxKey(firstChildCluster)]; same {
						numChildClusters--
					} else {
						newCluster, err := res.clusters.createCluster(examinedClusterLabel, constructing,
							currentClusterLabels, nextClusterLabel, currentEdgeWeight)
						if err != nil {
							return nil, err
						}
						newClusters = append(newClusters, newCluster)
						nextClusterLabel++
					}
				} else if len(constructing) < minClusterSize || !anyEdges {
					_, err := res.clusters.createCluster(examinedClusterLabel, constructing,
						currentClusterLabels, NoiseLabel, currentEdgeWeight)
					if err != nil {
						return nil, err
					}

					for point := range constructing {
						res.pointNoiseLevels[point] = currentEdgeWeight
						res.pointLastClusters[point] = examinedClusterLabel
					}
				}
			}

			// A confirmed split: resume and finish the first component,
			// unless a later traversal already absorbed it.
			if numChildClusters >= 2 && currentClusterLabels[minKey(firstChildCluster)] == examinedClusterLabel {
				for len(firstChildFrontier) > 0 {
					vertex := firstChildFrontier[0]
					firstChildFrontier = firstChildFrontier[1:]

					for _, neighbor := range emst.edgeList(vertex) {
						if _, seen := firstChildCluster[neighbor]; !seen {
							firstChildCluster[neighbor] = struct{}{}
							firstChildFrontier = append(firstChildFrontier, neighbor)
						}
					}
				}

				newCluster, err := res.clusters.createCluster(examinedClusterLabel, firstChildCluster,
					currentClusterLabels, nextClusterLabel, currentEdgeWeight)
				if err != nil {
					return nil, err
				}
				newClusters = append(newClusters, newCluster)
				nextClusterLabel++
			}
		}

		// A level is significant when clusters were born this round or the
		// previous round; runs of pure noise shedding collapse into one.
		if nextLevelSignificant || len(newClusters) > 0 {
			hierarchyLevel++
		}

		for _, newCluster := range newClusters {
			snapshot := make([]int, n)
			copy(snapshot, currentClusterLabels)
			newCluster.hierarchyLevel = hierarchyLevel
			res.snapshots[hierarchyLevel] = snapshot
		}

		nextLevelSignificant = len(newClusters) > 0
	}

	return res, nil
}

func maxKey(set map[int]struct{}) int {
	first := true
	var best int
	for k := range set {
		if first || k > best {
			best = k
			first = false
		}
	}
	return best
}

func minKey(set map[int]struct{}) int {
	first := true
	var best int
	for k := range set {
		if first || k < best {
			best = k
			first = false
		}
	}
	return best
}
