package hdbscan

import (
	"reflect"
	"testing"
)

// Two well-separated pairs on a line. With minClusterSize 2 and k 2 the
// hierarchy's single interesting event is the split of the root at the
// bridging edge (weight 10) into one cluster per pair.
func twoPairsHierarchy(t *testing.T) *hierarchyResult {
	t.Helper()
	data := [][]float64{{0}, {1}, {11}, {12}}
	cores := coreDistancesFor(data, 2)
	tree := BuildEMST(data, cores, EuclideanMetric{})

	res, err := computeHierarchyAndClusterTree(tree, 2)
	if err != nil {
		t.Fatalf("computeHierarchyAndClusterTree: %v", err)
	}
	return res
}

func TestHierarchyTwoPairs(t *testing.T) {
	res := twoPairsHierarchy(t)

	if res.clusters.len() != 4 {
		t.Fatalf("cluster tree has %d slots, want nil + root + two children", res.clusters.len())
	}

	root := res.clusters.node(rootLabel)
	if root.splitLevel != 10 {
		t.Errorf("root splitLevel = %f, want 10 (the bridging edge)", root.splitLevel)
	}
	if root.numPoints != 0 {
		t.Errorf("root numPoints = %d, want 0 after the split", root.numPoints)
	}

	for _, label := range []int{2, 3} {
		c := res.clusters.node(label)
		if c.parent != rootLabel {
			t.Errorf("cluster %d parent = %d, want root", label, c.parent)
		}
		if c.birthLevel != 10 {
			t.Errorf("cluster %d birthLevel = %f, want 10", label, c.birthLevel)
		}
		if c.splitLevel != 1 {
			t.Errorf("cluster %d splitLevel = %f, want 1", label, c.splitLevel)
		}
		if c.hasChildren {
			t.Errorf("cluster %d should be a leaf", label)
		}
		// Both points leave at level 1 from a cluster born at level 10.
		assertFloat(t, "stability", c.stability, 2*(1.0/1-1.0/10))
	}

	if got := res.snapshots[1]; !reflect.DeepEqual(got, []int{2, 2, 3, 3}) {
		t.Errorf("snapshot at level 1 = %v, want [2 2 3 3]", got)
	}
	if !reflect.DeepEqual(res.pointNoiseLevels, []float64{1, 1, 1, 1}) {
		t.Errorf("pointNoiseLevels = %v, want all 1", res.pointNoiseLevels)
	}
	if !reflect.DeepEqual(res.pointLastClusters, []int{2, 2, 3, 3}) {
		t.Errorf("pointLastClusters = %v", res.pointLastClusters)
	}
}

func TestHierarchySmallGroupsBecomeNoise(t *testing.T) {
	// Same pairs, but with minClusterSize 3 neither side of the split is
	// big enough: the root sheds everything to noise and never splits into
	// child clusters.
	data := [][]float64{{0}, {1}, {11}, {12}}
	cores := coreDistancesFor(data, 2)
	tree := BuildEMST(data, cores, EuclideanMetric{})

	res, err := computeHierarchyAndClusterTree(tree, 3)
	if err != nil {
		t.Fatalf("computeHierarchyAndClusterTree: %v", err)
	}

	if res.clusters.len() != 2 {
		t.Fatalf("cluster tree has %d slots, want only the root", res.clusters.len())
	}
	for i, label := range res.pointLastClusters {
		if label != rootLabel {
			t.Errorf("point %d fell from cluster %d, want the root", i, label)
		}
	}
}

func TestHierarchyProminentAndScores(t *testing.T) {
	res := twoPairsHierarchy(t)
	propagateTree(res.clusters)

	root := res.clusters.node(rootLabel)
	if !reflect.DeepEqual(root.propagatedDescendants, []int{2, 3}) {
		t.Fatalf("prominent clusters = %v, want [2 3]", root.propagatedDescendants)
	}
	assertFloat(t, "root lowest child split level", root.propagatedLowestChildSplitLevel, 1)

	labels := findProminentClusters(res, 4)
	if !reflect.DeepEqual(labels, []int{2, 2, 3, 3}) {
		t.Errorf("labels = %v, want [2 2 3 3]", labels)
	}

	// Every point was shed at exactly the level its cluster dissolved, so
	// nothing looks like an outlier.
	for i, score := range calculateOutlierScores(res) {
		if score != 0 {
			t.Errorf("point %d outlier score = %f, want 0", i, score)
		}
	}
}

func TestLabelConservation(t *testing.T) {
	// The set of non-noise labels in the flat clustering is exactly the
	// set of prominent clusters propagated up to the root.
	data := gridScenario()
	cores := coreDistancesFor(data, 5)
	tree := BuildEMST(data, cores, EuclideanMetric{})

	res, err := computeHierarchyAndClusterTree(tree, 5)
	if err != nil {
		t.Fatalf("computeHierarchyAndClusterTree: %v", err)
	}
	propagateTree(res.clusters)
	labels := findProminentClusters(res, len(data))

	prominent := make(map[int]bool)
	for _, label := range res.clusters.node(rootLabel).propagatedDescendants {
		prominent[label] = true
	}

	used := make(map[int]bool)
	for _, label := range labels {
		if label != NoiseLabel {
			used[label] = true
		}
	}

	if len(used) != len(prominent) {
		t.Fatalf("labels used %v, prominent clusters %v", used, prominent)
	}
	for label := range used {
		if !prominent[label] {
			t.Errorf("label %d used but not a prominent cluster", label)
		}
	}
}
