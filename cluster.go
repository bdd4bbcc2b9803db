package hdbscan

import (
	"fmt"
	"math"
)

// NoiseLabel is the reserved cluster label for outlier/noise points.
// No cluster node is ever created for it.
const NoiseLabel = 0

// rootLabel is the label of the synthetic cluster that initially holds
// every point.
const rootLabel = 1

// cluster is a node in the HDBSCAN* cluster tree. Nodes live in a
// clusterTree arena indexed by label; the parent relation is held as a
// label rather than a pointer, with -1 marking the root's missing parent.
type cluster struct {
	label      int
	parent     int
	birthLevel float64 // edge weight at creation; NaN for the root
	splitLevel float64 // edge weight at which the last point left; 0 while alive

	numPoints int
	stability float64

	hasChildren    bool
	hierarchyLevel int

	// Populated by stability propagation.
	propagatedStability             float64
	propagatedLowestChildSplitLevel float64
	propagatedDescendants           []int
}

// detachPoints removes count points from the cluster at the given edge
// weight level, accumulating the stability statistic. A point count below
// zero is a bookkeeping bug and aborts training.
func (c *cluster) detachPoints(count int, level float64) error {
	c.numPoints -= count
	c.stability += float64(count) * (1/level - 1/c.birthLevel)

	if c.numPoints == 0 {
		c.splitLevel = level
	} else if c.numPoints < 0 {
		return fmt.Errorf("hdbscan: cluster %d point count fell below zero", c.label)
	}
	return nil
}

// clusterTree is the arena owning every cluster node, indexed by label.
// Index 0 is nil, reserved for the noise label.
type clusterTree struct {
	nodes []*cluster
}

func newClusterTree(numPoints int) *clusterTree {
	root := &cluster{
		label:                           rootLabel,
		parent:                          -1,
		birthLevel:                      math.NaN(),
		numPoints:                       numPoints,
		propagatedLowestChildSplitLevel: math.MaxFloat64,
	}
	return &clusterTree{nodes: []*cluster{nil, root}}
}

func (ct *clusterTree) node(label int) *cluster { return ct.nodes[label] }

func (ct *clusterTree) len() int { return len(ct.nodes) }

// createCluster relabels the given points, detaches them from their parent
// cluster, and creates a node for the new label. Creating the noise label
// detaches points but never instantiates a node; the returned cluster is
// nil in that case.
func (ct *clusterTree) createCluster(parentLabel int, points map[int]struct{}, currentLabels []int, newLabel int, level float64) (*cluster, error) {
	for p := range points {
		currentLabels[p] = newLabel
	}

	parent := ct.nodes[parentLabel]
	if err := parent.detachPoints(len(points), level); err != nil {
		return nil, err
	}

	if newLabel == NoiseLabel {
		return nil, nil
	}

	c := &cluster{
		label:                           newLabel,
		parent:                          parentLabel,
		birthLevel:                      level,
		numPoints:                       len(points),
		propagatedLowestChildSplitLevel: math.MaxFloat64,
	}
	parent.hasChildren = true
	ct.nodes = append(ct.nodes, c)
	return c, nil
}
