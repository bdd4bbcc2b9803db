package hdbscan

import (
	"math"
	"reflect"
	"testing"
)

// testTree builds a hand-assembled cluster tree:
//
//	1 (root)
//	├── 2 ── 4
//	│    └── 5
//	└── 3
//
// with the parent stability of cluster 2 supplied by the caller.
func testTree(stability2 float64) *clusterTree {
	return &clusterTree{nodes: []*cluster{
		nil,
		{label: 1, parent: -1, birthLevel: math.NaN(), hasChildren: true,
			propagatedLowestChildSplitLevel: math.MaxFloat64},
		{label: 2, parent: 1, stability: stability2, splitLevel: 0.5, hasChildren: true,
			propagatedLowestChildSplitLevel: math.MaxFloat64},
		{label: 3, parent: 1, stability: 2, splitLevel: 0.4,
			propagatedLowestChildSplitLevel: math.MaxFloat64},
		{label: 4, parent: 2, stability: 3, splitLevel: 0.2,
			propagatedLowestChildSplitLevel: math.MaxFloat64},
		{label: 5, parent: 2, stability: 2.5, splitLevel: 0.3,
			propagatedLowestChildSplitLevel: math.MaxFloat64},
	}}
}

func TestPropagateParentBeatsChildren(t *testing.T) {
	ct := testTree(6) // > 3 + 2.5
	propagateTree(ct)

	root := ct.node(rootLabel)
	if !reflect.DeepEqual(root.propagatedDescendants, []int{2, 3}) {
		t.Errorf("prominent = %v, want [2 3]", root.propagatedDescendants)
	}
	assertFloat(t, "root propagated stability", root.propagatedStability, 8)
}

func TestPropagateChildrenBeatParent(t *testing.T) {
	ct := testTree(5) // < 3 + 2.5
	propagateTree(ct)

	root := ct.node(rootLabel)
	if !reflect.DeepEqual(root.propagatedDescendants, []int{4, 5, 3}) {
		t.Errorf("prominent = %v, want [4 5 3]", root.propagatedDescendants)
	}
	assertFloat(t, "root propagated stability", root.propagatedStability, 7.5)
}

func TestPropagateTieFavorsParent(t *testing.T) {
	ct := testTree(5.5) // exactly 3 + 2.5
	propagateTree(ct)

	root := ct.node(rootLabel)
	if !reflect.DeepEqual(root.propagatedDescendants, []int{2, 3}) {
		t.Errorf("prominent = %v, want the parent cluster on a tie", root.propagatedDescendants)
	}
}

func TestPropagateLowestChildSplitLevel(t *testing.T) {
	ct := testTree(6)
	propagateTree(ct)

	// Leaves seed their own split level; parents take the minimum over the
	// whole subtree regardless of which side won the stability comparison.
	assertFloat(t, "cluster 4", ct.node(4).propagatedLowestChildSplitLevel, 0.2)
	assertFloat(t, "cluster 2", ct.node(2).propagatedLowestChildSplitLevel, 0.2)
	assertFloat(t, "cluster 3", ct.node(3).propagatedLowestChildSplitLevel, 0.4)
	assertFloat(t, "root", ct.node(rootLabel).propagatedLowestChildSplitLevel, 0.2)
}

func TestPropagateSingleLeafRoot(t *testing.T) {
	// A root that never split propagates nothing: the flat clustering is
	// all noise.
	ct := newClusterTree(8)
	propagateTree(ct)

	if len(ct.node(rootLabel).propagatedDescendants) != 0 {
		t.Errorf("unsplit root propagated %v", ct.node(rootLabel).propagatedDescendants)
	}
}
