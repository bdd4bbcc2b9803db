package hdbscan

import "math"

// propagateTree propagates stability and the lowest descendant split level
// from the leaves of the cluster tree up to the root. Afterwards the root's
// propagatedDescendants holds the prominent clusters chosen for the flat
// clustering.
//
// Children are processed before parents via an explicit post-order
// traversal, so each node's children have resolved their contributions by
// the time the node compares its own stability against theirs.
func propagateTree(ct *clusterTree) {
	children := make([][]int, ct.len())
	for label := rootLabel + 1; label < ct.len(); label++ {
		parent := ct.node(label).parent
		children[parent] = append(children[parent], label)
	}

	for _, label := range postOrder(children) {
		propagateCluster(ct, ct.node(label))
	}
}

// postOrder returns every cluster label with children listed before
// parents, starting from the root.
func postOrder(children [][]int) []int {
	order := make([]int, 0, len(children))
	stack := []int{rootLabel}

	// Reverse preorder: visiting parents before children and reversing the
	// result yields a valid post-order.
	for len(stack) > 0 {
		label := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, label)
		stack = append(stack, children[label]...)
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// propagateCluster performs one node's propagation step: merge the lowest
// descendant split level into the parent, then contribute either this
// cluster or its already-propagated descendants to the parent, whichever is
// more stable. Ties favor this cluster over its descendants. The root has
// no parent and contributes nothing.
func propagateCluster(ct *clusterTree, c *cluster) {
	if c.parent < 0 {
		return
	}
	parent := ct.node(c.parent)

	if c.propagatedLowestChildSplitLevel == math.MaxFloat64 {
		c.propagatedLowestChildSplitLevel = c.splitLevel
	}
	if c.propagatedLowestChildSplitLevel < parent.propagatedLowestChildSplitLevel {
		parent.propagatedLowestChildSplitLevel = c.propagatedLowestChildSplitLevel
	}

	if !c.hasChildren || c.stability >= c.propagatedStability {
		parent.propagatedStability += c.stability
		parent.propagatedDescendants = append(parent.propagatedDescendants, c.label)
	} else {
		parent.propagatedStability += c.propagatedStability
		parent.propagatedDescendants = append(parent.propagatedDescendants, c.propagatedDescendants...)
	}
}
