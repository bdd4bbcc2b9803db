package hdbscan

// UnionFind implements a disjoint-set data structure with path compression
// and union by size.
type UnionFind struct {
	parent []int
	size   []int
}

// NewUnionFind creates a UnionFind over n elements, each initially its own
// set.
func NewUnionFind(n int) *UnionFind {
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size}
}

// Find returns the root of the set containing x, with path compression.
func (uf *UnionFind) Find(x int) int {
	// Walk to the root.
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	// Path compression: point all nodes along the path directly to root.
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Union merges the sets containing x and y by attaching the smaller tree
// under the larger. Returns the new root.
func (uf *UnionFind) Union(x, y int) int {
	rootX := uf.Find(x)
	rootY := uf.Find(y)
	if rootX == rootY {
		return rootX
	}

	// Attach smaller to larger.
	if uf.size[rootX] < uf.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	uf.parent[rootY] = rootX
	uf.size[rootX] += uf.size[rootY]
	return rootX
}
