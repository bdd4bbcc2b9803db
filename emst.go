package hdbscan

import "math"

// ExtendedMinimumSpanningTree is a minimum spanning tree over mutual
// reachability distances, extended with one self-loop edge per vertex
// carrying that vertex's core distance. Edges are stored as three parallel
// arrays plus a per-vertex adjacency list.
//
// The adjacency lists are consumed destructively by the hierarchy builder;
// the tree is a single-use structure.
type ExtendedMinimumSpanningTree struct {
	numVertices  int
	firstVertex  []int
	secondVertex []int
	weights      []float64
	adjacency    [][]int
}

// BuildEMST constructs the extended minimum spanning tree of the data under
// mutual reachability distance, sorted ascending by edge weight.
//
// The MST is grown with a dense Prim scan seeded at the last point: no
// spatial index is used since mutual reachability comparisons are cheap once
// core distances are known. For n points the result has exactly 2n-1 edges:
// n-1 tree edges plus n self-loops.
func BuildEMST(data [][]float64, coreDistances []float64, metric DistanceMetric) *ExtendedMinimumSpanningTree {
	n := len(data)

	// Vertex v's tree edge occupies slot v for v in [0, n-2]; the seed
	// vertex n-1 has no tree edge. Self-loops fill slots n-1 .. 2n-2.
	nearestNeighbors := make([]int, 2*n-1)
	nearestDistances := make([]float64, 2*n-1)
	for i := 0; i < n-1; i++ {
		nearestDistances[i] = math.MaxFloat64
	}

	attached := make([]bool, n)
	currentPoint := n - 1
	numAttached := 1
	attached[currentPoint] = true

	for numAttached < n {
		nearestPoint := -1
		nearestDistance := math.MaxFloat64

		// Update every unattached point's distance to the tree using the
		// point attached last, and find the global minimum.
		for neighbor := 0; neighbor < n; neighbor++ {
			if neighbor == currentPoint || attached[neighbor] {
				continue
			}

			mrd := mutualReachability(
				metric.Distance(data[currentPoint], data[neighbor]),
				coreDistances[currentPoint], coreDistances[neighbor],
			)
			if mrd < nearestDistances[neighbor] {
				nearestDistances[neighbor] = mrd
				nearestNeighbors[neighbor] = currentPoint
			}

			if nearestDistances[neighbor] <= nearestDistance {
				nearestDistance = nearestDistances[neighbor]
				nearestPoint = neighbor
			}
		}

		attached[nearestPoint] = true
		numAttached++
		currentPoint = nearestPoint
	}

	first := make([]int, 2*n-1)
	copy(first, nearestNeighbors)
	second := make([]int, 2*n-1)
	for i := 0; i < n-1; i++ {
		second[i] = i
	}

	// Self-loop edges carry each vertex's own core distance.
	for i := n - 1; i < 2*n-1; i++ {
		vertex := i - (n - 1)
		first[i] = vertex
		second[i] = vertex
		nearestDistances[i] = coreDistances[vertex]
	}

	t := &ExtendedMinimumSpanningTree{
		numVertices:  n,
		firstVertex:  first,
		secondVertex: second,
		weights:      nearestDistances,
	}
	t.quicksortByEdgeWeight()
	t.buildAdjacency()
	return t
}

// NumVertices returns the number of vertices in the tree.
func (t *ExtendedMinimumSpanningTree) NumVertices() int { return t.numVertices }

// NumEdges returns the number of edges, including self-loops (2n-1).
func (t *ExtendedMinimumSpanningTree) NumEdges() int { return len(t.weights) }

// FirstVertex returns the first endpoint of edge i.
func (t *ExtendedMinimumSpanningTree) FirstVertex(i int) int { return t.firstVertex[i] }

// SecondVertex returns the second endpoint of edge i.
func (t *ExtendedMinimumSpanningTree) SecondVertex(i int) int { return t.secondVertex[i] }

// Weight returns the weight of edge i. Edges are in ascending weight order.
func (t *ExtendedMinimumSpanningTree) Weight(i int) float64 { return t.weights[i] }

// edgeList returns the current adjacency list of a vertex. The list shrinks
// as the hierarchy builder removes edges.
func (t *ExtendedMinimumSpanningTree) edgeList(vertex int) []int {
	return t.adjacency[vertex]
}

// removeEdge removes the edge between a and b from both adjacency lists.
// Self-loops appear once and are removed once.
func (t *ExtendedMinimumSpanningTree) removeEdge(a, b int) {
	t.removeNeighbor(a, b)
	t.removeNeighbor(b, a)
}

func (t *ExtendedMinimumSpanningTree) removeNeighbor(vertex, neighbor int) {
	list := t.adjacency[vertex]
	for i, v := range list {
		if v == neighbor {
			t.adjacency[vertex] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// buildAdjacency populates the per-vertex adjacency lists: both directions
// for tree edges, a single entry for self-loops.
func (t *ExtendedMinimumSpanningTree) buildAdjacency() {
	t.adjacency = make([][]int, t.numVertices)
	for i := range t.weights {
		a, b := t.firstVertex[i], t.secondVertex[i]
		t.adjacency[a] = append(t.adjacency[a], b)
		if a != b {
			t.adjacency[b] = append(t.adjacency[b], a)
		}
	}
}

// quicksortByEdgeWeight sorts the three parallel edge arrays in place by
// ascending weight, using an iterative quicksort with an explicit stack and
// median-of-three pivot selection. Ties end up in arbitrary order, which
// downstream processing tolerates.
func (t *ExtendedMinimumSpanningTree) quicksortByEdgeWeight() {
	if len(t.weights) < 2 {
		return
	}

	stack := make([]int, 0, 64)
	stack = append(stack, 0, len(t.weights)-1)

	for len(stack) > 0 {
		high := stack[len(stack)-1]
		low := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		p := t.partition(low, high)
		if p-1 > low {
			stack = append(stack, low, p-1)
		}
		if p+1 < high {
			stack = append(stack, p+1, high)
		}
	}
}

// partition picks the median of the start, middle and end weights as the
// pivot and partitions [low, high] around it, returning the pivot's final
// position.
func (t *ExtendedMinimumSpanningTree) partition(low, high int) int {
	mid := low + (high-low)/2
	if t.weights[mid] < t.weights[low] {
		t.swapEdges(mid, low)
	}
	if t.weights[high] < t.weights[low] {
		t.swapEdges(high, low)
	}
	if t.weights[high] < t.weights[mid] {
		t.swapEdges(high, mid)
	}
	t.swapEdges(mid, high)
	pivot := t.weights[high]

	i := low - 1
	for j := low; j < high; j++ {
		if t.weights[j] <= pivot {
			i++
			t.swapEdges(i, j)
		}
	}
	t.swapEdges(i+1, high)
	return i + 1
}

func (t *ExtendedMinimumSpanningTree) swapEdges(i, j int) {
	t.firstVertex[i], t.firstVertex[j] = t.firstVertex[j], t.firstVertex[i]
	t.secondVertex[i], t.secondVertex[j] = t.secondVertex[j], t.secondVertex[i]
	t.weights[i], t.weights[j] = t.weights[j], t.weights[i]
}
