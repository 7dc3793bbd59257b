package motionplan

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// treeNode is one entry of the append-only node arena. parent == -1 marks the root.
type treeNode struct {
	q      []float64
	parent int
}

// burTree is a rooted tree over configurations. Nodes live in an arena addressed by index;
// nearest-neighbor lookups go through a kd-tree that is rebuilt whenever the arena doubles,
// with cheap unbalanced inserts in between.
type burTree struct {
	nodes     []treeNode
	index     *kdtree.Tree
	lastBuilt int
}

func newBurTree(qRoot []float64) *burTree {
	t := &burTree{nodes: []treeNode{{q: cloneConfig(qRoot), parent: -1}}}
	t.rebuild()
	return t
}

func (t *burTree) rebuild() {
	pts := make(kdNodes, len(t.nodes))
	for i, n := range t.nodes {
		pts[i] = kdNode{q: n.q, idx: i}
	}
	t.index = kdtree.New(pts, false)
	t.lastBuilt = len(t.nodes)
}

// add appends a configuration under the given parent and returns the new node's index.
func (t *burTree) add(parent int, q []float64) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{q: cloneConfig(q), parent: parent})
	if len(t.nodes) >= 2*t.lastBuilt {
		t.rebuild()
	} else {
		t.index.Insert(kdNode{q: t.nodes[idx].q, idx: idx}, false)
	}
	return idx
}

// nearest returns the index of the node minimizing Euclidean distance to q. Among equidistant
// nodes it returns the one the kd-tree search meets first, which is not necessarily the
// earliest-inserted.
func (t *burTree) nearest(q []float64) int {
	got, _ := t.index.Nearest(kdNode{q: q})
	return got.(kdNode).idx
}

func (t *burTree) q(i int) []float64 {
	return t.nodes[i].q
}

func (t *burTree) parent(i int) int {
	return t.nodes[i].parent
}

func (t *burTree) len() int {
	return len(t.nodes)
}

// kdNode couples a configuration with its arena index for kd-tree lookups. The scaffolding
// below mirrors gonum's kdtree.Points reference implementation.
type kdNode struct {
	q   []float64
	idx int
}

func (n kdNode) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return n.q[d] - c.(kdNode).q[d]
}

func (n kdNode) Dims() int {
	return len(n.q)
}

func (n kdNode) Distance(c kdtree.Comparable) float64 {
	other := c.(kdNode)
	var sum float64
	for i, v := range n.q {
		d := v - other.q[i]
		sum += d * d
	}
	return sum
}

type kdNodes []kdNode

func (n kdNodes) Index(i int) kdtree.Comparable { return n[i] }
func (n kdNodes) Len() int                      { return len(n) }
func (n kdNodes) Pivot(d kdtree.Dim) int        { return kdPlane{kdNodes: n, Dim: d}.pivot() }
func (n kdNodes) Slice(start, end int) kdtree.Interface {
	return n[start:end]
}

type kdPlane struct {
	kdtree.Dim
	kdNodes
}

func (p kdPlane) Less(i, j int) bool {
	return p.kdNodes[i].q[p.Dim] < p.kdNodes[j].q[p.Dim]
}

func (p kdPlane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.kdNodes = p.kdNodes[start:end]
	return p
}

func (p kdPlane) Swap(i, j int) {
	p.kdNodes[i], p.kdNodes[j] = p.kdNodes[j], p.kdNodes[i]
}
