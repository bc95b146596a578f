package trace

import (
	"sort"

	"github.com/voltrace/voltrace/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// navigator accelerates "which daughter holds this point" queries with
// a bounding interval hierarchy over daughter placement boxes. Mothers
// with few daughters use a plain scan.
type navigator struct {
	daughters []*Placement
	boxes     []d3.Box
	root      *bihNode
}

// bihLeafSize is the daughter count below which a linear scan wins over
// tree descent.
const bihLeafSize = 4

type bihNode struct {
	box         d3.Box
	left, right *bihNode
	// leaf payload: indices into navigator.daughters
	leaf []int
}

func newNavigator(daughters []*Placement) *navigator {
	nav := &navigator{daughters: daughters}
	nav.boxes = make([]d3.Box, len(daughters))
	idx := make([]int, len(daughters))
	for i, d := range daughters {
		nav.boxes[i] = d3.Box(d.Bounds())
		idx[i] = i
	}
	if len(daughters) > bihLeafSize {
		nav.root = nav.build(idx)
	}
	return nav
}

func (nav *navigator) build(idx []int) *bihNode {
	node := &bihNode{box: nav.boxes[idx[0]]}
	for _, i := range idx[1:] {
		node.box = node.box.Extend(nav.boxes[i])
	}
	if len(idx) <= bihLeafSize {
		node.leaf = idx
		return node
	}
	// split at the centroid median of the largest axis
	size := node.box.Size()
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > size.X && size.Z > size.Y {
		axis = 2
	}
	center := func(i int) float64 {
		c := nav.boxes[i].Center()
		switch axis {
		case 0:
			return c.X
		case 1:
			return c.Y
		}
		return c.Z
	}
	sort.Slice(idx, func(a, b int) bool { return center(idx[a]) < center(idx[b]) })
	mid := len(idx) / 2
	node.left = nav.build(idx[:mid])
	node.right = nav.build(idx[mid:])
	return node
}

// findDaughter returns the daughter placement containing the point p
// (given in the mother frame) along with p mapped into the daughter
// frame, or nil when no daughter holds the point.
func (nav *navigator) findDaughter(p r3.Vec) (*Placement, r3.Vec) {
	if nav.root == nil {
		for i, d := range nav.daughters {
			if !nav.boxes[i].Contains(p) {
				continue
			}
			q := d.Transform().ApplyInverse(p)
			if d.Volume().Solid().Contains(q) {
				return d, q
			}
		}
		return nil, r3.Vec{}
	}
	return nav.descend(nav.root, p)
}

func (nav *navigator) descend(node *bihNode, p r3.Vec) (*Placement, r3.Vec) {
	if !node.box.Contains(p) {
		return nil, r3.Vec{}
	}
	if node.leaf != nil {
		for _, i := range node.leaf {
			if !nav.boxes[i].Contains(p) {
				continue
			}
			d := nav.daughters[i]
			q := d.Transform().ApplyInverse(p)
			if d.Volume().Solid().Contains(q) {
				return d, q
			}
		}
		return nil, r3.Vec{}
	}
	if d, q := nav.descend(node.left, p); d != nil {
		return d, q
	}
	return nav.descend(node.right, p)
}
