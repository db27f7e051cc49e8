package geocoding

import (
	"fmt"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
)

type entry struct {
	bounds gps.Rect
	place  *gps.Address
}

type ResultFunc func(*gps.Address, gps.Rect)

// quadtree spatially indexes resolved places by the area they cover, so a
// later lookup for a nearby coordinate can reuse the answer.
type quadtree struct {
	count  int
	Bounds gps.Rect

	root     *node
	capacity int
	maxDepth int
}

type node struct {
	bounds   gps.Rect
	quads    [4]*node
	entries  []entry
	capacity int
	depth    int
}

type Visitor interface {
	Begin(bounds gps.Rect)
	Level(depth int, bounds gps.Rect)
	Object(bounds gps.Rect)
	End()
}

func NewQuadTree(bounds gps.Rect) *quadtree {
	return &quadtree{Bounds: bounds, capacity: 20, maxDepth: 10}
}

func (qt *quadtree) InsertRect(r gps.Rect, place *gps.Address) {
	if !qt.Bounds.FullyContains(r) {
		panic(fmt.Sprintf("Rect %v not in bounds %v", r, qt.Bounds))
	}
	if qt.root == nil {
		qt.root = newNode(r, qt.capacity, qt.maxDepth)
	} else if !qt.root.fullyContains(r) {
		qt.root = qt.root.grow(r)
	}
	qt.root.add(r, place)
	qt.count++
}

func (qt *quadtree) Find(p gps.Point) (result []*gps.Address) {
	if qt.root == nil {
		return
	}
	qt.root.findFunc(p, func(place *gps.Address, _ gps.Rect) {
		result = append(result, place)
	})
	return
}

func (qt *quadtree) Size() int {
	return qt.count
}

func (qt *quadtree) Visit(v Visitor) {
	if qt.root == nil {
		return
	}
	v.Begin(qt.root.bounds)
	qt.root.visit(v)
	v.End()
}

func newNode(bounds gps.Rect, capacity int, depth int) *node {
	return &node{bounds: bounds, capacity: capacity, depth: depth}
}

func (n *node) fullyContains(r gps.Rect) bool {
	return n.bounds.FullyContains(r)
}

func (n *node) add(r gps.Rect, place *gps.Address) {
	e := entry{r, place}
	if n.quads[0] == nil {
		// Not subdivided yet
		if len(n.entries) < n.capacity || n.depth == 0 {
			n.entries = append(n.entries, e)
			return
		}
		n.split()
	}
	switch quad := n.choose(r); quad {
	case -1:
		n.entries = append(n.entries, e)
	default:
		n.quads[quad].add(r, place)
	}
}

func (n *node) split() {
	hw, hh := n.bounds.HalfSize()
	n.quads[0] = newNode(gps.RectFrom(n.bounds[0], n.bounds[1], n.bounds[0]+hw, n.bounds[1]+hh), n.capacity, n.depth-1)
	n.quads[1] = newNode(gps.RectFrom(n.bounds[0], n.bounds[1]+hh, n.bounds[0]+hw, n.bounds[3]), n.capacity, n.depth-1)
	n.quads[2] = newNode(gps.RectFrom(n.bounds[0]+hw, n.bounds[1], n.bounds[2], n.bounds[1]+hh), n.capacity, n.depth-1)
	n.quads[3] = newNode(gps.RectFrom(n.bounds[0]+hw, n.bounds[1]+hh, n.bounds[2], n.bounds[3]), n.capacity, n.depth-1)
	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		switch quad := n.choose(e.bounds); quad {
		case -1:
			// Straddles a quadrant boundary, stays on this level
			n.entries = append(n.entries, e)
		default:
			n.quads[quad].add(e.bounds, e.place)
		}
	}
}

func (n *node) grow(r gps.Rect) *node {
	root := n
	for !root.fullyContains(r) {
		var xmin, ymin float64
		dx0, dx1 := root.bounds.X0()-r.X0(), r.X1()-root.bounds.X1()
		var previousIndex int
		if dx0 > dx1 {
			xmin = root.bounds.X0() - root.bounds.W()
			previousIndex += 2
		} else {
			xmin = root.bounds.X0()
		}
		dy0, dy1 := root.bounds.Y0()-r.Y0(), r.Y1()-root.bounds.Y1()
		if dy0 > dy1 {
			ymin = root.bounds.Y0() - root.bounds.H()
			previousIndex++
		} else {
			ymin = root.bounds.Y0()
		}
		newRoot := newNode(gps.RectPointSize(xmin, ymin, root.bounds.W()*2, root.bounds.H()*2), n.capacity, root.depth+1)
		for i := 0; i < 4; i++ {
			if i == previousIndex {
				newRoot.quads[i] = root
			} else {
				dx := float64(i/2) * root.bounds.W()
				dy := float64(i%2) * root.bounds.H()
				bounds := gps.RectPointSize(xmin+dx, ymin+dy, root.bounds.W(), root.bounds.H())
				newRoot.quads[i] = newNode(bounds, n.capacity, root.depth)
			}
		}
		root = newRoot
	}
	return root
}

func (n *node) choose(r gps.Rect) int {
	for i := 0; i < 4; i++ {
		if n.quads[i].bounds.FullyContains(r) {
			return i
		}
	}
	return -1
}

func (n *node) findFunc(p gps.Point, f ResultFunc) {
	if !p.In(n.bounds) {
		return
	}
	for _, e := range n.entries {
		if p.In(e.bounds) {
			f(e.place, e.bounds)
		}
	}
	if n.quads[0] != nil {
		quad := 0
		dx, dy := p.X()-(n.bounds[0]+n.bounds.W()/2), p.Y()-(n.bounds[1]+n.bounds.H()/2)
		if dx > 0 {
			quad += 2
		}
		if dy > 0 {
			quad++
		}
		n.quads[quad].findFunc(p, f)
	}
}

func (n *node) visit(v Visitor) {
	v.Level(n.depth, n.bounds)
	for _, e := range n.entries {
		v.Object(e.bounds)
	}
	if n.quads[0] != nil {
		for i := range n.quads {
			n.quads[i].visit(v)
		}
	}
}
