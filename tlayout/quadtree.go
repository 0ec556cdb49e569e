package tlayout

// quadTree is a Barnes-Hut spatial index over node positions, used to
// approximate the O(n^2) anti-collision repulsion force in O(n log n).
// Built fresh once per FA2 iteration since positions move every iteration.
type quadTree struct {
	x0, y0, x1, y1 float64 // bounding box
	cx, cy         float64 // center of mass
	mass           float64
	count          int

	// leaf data, valid when count == 1
	px, py float64

	children [4]*quadTree
}

type massPoint struct {
	id     string
	x, y   float64
	mass   float64
}

func buildQuadTree(points []massPoint) *quadTree {
	if len(points) == 0 {
		return &quadTree{}
	}
	minX, minY := points[0].x, points[0].y
	maxX, maxY := points[0].x, points[0].y
	for _, p := range points {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}
	// Pad to a non-degenerate square so a single-point or colinear input
	// still subdivides without infinite recursion.
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	pad := 0.001 * (w + h)
	root := &quadTree{x0: minX - pad, y0: minY - pad, x1: maxX + pad, y1: maxY + pad}
	for _, p := range points {
		root.insert(p)
	}
	return root
}

func (q *quadTree) insert(p massPoint) {
	if q.count == 0 {
		q.count = 1
		q.px, q.py = p.x, p.y
		q.mass = p.mass
		q.cx, q.cy = p.x, p.y
		return
	}
	if q.count == 1 && q.children[0] == nil {
		// Split: re-insert the existing leaf point alongside the new one.
		existing := massPoint{x: q.px, y: q.py, mass: q.mass}
		q.subdivide()
		q.insertInto(existing)
		q.insertInto(p)
		q.count = 2
		q.recomputeMass()
		return
	}
	q.insertInto(p)
	q.count++
	q.recomputeMass()
}

func (q *quadTree) subdivide() {
	mx := (q.x0 + q.x1) / 2
	my := (q.y0 + q.y1) / 2
	q.children[0] = &quadTree{x0: q.x0, y0: q.y0, x1: mx, y1: my}
	q.children[1] = &quadTree{x0: mx, y0: q.y0, x1: q.x1, y1: my}
	q.children[2] = &quadTree{x0: q.x0, y0: my, x1: mx, y1: q.y1}
	q.children[3] = &quadTree{x0: mx, y0: my, x1: q.x1, y1: q.y1}
}

func (q *quadTree) insertInto(p massPoint) {
	mx := (q.x0 + q.x1) / 2
	my := (q.y0 + q.y1) / 2
	var idx int
	switch {
	case p.x < mx && p.y < my:
		idx = 0
	case p.x >= mx && p.y < my:
		idx = 1
	case p.x < mx && p.y >= my:
		idx = 2
	default:
		idx = 3
	}
	q.children[idx].insert(p)
}

func (q *quadTree) recomputeMass() {
	totalMass := 0.0
	cx, cy := 0.0, 0.0
	for _, c := range q.children {
		if c == nil || c.count == 0 {
			continue
		}
		totalMass += c.mass
		cx += c.cx * c.mass
		cy += c.cy * c.mass
	}
	if totalMass > 0 {
		cx /= totalMass
		cy /= totalMass
	}
	q.mass, q.cx, q.cy = totalMass, cx, cy
}

// width is used against theta to decide whether a node is "far enough" to
// approximate as a single mass point.
func (q *quadTree) width() float64 { return q.x1 - q.x0 }
