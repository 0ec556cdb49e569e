package tlayout

import (
	"math"

	"github.com/richinsley/gexfviz/graphmodel"
)

// overlapSweep is one row of spec.md §4.3's overlap-removal table.
type overlapSweep struct {
	maxIterations int
	margin        float64
	speed         float64
}

func overlapSweeps(cfg Config) []overlapSweep {
	f := cfg.IterationsFactor
	return []overlapSweep{
		{maxIterations: int(120 * f), margin: 0.9, speed: 8},
		{maxIterations: int(80 * f), margin: 0.6, speed: 4},
		{maxIterations: int(40 * f), margin: 0.3, speed: 1},
	}
}

const overlapGridSize = 64
const overlapRatio = 1.05

// runOverlapSweep repeatedly nudges overlapping node pairs apart until no
// pair violates distance(i,j) >= (size(i)+size(j))*ratio + margin, or
// maxIterations is exhausted. A uniform grid (at most gridSize x gridSize
// cells over the current bounding box, each cell at least as wide as the
// largest required separation) limits pair checks to same/adjacent cells.
func runOverlapSweep(g *graphmodel.Graph, sweep overlapSweep) {
	nodes := g.Nodes()
	n := len(nodes)
	if n < 2 {
		return
	}
	maxSize := 0.0
	for _, nd := range nodes {
		if nd.Size > maxSize {
			maxSize = nd.Size
		}
	}
	reach := 2*maxSize*overlapRatio + sweep.margin

	// Forward-only neighbor offsets: combined with "same cell" handling
	// below, this visits every unordered cell pair exactly once.
	forwardOffsets := [][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

	for iter := 0; iter < sweep.maxIterations; iter++ {
		grid, _, _, _, _ := buildGrid(nodes, overlapGridSize, reach)
		moved := false

		for cellKey, members := range grid {
			for a := 0; a < len(members); a++ {
				for b := a + 1; b < len(members); b++ {
					if pushApart(nodes[members[a]], nodes[members[b]], sweep.margin) {
						moved = true
					}
				}
			}
			for _, off := range forwardOffsets {
				neighborKey := [2]int{cellKey[0] + off[0], cellKey[1] + off[1]}
				neighbors, ok := grid[neighborKey]
				if !ok {
					continue
				}
				for _, i := range members {
					for _, j := range neighbors {
						if pushApart(nodes[i], nodes[j], sweep.margin) {
							moved = true
						}
					}
				}
			}
		}
		if !moved {
			break
		}
	}
}

// pushApart moves i and j apart (evenly split) if they violate the minimum
// separation, returning whether a move happened.
func pushApart(i, j *graphmodel.Node, margin float64) bool {
	dx := j.X - i.X
	dy := j.Y - i.Y
	d := math.Hypot(dx, dy)
	required := (i.Size+j.Size)*overlapRatio + margin
	if d >= required {
		return false
	}
	if d < 1e-9 {
		// Degenerate coincident pair: nudge along a fixed axis.
		dx, dy, d = 1, 0, 1
	}
	ux, uy := dx/d, dy/d
	overlap := (required - d) / 2
	i.X -= ux * overlap
	i.Y -= uy * overlap
	j.X += ux * overlap
	j.Y += uy * overlap
	return true
}

// buildGrid buckets nodes into at most gridSize x gridSize cells over their
// current bounding box; no cell side is smaller than minCell.
func buildGrid(nodes []*graphmodel.Node, gridSize int, minCell float64) (map[[2]int][]int, float64, float64, float64, float64) {
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for _, nd := range nodes {
		if nd.X < minX {
			minX = nd.X
		}
		if nd.X > maxX {
			maxX = nd.X
		}
		if nd.Y < minY {
			minY = nd.Y
		}
		if nd.Y > maxY {
			maxY = nd.Y
		}
	}
	w := maxX - minX
	h := maxY - minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	cellW := math.Max(w/float64(gridSize), minCell)
	cellH := math.Max(h/float64(gridSize), minCell)

	grid := make(map[[2]int][]int)
	for i, nd := range nodes {
		cx := int((nd.X - minX) / cellW)
		cy := int((nd.Y - minY) / cellH)
		key := [2]int{cx, cy}
		grid[key] = append(grid[key], i)
	}
	return grid, minX, minY, cellW, cellH
}
