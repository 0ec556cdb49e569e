package tlayout

import (
	"math"

	"github.com/richinsley/gexfviz/graphmodel"
)

// applySizing writes each node's rendered size from its in-degree, per
// spec.md §4.3: size = sqrt(sizeMin + sizeFactor * inDegree^sizePower).
func applySizing(g *graphmodel.Graph, cfg Config) {
	for _, n := range g.Nodes() {
		d := float64(g.InDegree(n.ID))
		n.Size = math.Sqrt(cfg.SizeMin + cfg.SizeFactor*math.Pow(d, cfg.SizePower))
	}
}
