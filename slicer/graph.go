package slicer

import "github.com/richinsley/gexfviz/graphmodel"

// BuildGraph materializes a Snapshot's node/edge views into a graphmodel.Graph
// ready for the temporal layout and rasterizer stages. Position and size are
// left at their zero value; tlayout.Run fills them in.
func (s Snapshot) BuildGraph() (*graphmodel.Graph, error) {
	g := graphmodel.New()
	for _, nv := range s.Nodes {
		n, err := g.AddNode(nv.ID)
		if err != nil {
			return nil, err
		}
		n.Label = nv.Label
		n.Attrs = nv.Attrs
		n.Color = nv.Color
		n.HasColor = nv.HasColor
	}
	for _, ev := range s.Edges {
		e, err := g.AddEdge(ev.Source, ev.Target, ev.Directed)
		if err != nil {
			return nil, err
		}
		e.Attrs = ev.Attrs
		e.Opacity = 1
	}
	return g, nil
}
