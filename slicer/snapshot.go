package slicer

func generateSnapshots(format TimeFormat, repr TimeRepresentation, dateMin, dateMax, rng, step float64, nodes []rawNode, edges []rawEdge, nodeDescs, edgeDescs []AttrDescriptor) ([]Snapshot, error) {
	if rng <= 0 || step < 0 {
		return nil, nil
	}

	nodeActivity := make([]elementActivity, len(nodes))
	for i, n := range nodes {
		act, err := newElementActivity(format, repr, n.Start, n.End, n.Timestamp, n.Spells)
		if err != nil {
			return nil, err
		}
		nodeActivity[i] = act
	}
	edgeActivity := make([]elementActivity, len(edges))
	for i, e := range edges {
		act, err := newElementActivity(format, repr, e.Start, e.End, e.Timestamp, e.Spells)
		if err != nil {
			return nil, err
		}
		edgeActivity[i] = act
	}

	var snaps []Snapshot
	for k := 0; ; k++ {
		start := dateMin + float64(k)*step
		if start >= dateMax {
			break
		}
		end := start + rng
		slice := intervalT{Start: start, End: end}

		activeIDs := make(map[string]bool)
		var views []NodeView
		for i, n := range nodes {
			if !nodeActivity[i].activeIn(slice) {
				continue
			}
			activeIDs[n.ID] = true
			color, hasColor := parseVizColor(n.Color)
			views = append(views, NodeView{
				ID:       n.ID,
				Label:    n.Label,
				Attrs:    projectAttrs(nodeDescs, format, n.AttValues, slice),
				Color:    color,
				HasColor: hasColor,
			})
		}

		var edgeViews []EdgeView
		for i, e := range edges {
			if !edgeActivity[i].activeIn(slice) {
				continue
			}
			if !activeIDs[e.Source] || !activeIDs[e.Target] {
				continue
			}
			edgeViews = append(edgeViews, EdgeView{
				Source:   e.Source,
				Target:   e.Target,
				Directed: e.Type != "undirected",
				Attrs:    projectAttrs(edgeDescs, format, e.AttValues, slice),
			})
		}

		snaps = append(snaps, Snapshot{
			Index: k,
			Start: start,
			End:   end,
			Nodes: views,
			Edges: edgeViews,
		})
	}
	return snaps, nil
}
