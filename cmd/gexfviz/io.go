package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/richinsley/gexfviz/graphmodel"
	"github.com/richinsley/gexfviz/slicer"
)

// writePNG encodes img to path, creating the file fresh each time.
func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// snapshotDump is the -dump-json companion to a rendered frame: the laid-out
// node positions and sizes, for debugging layout behavior without rendering.
type snapshotDump struct {
	Index int                `json:"index"`
	Start float64            `json:"start"`
	End   float64            `json:"end"`
	Nodes []snapshotDumpNode `json:"nodes"`
}

type snapshotDumpNode struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

func writeSnapshotJSON(outDir string, snap slicer.Snapshot, g *graphmodel.Graph) error {
	dump := snapshotDump{Index: snap.Index, Start: snap.Start, End: snap.End}
	for _, n := range g.Nodes() {
		dump.Nodes = append(dump.Nodes, snapshotDumpNode{ID: n.ID, X: n.X, Y: n.Y, Size: n.Size})
	}

	path := filepath.Join(outDir, fmt.Sprintf("snapshot-%05d.json", snap.Index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
