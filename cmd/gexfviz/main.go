// Command gexfviz renders a GEXF 1.3 dynamic graph to one PNG frame per
// sliding-window snapshot: parse (slicer) -> temporal layout (tlayout) ->
// rasterize (raster) -> PNG encode, one snapshot at a time.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/richinsley/gexfviz/graphmodel"
	"github.com/richinsley/gexfviz/internal/logging"
	"github.com/richinsley/gexfviz/raster"
	"github.com/richinsley/gexfviz/slicer"
	"github.com/richinsley/gexfviz/tlayout"
)

type cliOptions struct {
	input            string
	outDir           string
	rangeVal         float64
	hasRange         bool
	stepVal          float64
	hasStep          bool
	renderingDPI     float64
	outputDPI        float64
	widthMM          float64
	heightMM         float64
	logDir           string
	compatStepBug    bool
	parallelSnaps    int
	dumpJSON         bool
	hillshade        bool
	hypsometric      bool
}

func procCLI() cliOptions {
	var opt cliOptions
	input := flag.String("input", "", "Path to the GEXF 1.3 input document (required)")
	out := flag.String("out", "./out", "Output directory for rendered PNG frames")
	rng := flag.Float64("range", 0, "Snapshot window width, in the document's time units (0 = format default)")
	step := flag.Float64("step", 0, "Snapshot window step, in the document's time units (0 = format default)")
	renderingDPI := flag.Float64("rendering-dpi", 96, "DPI used for layout/rasterization internal resolution")
	outputDPI := flag.Float64("output-dpi", 96, "DPI of the final encoded PNG")
	widthMM := flag.Float64("width-mm", 300, "Canvas width in millimetres")
	heightMM := flag.Float64("height-mm", 300, "Canvas height in millimetres")
	logDir := flag.String("log-dir", "./log", "Directory for the structured run log")
	compatStepBug := flag.Bool("compat-step-bug", false, "Reproduce the legacy bug where -step silently mirrors -range")
	parallelSnaps := flag.Int("parallel-snapshots", 1, "Number of snapshots to render concurrently")
	dumpJSON := flag.Bool("dump-json", false, "Also write each snapshot's laid-out graph as JSON alongside its PNG")
	hillshade := flag.Bool("hillshade", false, "Enable hillshaded heatmap background")
	hypsometric := flag.Bool("hypsometric", false, "Color the heatmap background with a hypsometric gradient")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		fmt.Println("  gexfviz -input FILE [OPTIONS]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	opt.input = *input
	opt.outDir = *out
	opt.rangeVal, opt.hasRange = *rng, *rng != 0
	opt.stepVal, opt.hasStep = *step, *step != 0
	opt.renderingDPI = *renderingDPI
	opt.outputDPI = *outputDPI
	opt.widthMM = *widthMM
	opt.heightMM = *heightMM
	opt.logDir = *logDir
	opt.compatStepBug = *compatStepBug
	opt.parallelSnaps = *parallelSnaps
	opt.dumpJSON = *dumpJSON
	opt.hillshade = *hillshade
	opt.hypsometric = *hypsometric
	return opt
}

func main() {
	opt := procCLI()
	runID := uuid.NewString()

	logger, closeLog, err := logging.Setup(opt.logDir, runID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gexfviz: setting up logging:", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting run", "input", opt.input, "out", opt.outDir, "run_id", runID)

	if err := os.MkdirAll(opt.outDir, 0o755); err != nil {
		logger.Error("creating output directory", "error", err)
		os.Exit(1)
	}

	sliceOpts := slicer.Options{CompatStepBug: opt.compatStepBug}
	if opt.hasRange {
		sliceOpts.Range = &opt.rangeVal
	}
	if opt.hasStep {
		sliceOpts.Step = &opt.stepVal
	}

	result, err := slicer.Parse(opt.input, sliceOpts)
	if err != nil {
		// InputSchema errors are fatal: the document itself is unusable.
		logger.Error("parsing input document", "error", err)
		os.Exit(1)
	}
	logger.Info("parsed document", "snapshots", len(result.Snapshots),
		"time_format", result.TimeFormat, "time_representation", result.TimeRepresentation)

	rasterCfg := raster.DefaultConfig()
	rasterCfg.RenderingDPI = opt.renderingDPI
	rasterCfg.OutputDPI = opt.outputDPI
	rasterCfg.WidthMM = opt.widthMM
	rasterCfg.HeightMM = opt.heightMM
	rasterCfg.Hillshade = opt.hillshade
	rasterCfg.HypsometricGradient = opt.hypsometric

	bar := progressbar.Default(int64(len(result.Snapshots)), "rendering snapshots")

	// Temporal layout carries state between consecutive snapshots (the
	// PositionIndex seeding the next from the previous), so snapshots are
	// laid out strictly in order even when parallel-snapshots > 1 only
	// parallelizes the independent rasterize+encode tail of the pipeline.
	layoutCfg := tlayout.DefaultConfig()
	var prevIndex *tlayout.PositionIndex

	sem := make(chan struct{}, maxInt(1, opt.parallelSnaps))
	var wg sync.WaitGroup

	for _, snap := range result.Snapshots {
		g, err := snap.BuildGraph()
		if err != nil {
			logger.Error("building snapshot graph", "snapshot", snap.Index, "error", err)
			bar.Add(1)
			continue
		}

		nextIndex, layoutErr := tlayout.Run(prevIndex, g, layoutCfg)
		if layoutErr != nil {
			// SnapshotComputation: a pass failed but others still ran;
			// log and keep going with whatever state landed on the nodes.
			logger.Warn("temporal layout pass failure", "snapshot", snap.Index, "error", layoutErr)
		}
		prevIndex = nextIndex

		wg.Add(1)
		sem <- struct{}{}
		go func(snap slicer.Snapshot, g *graphmodel.Graph) {
			defer wg.Done()
			defer func() { <-sem }()
			renderSnapshot(logger, snap, g, rasterCfg, opt)
			bar.Add(1)
		}(snap, g)
	}
	wg.Wait()

	logger.Info("run complete", "run_id", runID)
}

func renderSnapshot(logger *slog.Logger, snap slicer.Snapshot, g *graphmodel.Graph, cfg raster.Config, opt cliOptions) {
	img, err := raster.Render(g, cfg)
	if err != nil {
		// RenderFailure: log and move to the next snapshot.
		logger.Warn("render failure", "snapshot", snap.Index, "error", err)
		return
	}

	outPath := filepath.Join(opt.outDir, fmt.Sprintf("snapshot-%05d.png", snap.Index))
	if err := writePNG(outPath, img); err != nil {
		// OutputIO: log and move on; one bad write shouldn't abort the run.
		logger.Warn("writing output PNG", "snapshot", snap.Index, "path", outPath, "error", err)
		return
	}

	if opt.dumpJSON {
		if err := writeSnapshotJSON(opt.outDir, snap, g); err != nil {
			logger.Warn("writing snapshot JSON", "snapshot", snap.Index, "error", err)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
