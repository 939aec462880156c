package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/emerge/pkg/config"
	"github.com/matzehuels/emerge/pkg/observability"
	"github.com/matzehuels/emerge/pkg/render"
	"github.com/matzehuels/emerge/pkg/render/nodelink"
	"github.com/matzehuels/emerge/pkg/sim"
)

const (
	// defaultTicks is the number of ticks simulated by layout.
	defaultTicks = 500

	// progressChunk is the number of ticks between spinner updates.
	progressChunk = 50

	// settleThreshold is the largest per-tick move, in world units, at which
	// a layout is reported as settled.
	settleThreshold = 1e-3
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	graph   graphOpts
	output  string   // output file or base path
	formats []string // output formats: "json", "dot", "svg"
	ticks   int      // number of ticks to simulate
	scale   float64  // world units to points for dot and svg
}

// layoutCommand creates the layout command for headless layout runs.
func (c *CLI) layoutCommand() *cobra.Command {
	var formatsStr string
	opts := layoutOpts{ticks: defaultTicks, scale: 1}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Simulate without a view and write the final layout",
		Long: `Simulate without a view and write the final layout.

The layout command builds the selected graph, runs the simulation for a fixed
number of ticks and writes the final positions in every requested format:

  json  node positions, edges, physics constants and statistics
  dot   Graphviz source with every node pinned at its position
  svg   the DOT source drawn with the neato engine

Files are named <output>.<format>; without -o the graph name is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.ticks < 0 {
				return fmt.Errorf("invalid ticks: %d (must not be negative)", opts.ticks)
			}
			return runLayout(cmd.Context(), opts)
		},
	}

	addGraphFlags(cmd, &opts.graph)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (default: graph name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", opts.ticks, "number of ticks to simulate")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "points per world unit in dot and svg output")

	return cmd
}

// runLayout builds the graph, simulates it and writes the outputs.
func runLayout(ctx context.Context, opts layoutOpts) error {
	logger := loggerFromContext(ctx)

	s, cfg, err := newSimulation(ctx, opts.graph)
	if err != nil {
		return err
	}

	runID := uuid.New()
	logger.Debug("Starting layout", "run", runID, "ticks", opts.ticks, "integration", cfg.Physics.Integration)

	spinner := newSpinner(ctx, fmt.Sprintf("Simulating %d ticks...", opts.ticks))
	spinner.Start()
	prog := newProgress(logger)

	if err := simulate(ctx, s, opts.ticks, spinner); err != nil {
		spinner.StopWithError("Simulation cancelled")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Simulated %d ticks", s.Ticks()))

	job := outputJob{
		frame:  s.Frame(),
		stats:  s.Stats(),
		cfg:    cfg,
		name:   opts.graph.builder,
		runID:  runID,
		scale:  opts.scale,
		base:   basePath(opts.output, opts.graph.builder),
		format: opts.formats,
	}
	paths, err := writeOutputs(ctx, job)
	if err != nil {
		return err
	}

	settled := job.stats.MaxDisplacement < settleThreshold
	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(job.frame.Nodes), len(job.frame.Edges), job.stats.Ticks, settled)
	if job.stats.Rejected > 0 {
		printWarning("%d non-finite updates were rejected in the last tick", job.stats.Rejected)
	}
	printNewline()
	printNextStep("Watch it live", fmt.Sprintf("%s run --graph %s", appName, opts.graph.builder))

	return nil
}

// simulate advances s by n ticks in chunks, updating the spinner between
// chunks and stopping early when ctx is cancelled.
func simulate(ctx context.Context, s *sim.Simulation, n int, spinner *Spinner) error {
	for remaining := n; remaining > 0; {
		chunk := min(remaining, progressChunk)
		done, err := s.StepContext(ctx, chunk)
		remaining -= done
		if err != nil {
			return err
		}
		spinner.SetMessage("Simulating tick %d/%d...", n-remaining, n)
	}
	return nil
}

// =============================================================================
// Outputs
// =============================================================================

// outputJob is everything the output formats are rendered from.
type outputJob struct {
	frame  sim.Frame
	stats  sim.Stats
	cfg    config.Config
	name   string
	runID  uuid.UUID
	scale  float64
	base   string
	format []string
}

// writeOutputs renders every requested format concurrently and writes each
// to <base>.<format>. Paths are returned in format order.
func writeOutputs(ctx context.Context, job outputJob) ([]string, error) {
	logger := loggerFromContext(ctx)
	hooks := observability.Output()

	if dir := filepath.Dir(job.base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	start := time.Now()
	hooks.OnRenderStart(ctx, job.format)

	paths := make([]string, len(job.format))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range job.format {
		g.Go(func() error {
			data, err := renderFormat(gctx, format, job)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			path := job.base + "." + format
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}
			logger.Debugf("Generated %s: %d bytes", path, len(data))
			paths[i] = path
			return nil
		})
	}
	err := g.Wait()

	hooks.OnRenderComplete(ctx, job.format, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// renderFormat produces the bytes for one output format.
func renderFormat(ctx context.Context, format string, job outputJob) ([]byte, error) {
	switch format {
	case formatJSON:
		return render.RenderJSON(job.frame,
			render.WithRunID(job.runID),
			render.WithGraphName(job.name),
			render.WithPhysics(job.cfg.Physics),
			render.WithStats(job.stats))
	case formatDOT:
		return []byte(toDOT(job)), nil
	case formatSVG:
		return nodelink.RenderSVG(ctx, toDOT(job))
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func toDOT(job outputJob) string {
	return nodelink.ToDOT(job.frame, nodelink.Options{
		Scale:      job.scale,
		HideLabels: !job.cfg.View.Labels,
	})
}
