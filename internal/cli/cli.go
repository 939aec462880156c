package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/emerge/pkg/builder"
	"github.com/matzehuels/emerge/pkg/config"
	"github.com/matzehuels/emerge/pkg/graph"
	"github.com/matzehuels/emerge/pkg/placement"
	"github.com/matzehuels/emerge/pkg/sim"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "emerge"

	// defaultBuilder is the topology used when --graph is not given.
	defaultBuilder = "sample"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Graph Setup
// =============================================================================

// graphOpts holds the flags shared by every command that builds a graph.
type graphOpts struct {
	config  string
	builder string
	params  builder.Params
}

// addGraphFlags registers the graph selection flags on cmd.
func addGraphFlags(cmd *cobra.Command, o *graphOpts) {
	o.builder = defaultBuilder
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVarP(&o.builder, "graph", "g", o.builder, "graph builder: "+strings.Join(builder.Names(), ", "))
	cmd.Flags().Uint64Var(&o.params.Seed, "seed", 0, "seed for the random builder (default: placement seed)")
	cmd.Flags().IntVar(&o.params.Value, "value", 0, "value decomposed by the factor builder")
	cmd.Flags().IntVar(&o.params.Nodes, "nodes", 0, "node count for the random builder")
	cmd.Flags().IntVar(&o.params.Edges, "edges", 0, "edge count for the random builder")
	cmd.Flags().StringVar(&o.params.Input, "input", "", "CSV file for the countries builder")
}

// loadConfig reads the config file at path, or returns the defaults when
// path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newGraph builds the named topology with placement and radius taken from cfg.
func newGraph(cfg config.Config, name string, p builder.Params) (*graph.Graph, error) {
	b, err := builder.Get(name)
	if err != nil {
		return nil, err
	}
	placer, err := placement.New(cfg.Placement)
	if err != nil {
		return nil, err
	}
	if p.Seed == 0 {
		p.Seed = cfg.Placement.Seed
	}

	g := graph.New(graph.WithPlacer(placer), graph.WithRadius(cfg.View.NodeRadius))
	if err := b.Build(g, p); err != nil {
		return nil, fmt.Errorf("build %s graph: %w", b.Name, err)
	}
	return g, nil
}

// newSimulation loads the config, builds the graph and starts a simulation
// on it. The simulation logs through the context logger unless simOpts
// replace it.
func newSimulation(ctx context.Context, o graphOpts, simOpts ...sim.Option) (*sim.Simulation, config.Config, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(o.config)
	if err != nil {
		return nil, config.Config{}, err
	}
	if o.config != "" {
		logger.Debugf("Loaded config %s", o.config)
	}

	g, err := newGraph(cfg, o.builder, o.params)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger.Infof("Built %s graph: %d nodes, %d edges", o.builder, g.NodeCount(), g.EdgeCount())

	s, err := sim.New(g, cfg.Physics, append([]sim.Option{sim.WithLogger(logger)}, simOpts...)...)
	if err != nil {
		return nil, config.Config{}, err
	}
	return s, cfg, nil
}

// =============================================================================
// Output Helpers
// =============================================================================

const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// validFormats is the set of supported layout output formats.
var validFormats = map[string]bool{formatJSON: true, formatDOT: true, formatSVG: true}

// parseFormats parses a comma-separated format string into a slice,
// dropping repeats and keeping first-seen order. If empty, defaults to ["json"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	if len(formats) == 0 {
		return fmt.Errorf("no output format given")
	}
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'json', 'dot', or 'svg')", f)
		}
	}
	return nil
}

// basePath derives the output base path. If output is empty the graph name is
// used; a known format extension on output is stripped.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
