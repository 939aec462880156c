package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/emerge/pkg/config"
	"github.com/matzehuels/emerge/pkg/sim"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	graph    graphOpts
	fps      int  // overrides view.fps when positive
	ticks    int  // stop ticking after this many ticks; 0 runs forever
	noLabels bool // hide node labels
}

// runCommand creates the run command, which animates the simulation in the
// terminal.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Animate the simulation in the terminal",
		Long: `Animate the simulation in the terminal.

The run command builds the selected graph and advances the simulation once per
frame, redrawing the layout each time. The view follows the layout until you
pan or zoom; press f to follow again.

Keys:
  space       pause or resume
  n           advance one tick while paused
  arrows/hjkl pan
  + / -       zoom in / out
  f           fit the layout to the screen
  q           quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.fps < 0 || opts.fps > config.MaxFPS {
				return fmt.Errorf("invalid fps: %d (must be within 1-%d)", opts.fps, config.MaxFPS)
			}
			if opts.ticks < 0 {
				return fmt.Errorf("invalid ticks: %d (must not be negative)", opts.ticks)
			}
			return runLive(cmd.Context(), opts)
		},
	}

	addGraphFlags(cmd, &opts.graph)
	cmd.Flags().IntVar(&opts.fps, "fps", 0, fmt.Sprintf("frames per second (default: view.fps, %d)", config.DefaultFPS))
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", 0, "stop after this many ticks (0: run until quit)")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "hide node labels")

	return cmd
}

// runLive builds the simulation and hands it to the live view until the user
// quits or ctx is cancelled.
func runLive(ctx context.Context, opts runOpts) error {
	s, cfg, err := newSimulation(ctx, opts.graph,
		// The alternate screen owns the terminal while the view runs.
		sim.WithLogger(log.New(io.Discard)))
	if err != nil {
		return err
	}

	view := cfg.View
	if opts.fps > 0 {
		view.FPS = opts.fps
	}
	if opts.noLabels {
		view.Labels = false
	}

	p := tea.NewProgram(newLiveModel(s, view, opts.ticks), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("live view: %w", err)
	}

	fm, ok := final.(liveModel)
	if !ok {
		return nil
	}
	st := fm.sim.Stats()
	printSuccess("Stopped after %d ticks", st.Ticks)
	printStats(s.State().Len(), len(s.Edges()), st.Ticks, st.MaxDisplacement < settleThreshold)
	return nil
}
