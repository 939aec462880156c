package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/emerge/pkg/config"
	"github.com/matzehuels/emerge/pkg/render/canvas"
	"github.com/matzehuels/emerge/pkg/sim"
)

const (
	panStep     = 4    // columns moved per pan key press
	zoomStep    = 1.25 // magnification per zoom key press
	fitMargin   = 2    // cells kept free around a fitted layout
	statusLines = 2    // rows below the canvas: status and key help
)

const helpLine = "space pause · n step · ←↑↓→/hjkl pan · +/- zoom · f fit · q quit"

// =============================================================================
// LiveModel - Animated simulation view
// =============================================================================

// frameMsg drives the animation: one tick and redraw per message.
type frameMsg time.Time

// liveModel is the bubbletea model for the live view. The simulation is
// shared by pointer; every other field is copied on update.
type liveModel struct {
	sim      *sim.Simulation
	interval time.Duration
	maxTicks int // 0 means unlimited

	vp     canvas.Viewport
	opts   canvas.Options
	styles map[canvas.Style]lipgloss.Style

	paused bool
	follow bool // refit the viewport to the layout after every tick
}

// newLiveModel creates a live view of s drawn with the view settings.
func newLiveModel(s *sim.Simulation, view config.View, maxTicks int) liveModel {
	m := liveModel{
		sim:      s,
		interval: time.Second / time.Duration(max(view.FPS, 1)),
		maxTicks: maxTicks,
		vp:       canvas.NewViewport(80, 24-statusLines),
		opts:     canvas.Options{Labels: view.Labels, Arrows: view.Arrows, NodeGlyph: '●'},
		styles:   canvas.DefaultStyles(),
		follow:   true,
	}
	m.fit()
	return m
}

func (m liveModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m liveModel) nextFrame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Resize(msg.Width, max(msg.Height-statusLines, 1))
		if m.follow {
			m.fit()
		}
	case frameMsg:
		if !m.paused {
			m.advance()
		}
		return m, m.nextFrame()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m liveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "space":
		m.paused = !m.paused
	case "n":
		if m.paused {
			m.advance()
		}
	case "left", "h":
		m.pan(-panStep, 0)
	case "right", "l":
		m.pan(panStep, 0)
	case "up", "k":
		m.pan(0, -panStep/2)
	case "down", "j":
		m.pan(0, panStep/2)
	case "+", "=":
		m.vp.Zoom(zoomStep)
		m.follow = false
	case "-", "_":
		m.vp.Zoom(1 / zoomStep)
		m.follow = false
	case "f":
		m.follow = true
		m.fit()
	}
	return m, nil
}

// advance runs one tick unless the tick limit is reached.
func (m *liveModel) advance() {
	if m.finished() {
		return
	}
	m.sim.Tick()
	if m.follow {
		m.fit()
	}
}

func (m liveModel) finished() bool {
	return m.maxTicks > 0 && m.sim.Ticks() >= m.maxTicks
}

func (m *liveModel) pan(dx, dy int) {
	m.vp.Pan(dx, dy)
	m.follow = false
}

func (m *liveModel) fit() {
	m.vp.Fit(m.sim.State().Bounds(), fitMargin)
}

func (m liveModel) View() string {
	var b strings.Builder
	b.WriteString(canvas.Render(m.sim.Frame(), m.vp, m.opts).Render(m.styles))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(helpLine))
	return b.String()
}

// status renders the line below the canvas.
func (m liveModel) status() string {
	st := m.sim.Stats()

	state := StyleTitle.Render("running")
	switch {
	case m.finished():
		state = styleSettled.Render("done")
	case m.paused:
		state = StyleWarning.Render("paused")
	}

	parts := []string{
		state,
		StyleDim.Render("tick ") + StyleNumber.Render(fmt.Sprintf("%d", st.Ticks)),
		StyleDim.Render("max move ") + StyleNumber.Render(fmt.Sprintf("%.4f", st.MaxDisplacement)),
		StyleDim.Render("force ") + StyleNumber.Render(fmt.Sprintf("%.1f", st.TotalForce)),
		StyleDim.Render("zoom ") + StyleNumber.Render(fmt.Sprintf("%.2f", 1/m.vp.Scale)),
	}
	if !m.follow {
		parts = append(parts, StyleDim.Render("free view"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
