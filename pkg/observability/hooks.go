// Package observability provides hooks for metrics, tracing, and logging.
//
// The simulation core stays free of any observability backend. Consumers
// register hook implementations at startup and receive events about the
// simulation lifecycle and about output rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSimulationHooks(&tickLogger{})
//	    // ... run application
//	}
//
// The simulation driver calls hooks synchronously from Tick, so
// implementations must be cheap and must not call back into the simulation.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Simulation Hooks
// =============================================================================

// TickInfo describes one completed tick.
type TickInfo struct {
	Tick            int           // 1-based number of the tick that just finished
	Duration        time.Duration // wall time spent in the tick
	Springs         int           // edges that contributed attraction
	Repulsions      int           // pairs inside the cutoff that contributed repulsion
	Skipped         int           // coincident pairs skipped by the solver
	Rejected        int           // nodes whose update was rejected as non-finite
	MaxDisplacement float64       // largest distance a node moved
}

// SimulationHooks receives events from the simulation driver.
type SimulationHooks interface {
	// OnStart is called once when a simulation is created and its graph frozen.
	OnStart(nodeCount, edgeCount int)

	// OnTick is called after every tick.
	OnTick(info TickInfo)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events from headless output rendering.
type OutputHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSimulationHooks is a no-op implementation of SimulationHooks.
type NoopSimulationHooks struct{}

func (NoopSimulationHooks) OnStart(int, int) {}
func (NoopSimulationHooks) OnTick(TickInfo)  {}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnRenderStart(context.Context, []string) {}
func (NoopOutputHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	simulationHooks SimulationHooks = NoopSimulationHooks{}
	outputHooks     OutputHooks     = NoopOutputHooks{}
	hooksMu         sync.RWMutex
)

// SetSimulationHooks registers custom simulation hooks.
// This should be called once at application startup before any simulation is created.
func SetSimulationHooks(h SimulationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simulationHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Simulation returns the registered simulation hooks.
func Simulation() SimulationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simulationHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	simulationHooks = NoopSimulationHooks{}
	outputHooks = NoopOutputHooks{}
}

// =============================================================================
// Fan-out
// =============================================================================

// MultiSimulationHooks forwards every event to each hook in order.
type MultiSimulationHooks []SimulationHooks

func (m MultiSimulationHooks) OnStart(nodeCount, edgeCount int) {
	for _, h := range m {
		h.OnStart(nodeCount, edgeCount)
	}
}

func (m MultiSimulationHooks) OnTick(info TickInfo) {
	for _, h := range m {
		h.OnTick(info)
	}
}
