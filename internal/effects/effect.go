// Package effects implements the animation effect catalog and the manager
// that drives it. Every effect is a small state machine with two phases per
// frame: Recalc advances animation state for the current frame time, Render
// draws that state into a pixel matrix. The split keeps state updates
// independent of how often or where an effect is drawn.
//
// Effects that need randomness own a ledmath.Rand seeded by the caller, so a
// capture with a fixed seed replays the exact same frames.
package effects

import (
	"image"
	"time"

	"github.com/alphamatrix/ledgrid/internal/matrix"
)

// Effect is one layer of a frame. Recalc is called once per frame with the
// frame timestamp, then Render once per frame with the target matrix.
// Managers call all Recalcs before any Render.
type Effect interface {
	Recalc(now time.Duration)
	Render(m *matrix.Matrix)
}

// Manager holds an ordered effect stack. Slice order is z-order: later
// effects draw over earlier ones.
type Manager struct {
	// ClearEachFrame wipes the matrix before rendering a frame. Trail
	// effects rely on switching it off.
	ClearEachFrame bool

	effects []Effect
}

// NewManager returns an empty manager that clears the matrix each frame.
func NewManager() *Manager {
	return &Manager{ClearEachFrame: true}
}

// Add appends an effect to the top of the stack.
func (g *Manager) Add(e Effect) {
	if e == nil {
		return
	}
	g.effects = append(g.effects, e)
}

// Len returns the number of effects in the stack.
func (g *Manager) Len() int { return len(g.effects) }

// Effects returns the stack in z-order.
func (g *Manager) Effects() []Effect { return g.effects }

// Clear removes all effects.
func (g *Manager) Clear() { g.effects = nil }

// Frame renders one complete frame at the given timestamp: optional clear,
// recalc pass over the whole stack, then render pass in z-order.
func (g *Manager) Frame(now time.Duration, m *matrix.Matrix) {
	if g.ClearEachFrame {
		m.Clear()
	}
	for _, e := range g.effects {
		e.Recalc(now)
	}
	for _, e := range g.effects {
		e.Render(m)
	}
}

// millis folds a frame timestamp onto the 16-bit millisecond clock the
// animation state machines run on. The wraparound every ~65 seconds is part
// of the timing model; delta checks use uint16 subtraction so they survive it.
func millis(now time.Duration) uint16 {
	return uint16(now / time.Millisecond)
}

// target resolves an effect's destination rect against the matrix. The zero
// rect selects the whole matrix.
func target(m *matrix.Matrix, r image.Rectangle) image.Rectangle {
	if r == (image.Rectangle{}) {
		return m.Bounds()
	}
	return r.Intersect(m.Bounds())
}
