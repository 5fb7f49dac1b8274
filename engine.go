package catbook

import (
	"errors"
	"fmt"
)

// ErrUnknownMorphism is returned by Engine.Select for an id outside the
// engine's catalog. The viewer only ever offers catalog ids, so hitting
// this means a caller bug, not a user action.
var ErrUnknownMorphism = errors.New("catbook: unknown morphism id")

// State is an immutable snapshot of an engine after an operation.
// Error carries the not-composable message; it is ordinary data the
// viewer displays verbatim, not a failure of the call itself.
type State struct {
	Selection []string  `json:"selection"`
	Composite *Morphism `json:"composite,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Engine tracks a user's in-progress morphism selection over a fixed
// catalog and derives the composite arrow on demand.
//
// Selection holds 0, 1, or 2 morphism ids. A composite exists exactly
// when 2 morphisms are selected and they compose in at least one order.
// Composites are display-only: they never enter the catalog and are
// never selectable.
//
// An Engine is not safe for concurrent use; each composer widget owns
// its own instance.
type Engine struct {
	catalog   map[string]Morphism
	selection []string
	composite *Morphism
	errMsg    string
}

// NewEngine seeds an engine with the diagram's morphism catalog.
// The diagram is read once; later changes to it are not observed.
func NewEngine(d *Diagram) *Engine {
	catalog := make(map[string]Morphism, len(d.Morphisms))
	for _, m := range d.Morphisms {
		catalog[m.ID] = m
	}
	return &Engine{catalog: catalog}
}

// Select records a click on the morphism with the given id and returns
// the resulting state.
//
// From an empty selection the morphism becomes the sole pick. Clicking
// the sole pick again deselects it. Clicking a second, different
// morphism attempts composition in both orders, preferring the order
// that applies the first-selected morphism first; if neither order
// composes, the selection collapses to just the new morphism and the
// state carries a message naming both labels. Any click while 2 are
// selected starts over with the clicked morphism.
func (e *Engine) Select(id string) (State, error) {
	m, ok := e.catalog[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownMorphism, id)
	}

	switch len(e.selection) {
	case 0:
		e.selection = []string{id}
		e.composite = nil
		e.errMsg = ""

	case 1:
		firstID := e.selection[0]
		if firstID == id {
			// Toggle off.
			e.reset()
			break
		}
		first := e.catalog[firstID]
		if c, ok := Compose(first, m); ok {
			e.selection = []string{firstID, id}
			e.composite = &c
			e.errMsg = ""
		} else if c, ok := Compose(m, first); ok {
			e.selection = []string{id, firstID}
			e.composite = &c
			e.errMsg = ""
		} else {
			// The failed partner is dropped; the new click survives.
			e.selection = []string{id}
			e.composite = nil
			e.errMsg = fmt.Sprintf("%s and %s are not composable: target and source do not match in either order", first.Label, m.Label)
		}

	case 2:
		e.selection = []string{id}
		e.composite = nil
		e.errMsg = ""
	}

	return e.Snapshot(), nil
}

// Clear unconditionally resets the engine to the empty selection.
// Safe to call repeatedly from any state.
func (e *Engine) Clear() State {
	e.reset()
	return e.Snapshot()
}

// Snapshot returns a copy of the current state. Mutating the returned
// value does not affect the engine.
func (e *Engine) Snapshot() State {
	s := State{
		Selection: make([]string, len(e.selection)),
		Error:     e.errMsg,
	}
	copy(s.Selection, e.selection)
	if e.composite != nil {
		c := *e.composite
		s.Composite = &c
	}
	return s
}

func (e *Engine) reset() {
	e.selection = nil
	e.composite = nil
	e.errMsg = ""
}
