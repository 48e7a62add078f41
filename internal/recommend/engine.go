package recommend

import "sync/atomic"

// Engine holds the current Model behind an atomic pointer. Requests read one
// snapshot for their whole lifetime; Swap publishes a freshly built Model to
// new requests without disturbing in-flight ones.
type Engine struct {
	model atomic.Pointer[Model]
}

// NewEngine creates an engine serving the given model.
func NewEngine(model *Model) *Engine {
	e := &Engine{}
	e.model.Store(model)
	return e
}

// Current returns the model snapshot new requests should use.
func (e *Engine) Current() *Model { return e.model.Load() }

// Swap atomically replaces the served model.
func (e *Engine) Swap(model *Model) { e.model.Store(model) }
