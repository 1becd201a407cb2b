package tween

// Epoch is the generation counter shared by everything that launches
// animations for one orchestrator. Advancing it invalidates every animation
// launched under an older generation.
type Epoch struct {
	gen uint64
}

// Current returns the current generation.
func (e *Epoch) Current() uint64 {
	return e.gen
}

// Advance starts a new generation and returns it.
func (e *Epoch) Advance() uint64 {
	e.gen++
	return e.gen
}

// Valid reports whether gen is still the current generation.
func (e *Epoch) Valid(gen uint64) bool {
	return e.gen == gen
}
