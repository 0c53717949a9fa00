package domain

// Effect is a presentation cue emitted alongside a state change. The core
// never renders effects; callers decide what to do with them.
type Effect struct {
	Kind     EffectKind `json:"kind"`
	Category string     `json:"category,omitempty"`
	Amount   int        `json:"amount,omitempty"`
}
