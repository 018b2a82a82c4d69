package scene

// KeyRepeat turns a held key into discrete steps: one on press, then
// one every 1/rate seconds once the key has been held for delay.
type KeyRepeat struct {
	Delay float64
	Rate  float64

	down bool
	held float64
	next float64
}

// NewKeyRepeat returns a repeater with the given delay and rate.
func NewKeyRepeat(delay, rate float64) *KeyRepeat {
	return &KeyRepeat{Delay: delay, Rate: rate}
}

// Update advances the repeater by dt and returns how many steps fired.
func (k *KeyRepeat) Update(down bool, dt float64) int {
	if !down {
		k.down = false
		k.held = 0
		return 0
	}
	if !k.down {
		k.down = true
		k.held = 0
		k.next = k.Delay
		return 1
	}
	k.held += dt
	if k.Rate <= 0 {
		return 0
	}
	steps := 0
	for k.held >= k.next {
		steps++
		k.next += 1 / k.Rate
	}
	return steps
}
