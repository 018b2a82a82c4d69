package city

// Rand is a small deterministic 48-bit LCG (the drand48 recurrence).
// Every building owns its own stream, so generation never touches shared state.
type Rand struct {
	s uint64
}

const (
	randMul  = 0x5DEECE66D
	randAdd  = 0xB
	randMask = 1<<48 - 1
)

// NewRand seeds a stream the way srand48 does: the low 32 bits of seed
// become the high bits of the state, the low 16 bits are fixed.
func NewRand(seed int64) *Rand {
	return &Rand{s: (uint64(uint32(seed))<<16 | 0x330E) & randMask}
}

func (r *Rand) next() uint64 {
	r.s = (r.s*randMul + randAdd) & randMask
	return r.s
}

// Float64 returns a value in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.next()) / (1 << 48)
}

// RangeF returns a value in [min,max). A collapsed or inverted range
// returns min without consuming the stream.
func (r *Rand) RangeF(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + float32(r.Float64())*(max-min)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() > 1-p
}
