package city

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandMatchesDrand48(t *testing.T) {
	r := NewRand(0)
	assert.InDelta(t, 0.17082803610628972, r.Float64(), 1e-15)
	assert.InDelta(t, 0.7499019804849638, r.Float64(), 1e-15)
	assert.InDelta(t, 0.09637165562356742, r.Float64(), 1e-15)

	r = NewRand(1)
	assert.InDelta(t, 0.041630344771878214, r.Float64(), 1e-15)
}

func TestRandSameSeedSameStream(t *testing.T) {
	a, b := NewRand(38492), NewRand(38492)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRandRangeF(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 10000; i++ {
		v := r.RangeF(0.4, 0.8)
		assert.GreaterOrEqual(t, v, float32(0.4))
		assert.LessOrEqual(t, v, float32(0.8))
	}

	// A collapsed range must not advance the stream.
	a, b := NewRand(9), NewRand(9)
	assert.Equal(t, float32(0.5), a.RangeF(0.5, 0.5))
	assert.Equal(t, float32(0.5), a.RangeF(0.5, 0.1))
	assert.Equal(t, a.Float64(), b.Float64())
}
