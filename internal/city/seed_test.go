package city

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellSeedKnownValues(t *testing.T) {
	assert.Equal(t, int64(38492), CellSeed(0, 0))
	assert.Equal(t, int64(767492), CellSeed(9, 9))
}

func TestCellSeedMatchesFormulaOnGrid(t *testing.T) {
	for c := 0; c < GridCols; c++ {
		for r := 0; r < GridRows; r++ {
			want := int64(math.Floor(1000 * ((float64(c)+0.525)*69.83 + (float64(r)+0.164)*11.17)))
			assert.Equal(t, want, CellSeed(c, r), "cell (%d,%d)", c, r)
		}
	}
}

func TestCellSeedUnique(t *testing.T) {
	seen := make(map[int64][2]int)
	// The grid domain plus every row a long scroll in either direction reaches.
	for c := 0; c < GridCols; c++ {
		for r := -200; r < 200; r++ {
			s := CellSeed(c, r)
			prev, dup := seen[s]
			require.False(t, dup, "seed %d shared by (%d,%d) and (%d,%d)", s, c, r, prev[0], prev[1])
			seen[s] = [2]int{c, r}
		}
	}
}
