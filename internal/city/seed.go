package city

import "math"

// CellSeed derives the generator seed for the building at world
// coordinate (col, row). It is a pure function of the coordinate.
func CellSeed(col, row int) int64 {
	v := (float64(col)+seedColOffset)*seedColWeight + (float64(row)+seedRowOffset)*seedRowWeight
	return int64(math.Trunc(v * seedScale))
}
