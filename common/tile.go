package common

import "math"

const (
	// TileSize is the on-screen size of one map tile: 16 px art scaled 2.5x.
	TileSize = 40.0
	// FramesPerSecond is the fixed simulation rate every frame counter assumes.
	FramesPerSecond = 60
)

// TileX converts a tile column to a world x coordinate.
func TileX(tile float64) float64 {
	return tile * TileSize
}

// TileOf returns the fractional tile column containing x.
func TileOf(x float64) float64 {
	return x / TileSize
}

// Distance is the Euclidean distance between two points.
func Distance(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}
