// Package canvas converts between device-pixel coordinates and the
// device-independent normalized form used on the wire. Screen sizes differ
// across peers, so strokes travel as fractions of the producer's canvas and
// every consumer projects them onto its own.
package canvas

import "github.com/franklenny258/pictionary-game/domain"

// Point is a position in device pixels.
type Point struct {
	X float64
	Y float64
}

// Normalize converts a device-pixel position to canvas-relative ratios,
// clamped into [0,1]. It reports false for a zero or negative canvas
// dimension; callers skip the sample instead of dividing by zero.
func Normalize(x, y, width, height float64) (nx, ny float64, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return Clamp(x/width, 0, 1), Clamp(y/height, 0, 1), true
}

// Denormalize projects normalized ratios onto a canvas of the given size.
func Denormalize(nx, ny, width, height float64) Point {
	return Point{X: nx * width, Y: ny * height}
}

// Clamp bounds v into [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampStrokeSize bounds a brush size to the supported range.
func ClampStrokeSize(size int) int {
	if size < domain.MinStrokeSize {
		return domain.MinStrokeSize
	}
	if size > domain.MaxStrokeSize {
		return domain.MaxStrokeSize
	}
	return size
}
