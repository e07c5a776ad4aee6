package model

// EMUPerPoint is the number of English Metric Units in one point.
const EMUPerPoint = 12700

// BBox represents a bounding box in points, origin at the top-left corner
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// IsZero reports whether the box carries no geometry
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// EMUToPoints converts English Metric Units to points
func EMUToPoints(emu int64) float64 {
	return float64(emu) / EMUPerPoint
}

// PointsToEMU converts points to English Metric Units, rounding to the
// nearest unit
func PointsToEMU(pt float64) int64 {
	if pt < 0 {
		return -PointsToEMU(-pt)
	}
	return int64(pt*EMUPerPoint + 0.5)
}
