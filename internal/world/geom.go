package world

import (
	"math"

	"github.com/turfwar/server/internal/data"
)

// Vec is a 2D world position or direction.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec         { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec         { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec   { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64    { return math.Hypot(o.X-v.X, o.Y-v.Y) }
func (v Vec) AngleTo(o Vec) float64 { return math.Atan2(o.Y-v.Y, o.X-v.X) }

// Norm returns the unit vector of v, or the zero vector.
func (v Vec) Norm() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// FromAngle returns the unit vector for heading a (radians).
func FromAngle(a float64) Vec {
	return Vec{math.Cos(a), math.Sin(a)}
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func RectFromBox(b data.Box) Rect { return Rect{b.X, b.Y, b.W, b.H} }

func (r Rect) Center() Vec { return Vec{r.X + r.W/2, r.Y + r.H/2} }

// Overlaps reports whether a circle at p with the given radius touches r.
func (r Rect) Overlaps(p Vec, radius float64) bool {
	cx := math.Max(r.X, math.Min(p.X, r.X+r.W))
	cy := math.Max(r.Y, math.Min(p.Y, r.Y+r.H))
	dx, dy := p.X-cx, p.Y-cy
	return dx*dx+dy*dy < radius*radius
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
