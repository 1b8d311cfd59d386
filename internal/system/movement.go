package system

import (
	"math"

	"github.com/turfwar/server/internal/world"
)

// arrivalRadius is how close a unit must get to a destination to count as
// arrived.
const arrivalRadius = 20.0

// stepUnit moves u by delta, sliding along buildings one axis at a time
// when the full step is blocked.
func stepUnit(ws *world.State, u *world.Unit, delta world.Vec) {
	if delta == (world.Vec{}) {
		return
	}
	next := u.Pos.Add(delta)
	if ws.BuildingAt(next, world.UnitRadius) == nil {
		ws.MoveUnit(u, next)
		return
	}
	if alt := (world.Vec{X: next.X, Y: u.Pos.Y}); delta.X != 0 && ws.BuildingAt(alt, world.UnitRadius) == nil {
		ws.MoveUnit(u, alt)
		return
	}
	if alt := (world.Vec{X: u.Pos.X, Y: next.Y}); delta.Y != 0 && ws.BuildingAt(alt, world.UnitRadius) == nil {
		ws.MoveUnit(u, alt)
	}
}

// moveToward walks u toward dest at its base speed without overshooting.
// It reports whether u is within arrivalRadius afterwards.
func moveToward(ws *world.State, u *world.Unit, dest world.Vec) bool {
	d := u.Pos.Dist(dest)
	if d <= arrivalRadius {
		return true
	}
	u.Heading = u.Pos.AngleTo(dest)
	step := min(u.Speed, d)
	stepUnit(ws, u, dest.Sub(u.Pos).Norm().Scale(step))
	return u.Pos.Dist(dest) <= arrivalRadius
}

// moveAway walks u directly away from threat.
func moveAway(ws *world.State, u *world.Unit, threat world.Vec) {
	dir := u.Pos.Sub(threat).Norm()
	if dir == (world.Vec{}) {
		dir = world.FromAngle(ws.Rand.Float64() * 2 * math.Pi)
	}
	u.Heading = world.Vec{}.AngleTo(dir)
	stepUnit(ws, u, dir.Scale(u.Speed))
}
