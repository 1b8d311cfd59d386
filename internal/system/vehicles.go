package system

import (
	"math"
	"time"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/world"
)

const (
	propImpactSpeed = 4.0 // collisions below this speed are harmless
	propImpactSlow  = 0.5
	buildingBounce  = -0.3
)

// VehicleSystem integrates vehicle physics and pins drivers to their seat.
// Phase 3 (Vehicles).
type VehicleSystem struct {
	deps *Deps
}

func NewVehicleSystem(deps *Deps) *VehicleSystem {
	return &VehicleSystem{deps: deps}
}

func (s *VehicleSystem) Phase() coresys.Phase { return coresys.PhaseVehicles }

func (s *VehicleSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ws.Vehicles.Each(func(_ ecs.EntityID, v *world.Vehicle) {
		driver := ws.Unit(v.Occupant)
		if driver == nil {
			v.Occupant = ecs.None
		} else if driver.Human {
			steer(v, s.deps.Input.Frame())
		}
		v.Speed *= world.VehicleFriction
		s.move(v)

		if driver != nil {
			ws.MoveUnit(driver, v.Pos)
			driver.Heading = v.Heading
		}
		if v.HP <= 0 {
			s.destroy(v, driver)
		}
	})
}

// steer applies one tick of driver input.
func steer(v *world.Vehicle, in component.InputFrame) {
	switch {
	case in.Up:
		v.Speed += world.VehicleAccel
	case in.Down && v.Speed > 0:
		v.Speed -= world.VehicleBrake
	case in.Down:
		v.Speed -= world.VehicleAccel
	}
	v.Speed = math.Max(-world.VehicleReverseMax, math.Min(world.VehicleMaxSpeed, v.Speed))

	turn := world.VehicleTurnRate * math.Abs(v.Speed) / world.VehicleMaxSpeed
	if in.Left {
		v.Heading -= turn
	}
	if in.Right {
		v.Heading += turn
	}
}

func (s *VehicleSystem) move(v *world.Vehicle) {
	ws := s.deps.World
	if v.Speed == 0 {
		return
	}
	next := v.Pos.Add(world.FromAngle(v.Heading).Scale(v.Speed))
	if ws.BuildingAt(next, world.VehicleRadius) != nil {
		v.Speed *= buildingBounce
		return
	}
	v.Pos = ws.Clamp(next)

	if math.Abs(v.Speed) <= propImpactSpeed {
		return
	}
	prop := ws.PropAt(v.Pos, world.VehicleRadius)
	if prop == nil {
		return
	}
	prop.HP -= 2 * math.Abs(v.Speed)
	v.Speed *= propImpactSlow
	v.HP--
	event.Emit(s.deps.Bus, event.ProjectileImpact{X: v.Pos.X, Y: v.Pos.Y, Spark: true})
	if prop.HP <= 0 {
		c := prop.Rect.Center()
		ws.Obstacles.Kill(prop.ID)
		event.Emit(s.deps.Bus, event.PropDestroyed{X: c.X, Y: c.Y})
	}
}

func (s *VehicleSystem) destroy(v *world.Vehicle, driver *world.Unit) {
	ws := s.deps.World
	if driver != nil {
		ws.Exit(driver)
	}
	ws.Vehicles.Kill(v.ID)
	event.Emit(s.deps.Bus, event.VehicleDestroyed{X: v.Pos.X, Y: v.Pos.Y})
}
