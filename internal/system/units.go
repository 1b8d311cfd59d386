package system

import (
	"time"

	"github.com/turfwar/server/internal/core/ecs"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/world"
)

// UnitSystem advances every unit: the human-controlled one from input,
// autonomous ones through the behavior state machine. Phase 4 (Units).
type UnitSystem struct {
	deps     *Deps
	resolver *Resolver
}

func NewUnitSystem(deps *Deps, resolver *Resolver) *UnitSystem {
	return &UnitSystem{deps: deps, resolver: resolver}
}

func (s *UnitSystem) Phase() coresys.Phase { return coresys.PhaseUnits }

func (s *UnitSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ws.Units.Each(func(_ ecs.EntityID, u *world.Unit) {
		if u.Human {
			s.updateControlled(u)
		} else {
			s.updateAutonomous(u)
		}
		if !u.Alive() {
			s.resolver.kill(u, Environment)
		}
	})
}

func (s *UnitSystem) updateControlled(u *world.Unit) {
	ws := s.deps.World
	in := s.deps.Input.Frame()

	if u.Driving() {
		// The vehicle phase already moved the unit with its seat.
		if u.Cooldown > 0 {
			u.Cooldown--
		}
		return
	}

	dx, dy := in.Axis()
	if dir := (world.Vec{X: dx, Y: dy}).Norm(); dir != (world.Vec{}) {
		stepUnit(ws, u, dir.Scale(u.Speed))
	}
	u.Heading = u.Pos.AngleTo(world.Vec{X: in.PointerX, Y: in.PointerY})

	if in.Fire && u.Cooldown <= 0 {
		level := ws.Session.Level
		ws.SpawnProjectile(u, s.deps.Scripting.ShotDamage(level, true))
		u.Cooldown = s.deps.Scripting.FireCooldown(level)
	}
	if u.Cooldown > 0 {
		u.Cooldown--
	}
}

func (s *UnitSystem) updateAutonomous(u *world.Unit) {
	if u.Cooldown > 0 {
		u.Cooldown--
	}
	if u.Wild {
		u.WildTicks++
		if u.WildTicks >= wildTimeout {
			u.ClearWild()
		}
	}
	if world.Objective(u.Work) && s.objectiveDone(u) {
		u.ClearWild()
	}

	s.validateTarget(u)
	if u.Target.IsZero() {
		u.ScanTimer--
		if u.ScanTimer <= 0 {
			u.ScanTimer = scanInterval(s.deps.World)
			s.scan(u)
		}
	}
	if !u.Target.IsZero() {
		s.engage(u)
		return
	}
	s.work(u)
}
