package system

import (
	"time"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/world"
)

const (
	sparkColor     = "#ffffff"
	levelUpColor   = "#ffd700"
	hurtColor      = "#ff0000"
	explosionColor = "#e67e22"
)

// EffectSystem delivers the tick's events to subscribers and ages
// particles. Visual effects are spawned by its own subscriptions.
// Phase 6 (Effects).
type EffectSystem struct {
	deps *Deps
}

func NewEffectSystem(deps *Deps) *EffectSystem {
	s := &EffectSystem{deps: deps}
	ws := deps.World
	event.Subscribe(deps.Bus, func(e event.ProjectileImpact) {
		n := 2
		if e.Spark {
			n = 4
		}
		ws.SpawnParticles(world.ParticleSpark, world.Vec{X: e.X, Y: e.Y}, sparkColor, n)
	})
	event.Subscribe(deps.Bus, func(e event.PostCaptured) {
		ws.SpawnParticles(world.ParticleCapture, world.Vec{X: e.X, Y: e.Y}, ws.Color(e.To), 20)
	})
	event.Subscribe(deps.Bus, func(e event.UnitKilled) {
		ws.SpawnParticles(world.ParticleDeath, world.Vec{X: e.X, Y: e.Y}, ws.Color(e.Faction), 10)
	})
	event.Subscribe(deps.Bus, func(e event.LevelUp) {
		ws.SpawnParticles(world.ParticleLevelUp, world.Vec{X: e.X, Y: e.Y}, levelUpColor, 50)
	})
	event.Subscribe(deps.Bus, func(e event.PlayerHurt) {
		ws.SpawnParticles(world.ParticleHurt, world.Vec{X: e.X, Y: e.Y}, hurtColor, 1)
	})
	event.Subscribe(deps.Bus, func(e event.PropDestroyed) {
		ws.SpawnParticles(world.ParticleExplosion, world.Vec{X: e.X, Y: e.Y}, explosionColor, 8)
	})
	event.Subscribe(deps.Bus, func(e event.VehicleDestroyed) {
		ws.SpawnParticles(world.ParticleExplosion, world.Vec{X: e.X, Y: e.Y}, explosionColor, 30)
	})
	return s
}

func (s *EffectSystem) Phase() coresys.Phase { return coresys.PhaseEffects }

func (s *EffectSystem) Update(_ time.Duration) {
	s.deps.Bus.SwapBuffers()
	s.deps.Bus.DispatchAll()

	ps := s.deps.World.Particles
	ps.Each(func(id ecs.EntityID, p *world.Particle) {
		p.Pos = p.Pos.Add(p.Vel)
		p.Life--
		if p.Life <= 0 {
			ps.Kill(id)
		}
	})
}
