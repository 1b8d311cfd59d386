package system

import (
	"time"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// CombatSystem advances projectiles and resolves their first collision in
// fixed priority: props, buildings, units, posts. Phase 5 (Projectiles).
type CombatSystem struct {
	deps     *Deps
	resolver *Resolver
}

func NewCombatSystem(deps *Deps, resolver *Resolver) *CombatSystem {
	return &CombatSystem{deps: deps, resolver: resolver}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseProjectiles }

func (s *CombatSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ws.Projectiles.Each(func(id ecs.EntityID, p *world.Projectile) {
		p.Pos = p.Pos.Add(p.Vel)
		p.Life--
		if s.collide(p) || p.Life <= 0 {
			ws.Projectiles.Kill(id)
		}
	})
}

// collide applies the first collision of p and reports whether it hit.
func (s *CombatSystem) collide(p *world.Projectile) bool {
	ws := s.deps.World

	if prop := ws.PropAt(p.Pos, 0); prop != nil {
		prop.HP -= p.Damage
		event.Emit(s.deps.Bus, event.ProjectileImpact{X: p.Pos.X, Y: p.Pos.Y, Spark: true})
		if prop.HP <= 0 {
			c := prop.Rect.Center()
			ws.Obstacles.Kill(prop.ID)
			event.Emit(s.deps.Bus, event.PropDestroyed{X: c.X, Y: c.Y})
			s.deps.Log.Debug("prop destroyed", zap.Float64("x", c.X), zap.Float64("y", c.Y))
		}
		return true
	}

	if ws.BuildingAt(p.Pos, 0) != nil {
		return true
	}

	if u := s.unitHit(p); u != nil {
		event.Emit(s.deps.Bus, event.ProjectileImpact{X: p.Pos.X, Y: p.Pos.Y})
		s.resolver.DamageUnit(u, p.Damage, ProjectileSource(p))
		return true
	}

	_, post, ok := ws.Posts.Find(func(_ ecs.EntityID, post *world.Post) bool {
		return post.Contains(p.Pos)
	})
	if ok {
		event.Emit(s.deps.Bus, event.ProjectileImpact{X: p.Pos.X, Y: p.Pos.Y})
		s.resolver.DamagePost(post, p.Damage, ProjectileSource(p))
		return true
	}
	return false
}

// unitHit returns the nearest unit strictly within UnitRadius of p that the
// shot can hurt. Shooters never hit themselves; same-faction units are
// passed through unless the unit is the human-controlled one.
func (s *CombatSystem) unitHit(p *world.Projectile) *world.Unit {
	var best *world.Unit
	bestDist := world.UnitRadius
	s.deps.World.UnitsWithin(p.Pos, world.UnitRadius, func(u *world.Unit) {
		if u.ID == p.Shooter {
			return
		}
		if u.Faction == p.Faction && !u.Human {
			return
		}
		if d := p.Pos.Dist(u.Pos); d < bestDist {
			best, bestDist = u, d
		}
	})
	return best
}
