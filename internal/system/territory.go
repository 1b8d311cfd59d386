package system

import (
	"time"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// BlackzoneInterval is the number of ticks between territorial events.
const BlackzoneInterval = 1800

// TerritorySystem drives the territorial event timer. Phase 1 (Timers).
type TerritorySystem struct {
	deps *Deps
}

func NewTerritorySystem(deps *Deps) *TerritorySystem {
	return &TerritorySystem{deps: deps}
}

func (s *TerritorySystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *TerritorySystem) Update(_ time.Duration) {
	ss := &s.deps.World.Session
	ss.BlackzoneTimer++
	if ss.BlackzoneTimer <= BlackzoneInterval {
		return
	}
	ss.BlackzoneTimer = 0
	s.Trigger()
}

// Trigger activates the mode's number of distinct, not yet active posts,
// chosen uniformly at random.
func (s *TerritorySystem) Trigger() []ecs.EntityID {
	ws := s.deps.World
	idle := ws.PostsWhere(func(p *world.Post) bool { return !p.Blackzone })
	n := min(ws.Session.Mode.BlackzoneCount(), len(idle))
	picked := make([]ecs.EntityID, 0, n)
	for _, i := range ws.Rand.Perm(len(idle))[:n] {
		idle[i].Activate()
		picked = append(picked, idle[i].ID)
	}
	if n > 0 {
		ws.Session.BlackzoneActive = true
		event.Emit(s.deps.Bus, event.BlackzoneStarted{Posts: picked})
		s.deps.Log.Info("blackzone started", zap.Int("posts", n))
	}
	return picked
}

// PostSystem grows active blackzones and applies their area damage.
// Phase 2 (Posts).
type PostSystem struct {
	deps     *Deps
	resolver *Resolver
}

func NewPostSystem(deps *Deps, resolver *Resolver) *PostSystem {
	return &PostSystem{deps: deps, resolver: resolver}
}

func (s *PostSystem) Phase() coresys.Phase { return coresys.PhasePosts }

func (s *PostSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ws.Posts.Each(func(_ ecs.EntityID, p *world.Post) {
		if !p.Blackzone {
			return
		}
		p.Grow()
		ws.UnitsWithin(p.Pos, p.BlackzoneRadius, func(u *world.Unit) {
			if !p.InBlackzone(u.Pos) {
				return
			}
			if u.Human {
				event.Emit(s.deps.Bus, event.PlayerHurt{X: u.Pos.X, Y: u.Pos.Y})
			}
			s.resolver.DamageUnit(u, world.BlackzoneDamage, Environment)
		})
	})
}
