package system

import (
	"sort"
	"time"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

const (
	StrategyInterval   = 600
	dispatchChance     = 0.5
	reinforceChance    = 0.3
	squadSize          = 6
	reinforcementCount = 2
	populationCap      = 160
)

// StrategySystem periodically turns passive attackers into an assault wave
// against a defender-held post, and may reinforce defenders. Dispatch never
// spawns; it only flags existing units wild. Phase 1 (Timers).
type StrategySystem struct {
	deps *Deps
}

func NewStrategySystem(deps *Deps) *StrategySystem {
	return &StrategySystem{deps: deps}
}

func (s *StrategySystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *StrategySystem) Update(_ time.Duration) {
	ws := s.deps.World
	ws.Session.StrategyTimer++
	if ws.Session.StrategyTimer < StrategyInterval {
		return
	}
	ws.Session.StrategyTimer = 0
	if ws.Rand.Float64() < dispatchChance {
		s.Dispatch()
	}
	if ws.Rand.Float64() < reinforceChance {
		s.Reinforce()
	}
}

func (s *StrategySystem) defenderPosts() []*world.Post {
	factions := s.deps.World.Tables.Factions
	return s.deps.World.PostsWhere(func(p *world.Post) bool {
		return factions.RoleOf(p.Owner) == data.RoleDefender
	})
}

func passiveAttacker(u *world.Unit) bool {
	return !u.Human && !u.Wild && u.Role == data.RoleAttacker
}

// Dispatch sends the squad nearest to a random defender-held post against
// it. The squad is drawn from the faction of the attacker closest to the
// objective. It returns the dispatched units.
func (s *StrategySystem) Dispatch() []ecs.EntityID {
	ws := s.deps.World
	posts := s.defenderPosts()
	if len(posts) == 0 {
		return nil
	}
	objective := posts[ws.Rand.Intn(len(posts))]

	type candidate struct {
		u    *world.Unit
		dist float64
	}
	var pool []candidate
	ws.Units.Each(func(_ ecs.EntityID, u *world.Unit) {
		if passiveAttacker(u) {
			pool = append(pool, candidate{u, u.Pos.Dist(objective.Pos)})
		}
	})
	if len(pool) == 0 {
		return nil
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].dist < pool[j].dist })
	faction := pool[0].u.Faction

	squad := make([]ecs.EntityID, 0, squadSize)
	for _, c := range pool {
		if len(squad) == squadSize {
			break
		}
		if c.u.Faction != faction {
			continue
		}
		c.u.GoWild(&world.AssaultWork{Post: objective.ID})
		c.u.AssaultPost = objective.ID
		squad = append(squad, c.u.ID)
	}
	event.Emit(s.deps.Bus, event.SquadDispatched{Post: objective.ID, Faction: faction, Squad: squad})
	s.deps.Log.Debug("squad dispatched",
		zap.String("faction", string(faction)),
		zap.String("post", objective.Name),
		zap.Int("size", len(squad)))
	return squad
}

// Reinforce spawns defenders at a random defender-held post while the
// population is under the cap.
func (s *StrategySystem) Reinforce() int {
	ws := s.deps.World
	if ws.Units.Len() >= populationCap {
		return 0
	}
	posts := s.defenderPosts()
	if len(posts) == 0 {
		return 0
	}
	post := posts[ws.Rand.Intn(len(posts))]
	n := min(reinforcementCount, populationCap-ws.Units.Len())
	for i := 0; i < n; i++ {
		u := ws.SpawnUnit(post.Owner, ws.RandomPointNear(post.Pos, 60), false)
		u.HomePost = post.ID
	}
	s.deps.Log.Debug("defenders reinforced", zap.String("post", post.Name), zap.Int("count", n))
	return n
}

// EconomySystem decays pursuit over time. Phase 1 (Timers).
type EconomySystem struct {
	deps *Deps
}

func NewEconomySystem(deps *Deps) *EconomySystem {
	return &EconomySystem{deps: deps}
}

func (s *EconomySystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *EconomySystem) Update(_ time.Duration) {
	ss := &s.deps.World.Session
	if ss.TickPursuit() {
		s.deps.Log.Debug("pursuit decayed", zap.Int("pursuit", ss.Pursuit))
	}
}
