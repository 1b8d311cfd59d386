package system

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/scripting"
	"github.com/turfwar/server/internal/world"
)

const (
	disengageRange = 600.0
	fireRange      = 350.0
	closeInRange   = 150.0 // keep approaching while farther than this
	homeRadius     = 250.0
	assaultRange   = 900.0
	selfDefense    = 200.0
	predatorSight  = 250.0
	fleeTicks      = 90

	scanMin    = 20
	scanSpread = 41 // scan interval is scanMin + [0, scanSpread)
	aiCooldown = 40
	aiJitter   = 20
)

func scanInterval(ws *world.State) int {
	return scanMin + ws.Rand.Intn(scanSpread)
}

// validateTarget drops a held target that is gone, allied, out of reach
// or, for posts, already held by the unit's faction.
func (s *UnitSystem) validateTarget(u *world.Unit) {
	ws := s.deps.World
	switch u.Target.Kind {
	case world.RefUnit:
		t := ws.Unit(u.Target.ID)
		if t == nil || !t.Alive() || t.Faction == u.Faction || u.Pos.Dist(t.Pos) > disengageRange {
			u.Target = world.Ref{}
		}
	case world.RefPost:
		p := ws.Post(u.Target.ID)
		if p == nil || p.Owner == u.Faction || u.Pos.Dist(p.Pos) > assaultRange {
			u.Target = world.Ref{}
		}
	}
}

// scan looks for a threat according to the unit's role.
func (s *UnitSystem) scan(u *world.Unit) {
	ws := s.deps.World
	provoker := s.provoker(u)
	u.Provoker = ecs.None

	if u.Role == data.RoleCivilian {
		if provoker != nil {
			u.Target = world.Ref{}
			u.Work = &world.FleeWork{From: provoker.Pos, Ticks: fleeTicks}
		}
		return
	}
	if provoker != nil {
		u.Target = world.UnitRef(provoker.ID)
		return
	}

	switch u.Role {
	case data.RoleDefender:
		s.scanDefender(u)
	case data.RoleAttacker:
		if u.Wild {
			s.scanWildAttacker(u)
		}
	case data.RolePredator:
		if t := ws.NearestUnit(u.Pos, predatorSight, func(o *world.Unit) bool {
			return o.Role != data.RolePredator
		}); t != nil {
			u.Target = world.UnitRef(t.ID)
		}
	}
}

// provoker returns the unit that last hurt u if it is still a live,
// non-allied threat in reach.
func (s *UnitSystem) provoker(u *world.Unit) *world.Unit {
	p := s.deps.World.Unit(u.Provoker)
	if p == nil || !p.Alive() || p.Faction == u.Faction || u.Pos.Dist(p.Pos) > disengageRange {
		return nil
	}
	return p
}

func (s *UnitSystem) scanDefender(u *world.Unit) {
	ws := s.deps.World
	view := scripting.DefenderView{Pursuit: ws.Session.Pursuit, HumanDist: -1, IntruderDist: -1}

	human := ws.PlayerUnit()
	if human != nil && human.Faction != u.Faction {
		view.HumanDist = u.Pos.Dist(human.Pos)
	}

	// An alerted defender guards the threatened post; otherwise its home.
	var guard *world.Post
	if w, ok := u.Work.(*world.DefendWork); ok {
		guard = ws.Post(w.Post)
	}
	if guard == nil {
		guard = s.homePost(u)
	}
	var intruder *world.Unit
	if guard != nil {
		alerted := u.Wild
		intruder = ws.NearestUnit(guard.Pos, homeRadius, func(o *world.Unit) bool {
			if o.Faction == u.Faction {
				return false
			}
			switch o.Role {
			case data.RoleAttacker, data.RolePredator:
				return true
			case data.RolePlayer:
				return alerted
			}
			return false
		})
	}
	if intruder != nil {
		view.IntruderDist = guard.Pos.Dist(intruder.Pos)
	}

	switch s.deps.Scripting.DefenderPriority(view) {
	case scripting.EngageHuman:
		if human != nil {
			u.Target = world.UnitRef(human.ID)
		}
	case scripting.EngageIntruder:
		if intruder != nil {
			u.Target = world.UnitRef(intruder.ID)
		}
	}
}

// homePost resolves the defender's home, re-assigning it when the old one
// was lost.
func (s *UnitSystem) homePost(u *world.Unit) *world.Post {
	ws := s.deps.World
	if p := ws.Post(u.HomePost); p != nil && p.Owner == u.Faction {
		return p
	}
	p := ws.NearestPost(u.Pos, func(p *world.Post) bool { return p.Owner == u.Faction })
	if p == nil {
		u.HomePost = ecs.None
		return nil
	}
	u.HomePost = p.ID
	return p
}

func (s *UnitSystem) scanWildAttacker(u *world.Unit) {
	ws := s.deps.World
	if p := ws.Post(u.AssaultPost); p != nil && p.Owner != u.Faction && u.Pos.Dist(p.Pos) <= assaultRange {
		u.Target = world.PostRef(p.ID)
		return
	}
	if t := ws.NearestUnit(u.Pos, selfDefense, func(o *world.Unit) bool {
		return o.Faction != u.Faction && (o.Role == data.RoleDefender || o.Human)
	}); t != nil {
		u.Target = world.UnitRef(t.ID)
	}
}

// engage faces the target, fires when in range and off cooldown, and
// closes distance otherwise.
func (s *UnitSystem) engage(u *world.Unit) {
	ws := s.deps.World
	pos, ok := ws.Resolve(u.Target)
	if !ok {
		u.Target = world.Ref{}
		return
	}
	u.Heading = u.Pos.AngleTo(pos)
	dist := u.Pos.Dist(pos)

	if dist < fireRange && u.Cooldown <= 0 {
		ws.SpawnProjectile(u, s.deps.Scripting.ShotDamage(ws.Session.Level, false))
		u.Cooldown = aiCooldown + ws.Rand.Intn(aiJitter)
	}
	if dist > closeInRange {
		stepUnit(ws, u, world.FromAngle(u.Heading).Scale(u.Speed))
	}
}
