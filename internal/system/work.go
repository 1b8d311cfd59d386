package system

import (
	"math"

	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/world"
)

const (
	wildTimeout    = 3600
	defendQuiet    = 300 // ticks without a hostile hit before an alert ends
	defendLeash    = 80.0
	wanderRadius   = 300.0
	patrolRadius   = 150.0
	socialRadius   = 300.0
	socialDistance = 30.0
	fallbackTicks  = 60
)

// work runs the unit's life-simulation task, picking a new one when the
// current task is finished. Objective tasks that resolve clear the wild
// flag so normal selection resumes in the same tick.
func (s *UnitSystem) work(u *world.Unit) {
	if u.Work == nil {
		s.pickNewWork(u)
	}
	if !s.executeWork(u) {
		return
	}
	if world.Objective(u.Work) {
		u.ClearWild()
	}
	s.pickNewWork(u)
}

// executeWork advances u's task by one tick and reports whether it is done.
func (s *UnitSystem) executeWork(u *world.Unit) bool {
	ws := s.deps.World
	expired := false
	if ticks := world.Countdown(u.Work); ticks != nil {
		*ticks--
		expired = *ticks <= 0
	}

	switch w := u.Work.(type) {
	case *world.IdleWork, *world.LoiterWork:
		return expired

	case *world.WanderWork:
		return moveToward(ws, u, w.Dest) || expired

	case *world.PatrolWork:
		return moveToward(ws, u, w.Dest) || expired

	case *world.SocializeWork:
		partner := ws.Unit(w.Partner)
		if partner == nil || !partner.Alive() {
			return true
		}
		if u.Pos.Dist(partner.Pos) > socialDistance {
			moveToward(ws, u, partner.Pos)
		} else {
			u.Heading = u.Pos.AngleTo(partner.Pos)
		}
		return expired

	case *world.VisitServiceWork:
		return moveToward(ws, u, w.Dest) || expired

	case *world.FleeWork:
		moveAway(ws, u, w.From)
		return expired

	case *world.AssaultWork:
		if s.objectiveDone(u) {
			return true
		}
		if p := ws.Post(w.Post); u.Pos.Dist(p.Pos) > fireRange {
			moveToward(ws, u, p.Pos)
		}
		return false

	case *world.DefendWork:
		if s.objectiveDone(u) {
			return true
		}
		if p := ws.Post(w.Post); u.Pos.Dist(p.Pos) > defendLeash {
			moveToward(ws, u, p.Pos)
		}
		return false
	}
	return true
}

// objectiveDone reports whether u's assault or defend task has resolved:
// the assaulted post is gone or taken, or the defended post is gone, lost
// or quiet.
func (s *UnitSystem) objectiveDone(u *world.Unit) bool {
	ws := s.deps.World
	switch w := u.Work.(type) {
	case *world.AssaultWork:
		p := ws.Post(w.Post)
		return p == nil || p.Owner == u.Faction
	case *world.DefendWork:
		p := ws.Post(w.Post)
		return p == nil || p.Owner != u.Faction || ws.Session.Tick-p.LastThreat >= defendQuiet
	}
	return false
}

// pickNewWork draws a role-appropriate task from the weight tables.
func (s *UnitSystem) pickNewWork(u *world.Unit) {
	ws := s.deps.World
	table := ws.Tables.Work.Get(u.Role)
	if table == nil || len(table.Tasks) == 0 {
		u.Work = &world.IdleWork{Ticks: fallbackTicks}
		return
	}
	row := table.Pick(ws.Rand.Float64())
	ticks := row.MinTicks
	if row.MaxTicks > row.MinTicks {
		ticks += ws.Rand.Intn(row.MaxTicks - row.MinTicks + 1)
	}
	ticks = max(ticks, 1)

	switch row.Kind {
	case data.TaskWander:
		u.Work = &world.WanderWork{Dest: ws.RandomPointNear(u.Pos, wanderRadius), Ticks: ticks}

	case data.TaskPatrol:
		center := u.Pos
		if home := s.homePost(u); home != nil {
			center = home.Pos
		}
		u.Work = &world.PatrolWork{Dest: ws.RandomPointNear(center, patrolRadius), Ticks: ticks}

	case data.TaskSocialize:
		partner := ws.NearestUnit(u.Pos, socialRadius, func(o *world.Unit) bool {
			return o.ID != u.ID && !o.Human && o.Faction == u.Faction
		})
		if partner == nil {
			u.Work = &world.IdleWork{Ticks: ticks}
			return
		}
		u.Work = &world.SocializeWork{Partner: partner.ID, Ticks: ticks}

	case data.TaskLoiter:
		label := "wait"
		if len(table.Loiters) > 0 {
			label = table.Loiters[ws.Rand.Intn(len(table.Loiters))]
		}
		u.Work = &world.LoiterWork{Label: label, Ticks: ticks}

	case data.TaskVisitService:
		i := ws.NearestService(u.Pos, math.Inf(1), "")
		if i < 0 {
			u.Work = &world.WanderWork{Dest: ws.RandomPointNear(u.Pos, wanderRadius), Ticks: ticks}
			return
		}
		u.Work = &world.VisitServiceWork{Service: i, Dest: ws.Services[i].Pos, Ticks: ticks}

	default:
		u.Work = &world.IdleWork{Ticks: ticks}
	}
}
