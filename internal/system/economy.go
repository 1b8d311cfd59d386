package system

import (
	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/data"
	"go.uber.org/zap"
)

// Economy mutates the human's money, level, reputation and pursuit.
type Economy struct {
	deps *Deps
}

func NewEconomy(deps *Deps) *Economy {
	return &Economy{deps: deps}
}

// AddMoney credits n. Crossing the level threshold spends it on one level.
func (e *Economy) AddMoney(n int) {
	ss := &e.deps.World.Session
	ss.Money += n
	cost := e.deps.Scripting.LevelCost(ss.Level)
	if ss.Money <= cost {
		return
	}
	ss.Money -= cost
	ss.Level++

	ev := event.LevelUp{Level: ss.Level}
	if u := e.deps.World.PlayerUnit(); u != nil {
		ev.X, ev.Y = u.Pos.X, u.Pos.Y
	}
	event.Emit(e.deps.Bus, ev)
	e.deps.Log.Info("level up", zap.Int("level", ss.Level), zap.Int("money", ss.Money))
}

// ApplyKill adjusts standing after the human kills a unit of role.
func (e *Economy) ApplyKill(role data.Role) {
	c := e.deps.Scripting.KillConsequence(role.String())
	ss := &e.deps.World.Session
	ss.Reputation += c.Reputation
	ss.RaisePursuit(c.Pursuit)
	ss.Kills++
	if c.Pursuit > 0 {
		e.deps.Log.Debug("pursuit raised",
			zap.String("victim", role.String()),
			zap.Int("pursuit", ss.Pursuit),
			zap.Int("reputation", ss.Reputation))
	}
}

// AdjustReputation shifts reputation by delta.
func (e *Economy) AdjustReputation(delta int) {
	e.deps.World.Session.Reputation += delta
}
