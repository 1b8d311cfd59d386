package system

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

const (
	alertRadius = 600.0
	alertSquad  = 4
)

// Source describes where damage came from. Environment damage (the
// territorial event) has no faction and never provokes.
type Source struct {
	Unit        ecs.EntityID
	Faction     data.FactionID
	FromPlayer  bool
	Environment bool
}

// Environment is the source for area damage.
var Environment = Source{Environment: true}

// ProjectileSource attributes damage to the unit that fired p.
func ProjectileSource(p *world.Projectile) Source {
	return Source{Unit: p.Shooter, Faction: p.Faction, FromPlayer: p.FromPlayer}
}

// Resolver applies damage and every side effect that follows from it:
// deaths, captures, rewards, standing, alerts and contract completion.
type Resolver struct {
	deps      *Deps
	economy   *Economy
	contracts *Contracts
}

func NewResolver(deps *Deps, economy *Economy, contracts *Contracts) *Resolver {
	return &Resolver{deps: deps, economy: economy, contracts: contracts}
}

// DamageUnit hurts u. Lethal damage removes u from the live set before
// returning.
func (r *Resolver) DamageUnit(u *world.Unit, amount float64, src Source) {
	if !u.Alive() {
		return
	}
	u.HP -= amount
	if u.HP <= 0 {
		r.kill(u, src)
		return
	}
	if src.Environment || src.Unit == ecs.None || src.Faction == u.Faction {
		return
	}
	// self-defense override
	u.Provoker = src.Unit
	u.ScanTimer = 0
}

func (r *Resolver) kill(u *world.Unit, src Source) {
	ws := r.deps.World
	event.Emit(r.deps.Bus, event.UnitKilled{
		Unit:     u.ID,
		X:        u.Pos.X,
		Y:        u.Pos.Y,
		Faction:  u.Faction,
		Role:     u.Role,
		ByPlayer: src.FromPlayer,
		Human:    u.Human,
	})
	if src.FromPlayer && !u.Human {
		r.economy.ApplyKill(u.Role)
	}
	ws.RemoveUnit(u)

	if u.Human && !ws.Session.Ended {
		ws.Session.Ended = true
		event.Emit(r.deps.Bus, event.SessionEnded{Tick: ws.Session.Tick})
		r.deps.Log.Info("session ended",
			zap.Uint64("tick", ws.Session.Tick),
			zap.Int("level", ws.Session.Level),
			zap.Int("kills", ws.Session.Kills))
	}
}

// DamagePost resolves a hit on p, including ownership flips.
func (r *Resolver) DamagePost(p *world.Post, amount float64, src Source) {
	ws := r.deps.World
	if src.Faction != p.Owner {
		p.LastThreat = ws.Session.Tick
		if ws.Tables.Factions.RoleOf(p.Owner) == data.RoleDefender {
			r.alert(p)
		}
	}

	capture, flipped := p.ApplyDamage(amount, src.Faction)
	if flipped {
		event.Emit(r.deps.Bus, event.PostCaptured{
			Post:     p.ID,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			From:     capture.From,
			To:       capture.To,
			ByPlayer: src.FromPlayer,
		})
		r.deps.Log.Debug("post captured",
			zap.String("post", p.Name),
			zap.String("from", string(capture.From)),
			zap.String("to", string(capture.To)))
		if src.FromPlayer {
			ws.Session.Captures++
			r.economy.AddMoney(world.CaptureReward)
		}
		r.contracts.CheckCompletion(p, capture.To)
	}
	if src.FromPlayer && p.Owner != ws.Session.Alignment {
		r.economy.AddMoney(world.PostHitReward)
	}
}

// alert sends nearby idle defenders of the owner to hold p.
func (r *Resolver) alert(p *world.Post) {
	ws := r.deps.World
	sent := 0
	for _, id := range ws.Grid.Nearby(p.Pos, alertRadius) {
		if sent >= alertSquad {
			break
		}
		u := ws.Unit(id)
		if u == nil || u.Human || u.Wild || u.Faction != p.Owner || u.Role != data.RoleDefender {
			continue
		}
		if u.Pos.Dist(p.Pos) > alertRadius {
			continue
		}
		u.GoWild(&world.DefendWork{Post: p.ID})
		sent++
	}
}
