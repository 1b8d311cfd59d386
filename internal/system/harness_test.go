package system

import (
	"testing"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/scripting"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// harness is an empty arena (no zones, services or vehicles) holding only
// the human unit at the layout's spawn point.
type harness struct {
	deps      *Deps
	ws        *world.State
	bus       *event.Bus
	economy   *Economy
	contracts *Contracts
	resolver  *Resolver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tables, err := data.DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}
	bare := *tables
	bare.Layout = &data.Layout{
		Width:       tables.Layout.Width,
		Height:      tables.Layout.Height,
		PlayerSpawn: tables.Layout.PlayerSpawn,
	}
	ws := world.NewState(&bare)
	ws.Reset(world.ModeBasic, 7)

	eng, err := scripting.NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(eng.Close)

	h := &harness{ws: ws, bus: event.NewBus()}
	h.deps = &Deps{
		World:     ws,
		Bus:       h.bus,
		Scripting: eng,
		Input:     &component.Controller{},
		Log:       zap.NewNop(),
	}
	h.economy = NewEconomy(h.deps)
	h.contracts = NewContracts(h.deps, h.economy)
	h.resolver = NewResolver(h.deps, h.economy, h.contracts)
	return h
}

func (h *harness) player() *world.Unit { return h.ws.PlayerUnit() }

func (h *harness) unit(faction string, x, y float64) *world.Unit {
	return h.ws.SpawnUnit(data.FactionID(faction), world.Vec{X: x, Y: y}, false)
}

func (h *harness) post(owner string, x, y float64) *world.Post {
	return h.ws.SpawnPost("test", 0, world.Vec{X: x, Y: y}, data.FactionID(owner))
}

func (h *harness) obstacle(kind world.ObstacleKind, r world.Rect) *world.Obstacle {
	o := &world.Obstacle{Kind: kind, Rect: r}
	if kind == world.Prop {
		o.HP = world.PropMaxHP
	}
	o.ID = h.ws.Obstacles.Add(o)
	return o
}

// shot places a motionless projectile fired by shooter at pos.
func (h *harness) shot(shooter *world.Unit, x, y, damage float64) *world.Projectile {
	p := &world.Projectile{
		Pos:        world.Vec{X: x, Y: y},
		Faction:    shooter.Faction,
		Shooter:    shooter.ID,
		FromPlayer: shooter.Human,
		Life:       world.ProjectileLife,
		Damage:     damage,
	}
	p.ID = h.ws.Projectiles.Add(p)
	return p
}

func playerSource(u *world.Unit) Source {
	return Source{Unit: u.ID, Faction: u.Faction, FromPlayer: true}
}

func unitSource(u *world.Unit) Source {
	return Source{Unit: u.ID, Faction: u.Faction}
}

func countPending[T any](h *harness) int { return event.Pending[T](h.bus) }
