package game

import (
	"time"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/handler"
	"github.com/turfwar/server/internal/scripting"
	"github.com/turfwar/server/internal/system"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// Options configures a Game.
type Options struct {
	Tables        *data.Tables
	Scripting     *scripting.Engine
	Log           *zap.Logger
	Publisher     system.Publisher // optional
	SnapshotEvery int
	TickRate      time.Duration
	Seed          int64 // 0 = derive from the clock per session
}

// Game runs one simulation session at a time. A session is started with
// StartSession and advanced with Tick until the human-controlled unit dies.
// Single-goroutine access only.
type Game struct {
	world  *world.State
	bus    *event.Bus
	input  component.Controller
	runner *coresys.Runner
	output *system.OutputSystem

	territory *system.TerritorySystem
	contracts *system.Contracts
	resolver  *system.Resolver

	tickRate time.Duration
	seed     int64
	sessions int64
	started  bool
	log      *zap.Logger
}

func New(opts Options) *Game {
	g := &Game{
		world:    world.NewState(opts.Tables),
		bus:      event.NewBus(),
		runner:   coresys.NewRunner(),
		tickRate: opts.TickRate,
		seed:     opts.Seed,
		log:      opts.Log,
	}
	deps := &system.Deps{
		World:     g.world,
		Bus:       g.bus,
		Scripting: opts.Scripting,
		Input:     &g.input,
		Log:       opts.Log,
	}

	registry := handler.NewRegistry(opts.Log)
	handler.RegisterAll(registry)

	economy := system.NewEconomy(deps)
	g.contracts = system.NewContracts(deps, economy)
	g.resolver = system.NewResolver(deps, economy, g.contracts)
	g.territory = system.NewTerritorySystem(deps)
	g.output = system.NewOutputSystem(deps, opts.Publisher, opts.SnapshotEvery)

	// Registration order inside a phase is execution order.
	g.runner.Register(system.NewInputSystem(deps, registry))
	g.runner.Register(g.territory)
	g.runner.Register(system.NewStrategySystem(deps))
	g.runner.Register(system.NewContractSystem(deps, g.contracts))
	g.runner.Register(system.NewEconomySystem(deps))
	g.runner.Register(system.NewPostSystem(deps, g.resolver))
	g.runner.Register(system.NewVehicleSystem(deps))
	g.runner.Register(system.NewUnitSystem(deps, g.resolver))
	g.runner.Register(system.NewCombatSystem(deps, g.resolver))
	g.runner.Register(system.NewEffectSystem(deps))
	g.runner.Register(system.NewStatsSystem(deps))
	g.runner.Register(g.output)
	g.runner.Register(system.NewCleanupSystem(deps))
	return g
}

// StartSession discards all state and begins a new session in mode.
func (g *Game) StartSession(mode world.Mode) {
	seed := g.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seed += g.sessions
	g.sessions++

	g.bus.Reset()
	g.input.Reset()
	g.world.Reset(mode, seed)
	g.output.Rearm()
	g.started = true
	g.log.Info("session started",
		zap.String("mode", string(mode)),
		zap.Int64("seed", seed),
		zap.Int("posts", g.world.Posts.Len()),
		zap.Int("units", g.world.Units.Len()))
}

// Tick advances the session by one step using frame as the input state.
// It reports false, without advancing, when no session is running.
func (g *Game) Tick(frame component.InputFrame) bool {
	if !g.started || g.world.Session.Ended {
		return false
	}
	g.input.Set(frame)
	g.world.Session.Tick++
	g.runner.Tick(g.tickRate)
	return true
}

// Queue adds a discrete action for the next tick.
func (g *Game) Queue(a component.Action) {
	g.input.Queue(a)
}

// Running reports whether a session is in progress.
func (g *Game) Running() bool { return g.started && !g.world.Session.Ended }

// Ended reports whether the current session reached its terminal state.
func (g *Game) Ended() bool { return g.world.Session.Ended }

// Stats returns the counters refreshed at the end of the last tick.
func (g *Game) Stats() world.Stats { return g.world.Stats }

// Snapshot copies the current world for rendering.
func (g *Game) Snapshot() world.Snapshot { return g.world.Snapshot() }

// Bus exposes the event bus for effect subscribers.
func (g *Game) Bus() *event.Bus { return g.bus }

// World exposes the simulation state. Callers must stay on the game loop
// goroutine.
func (g *Game) World() *world.State { return g.world }
