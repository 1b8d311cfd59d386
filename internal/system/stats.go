package system

import (
	"time"

	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/world"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StatsSystem refreshes the aggregate counters consumed by the UI.
// Phase 7 (Stats).
type StatsSystem struct {
	deps    *Deps
	printer *message.Printer
}

func NewStatsSystem(deps *Deps) *StatsSystem {
	return &StatsSystem{deps: deps, printer: message.NewPrinter(language.English)}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseStats }

func (s *StatsSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ss := &ws.Session
	st := world.Stats{
		Tick:       ss.Tick,
		Posts:      ws.PostCounts(),
		Money:      ss.Money,
		Level:      ss.Level,
		Reputation: ss.Reputation,
		Pursuit:    ss.Pursuit,
		Alignment:  ss.Alignment,
		Units:      ws.Units.Len(),
		Kills:      ss.Kills,
		Captures:   ss.Captures,
		Blackzone:  ss.BlackzoneActive,
		Ended:      ss.Ended,
	}
	if ss.Contract != nil {
		c := *ss.Contract
		st.Contract = &c
	}
	st.HUD = s.hud(st)
	ws.Stats = st
}

// hud renders the counters as display lines.
func (s *StatsSystem) hud(st world.Stats) []string {
	p := s.printer
	lines := []string{
		p.Sprintf("$%d (Lvl %d)", st.Money, st.Level),
		p.Sprintf("Reputation %d | Pursuit %d/%d", st.Reputation, st.Pursuit, world.MaxPursuit),
	}
	for _, f := range s.deps.World.Tables.Factions.All() {
		if n := st.Posts[f.ID]; n > 0 {
			lines = append(lines, p.Sprintf("%s: %d", f.Name, n))
		}
	}
	if st.Contract != nil {
		kind := "legal"
		if !st.Contract.Legal {
			kind = "illegal"
		}
		lines = append(lines, p.Sprintf("Contract #%d (%s): $%d", st.Contract.Serial, kind, st.Contract.Reward))
	}
	if st.Blackzone {
		lines = append(lines, "BLACKPOST EVENT")
	}
	return lines
}

// Publisher receives read-only world copies for observers.
type Publisher interface {
	PublishSnapshot(world.Snapshot)
	PublishEnded(tick uint64)
}

// OutputSystem hands snapshots to the publisher every few ticks and once
// when the session ends. Phase 8 (Output).
type OutputSystem struct {
	deps  *Deps
	pub   Publisher
	every uint64
	ended bool
}

func NewOutputSystem(deps *Deps, pub Publisher, every int) *OutputSystem {
	return &OutputSystem{deps: deps, pub: pub, every: uint64(max(every, 1))}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

// Rearm is called on session reset.
func (s *OutputSystem) Rearm() { s.ended = false }

func (s *OutputSystem) Update(_ time.Duration) {
	if s.pub == nil {
		return
	}
	ss := &s.deps.World.Session
	if ss.Tick%s.every == 0 || (ss.Ended && !s.ended) {
		s.pub.PublishSnapshot(s.deps.World.Snapshot())
	}
	if ss.Ended && !s.ended {
		s.ended = true
		s.pub.PublishEnded(ss.Tick)
	}
}

// CleanupSystem compacts entity arenas at tick end. Handles killed during
// the tick were already absent; this only reclaims their slots.
// Phase 9 (Cleanup).
type CleanupSystem struct {
	deps *Deps
}

func NewCleanupSystem(deps *Deps) *CleanupSystem {
	return &CleanupSystem{deps: deps}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	ws := s.deps.World
	ws.Units.Compact()
	ws.Projectiles.Compact()
	ws.Vehicles.Compact()
	ws.Obstacles.Compact()
	ws.Particles.Compact()
}
