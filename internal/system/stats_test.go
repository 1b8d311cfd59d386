package system

import (
	"strings"
	"testing"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/handler"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	snapshots []uint64
	ended     []uint64
}

func (p *recordingPublisher) PublishSnapshot(s world.Snapshot) {
	p.snapshots = append(p.snapshots, s.Stats.Tick)
}

func (p *recordingPublisher) PublishEnded(tick uint64) { p.ended = append(p.ended, tick) }

func TestStatsHUD(t *testing.T) {
	h := newHarness(t)
	h.post("blue", 500, 500)
	h.post("blue", 900, 500)
	h.post("red", 1500, 500)
	h.ws.Session.Money = 1500
	h.ws.Session.Contract = &world.Contract{Serial: 3, Reward: world.ContractReward, Legal: true}

	NewStatsSystem(h.deps).Update(0)
	st := h.ws.Stats

	if st.Posts["blue"] != 2 || st.Posts["red"] != 1 {
		t.Errorf("post counts = %v", st.Posts)
	}
	if st.Units != 1 {
		t.Errorf("units = %d, want 1", st.Units)
	}
	if st.HUD[0] != "$1,500 (Lvl 1)" {
		t.Errorf("HUD[0] = %q", st.HUD[0])
	}
	joined := strings.Join(st.HUD, "\n")
	if !strings.Contains(joined, "New City Police: 2") {
		t.Errorf("HUD missing faction line:\n%s", joined)
	}
	if !strings.Contains(joined, "Contract #3 (legal): $1,000") {
		t.Errorf("HUD missing contract line:\n%s", joined)
	}

	// The published contract is a copy.
	h.ws.Session.Contract.Reward = 0
	if st.Contract.Reward != world.ContractReward {
		t.Error("stats alias the live contract")
	}
}

func TestOutputCadence(t *testing.T) {
	h := newHarness(t)
	pub := &recordingPublisher{}
	sys := NewOutputSystem(h.deps, pub, 3)
	stats := NewStatsSystem(h.deps)

	for tick := uint64(1); tick <= 6; tick++ {
		h.ws.Session.Tick = tick
		stats.Update(0)
		sys.Update(0)
	}
	if len(pub.snapshots) != 2 || pub.snapshots[0] != 3 || pub.snapshots[1] != 6 {
		t.Fatalf("snapshots at %v, want [3 6]", pub.snapshots)
	}

	h.ws.Session.Tick = 7
	h.ws.Session.Ended = true
	stats.Update(0)
	sys.Update(0)
	h.ws.Session.Tick = 8
	sys.Update(0)
	if len(pub.ended) != 1 || pub.ended[0] != 7 {
		t.Errorf("ended = %v, want [7]", pub.ended)
	}
	if len(pub.snapshots) != 3 {
		t.Errorf("snapshots = %v, want a final one at 7", pub.snapshots)
	}

	sys.Rearm()
	sys.Update(0)
	if len(pub.ended) != 2 {
		t.Errorf("rearmed output did not report the end again")
	}
}

func TestEffectsDeliverAndDecay(t *testing.T) {
	h := newHarness(t)
	sys := NewEffectSystem(h.deps)
	var captured int
	event.Subscribe(h.bus, func(event.PostCaptured) { captured++ })

	event.Emit(h.bus, event.PostCaptured{X: 100, Y: 100, To: "red"})
	sys.Update(0)
	if captured != 1 {
		t.Fatalf("subscriber saw %d captures, want 1", captured)
	}
	// Particles spawned by this dispatch already aged one tick.
	if n := h.ws.Particles.Len(); n != 20 {
		t.Fatalf("particles = %d, want 20", n)
	}
	for i := 0; i < 19; i++ {
		sys.Update(0)
	}
	if n := h.ws.Particles.Len(); n != 0 {
		t.Errorf("particles = %d, want all expired", n)
	}
}

func TestCleanupKeepsLiveHandles(t *testing.T) {
	h := newHarness(t)
	a := h.unit("red", 100, 100)
	b := h.unit("red", 200, 100)
	h.ws.RemoveUnit(a)

	NewCleanupSystem(h.deps).Update(0)

	if h.ws.Unit(a.ID) != nil {
		t.Error("removed unit resolvable after cleanup")
	}
	if got := h.ws.Unit(b.ID); got == nil || got.Pos != b.Pos {
		t.Error("live unit lost by compaction")
	}
}

func TestInputSystemDispatchesActions(t *testing.T) {
	h := newHarness(t)
	reg := handler.NewRegistry(zap.NewNop())
	handler.RegisterAll(reg)
	sys := NewInputSystem(h.deps, reg)

	h.deps.Input.Set(component.InputFrame{
		Up:      true,
		Actions: []component.Action{{Kind: component.ActionAlign, Key: "red"}},
	})
	sys.Update(0)

	if h.ws.Session.Alignment != "red" || h.player().Faction != "red" {
		t.Errorf("alignment = %s, want red", h.ws.Session.Alignment)
	}
	if !h.deps.Input.Frame().Up {
		t.Error("directional state consumed by the input phase")
	}
	if len(h.deps.Input.Drain()) != 0 {
		t.Error("actions left queued")
	}
}
