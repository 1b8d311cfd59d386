package system

import (
	"testing"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/world"
)

func TestWildAttackerClearsAfterCapture(t *testing.T) {
	h := newHarness(t)
	p := h.post("blue", 400, 400)
	u := h.unit("red", 300, 300)
	u.GoWild(&world.AssaultWork{Post: p.ID})
	u.AssaultPost = p.ID
	u.ScanTimer = 1000

	p.Owner = "red"
	NewUnitSystem(h.deps, h.resolver).Update(0)

	if u.Wild || u.AssaultPost != ecs.None {
		t.Fatalf("wild %v assault %v, want cleared", u.Wild, u.AssaultPost)
	}
	if _, ok := u.Work.(*world.AssaultWork); ok || u.Work == nil {
		t.Errorf("work = %T, want a fresh life task", u.Work)
	}
}

func TestWildAttackerClearsWhileFighting(t *testing.T) {
	h := newHarness(t)
	p := h.post("blue", 400, 400)
	u := h.unit("red", 300, 300)
	d := h.unit("blue", 350, 300)
	d.ScanTimer = 1000
	u.GoWild(&world.AssaultWork{Post: p.ID})
	u.AssaultPost = p.ID
	u.Target = world.UnitRef(d.ID)
	u.ScanTimer = 1000

	p.Owner = "red"
	sys := NewUnitSystem(h.deps, h.resolver)
	sys.Update(0)

	if u.Wild {
		t.Fatal("attacker still wild after its objective was captured")
	}
	if !u.Target.IsZero() {
		t.Errorf("target = %+v, want dropped with the wild flag", u.Target)
	}
	for i := 0; i < 10; i++ {
		sys.Update(0)
	}
	if u.Wild {
		t.Error("attacker went wild again without a dispatch")
	}
	if _, ok := u.Work.(*world.AssaultWork); ok {
		t.Error("attacker resumed the captured assault")
	}
}

func TestWildTimeout(t *testing.T) {
	h := newHarness(t)
	p := h.post("blue", 2500, 2500)
	u := h.unit("red", 300, 300)
	u.GoWild(&world.AssaultWork{Post: p.ID})
	u.AssaultPost = p.ID
	u.ScanTimer = 1000
	u.WildTicks = wildTimeout - 2
	sys := NewUnitSystem(h.deps, h.resolver)

	sys.Update(0)
	if !u.Wild {
		t.Fatal("wild cleared before the timeout")
	}
	sys.Update(0)
	if u.Wild || u.AssaultPost != ecs.None {
		t.Fatalf("wild %v assault %v, want cleared at the timeout", u.Wild, u.AssaultPost)
	}
	if _, ok := u.Work.(*world.AssaultWork); ok {
		t.Errorf("work = %T, want a life task", u.Work)
	}
}

func TestWildAttackerTargetsAssaultPost(t *testing.T) {
	h := newHarness(t)
	p := h.post("blue", 800, 300)
	u := h.unit("red", 300, 300)
	u.GoWild(&world.AssaultWork{Post: p.ID})
	u.AssaultPost = p.ID
	u.ScanTimer = 1

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if u.Target != world.PostRef(p.ID) {
		t.Fatalf("target = %+v, want the assault post", u.Target)
	}
	if u.Pos.X <= 300 {
		t.Errorf("x = %v, want movement toward the post", u.Pos.X)
	}
}

func TestCivilianFleesProvoker(t *testing.T) {
	h := newHarness(t)
	civ := h.unit("citizens", 300, 300)
	red := h.unit("red", 350, 300)
	red.ScanTimer = 1000
	h.resolver.DamageUnit(civ, 5, unitSource(red))

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if _, ok := civ.Work.(*world.FleeWork); !ok {
		t.Fatalf("work = %T, want flee", civ.Work)
	}
	if !civ.Target.IsZero() {
		t.Errorf("civilian picked a target: %+v", civ.Target)
	}
	if civ.Pos.X >= 300 {
		t.Errorf("x = %v, want movement away from the attacker", civ.Pos.X)
	}
}

func TestDefenderPursuesHuman(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	h.ws.Session.Pursuit = 1
	chaser := h.unit("blue", human.Pos.X+300, human.Pos.Y)
	chaser.ScanTimer = 1
	far := h.unit("blue", human.Pos.X, human.Pos.Y+600)
	far.ScanTimer = 1

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if chaser.Target != world.UnitRef(human.ID) {
		t.Errorf("near defender target = %+v, want the human", chaser.Target)
	}
	if !far.Target.IsZero() {
		t.Errorf("defender beyond the pursuit radius targeted %+v", far.Target)
	}
	if h.ws.Projectiles.Len() != 1 {
		t.Errorf("projectiles = %d, want the near defender's shot", h.ws.Projectiles.Len())
	}
}

func TestDefenderIgnoresHumanWithoutPursuit(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	d := h.unit("blue", human.Pos.X+100, human.Pos.Y)
	d.ScanTimer = 1

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if !d.Target.IsZero() {
		t.Errorf("target = %+v, want none", d.Target)
	}
}

func TestDefenderPriorityFromScript(t *testing.T) {
	h := newHarness(t)
	if err := h.deps.Scripting.DoString(`function defender_priority(ctx) return "none" end`); err != nil {
		t.Fatal(err)
	}
	human := h.player()
	h.ws.Session.Pursuit = 5
	d := h.unit("blue", human.Pos.X+100, human.Pos.Y)
	d.ScanTimer = 1

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if !d.Target.IsZero() {
		t.Errorf("target = %+v, want none when the script declines", d.Target)
	}
}

func TestAlliedTargetDropped(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	d := h.unit("blue", human.Pos.X+100, human.Pos.Y)
	d.Target = world.UnitRef(human.ID)
	d.ScanTimer = 1000

	h.ws.SetAlignment("blue")
	NewUnitSystem(h.deps, h.resolver).Update(0)

	if !d.Target.IsZero() {
		t.Errorf("target = %+v, want dropped after alignment", d.Target)
	}
}

func TestPredatorHunts(t *testing.T) {
	h := newHarness(t)
	wolf := h.unit("wild", 300, 300)
	wolf.ScanTimer = 1
	h.unit("wild", 310, 300)
	prey := h.unit("citizens", 400, 300)
	prey.ScanTimer = 1000

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if wolf.Target != world.UnitRef(prey.ID) {
		t.Errorf("target = %+v, want the civilian", wolf.Target)
	}
}

func TestDefendResolvesWhenQuiet(t *testing.T) {
	h := newHarness(t)
	p := h.post("blue", 400, 400)
	d := h.unit("blue", 410, 400)
	d.GoWild(&world.DefendWork{Post: p.ID})
	d.ScanTimer = 1000
	sys := NewUnitSystem(h.deps, h.resolver)

	h.ws.Session.Tick = 100
	p.LastThreat = 50
	sys.Update(0)
	if !d.Wild {
		t.Fatal("defend ended while the post was still threatened")
	}

	h.ws.Session.Tick = 50 + defendQuiet
	sys.Update(0)
	if d.Wild {
		t.Error("defend did not resolve after a quiet period")
	}
}

func TestControlledMovementAndFire(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	start := human.Pos
	h.deps.Input.Set(component.InputFrame{
		Right:    true,
		Fire:     true,
		PointerX: start.X + 100,
		PointerY: start.Y,
	})

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if human.Pos.X != start.X+world.PlayerSpeed || human.Pos.Y != start.Y {
		t.Errorf("pos = %+v, want %v to the right", human.Pos, world.PlayerSpeed)
	}
	var shot *world.Projectile
	h.ws.Projectiles.Each(func(_ ecs.EntityID, p *world.Projectile) { shot = p })
	if shot == nil {
		t.Fatal("no projectile fired")
	}
	if shot.Damage != 6 || !shot.FromPlayer {
		t.Errorf("shot damage %v fromPlayer %v, want 6/true", shot.Damage, shot.FromPlayer)
	}
	// fire_cooldown(1) = 9, then one tick elapses.
	if human.Cooldown != 8 {
		t.Errorf("cooldown = %d, want 8", human.Cooldown)
	}
}

func TestDrivingUnitDoesNotFire(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	v := h.ws.SpawnVehicle(human.Pos)
	h.ws.Enter(human, v)
	h.deps.Input.Set(component.InputFrame{Fire: true, PointerX: 0, PointerY: 0})

	NewUnitSystem(h.deps, h.resolver).Update(0)

	if h.ws.Projectiles.Len() != 0 {
		t.Errorf("projectiles = %d, want 0 while driving", h.ws.Projectiles.Len())
	}
}
