package system

import (
	"math"
	"testing"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/world"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVehicleAccelerationCarriesDriver(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	v := h.ws.SpawnVehicle(world.Vec{X: 1000, Y: 1000})
	h.ws.Enter(human, v)
	h.deps.Input.Set(component.InputFrame{Up: true})
	sys := NewVehicleSystem(h.deps)

	sys.Update(0)
	if !near(v.Speed, world.VehicleAccel*world.VehicleFriction) {
		t.Fatalf("speed = %v, want %v", v.Speed, world.VehicleAccel*world.VehicleFriction)
	}
	for i := 0; i < 300; i++ {
		sys.Update(0)
		if v.Speed > world.VehicleMaxSpeed {
			t.Fatalf("speed %v above max", v.Speed)
		}
	}
	if v.Pos.X <= 1000 {
		t.Errorf("vehicle did not move: %+v", v.Pos)
	}
	if human.Pos != v.Pos {
		t.Errorf("driver at %+v, vehicle at %+v", human.Pos, v.Pos)
	}
}

func TestVehicleReverseLimit(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	v := h.ws.SpawnVehicle(world.Vec{X: 1000, Y: 1000})
	h.ws.Enter(human, v)
	h.deps.Input.Set(component.InputFrame{Down: true})
	sys := NewVehicleSystem(h.deps)
	for i := 0; i < 200; i++ {
		sys.Update(0)
		if v.Speed < -world.VehicleReverseMax {
			t.Fatalf("speed %v below reverse max", v.Speed)
		}
	}
	if v.Speed >= 0 {
		t.Errorf("speed = %v, want reversing", v.Speed)
	}
}

func TestVehicleFriction(t *testing.T) {
	h := newHarness(t)
	v := h.ws.SpawnVehicle(world.Vec{X: 1000, Y: 1000})
	v.Speed = 10

	NewVehicleSystem(h.deps).Update(0)

	if !near(v.Speed, 10*world.VehicleFriction) {
		t.Errorf("speed = %v, want %v", v.Speed, 10*world.VehicleFriction)
	}
	if !near(v.Pos.X, 1000+10*world.VehicleFriction) {
		t.Errorf("x = %v", v.Pos.X)
	}
}

func TestVehiclePropCollision(t *testing.T) {
	h := newHarness(t)
	prop := h.obstacle(world.Prop, world.Rect{X: 1015, Y: 990, W: 10, H: 20})
	v := h.ws.SpawnVehicle(world.Vec{X: 1000, Y: 1000})
	v.Speed = 10

	NewVehicleSystem(h.deps).Update(0)

	moving := 10 * world.VehicleFriction
	if !near(prop.HP, world.PropMaxHP-2*moving) {
		t.Errorf("prop hp = %v, want %v", prop.HP, world.PropMaxHP-2*moving)
	}
	if !near(v.Speed, moving*0.5) {
		t.Errorf("speed = %v, want %v", v.Speed, moving*0.5)
	}
	if v.HP != world.VehicleMaxHP-1 {
		t.Errorf("vehicle hp = %v, want %v", v.HP, world.VehicleMaxHP-1)
	}
}

func TestVehicleSlowPropContactHarmless(t *testing.T) {
	h := newHarness(t)
	prop := h.obstacle(world.Prop, world.Rect{X: 1005, Y: 990, W: 10, H: 20})
	v := h.ws.SpawnVehicle(world.Vec{X: 1000, Y: 1000})
	v.Speed = 3

	NewVehicleSystem(h.deps).Update(0)

	if prop.HP != world.PropMaxHP || v.HP != world.VehicleMaxHP {
		t.Errorf("prop %v vehicle %v, want both untouched", prop.HP, v.HP)
	}
}

func TestVehicleBuildingBounce(t *testing.T) {
	h := newHarness(t)
	h.obstacle(world.Building, world.Rect{X: 1010, Y: 980, W: 40, H: 40})
	v := h.ws.SpawnVehicle(world.Vec{X: 990, Y: 1000})
	v.Speed = 10

	NewVehicleSystem(h.deps).Update(0)

	if v.Pos.X != 990 {
		t.Errorf("x = %v, want blocked at 990", v.Pos.X)
	}
	if !near(v.Speed, 10*world.VehicleFriction*buildingBounce) {
		t.Errorf("speed = %v, want bounced", v.Speed)
	}
}

func TestVehicleDestroyedEjectsDriver(t *testing.T) {
	h := newHarness(t)
	human := h.player()
	v := h.ws.SpawnVehicle(world.Vec{X: 1000, Y: 1000})
	h.ws.Enter(human, v)
	v.HP = 0

	NewVehicleSystem(h.deps).Update(0)

	if h.ws.Vehicles.Alive(v.ID) {
		t.Fatal("destroyed vehicle still present")
	}
	if human.Vehicle != ecs.None || human.Driving() {
		t.Error("driver still seated")
	}
	if d := human.Pos.Dist(v.Pos); !near(d, world.VehicleExitOffset) {
		t.Errorf("driver %v from the wreck, want %v", d, world.VehicleExitOffset)
	}
	if n := countPending[event.VehicleDestroyed](h); n != 1 {
		t.Errorf("VehicleDestroyed events = %d, want 1", n)
	}
}
