package system

import (
	"testing"

	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/world"
)

func TestContractCompletesOnce(t *testing.T) {
	h := newHarness(t)
	ss := &h.ws.Session
	p := h.post("red", 500, 500)
	p.Integrity = 5
	ss.ContractSerial = 1
	ss.Contract = &world.Contract{Serial: 1, Post: p.ID, Reward: world.ContractReward, Legal: true}

	h.resolver.DamagePost(p, 10, playerSource(h.player()))

	if ss.Contract != nil {
		t.Fatal("contract still active after completion")
	}
	if ss.ContractTimer != world.ContractDelay {
		t.Errorf("ContractTimer = %d, want %d", ss.ContractTimer, world.ContractDelay)
	}
	// 500 capture + 1000 contract = 1500; level 1 costs 1000.
	if ss.Level != 2 || ss.Money != 500 {
		t.Errorf("level %d money %d, want 2/500", ss.Level, ss.Money)
	}
	if ss.Reputation != world.ContractRepGain {
		t.Errorf("reputation = %d, want %d", ss.Reputation, world.ContractRepGain)
	}

	// Lose the post and retake it: nothing more is paid.
	red := h.unit("red", 800, 800)
	h.resolver.DamagePost(p, world.CaptureIntegrity, unitSource(red))
	if p.Owner != "red" {
		t.Fatalf("owner = %s, want red", p.Owner)
	}
	h.resolver.DamagePost(p, world.CaptureIntegrity, playerSource(h.player()))
	if n := countPending[event.ContractCompleted](h); n != 1 {
		t.Errorf("ContractCompleted events = %d, want 1", n)
	}
}

func TestContractIgnoresOtherCaptures(t *testing.T) {
	h := newHarness(t)
	ss := &h.ws.Session
	target := h.post("red", 500, 500)
	other := h.post("green", 900, 900)
	other.Integrity = 5
	ss.Contract = &world.Contract{Serial: 1, Post: target.ID, Reward: world.ContractReward}

	h.resolver.DamagePost(other, 10, playerSource(h.player()))
	if ss.Contract == nil {
		t.Fatal("contract completed by the wrong post")
	}

	// Target taken by a third party does not complete it either.
	target.Integrity = 5
	green := h.unit("green", 700, 700)
	h.resolver.DamagePost(target, 10, unitSource(green))
	if ss.Contract == nil {
		t.Fatal("contract completed by another faction's capture")
	}
}

func TestOfferNeverTargetsAlignment(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 4; i++ {
		h.post("player", 300+float64(i)*100, 300)
	}
	red := h.post("red", 900, 900)

	for i := 0; i < 20; i++ {
		h.ws.Session.Contract = nil
		if !h.contracts.Offer() {
			t.Fatal("Offer found no target")
		}
		if got := h.ws.Session.Contract.Post; got != red.ID {
			t.Fatalf("contract targets %v, want %v", got, red.ID)
		}
	}
	if h.ws.Session.ContractSerial != 20 {
		t.Errorf("serial = %d, want 20", h.ws.Session.ContractSerial)
	}
}

func TestOfferLegality(t *testing.T) {
	h := newHarness(t)
	blue := h.post("blue", 300, 300)
	red := h.post("red", 900, 900)

	if err := h.deps.Scripting.DoString(`function contract_legal_bias(rep) return 1 end`); err != nil {
		t.Fatal(err)
	}
	h.contracts.Offer()
	if k := h.ws.Session.Contract; !k.Legal || k.Post != red.ID {
		t.Errorf("legal contract = %+v, want legal on the attacker post", *k)
	}

	if err := h.deps.Scripting.DoString(`function contract_legal_bias(rep) return 0 end`); err != nil {
		t.Fatal(err)
	}
	h.contracts.Offer()
	if k := h.ws.Session.Contract; k.Legal || k.Post != blue.ID {
		t.Errorf("illegal contract = %+v, want illegal on the defender post", *k)
	}
}

func TestContractSystemSchedule(t *testing.T) {
	h := newHarness(t)
	ss := &h.ws.Session
	sys := NewContractSystem(h.deps, h.contracts)

	// Nothing to target: retry after the delay.
	for i := 0; i < world.ContractDelay; i++ {
		sys.Update(0)
	}
	if ss.Contract != nil || ss.ContractTimer != world.ContractDelay {
		t.Fatalf("contract %v timer %d, want none/%d", ss.Contract, ss.ContractTimer, world.ContractDelay)
	}

	p := h.post("red", 900, 900)
	for i := 0; i < world.ContractDelay; i++ {
		sys.Update(0)
	}
	if ss.Contract == nil || ss.Contract.Post != p.ID {
		t.Fatalf("contract = %v, want one on %v", ss.Contract, p.ID)
	}

	// Joining the target's faction makes the contract impossible.
	h.ws.SetAlignment("red")
	sys.Update(0)
	if ss.Contract != nil {
		t.Error("contract on an allied post was not withdrawn")
	}
}
