package system

import (
	"time"

	"github.com/turfwar/server/internal/core/event"
	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// Contracts manages the single active capture objective.
type Contracts struct {
	deps    *Deps
	economy *Economy
}

func NewContracts(deps *Deps, economy *Economy) *Contracts {
	return &Contracts{deps: deps, economy: economy}
}

// Offer generates a new contract. Legality is drawn from the reputation
// bias; legal contracts target attacker-held posts, illegal ones target
// defender-held posts. Posts held by the human's alignment are never
// targets. Returns false when no post qualifies.
func (c *Contracts) Offer() bool {
	ws := c.deps.World
	ss := &ws.Session
	legal := ws.Rand.Float64() < c.deps.Scripting.ContractLegalBias(ss.Reputation)

	want := data.RoleDefender
	if legal {
		want = data.RoleAttacker
	}
	factions := ws.Tables.Factions
	candidates := ws.PostsWhere(func(p *world.Post) bool {
		return p.Owner != ss.Alignment && factions.RoleOf(p.Owner) == want
	})
	if len(candidates) == 0 {
		candidates = ws.PostsWhere(func(p *world.Post) bool { return p.Owner != ss.Alignment })
	}
	if len(candidates) == 0 {
		return false
	}
	target := candidates[ws.Rand.Intn(len(candidates))]

	ss.ContractSerial++
	ss.Contract = &world.Contract{
		Serial: ss.ContractSerial,
		Post:   target.ID,
		Reward: world.ContractReward,
		Legal:  legal,
	}
	event.Emit(c.deps.Bus, event.ContractOffered{
		Serial: ss.ContractSerial,
		Post:   target.ID,
		Reward: world.ContractReward,
		Legal:  legal,
	})
	c.deps.Log.Debug("contract offered",
		zap.Int("serial", ss.ContractSerial),
		zap.String("post", target.Name),
		zap.String("owner", string(target.Owner)),
		zap.Bool("legal", legal))
	return true
}

// CheckCompletion pays out the active contract when post p has just been
// captured by the human's alignment. A contract pays at most once.
func (c *Contracts) CheckCompletion(p *world.Post, newOwner data.FactionID) {
	ss := &c.deps.World.Session
	k := ss.Contract
	if k == nil || k.Post != p.ID || newOwner != ss.Alignment {
		return
	}
	ss.Contract = nil
	ss.ContractTimer = world.ContractDelay

	c.economy.AddMoney(k.Reward)
	if k.Legal {
		c.economy.AdjustReputation(world.ContractRepGain)
	} else {
		c.economy.AdjustReputation(-world.ContractRepGain)
	}
	event.Emit(c.deps.Bus, event.ContractCompleted{
		Serial: k.Serial,
		Post:   k.Post,
		Reward: k.Reward,
		Legal:  k.Legal,
	})
	c.deps.Log.Info("contract completed",
		zap.Int("serial", k.Serial),
		zap.Bool("legal", k.Legal),
		zap.Int("reward", k.Reward))
}

// ContractSystem schedules contract offers. Phase 1 (Timers).
type ContractSystem struct {
	deps      *Deps
	contracts *Contracts
}

func NewContractSystem(deps *Deps, contracts *Contracts) *ContractSystem {
	return &ContractSystem{deps: deps, contracts: contracts}
}

func (s *ContractSystem) Phase() coresys.Phase { return coresys.PhaseTimers }

func (s *ContractSystem) Update(_ time.Duration) {
	ss := &s.deps.World.Session
	if k := ss.Contract; k != nil {
		// An alignment switch can leave the target already held; such a
		// contract can never complete, so it is withdrawn.
		if p := s.deps.World.Post(k.Post); p == nil || p.Owner == ss.Alignment {
			ss.Contract = nil
			ss.ContractTimer = world.ContractDelay
			s.deps.Log.Debug("contract withdrawn", zap.Int("serial", k.Serial))
		}
		return
	}
	ss.ContractTimer--
	if ss.ContractTimer > 0 {
		return
	}
	if !s.contracts.Offer() {
		ss.ContractTimer = world.ContractDelay
	}
}
