package system

import "time"

// Phase defines execution ordering within a single tick. The order is part
// of the simulation contract: timers fire before posts update, posts before
// vehicles, vehicles before units, units before projectiles.
type Phase int

const (
	PhaseInput       Phase = iota // 0: apply input frame + discrete actions
	PhaseTimers                   // 1: territorial event, dispatch, contracts, pursuit decay
	PhasePosts                    // 2: blackzone growth + area damage
	PhaseVehicles                 // 3: vehicle physics
	PhaseUnits                    // 4: controlled + autonomous units
	PhaseProjectiles              // 5: projectile flight + collision
	PhaseEffects                  // 6: event dispatch, particle decay
	PhaseStats                    // 7: derived counters
	PhaseOutput                   // 8: snapshot publishing
	PhaseCleanup                  // 9: arena compaction
)

var phaseNames = [...]string{
	"input", "timers", "posts", "vehicles", "units",
	"projectiles", "effects", "stats", "output", "cleanup",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
