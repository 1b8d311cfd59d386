package event

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

// Effect events carry positions so a renderer can draw them without
// resolving handles that may already be gone.

// PostCaptured fires once per ownership flip.
type PostCaptured struct {
	Post     ecs.EntityID
	X, Y     float64
	From, To data.FactionID
	ByPlayer bool
}

// UnitKilled fires when a unit's hp reaches zero.
type UnitKilled struct {
	Unit     ecs.EntityID
	X, Y     float64
	Faction  data.FactionID
	Role     data.Role
	ByPlayer bool
	Human    bool // the victim was the human-controlled unit
}

// ProjectileImpact fires on every projectile collision.
type ProjectileImpact struct {
	X, Y  float64
	Spark bool // prop hit
}

// PropDestroyed fires when a destructible prop breaks.
type PropDestroyed struct {
	X, Y float64
}

// PlayerHurt fires when area damage touches the human unit.
type PlayerHurt struct {
	X, Y float64
}

// LevelUp fires when the human economy gains a level.
type LevelUp struct {
	Level int
	X, Y  float64
}

// BlackzoneStarted fires when the territorial event activates posts.
type BlackzoneStarted struct {
	Posts []ecs.EntityID
}

// SquadDispatched fires when the strategic layer sends a wild squad.
type SquadDispatched struct {
	Post    ecs.EntityID
	Faction data.FactionID
	Squad   []ecs.EntityID
}

// ContractOffered fires when a new contract becomes active.
type ContractOffered struct {
	Serial int
	Post   ecs.EntityID
	Reward int
	Legal  bool
}

// ContractCompleted fires when the active contract pays out.
type ContractCompleted struct {
	Serial int
	Post   ecs.EntityID
	Reward int
	Legal  bool
}

// SessionEnded fires when the human-controlled unit dies.
type SessionEnded struct {
	Tick uint64
}

// VehicleDestroyed fires when a vehicle's hp reaches zero.
type VehicleDestroyed struct {
	X, Y float64
}
