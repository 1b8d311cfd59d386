package world

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

const (
	UnitRadius    = 10.0
	UnitMaxHP     = 100.0
	PlayerSpeed   = 6.0
	UnitSpeed     = 3.0
	PredatorSpeed = 3.5
)

// RefKind tags what a Ref points at.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefUnit
	RefPost
)

// Ref is a non-owning reference to a unit or a post. It never keeps its
// target alive; resolving a stale Ref reports absent.
type Ref struct {
	Kind RefKind
	ID   ecs.EntityID
}

func UnitRef(id ecs.EntityID) Ref { return Ref{Kind: RefUnit, ID: id} }
func PostRef(id ecs.EntityID) Ref { return Ref{Kind: RefPost, ID: id} }

func (r Ref) IsZero() bool { return r.Kind == RefNone }

// Unit is a mobile agent. Exactly one unit per session is Human.
type Unit struct {
	ID      ecs.EntityID
	Pos     Vec
	Heading float64
	Faction data.FactionID // for the human, always the current alignment
	Role    data.Role
	Human   bool
	HP      float64
	Speed   float64

	Cooldown int
	Target   Ref
	Vehicle  ecs.EntityID // vehicle being driven, or ecs.None

	Work      Work
	Wild      bool
	WildTicks int

	HomePost    ecs.EntityID // defenders
	AssaultPost ecs.EntityID // wild attackers
	ScanTimer   int
	Provoker    ecs.EntityID // last non-ally unit that hurt this one
}

// Alive reports whether the unit still has hit points.
func (u *Unit) Alive() bool { return u.HP > 0 }

// Driving reports whether the unit occupies a vehicle.
func (u *Unit) Driving() bool { return u.Vehicle != ecs.None }

// GoWild flags the unit for an objective task.
func (u *Unit) GoWild(w Work) {
	u.Wild = true
	u.WildTicks = 0
	u.Work = w
	u.Target = Ref{}
}

// ClearWild drops the wild flag and any objective. The next behavior update
// picks a fresh life-simulation task.
func (u *Unit) ClearWild() {
	u.Wild = false
	u.WildTicks = 0
	u.AssaultPost = ecs.None
	u.Work = nil
	u.Target = Ref{}
}

// speedFor returns the base movement speed for a role.
func speedFor(role data.Role, human bool) float64 {
	switch {
	case human:
		return PlayerSpeed
	case role == data.RolePredator:
		return PredatorSpeed
	}
	return UnitSpeed
}
