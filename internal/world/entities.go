package world

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

const (
	ProjectileSpeed = 15.0
	ProjectileLife  = 60
)

// Projectile is a short-lived shot. Damage is fixed when fired.
type Projectile struct {
	ID         ecs.EntityID
	Pos        Vec
	Vel        Vec
	Faction    data.FactionID
	Shooter    ecs.EntityID
	FromPlayer bool // fired by the human-controlled unit
	Life       int
	Damage     float64
}

const (
	VehicleMaxHP      = 200.0
	VehicleMaxSpeed   = 12.0
	VehicleReverseMax = 4.0
	VehicleAccel      = 0.3
	VehicleBrake      = 0.5
	VehicleFriction   = 0.96
	VehicleTurnRate   = 0.06
	VehicleRadius     = 16.0
	VehicleExitOffset = 30.0
)

// Vehicle is a drivable object. It persists when unoccupied.
type Vehicle struct {
	ID       ecs.EntityID
	Pos      Vec
	Heading  float64
	Speed    float64
	HP       float64
	Occupant ecs.EntityID
	Faction  data.FactionID // inherited from the current occupant
}

// Occupied reports whether someone is driving.
func (v *Vehicle) Occupied() bool { return v.Occupant != ecs.None }

// ObstacleKind distinguishes indestructible buildings from props.
type ObstacleKind uint8

const (
	Building ObstacleKind = iota
	Prop
)

func (k ObstacleKind) String() string {
	if k == Prop {
		return "prop"
	}
	return "building"
}

const PropMaxHP = 30.0

// Obstacle is static collision geometry. Only props carry hit points.
type Obstacle struct {
	ID   ecs.EntityID
	Kind ObstacleKind
	Rect Rect
	HP   float64
}

// Destructible reports whether o can be damaged.
func (o *Obstacle) Destructible() bool { return o.Kind == Prop }

// ServicePoint is a hospital, shop or garage location.
type ServicePoint struct {
	Kind data.ServiceKind
	Pos  Vec
}

// ParticleKind tags a visual effect particle.
type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleExplosion
	ParticleCapture
	ParticleDeath
	ParticleLevelUp
	ParticleHurt
)

// Particle is a decaying visual effect. The simulation only moves and ages
// them.
type Particle struct {
	Kind  ParticleKind
	Pos   Vec
	Vel   Vec
	Life  int
	Color string
}
