package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

// ContractDelay is the wait before the first contract and between contracts.
const ContractDelay = 300

// spawnAttempts bounds the retries when placing an entity clear of buildings.
const spawnAttempts = 8

// State owns every entity collection of one session plus the session's
// economy and timers. Single-goroutine access only (game loop).
type State struct {
	Tables        *data.Tables
	Width, Height float64

	Posts       *ecs.Arena[Post]
	Units       *ecs.Arena[Unit]
	Projectiles *ecs.Arena[Projectile]
	Vehicles    *ecs.Arena[Vehicle]
	Obstacles   *ecs.Arena[Obstacle]
	Particles   *ecs.Arena[Particle]
	Services    []ServicePoint

	Session SessionState
	Stats   Stats
	Player  ecs.EntityID
	Rand    *rand.Rand
	Grid    *Grid
}

func NewState(tables *data.Tables) *State {
	return &State{
		Tables:      tables,
		Width:       tables.Layout.Width,
		Height:      tables.Layout.Height,
		Posts:       ecs.NewArena[Post](64),
		Units:       ecs.NewArena[Unit](256),
		Projectiles: ecs.NewArena[Projectile](512),
		Vehicles:    ecs.NewArena[Vehicle](16),
		Obstacles:   ecs.NewArena[Obstacle](64),
		Particles:   ecs.NewArena[Particle](1024),
		Grid:        NewGrid(),
		Rand:        rand.New(rand.NewSource(1)),
	}
}

// Reset discards all entities and repopulates the world from the layout.
// Nothing from the previous session survives.
func (s *State) Reset(mode Mode, seed int64) {
	s.Posts.Reset()
	s.Units.Reset()
	s.Projectiles.Reset()
	s.Vehicles.Reset()
	s.Obstacles.Reset()
	s.Particles.Reset()
	s.Grid.Reset()
	s.Services = s.Services[:0]
	s.Rand = rand.New(rand.NewSource(seed))
	s.Stats = Stats{}
	s.Session = SessionState{
		Mode:          mode,
		Level:         StartingLevel,
		Alignment:     s.Tables.Factions.Player,
		ContractTimer: ContractDelay,
	}

	layout := s.Tables.Layout
	for _, z := range layout.Zones {
		for _, b := range z.Buildings {
			s.addObstacle(Building, RectFromBox(b))
		}
		for _, b := range z.Props {
			s.addObstacle(Prop, RectFromBox(b))
		}
	}
	for zi, z := range layout.Zones {
		area := RectFromBox(z.Rect)
		inner := Rect{area.X + 100, area.Y + 100, area.W - 200, area.H - 200}
		if inner.W <= 0 || inner.H <= 0 {
			inner = area
		}
		for i := 0; i < z.Posts; i++ {
			s.SpawnPost(fmt.Sprintf("P-%d-%d", zi, i), zi, s.freePoint(inner, PostSize), z.Owner)
		}
	}
	for _, sv := range layout.Services {
		s.Services = append(s.Services, ServicePoint{Kind: sv.Kind, Pos: Vec{sv.X, sv.Y}})
	}
	for _, p := range layout.Vehicles {
		s.SpawnVehicle(Vec{p.X, p.Y})
	}

	player := s.SpawnUnit(s.Session.Alignment, Vec{layout.PlayerSpawn.X, layout.PlayerSpawn.Y}, true)
	s.Player = player.ID

	for _, z := range layout.Zones {
		area := RectFromBox(z.Rect)
		for _, sp := range z.Spawns {
			for i := 0; i < sp.Count; i++ {
				s.SpawnUnit(sp.Faction, s.freePoint(area, UnitRadius), false)
			}
		}
	}
}

func (s *State) addObstacle(kind ObstacleKind, r Rect) {
	o := &Obstacle{Kind: kind, Rect: r}
	if kind == Prop {
		o.HP = PropMaxHP
	}
	o.ID = s.Obstacles.Add(o)
}

// freePoint draws a random point in area that does not overlap a building.
// After spawnAttempts misses the last draw is used anyway.
func (s *State) freePoint(area Rect, radius float64) Vec {
	var p Vec
	for i := 0; i < spawnAttempts; i++ {
		p = Vec{area.X + s.Rand.Float64()*area.W, area.Y + s.Rand.Float64()*area.H}
		if s.BuildingAt(p, radius) == nil {
			break
		}
	}
	return p
}

// RandomPointNear draws a point within radius of c, clamped to the world.
func (s *State) RandomPointNear(c Vec, radius float64) Vec {
	p := c.Add(FromAngle(s.Rand.Float64() * 2 * math.Pi).Scale(s.Rand.Float64() * radius))
	return s.Clamp(p)
}

// Clamp bounds p to the world rectangle.
func (s *State) Clamp(p Vec) Vec {
	return Vec{clamp(p.X, 0, s.Width), clamp(p.Y, 0, s.Height)}
}

// SpawnPost adds a post. Unclaimed posts start weaker than owned ones.
func (s *State) SpawnPost(name string, zone int, pos Vec, owner data.FactionID) *Post {
	p := &Post{Name: name, Zone: zone, Pos: pos, Owner: owner, Integrity: OwnedIntegrity}
	if owner == s.Tables.Factions.Neutral {
		p.Integrity = NeutralIntegrity
	}
	p.ID = s.Posts.Add(p)
	return p
}

// SpawnUnit adds a unit of faction at pos. Defenders are assigned the
// nearest post their faction owns as home.
func (s *State) SpawnUnit(faction data.FactionID, pos Vec, human bool) *Unit {
	role := s.Tables.Factions.RoleOf(faction)
	if human {
		role = data.RolePlayer
	}
	u := &Unit{
		Pos:       s.Clamp(pos),
		Faction:   faction,
		Role:      role,
		Human:     human,
		HP:        UnitMaxHP,
		Speed:     speedFor(role, human),
		ScanTimer: 20 + s.Rand.Intn(41),
	}
	if role == data.RoleDefender {
		if home := s.NearestPost(u.Pos, func(p *Post) bool { return p.Owner == faction }); home != nil {
			u.HomePost = home.ID
		}
	}
	u.ID = s.Units.Add(u)
	s.Grid.Add(u.ID, u.Pos)
	return u
}

func (s *State) SpawnVehicle(pos Vec) *Vehicle {
	v := &Vehicle{Pos: s.Clamp(pos), HP: VehicleMaxHP, Faction: s.Tables.Factions.Neutral}
	v.ID = s.Vehicles.Add(v)
	return v
}

// SpawnProjectile fires a shot from u along its heading.
func (s *State) SpawnProjectile(u *Unit, damage float64) *Projectile {
	p := &Projectile{
		Pos:        u.Pos,
		Vel:        FromAngle(u.Heading).Scale(ProjectileSpeed),
		Faction:    u.Faction,
		Shooter:    u.ID,
		FromPlayer: u.Human,
		Life:       ProjectileLife,
		Damage:     damage,
	}
	p.ID = s.Projectiles.Add(p)
	return p
}

// SpawnParticles bursts count particles at pos.
func (s *State) SpawnParticles(kind ParticleKind, pos Vec, color string, count int) {
	for i := 0; i < count; i++ {
		s.Particles.Add(&Particle{
			Kind:  kind,
			Pos:   pos,
			Vel:   Vec{(s.Rand.Float64() - 0.5) * 10, (s.Rand.Float64() - 0.5) * 10},
			Life:  20,
			Color: color,
		})
	}
}

// --- lookups (absent handles resolve to nil) ---

func (s *State) Unit(id ecs.EntityID) *Unit {
	u, ok := s.Units.Get(id)
	if !ok {
		return nil
	}
	return u
}

func (s *State) Post(id ecs.EntityID) *Post {
	p, ok := s.Posts.Get(id)
	if !ok {
		return nil
	}
	return p
}

func (s *State) Vehicle(id ecs.EntityID) *Vehicle {
	v, ok := s.Vehicles.Get(id)
	if !ok {
		return nil
	}
	return v
}

// PlayerUnit returns the human-controlled unit, or nil once it is dead.
func (s *State) PlayerUnit() *Unit {
	return s.Unit(s.Player)
}

// Resolve returns the current position of a referenced unit or post.
func (s *State) Resolve(r Ref) (Vec, bool) {
	switch r.Kind {
	case RefUnit:
		if u := s.Unit(r.ID); u != nil && u.Alive() {
			return u.Pos, true
		}
	case RefPost:
		if p := s.Post(r.ID); p != nil {
			return p.Pos, true
		}
	}
	return Vec{}, false
}

// Color returns the display color of a faction.
func (s *State) Color(f data.FactionID) string {
	if fc := s.Tables.Factions.Get(f); fc != nil {
		return fc.Color
	}
	return "#555"
}

// --- mutation helpers that keep the grid in sync ---

// MoveUnit places u at to, clamped to the world.
func (s *State) MoveUnit(u *Unit, to Vec) {
	to = s.Clamp(to)
	s.Grid.Move(u.ID, u.Pos, to)
	u.Pos = to
}

// RemoveUnit takes u out of the live set immediately, vacating any vehicle.
func (s *State) RemoveUnit(u *Unit) {
	if v := s.Vehicle(u.Vehicle); v != nil && v.Occupant == u.ID {
		v.Occupant = ecs.None
	}
	u.Vehicle = ecs.None
	s.Grid.Remove(u.ID, u.Pos)
	s.Units.Kill(u.ID)
}

// SetAlignment switches the human's effective faction.
func (s *State) SetAlignment(f data.FactionID) {
	s.Session.Alignment = f
	if u := s.PlayerUnit(); u != nil {
		u.Faction = f
		if v := s.Vehicle(u.Vehicle); v != nil {
			v.Faction = f
		}
	}
}

// Enter seats u in v.
func (s *State) Enter(u *Unit, v *Vehicle) {
	v.Occupant = u.ID
	v.Faction = u.Faction
	u.Vehicle = v.ID
	s.MoveUnit(u, v.Pos)
}

// Exit puts u back on foot beside its vehicle.
func (s *State) Exit(u *Unit) {
	v := s.Vehicle(u.Vehicle)
	u.Vehicle = ecs.None
	if v == nil {
		return
	}
	v.Occupant = ecs.None
	side := FromAngle(v.Heading + math.Pi/2).Scale(VehicleExitOffset)
	s.MoveUnit(u, v.Pos.Add(side))
}
