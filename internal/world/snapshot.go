package world

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

// Stats are the aggregate counters refreshed once per tick for UI use.
type Stats struct {
	Tick       uint64                 `json:"tick"`
	Posts      map[data.FactionID]int `json:"posts"`
	Money      int                    `json:"money"`
	Level      int                    `json:"level"`
	Reputation int                    `json:"reputation"`
	Pursuit    int                    `json:"pursuit"`
	Alignment  data.FactionID         `json:"alignment"`
	Units      int                    `json:"units"`
	Kills      int                    `json:"kills"`
	Captures   int                    `json:"captures"`
	Blackzone  bool                   `json:"blackzone"`
	Contract   *Contract              `json:"contract,omitempty"`
	Ended      bool                   `json:"ended"`
	HUD        []string               `json:"hud"`
}

type PostView struct {
	ID        ecs.EntityID   `json:"id"`
	Name      string         `json:"name"`
	Pos       Vec            `json:"pos"`
	Integrity float64        `json:"integrity"`
	Owner     data.FactionID `json:"owner"`
	Blackzone float64        `json:"blackzone,omitempty"` // radius, 0 when inactive
}

type UnitView struct {
	ID      ecs.EntityID   `json:"id"`
	Pos     Vec            `json:"pos"`
	Heading float64        `json:"heading"`
	Faction data.FactionID `json:"faction"`
	HP      float64        `json:"hp"`
	Human   bool           `json:"human,omitempty"`
	Wild    bool           `json:"wild,omitempty"`
	Task    data.TaskKind  `json:"task,omitempty"`
	Driving bool           `json:"driving,omitempty"`
}

type VehicleView struct {
	ID       ecs.EntityID `json:"id"`
	Pos      Vec          `json:"pos"`
	Heading  float64      `json:"heading"`
	Speed    float64      `json:"speed"`
	HP       float64      `json:"hp"`
	Occupied bool         `json:"occupied,omitempty"`
}

type ObstacleView struct {
	Kind string  `json:"kind"`
	Rect Rect    `json:"rect"`
	HP   float64 `json:"hp,omitempty"`
}

type ParticleView struct {
	Pos   Vec    `json:"pos"`
	Color string `json:"color"`
	Life  int    `json:"life"`
}

// Snapshot is a read-only copy of the world for renderers and observers.
type Snapshot struct {
	Tick        uint64         `json:"tick"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Posts       []PostView     `json:"posts"`
	Units       []UnitView     `json:"units"`
	Projectiles []Vec          `json:"projectiles"`
	Vehicles    []VehicleView  `json:"vehicles"`
	Obstacles   []ObstacleView `json:"obstacles"`
	Particles   []ParticleView `json:"particles"`
	Stats       Stats          `json:"stats"`
}

// Snapshot copies the live entities. The result shares nothing with State.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.Session.Tick,
		Width:       s.Width,
		Height:      s.Height,
		Posts:       make([]PostView, 0, s.Posts.Len()),
		Units:       make([]UnitView, 0, s.Units.Len()),
		Projectiles: make([]Vec, 0, s.Projectiles.Len()),
		Vehicles:    make([]VehicleView, 0, s.Vehicles.Len()),
		Obstacles:   make([]ObstacleView, 0, s.Obstacles.Len()),
		Particles:   make([]ParticleView, 0, s.Particles.Len()),
		Stats:       s.Stats,
	}
	snap.Stats.Posts = make(map[data.FactionID]int, len(s.Stats.Posts))
	for k, v := range s.Stats.Posts {
		snap.Stats.Posts[k] = v
	}
	snap.Stats.HUD = append([]string(nil), s.Stats.HUD...)
	if s.Stats.Contract != nil {
		c := *s.Stats.Contract
		snap.Stats.Contract = &c
	}

	s.Posts.Each(func(id ecs.EntityID, p *Post) {
		v := PostView{ID: id, Name: p.Name, Pos: p.Pos, Integrity: p.Integrity, Owner: p.Owner}
		if p.Blackzone {
			v.Blackzone = p.BlackzoneRadius
		}
		snap.Posts = append(snap.Posts, v)
	})
	s.Units.Each(func(id ecs.EntityID, u *Unit) {
		v := UnitView{
			ID: id, Pos: u.Pos, Heading: u.Heading, Faction: u.Faction, HP: u.HP,
			Human: u.Human, Wild: u.Wild, Driving: u.Driving(),
		}
		if u.Work != nil {
			v.Task = u.Work.Kind()
		}
		snap.Units = append(snap.Units, v)
	})
	s.Projectiles.Each(func(_ ecs.EntityID, p *Projectile) {
		snap.Projectiles = append(snap.Projectiles, p.Pos)
	})
	s.Vehicles.Each(func(id ecs.EntityID, v *Vehicle) {
		snap.Vehicles = append(snap.Vehicles, VehicleView{
			ID: id, Pos: v.Pos, Heading: v.Heading, Speed: v.Speed, HP: v.HP, Occupied: v.Occupied(),
		})
	})
	s.Obstacles.Each(func(_ ecs.EntityID, o *Obstacle) {
		snap.Obstacles = append(snap.Obstacles, ObstacleView{Kind: o.Kind.String(), Rect: o.Rect, HP: o.HP})
	})
	s.Particles.Each(func(_ ecs.EntityID, p *Particle) {
		snap.Particles = append(snap.Particles, ParticleView{Pos: p.Pos, Color: p.Color, Life: p.Life})
	})
	return snap
}
