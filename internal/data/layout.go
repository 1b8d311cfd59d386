package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnEntry defines how many units of a faction start inside a zone.
type SpawnEntry struct {
	Faction FactionID `yaml:"faction"`
	Count   int       `yaml:"count"`
}

// ServiceKind names a service point type.
type ServiceKind string

const (
	ServiceHospital ServiceKind = "hospital"
	ServiceShop     ServiceKind = "shop"
	ServiceGarage   ServiceKind = "garage"
)

// ServiceEntry is a service point placement.
type ServiceEntry struct {
	Kind ServiceKind `yaml:"kind"`
	X    float64     `yaml:"x"`
	Y    float64     `yaml:"y"`
}

// Zone is one island of the map.
type Zone struct {
	Name      string       `yaml:"name"`
	Rect      Box          `yaml:"rect"`
	Owner     FactionID    `yaml:"owner"` // initial owner of the zone's posts
	Posts     int          `yaml:"posts"`
	Spawns    []SpawnEntry `yaml:"spawns"`
	Buildings []Box        `yaml:"buildings"`
	Props     []Box        `yaml:"props"`
}

// Layout is the static world geometry consumed by the simulation. Producing
// it (procedurally or by hand) happens outside the core.
type Layout struct {
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	PlayerSpawn Point          `yaml:"player_spawn"`
	Zones       []Zone         `yaml:"zones"`
	Services    []ServiceEntry `yaml:"services"`
	Vehicles    []Point        `yaml:"vehicles"`
}

// Count returns the number of zones.
func (l *Layout) Count() int { return len(l.Zones) }

// LoadLayout loads the map layout from a YAML file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map_layout: %w", err)
	}
	return parseLayout(raw)
}

func parseLayout(raw []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse map_layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("map_layout: world size %gx%g", l.Width, l.Height)
	}
	for _, z := range l.Zones {
		if z.Rect.W <= 0 || z.Rect.H <= 0 {
			return nil, fmt.Errorf("map_layout: zone %q has empty rect", z.Name)
		}
	}
	return &l, nil
}

// validate checks cross-table references once all tables are loaded.
func (l *Layout) validate(factions *FactionTable) error {
	for _, z := range l.Zones {
		if factions.Get(z.Owner) == nil {
			return fmt.Errorf("map_layout: zone %q owner %q unknown", z.Name, z.Owner)
		}
		for _, sp := range z.Spawns {
			if factions.Get(sp.Faction) == nil {
				return fmt.Errorf("map_layout: zone %q spawns unknown faction %q", z.Name, sp.Faction)
			}
		}
	}
	return nil
}
