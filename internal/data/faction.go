package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FactionID names a faction. It is decided once in factions.yaml and never
// parsed for meaning; behaviour dispatches on Faction.Role.
type FactionID string

// Role is the structured behaviour class of a faction.
type Role int

const (
	RoleCivilian Role = iota
	RoleDefender
	RoleAttacker
	RolePredator
	RolePlayer
)

var roleNames = map[Role]string{
	RoleCivilian: "civilian",
	RoleDefender: "defender",
	RoleAttacker: "attacker",
	RolePredator: "predator",
	RolePlayer:   "player",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole maps a role name to its enum value.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleCivilian, fmt.Errorf("unknown role %q", s)
}

func (r *Role) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Faction is the tagged faction descriptor.
type Faction struct {
	ID        FactionID `yaml:"id"`
	Name      string    `yaml:"name"`
	Color     string    `yaml:"color"`
	Role      Role      `yaml:"role"`
	Alignable bool      `yaml:"alignable"` // the human may switch alignment to it
}

// FactionTable holds every faction in definition order.
type FactionTable struct {
	byID  map[FactionID]*Faction
	order []*Faction

	Neutral FactionID // owner of unclaimed posts
	Player  FactionID // default human alignment
}

type factionListFile struct {
	Neutral  FactionID `yaml:"neutral"`
	Player   FactionID `yaml:"player"`
	Factions []Faction `yaml:"factions"`
}

// Get returns a faction by ID, or nil if not found.
func (t *FactionTable) Get(id FactionID) *Faction {
	return t.byID[id]
}

// RoleOf returns the role of id. Unknown factions behave as civilians.
func (t *FactionTable) RoleOf(id FactionID) Role {
	if f := t.byID[id]; f != nil {
		return f.Role
	}
	return RoleCivilian
}

// All returns factions in definition order.
func (t *FactionTable) All() []*Faction { return t.order }

// WithRole returns the IDs of all factions carrying role r.
func (t *FactionTable) WithRole(r Role) []FactionID {
	var out []FactionID
	for _, f := range t.order {
		if f.Role == r {
			out = append(out, f.ID)
		}
	}
	return out
}

// Count returns the number of factions loaded.
func (t *FactionTable) Count() int { return len(t.order) }

// LoadFactionTable loads faction descriptors from a YAML file.
func LoadFactionTable(path string) (*FactionTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faction_list: %w", err)
	}
	return parseFactionTable(raw)
}

func parseFactionTable(raw []byte) (*FactionTable, error) {
	var f factionListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse faction_list: %w", err)
	}
	t := &FactionTable{
		byID:    make(map[FactionID]*Faction, len(f.Factions)),
		Neutral: f.Neutral,
		Player:  f.Player,
	}
	for i := range f.Factions {
		fc := &f.Factions[i]
		if fc.ID == "" {
			return nil, fmt.Errorf("faction_list: entry %d has no id", i)
		}
		if _, dup := t.byID[fc.ID]; dup {
			return nil, fmt.Errorf("faction_list: duplicate id %q", fc.ID)
		}
		t.byID[fc.ID] = fc
		t.order = append(t.order, fc)
	}
	if t.byID[t.Neutral] == nil {
		return nil, fmt.Errorf("faction_list: neutral faction %q not defined", t.Neutral)
	}
	if p := t.byID[t.Player]; p == nil || p.Role != RolePlayer {
		return nil, fmt.Errorf("faction_list: player faction %q missing or not role player", t.Player)
	}
	return t, nil
}
