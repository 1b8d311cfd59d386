package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TaskKind names one life-simulation task.
type TaskKind string

const (
	TaskIdle         TaskKind = "idle"
	TaskWander       TaskKind = "wander"
	TaskPatrol       TaskKind = "patrol"
	TaskSocialize    TaskKind = "socialize"
	TaskLoiter       TaskKind = "loiter"
	TaskVisitService TaskKind = "visit_service"
	TaskAssault      TaskKind = "assault"
	TaskDefend       TaskKind = "defend"
	TaskFlee         TaskKind = "flee"
)

// WorkWeight is one row of a role's weighted task table.
type WorkWeight struct {
	Kind   TaskKind `yaml:"kind"`
	Weight int      `yaml:"weight"`
	// Ticks bounds the task countdown, drawn uniformly from [Min, Max].
	MinTicks int `yaml:"min_ticks"`
	MaxTicks int `yaml:"max_ticks"`
}

// RoleWork is the task table for one role.
type RoleWork struct {
	Role    Role         `yaml:"role"`
	Tasks   []WorkWeight `yaml:"tasks"`
	Loiters []string     `yaml:"loiters"` // flavour labels for loiter tasks
	total   int
}

// WorkTable holds per-role weighted task tables.
type WorkTable struct {
	roles map[Role]*RoleWork
}

type workListFile struct {
	Roles []RoleWork `yaml:"roles"`
}

// Get returns the table for role r, or nil if the role has none.
func (t *WorkTable) Get(r Role) *RoleWork {
	return t.roles[r]
}

// Count returns the number of role tables loaded.
func (t *WorkTable) Count() int { return len(t.roles) }

// Pick draws a task row with probability proportional to its weight.
// roll must be in [0, 1).
func (w *RoleWork) Pick(roll float64) WorkWeight {
	target := int(roll * float64(w.total))
	for _, row := range w.Tasks {
		if target < row.Weight {
			return row
		}
		target -= row.Weight
	}
	return w.Tasks[len(w.Tasks)-1]
}

// LoadWorkTable loads per-role task weights from a YAML file.
func LoadWorkTable(path string) (*WorkTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read work_list: %w", err)
	}
	return parseWorkTable(raw)
}

func parseWorkTable(raw []byte) (*WorkTable, error) {
	var f workListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse work_list: %w", err)
	}
	t := &WorkTable{roles: make(map[Role]*RoleWork, len(f.Roles))}
	for i := range f.Roles {
		rw := &f.Roles[i]
		for j := range rw.Tasks {
			row := &rw.Tasks[j]
			if row.Weight < 0 {
				return nil, fmt.Errorf("work_list: %s/%s has negative weight", rw.Role, row.Kind)
			}
			if row.MaxTicks < row.MinTicks {
				row.MaxTicks = row.MinTicks
			}
			rw.total += row.Weight
		}
		if rw.total == 0 {
			return nil, fmt.Errorf("work_list: role %s has no weighted tasks", rw.Role)
		}
		t.roles[rw.Role] = rw
	}
	return t, nil
}
