package world

import (
	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

// Work is the life-simulation task a unit is executing. Each variant carries
// only what its kind needs. Timed variants count down in Ticks; objective
// variants (assault, defend) resolve on world state instead.
type Work interface {
	Kind() data.TaskKind
}

type IdleWork struct {
	Ticks int
}

type WanderWork struct {
	Dest  Vec
	Ticks int
}

// PatrolWork walks between points near the unit's home post.
type PatrolWork struct {
	Dest  Vec
	Ticks int
}

type SocializeWork struct {
	Partner ecs.EntityID
	Ticks   int
}

// LoiterWork is a stationary flavour task; Label is display-only.
type LoiterWork struct {
	Label string
	Ticks int
}

type VisitServiceWork struct {
	Service int // index into State.Services
	Dest    Vec
	Ticks   int
}

type AssaultWork struct {
	Post ecs.EntityID
}

// DefendWork holds position at a threatened post.
type DefendWork struct {
	Post ecs.EntityID
}

// FleeWork runs directly away from From.
type FleeWork struct {
	From  Vec
	Ticks int
}

func (*IdleWork) Kind() data.TaskKind         { return data.TaskIdle }
func (*WanderWork) Kind() data.TaskKind       { return data.TaskWander }
func (*PatrolWork) Kind() data.TaskKind       { return data.TaskPatrol }
func (*SocializeWork) Kind() data.TaskKind    { return data.TaskSocialize }
func (*LoiterWork) Kind() data.TaskKind       { return data.TaskLoiter }
func (*VisitServiceWork) Kind() data.TaskKind { return data.TaskVisitService }
func (*AssaultWork) Kind() data.TaskKind      { return data.TaskAssault }
func (*DefendWork) Kind() data.TaskKind       { return data.TaskDefend }
func (*FleeWork) Kind() data.TaskKind         { return data.TaskFlee }

// Objective reports whether w ignores countdown expiry.
func Objective(w Work) bool {
	switch w.(type) {
	case *AssaultWork, *DefendWork:
		return true
	}
	return false
}

// Countdown returns a pointer to w's remaining ticks, or nil for objective
// tasks.
func Countdown(w Work) *int {
	switch w := w.(type) {
	case *IdleWork:
		return &w.Ticks
	case *WanderWork:
		return &w.Ticks
	case *PatrolWork:
		return &w.Ticks
	case *SocializeWork:
		return &w.Ticks
	case *LoiterWork:
		return &w.Ticks
	case *VisitServiceWork:
		return &w.Ticks
	case *FleeWork:
		return &w.Ticks
	}
	return nil
}
