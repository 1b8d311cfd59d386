package world

import (
	"fmt"

	"github.com/turfwar/server/internal/core/ecs"
	"github.com/turfwar/server/internal/data"
)

// Mode selects the session variant.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeExtended Mode = "extended"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBasic, ModeExtended:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// BlackzoneCount is how many posts each territorial event activates.
func (m Mode) BlackzoneCount() int {
	if m == ModeExtended {
		return 5
	}
	return 3
}

const (
	MaxPursuit      = 5
	PursuitDecay    = 600 // ticks without an increase per level lost
	StartingLevel   = 1
	CaptureReward   = 500
	PostHitReward   = 10
	ContractReward  = 1000
	ContractRepGain = 15
)

// Contract is the single active capture objective.
type Contract struct {
	Serial int
	Post   ecs.EntityID
	Reward int
	Legal  bool
}

// SessionState is the per-session economy, progression and timer state.
// It is owned by State and passed by reference; nothing else holds it.
type SessionState struct {
	Mode Mode
	Tick uint64

	Money        int
	Level        int
	Reputation   int
	Pursuit      int
	PursuitTimer int // ticks since pursuit last increased
	Alignment    data.FactionID

	BlackzoneTimer  int
	BlackzoneActive bool
	StrategyTimer   int

	Contract       *Contract
	ContractTimer  int // ticks until the next offer when none is active
	ContractSerial int

	Kills    int
	Captures int
	Ended    bool
}

// RaisePursuit increases pursuit by n, capped at MaxPursuit, and restarts
// the decay timer.
func (s *SessionState) RaisePursuit(n int) {
	if n <= 0 {
		return
	}
	s.Pursuit = min(MaxPursuit, s.Pursuit+n)
	s.PursuitTimer = 0
}

// TickPursuit advances the decay timer and drops one level on expiry.
// It reports whether a level was lost.
func (s *SessionState) TickPursuit() bool {
	if s.Pursuit <= 0 {
		s.PursuitTimer = 0
		return false
	}
	s.PursuitTimer++
	if s.PursuitTimer < PursuitDecay {
		return false
	}
	s.PursuitTimer = 0
	s.Pursuit--
	return true
}

// Spend deducts n if affordable.
func (s *SessionState) Spend(n int) bool {
	if n < 0 || s.Money < n {
		return false
	}
	s.Money -= n
	return true
}
