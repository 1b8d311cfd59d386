package system

import (
	"time"

	coresys "github.com/turfwar/server/internal/core/system"
	"github.com/turfwar/server/internal/handler"
	"go.uber.org/zap"
)

// InputSystem dispatches the discrete actions queued on the controller
// through the action registry. Directional state stays on the controller
// for the vehicle and unit phases to read. Phase 0 (Input).
type InputSystem struct {
	deps     *Deps
	registry *handler.Registry
	actions  *handler.Deps
}

func NewInputSystem(deps *Deps, registry *handler.Registry) *InputSystem {
	return &InputSystem{
		deps:     deps,
		registry: registry,
		actions:  &handler.Deps{World: deps.World, Log: deps.Log},
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for _, a := range s.deps.Input.Drain() {
		if err := s.registry.Dispatch(a, s.actions); err != nil {
			s.deps.Log.Warn("action failed", zap.String("action", string(a.Kind)), zap.Error(err))
		}
	}
}
