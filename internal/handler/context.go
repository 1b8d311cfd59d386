package handler

import (
	"fmt"

	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// interactRange bounds every proximity action.
const interactRange = 60.0

// Deps holds shared dependencies injected into all action handlers.
type Deps struct {
	World *world.State
	Log   *zap.Logger
}

// HandlerFunc is the callback signature for action handlers. Invalid
// requests (nothing nearby, not enough money) are silent no-ops.
type HandlerFunc func(a component.Action, deps *Deps)

// Registry maps action kinds to handlers.
type Registry struct {
	handlers map[component.ActionKind]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[component.ActionKind]HandlerFunc),
		log:      log,
	}
}

// Register maps an action kind to a handler.
func (reg *Registry) Register(kind component.ActionKind, fn HandlerFunc) {
	reg.handlers[kind] = fn
}

// Dispatch runs the handler for a. Unknown kinds are ignored. A panicking
// handler is recovered and reported as an error.
func (reg *Registry) Dispatch(a component.Action, deps *Deps) error {
	fn, ok := reg.handlers[a.Kind]
	if !ok {
		reg.log.Debug("unknown action", zap.String("action", string(a.Kind)))
		return nil
	}
	return reg.safeCall(fn, a, deps)
}

// safeCall executes a handler with panic recovery so one bad action cannot
// crash the game loop.
func (reg *Registry) safeCall(fn HandlerFunc, a component.Action, deps *Deps) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("action handler panic recovered",
				zap.String("action", string(a.Kind)),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for action %s: %v", a.Kind, rec)
		}
	}()
	fn(a, deps)
	return nil
}

// RegisterAll registers every player action handler.
func RegisterAll(reg *Registry) {
	reg.Register(component.ActionVehicle, HandleVehicle)
	reg.Register(component.ActionInteract, HandleInteract)
	reg.Register(component.ActionPurchase, HandlePurchase)
	reg.Register(component.ActionAlign, HandleAlign)
}
