package system

import (
	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/core/event"
	"github.com/turfwar/server/internal/scripting"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into every simulation system.
type Deps struct {
	World     *world.State
	Bus       *event.Bus
	Scripting *scripting.Engine
	Input     *component.Controller
	Log       *zap.Logger
}
