package handler

import (
	"github.com/turfwar/server/internal/component"
	"go.uber.org/zap"
)

// HandleVehicle toggles between driving and walking. On foot it enters the
// nearest free vehicle within reach; driving, it exits to the side.
func HandleVehicle(_ component.Action, deps *Deps) {
	ws := deps.World
	u := ws.PlayerUnit()
	if u == nil {
		return
	}
	if u.Driving() {
		ws.Exit(u)
		deps.Log.Debug("exit vehicle")
		return
	}
	v := ws.NearestVehicle(u.Pos, interactRange)
	if v == nil {
		return
	}
	ws.Enter(u, v)
	deps.Log.Debug("enter vehicle", zap.Uint64("vehicle", uint64(v.ID)))
}
