package handler

import (
	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/data"
	"go.uber.org/zap"
)

// HandleAlign switches the human's faction alignment. Only alignable
// factions are accepted.
func HandleAlign(a component.Action, deps *Deps) {
	ws := deps.World
	f := ws.Tables.Factions.Get(data.FactionID(a.Key))
	if f == nil || !f.Alignable || f.ID == ws.Session.Alignment {
		return
	}
	ws.SetAlignment(f.ID)
	deps.Log.Info("alignment changed", zap.String("faction", string(f.ID)))
}
