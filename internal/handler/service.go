package handler

import (
	"github.com/turfwar/server/internal/component"
	"github.com/turfwar/server/internal/data"
	"github.com/turfwar/server/internal/world"
	"go.uber.org/zap"
)

const (
	healCost   = 100
	repairCost = 150
)

// HandleInteract uses the nearest service point. Hospitals heal the human
// to full; garages repair the vehicle being driven. Shops sell through
// purchase actions only.
func HandleInteract(_ component.Action, deps *Deps) {
	ws := deps.World
	u := ws.PlayerUnit()
	if u == nil {
		return
	}
	i := ws.NearestService(u.Pos, interactRange, "")
	if i < 0 {
		return
	}
	ss := &ws.Session
	switch ws.Services[i].Kind {
	case data.ServiceHospital:
		if u.HP >= world.UnitMaxHP || !ss.Spend(healCost) {
			return
		}
		u.HP = world.UnitMaxHP
		deps.Log.Debug("healed at hospital", zap.Int("money", ss.Money))
	case data.ServiceGarage:
		v := ws.Vehicle(u.Vehicle)
		if v == nil || v.HP >= world.VehicleMaxHP || !ss.Spend(repairCost) {
			return
		}
		v.HP = world.VehicleMaxHP
		deps.Log.Debug("vehicle repaired", zap.Int("money", ss.Money))
	}
}

// HandlePurchase buys the item named by the action key from a nearby shop.
func HandlePurchase(a component.Action, deps *Deps) {
	ws := deps.World
	u := ws.PlayerUnit()
	if u == nil {
		return
	}
	if ws.NearestService(u.Pos, interactRange, data.ServiceShop) < 0 {
		return
	}
	item := ws.Tables.Shop.Get(a.Key)
	if item == nil {
		deps.Log.Debug("unknown shop item", zap.String("key", a.Key))
		return
	}
	if !ws.Session.Spend(item.Price) {
		return
	}
	if item.Heal > 0 {
		u.HP = min(world.UnitMaxHP, u.HP+float64(item.Heal))
	}
	if item.Vehicle {
		ws.SpawnVehicle(u.Pos.Add(world.Vec{X: world.VehicleExitOffset}))
	}
	deps.Log.Debug("item purchased", zap.String("item", item.Key), zap.Int("money", ws.Session.Money))
}
