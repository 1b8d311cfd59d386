package data

import (
	"embed"
	"fmt"
	"path/filepath"
)

//go:embed yaml/*.yaml
var embedded embed.FS

// Tables bundles every static table the simulation reads.
type Tables struct {
	Factions *FactionTable
	Work     *WorkTable
	Layout   *Layout
	Shop     *ShopTable
}

const (
	factionFile = "faction_list.yaml"
	workFile    = "work_list.yaml"
	layoutFile  = "map_layout.yaml"
	shopFile    = "shop_list.yaml"
)

// LoadTables loads all tables from dir. An empty dir selects the copies
// compiled into the binary.
func LoadTables(dir string) (*Tables, error) {
	if dir == "" {
		return DefaultTables()
	}
	var (
		t   Tables
		err error
	)
	if t.Factions, err = LoadFactionTable(filepath.Join(dir, factionFile)); err != nil {
		return nil, err
	}
	if t.Work, err = LoadWorkTable(filepath.Join(dir, workFile)); err != nil {
		return nil, err
	}
	if t.Layout, err = LoadLayout(filepath.Join(dir, layoutFile)); err != nil {
		return nil, err
	}
	if t.Shop, err = LoadShopTable(filepath.Join(dir, shopFile)); err != nil {
		return nil, err
	}
	if err := t.Layout.validate(t.Factions); err != nil {
		return nil, err
	}
	return &t, nil
}

// DefaultTables parses the embedded tables.
func DefaultTables() (*Tables, error) {
	read := func(name string) ([]byte, error) {
		raw, err := embedded.ReadFile("yaml/" + name)
		if err != nil {
			return nil, fmt.Errorf("embedded %s: %w", name, err)
		}
		return raw, nil
	}
	var t Tables
	raw, err := read(factionFile)
	if err != nil {
		return nil, err
	}
	if t.Factions, err = parseFactionTable(raw); err != nil {
		return nil, err
	}
	if raw, err = read(workFile); err != nil {
		return nil, err
	}
	if t.Work, err = parseWorkTable(raw); err != nil {
		return nil, err
	}
	if raw, err = read(layoutFile); err != nil {
		return nil, err
	}
	if t.Layout, err = parseLayout(raw); err != nil {
		return nil, err
	}
	if raw, err = read(shopFile); err != nil {
		return nil, err
	}
	if t.Shop, err = parseShopTable(raw); err != nil {
		return nil, err
	}
	if err := t.Layout.validate(t.Factions); err != nil {
		return nil, err
	}
	return &t, nil
}
