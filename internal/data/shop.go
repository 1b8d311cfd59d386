package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShopItem is one purchasable entry. An item either heals the buyer or
// delivers a vehicle next to them.
type ShopItem struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	Price   int    `yaml:"price"`
	Heal    int    `yaml:"heal"`    // hp restored, capped at max
	Vehicle bool   `yaml:"vehicle"` // spawns a drivable vehicle
}

// ShopTable holds all purchasable items indexed by key.
type ShopTable struct {
	items map[string]*ShopItem
	order []*ShopItem
}

// Get returns an item by key, or nil if not found.
func (t *ShopTable) Get(key string) *ShopItem {
	return t.items[key]
}

// All returns items in listing order.
func (t *ShopTable) All() []*ShopItem { return t.order }

// Count returns the number of items loaded.
func (t *ShopTable) Count() int {
	return len(t.items)
}

type shopListFile struct {
	Items []ShopItem `yaml:"items"`
}

// LoadShopTable loads shop items from a YAML file.
func LoadShopTable(path string) (*ShopTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shop_list: %w", err)
	}
	return parseShopTable(raw)
}

func parseShopTable(raw []byte) (*ShopTable, error) {
	var f shopListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse shop_list: %w", err)
	}
	t := &ShopTable{items: make(map[string]*ShopItem, len(f.Items))}
	for i := range f.Items {
		item := &f.Items[i]
		if item.Price < 0 {
			return nil, fmt.Errorf("shop_list: %q has negative price", item.Key)
		}
		t.items[item.Key] = item
		t.order = append(t.order, item)
	}
	return t, nil
}
