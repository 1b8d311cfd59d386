package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}
	if tb.Factions.Count() != 7 {
		t.Errorf("factions = %d, want 7", tb.Factions.Count())
	}
	if got := tb.Factions.RoleOf("blue"); got != RoleDefender {
		t.Errorf("blue role = %s, want defender", got)
	}
	if got := tb.Factions.WithRole(RoleAttacker); len(got) != 2 {
		t.Errorf("attacker factions = %v, want red and green", got)
	}
	if tb.Layout.Count() != 8 {
		t.Errorf("zones = %d, want 8", tb.Layout.Count())
	}
	if tb.Shop.Get("medkit") == nil {
		t.Errorf("medkit missing from shop table")
	}
	for _, r := range []Role{RoleCivilian, RoleDefender, RoleAttacker, RolePredator} {
		if tb.Work.Get(r) == nil {
			t.Errorf("no work table for %s", r)
		}
	}
}

func TestRoleWorkPickRespectsWeights(t *testing.T) {
	rw := &RoleWork{Tasks: []WorkWeight{
		{Kind: TaskIdle, Weight: 1},
		{Kind: TaskWander, Weight: 0},
		{Kind: TaskPatrol, Weight: 3},
	}, total: 4}

	cases := []struct {
		roll float64
		want TaskKind
	}{
		{0.0, TaskIdle},
		{0.24, TaskIdle},
		{0.25, TaskPatrol},
		{0.99, TaskPatrol},
	}
	for _, c := range cases {
		if got := rw.Pick(c.roll).Kind; got != c.want {
			t.Errorf("Pick(%v) = %s, want %s", c.roll, got, c.want)
		}
	}
}

func TestParseFactionTableRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown role":   "neutral: n\nplayer: p\nfactions:\n  - {id: n, role: civilian}\n  - {id: p, role: wizard}\n",
		"missing player": "neutral: n\nplayer: p\nfactions:\n  - {id: n, role: civilian}\n",
		"duplicate":      "neutral: n\nplayer: p\nfactions:\n  - {id: n, role: civilian}\n  - {id: n, role: civilian}\n  - {id: p, role: player}\n",
	}
	for name, src := range cases {
		if _, err := parseFactionTable([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadTablesFromDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{factionFile, workFile, layoutFile, shopFile} {
		raw, err := embedded.ReadFile("yaml/" + name)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	tb, err := LoadTables(dir)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tb.Shop.Count() != 3 {
		t.Errorf("shop items = %d, want 3", tb.Shop.Count())
	}

	if err := os.Remove(filepath.Join(dir, shopFile)); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTables(dir); err == nil {
		t.Errorf("expected error for missing shop_list")
	}
}
