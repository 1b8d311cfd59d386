package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed lua
var embedded embed.FS

// scriptDirs lists script subdirectories in load order.
var scriptDirs = []string{"core", "combat", "ai"}

// Engine wraps a single gopher-lua VM holding the simulation formulas.
// Single-goroutine access only (game loop). Every bridge falls back to the
// built-in formula when its Lua function is missing or fails.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine. An empty scriptsDir loads the scripts
// compiled into the binary.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range scriptDirs {
		var err error
		if scriptsDir == "" {
			err = e.loadEmbedded(path.Join("lua", sub))
		} else {
			err = e.loadDir(filepath.Join(scriptsDir, sub))
		}
		if err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

func (e *Engine) loadEmbedded(dir string) error {
	entries, err := fs.ReadDir(embedded, dir)
	if err != nil {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := path.Join(dir, entry.Name())
		src, err := embedded.ReadFile(p)
		if err != nil {
			return err
		}
		if err := e.vm.DoString(string(src)); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded embedded lua script", zap.String("file", p))
	}
	return nil
}

// DoString runs a chunk in the engine's VM, typically to override a formula.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// --- Progression Bridge ---

// LevelCost calls Lua level_cost(level).
func (e *Engine) LevelCost(level int) int {
	n, ok := e.callNumber("level_cost", lua.LNumber(level))
	if !ok || n <= 0 {
		return 1000 * level
	}
	return int(n)
}

// FireCooldown calls Lua fire_cooldown(level).
func (e *Engine) FireCooldown(level int) int {
	n, ok := e.callNumber("fire_cooldown", lua.LNumber(level))
	if !ok || n < 1 {
		return max(5, 10-level)
	}
	return int(n)
}

// ShotDamage calls Lua shot_damage(level, is_player).
func (e *Engine) ShotDamage(level int, isPlayer bool) float64 {
	n, ok := e.callNumber("shot_damage", lua.LNumber(level), lua.LBool(isPlayer))
	if !ok || n <= 0 {
		if isPlayer {
			return float64(5 + level)
		}
		return 5
	}
	return n
}

// --- Standing Bridge ---

// KillConsequence is the standing change after the human kills a unit.
type KillConsequence struct {
	Reputation int
	Pursuit    int
}

var defaultConsequences = map[string]KillConsequence{
	"defender": {Reputation: -10, Pursuit: 1},
	"attacker": {Reputation: 5},
	"civilian": {Reputation: -20, Pursuit: 1},
	"predator": {Reputation: 2},
}

// KillConsequence calls Lua kill_consequence(role).
func (e *Engine) KillConsequence(role string) KillConsequence {
	fn := e.vm.GetGlobal("kill_consequence")
	if fn == lua.LNil {
		return defaultConsequences[role]
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(role)); err != nil {
		e.log.Error("lua kill_consequence error", zap.Error(err))
		return defaultConsequences[role]
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return defaultConsequences[role]
	}
	return KillConsequence{
		Reputation: lInt(rt, "rep"),
		Pursuit:    lInt(rt, "pursuit"),
	}
}

// ContractLegalBias calls Lua contract_legal_bias(rep) and returns the
// probability that the next contract is legal, clamped to [0,1].
func (e *Engine) ContractLegalBias(rep int) float64 {
	p, ok := e.callNumber("contract_legal_bias", lua.LNumber(rep))
	if !ok {
		switch {
		case rep > 50:
			return 0.8
		case rep < -50:
			return 0.2
		}
		return 0.5
	}
	return min(1, max(0, p))
}

// --- AI Bridge ---

// DefenderView is what a defender weighs when it scans. Distances are
// negative when there is no such candidate.
type DefenderView struct {
	Pursuit      int
	HumanDist    float64
	IntruderDist float64
}

// Threats a defender can choose to engage.
const (
	EngageNone     = "none"
	EngageHuman    = "human"
	EngageIntruder = "intruder"
)

// DefenderPriority calls Lua defender_priority(ctx).
func (e *Engine) DefenderPriority(v DefenderView) string {
	fn := e.vm.GetGlobal("defender_priority")
	if fn == lua.LNil {
		return defenderPriority(v)
	}

	t := e.vm.NewTable()
	t.RawSetString("pursuit", lua.LNumber(v.Pursuit))
	t.RawSetString("human_dist", lua.LNumber(v.HumanDist))
	t.RawSetString("intruder_dist", lua.LNumber(v.IntruderDist))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua defender_priority error", zap.Error(err))
		return defenderPriority(v)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	switch choice := lua.LVAsString(result); choice {
	case EngageNone, EngageHuman, EngageIntruder:
		return choice
	}
	return defenderPriority(v)
}

// defenderPriority: pursuit radius 300 + 150 per level, then intruders.
func defenderPriority(v DefenderView) string {
	if v.Pursuit > 0 && v.HumanDist >= 0 && v.HumanDist <= 300+150*float64(v.Pursuit) {
		return EngageHuman
	}
	if v.IntruderDist >= 0 {
		return EngageIntruder
	}
	return EngageNone
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// callNumber calls a Lua function and returns its numeric result. ok is
// false when the function is missing or errors.
func (e *Engine) callNumber(name string, args ...lua.LValue) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Debug("lua function not found", zap.String("name", name))
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
