// Package scripting runs the optional user-supplied Lua hooks a batch
// job evaluates per composed permutation: `filter(p)` keeps or drops a
// result, `score(p)` ranks it. Hooks are plain Lua functions over a
// read-only permutation table; a job without a script keeps everything
// with score zero.
package scripting

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only;
// parallel jobs create one engine per worker.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	hasFilter bool
	hasScore  bool
}

// Permutation is the pre-packed view of one composed result handed to
// the Lua hooks.
type Permutation struct {
	KeeperA, BurnerA uint32
	KeeperB, BurnerB uint32
	Checks           int
	ColorBand        int
	Gradient         int
	Speed            int
	Direction        int
	Attributes       map[string]string
}

// NewEngine loads the hook script at path. An empty path yields a no-op
// engine that keeps every permutation.
func NewEngine(path string, log *zap.Logger) (*Engine, error) {
	e := &Engine{log: log}
	if path == "" {
		return e, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("hook script: %w", err)
	}

	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	e.vm = vm
	e.hasFilter = vm.GetGlobal("filter") != lua.LNil
	e.hasScore = vm.GetGlobal("score") != lua.LNil
	log.Debug("loaded lua hooks", zap.String("file", path),
		zap.Bool("filter", e.hasFilter), zap.Bool("score", e.hasScore))
	return e, nil
}

func (e *Engine) Close() {
	if e.vm != nil {
		e.vm.Close()
	}
}

// Filter reports whether the permutation should be kept. A missing hook
// or a hook error keeps the row.
func (e *Engine) Filter(p Permutation) bool {
	if !e.hasFilter {
		return true
	}
	fn := e.vm.GetGlobal("filter")
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, e.permutationTable(p)); err != nil {
		e.log.Error("lua filter failed", zap.Error(err))
		return true
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(ret)
}

// Score returns the permutation's rank value, 0 without a hook.
func (e *Engine) Score(p Permutation) float64 {
	if !e.hasScore {
		return 0
	}
	fn := e.vm.GetGlobal("score")
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, e.permutationTable(p)); err != nil {
		e.log.Error("lua score failed", zap.Error(err))
		return 0
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if n, ok := ret.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// permutationTable marshals the permutation into a Lua table.
func (e *Engine) permutationTable(p Permutation) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("keeper_a", lua.LNumber(p.KeeperA))
	t.RawSetString("burner_a", lua.LNumber(p.BurnerA))
	t.RawSetString("keeper_b", lua.LNumber(p.KeeperB))
	t.RawSetString("burner_b", lua.LNumber(p.BurnerB))
	t.RawSetString("checks", lua.LNumber(p.Checks))
	t.RawSetString("color_band", lua.LNumber(p.ColorBand))
	t.RawSetString("gradient", lua.LNumber(p.Gradient))
	t.RawSetString("speed", lua.LNumber(p.Speed))
	t.RawSetString("direction", lua.LNumber(p.Direction))

	attrs := e.vm.NewTable()
	for k, v := range p.Attributes {
		attrs.RawSetString(k, lua.LString(v))
	}
	t.RawSetString("attributes", attrs)
	return t
}
