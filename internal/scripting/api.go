package scripting

import (
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	lua "github.com/yuin/gopher-lua"
)

// registerSceneAPI installs the global "scene" table. Its functions act on
// the handle of the on_step call in progress.
func (e *Engine) registerSceneAPI() {
	funcs := map[string]lua.LGFunction{
		"position": e.luaPosition,
		"velocity": e.luaVelocity,
		"impulse":  e.luaImpulse,
		"remove":   e.luaRemove,
		"watch":    e.luaWatch,
		"name":     e.luaName,
		"scene_id": e.luaSceneID,
	}
	for name, fn := range funcs {
		funcs[name] = e.keepFatal(fn)
	}
	e.vm.SetGlobal("scene", e.vm.SetFuncs(e.vm.NewTable(), funcs))
}

// keepFatal records an engine fatal raised under fn before the protected
// call turns it into a plain Lua error. Behaviour.Step re-raises it.
func (e *Engine) keepFatal(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		defer func() {
			if r := recover(); r != nil {
				if fe, ok := engine.AsFatal(r); ok && e.fatal == nil {
					e.fatal = fe
				}
				panic(r)
			}
		}()
		return fn(L)
	}
}

func (e *Engine) handle(L *lua.LState) *engine.SceneHandle {
	if e.current == nil {
		L.RaiseError("scene API used outside on_step")
	}
	return e.current
}

func checkID(L *lua.LState, n int) uint64 {
	v := L.CheckNumber(n)
	if v < 0 {
		L.ArgError(n, "body id must not be negative")
	}
	return uint64(v)
}

func (e *Engine) luaPosition(L *lua.LState) int {
	h := e.handle(L)
	st, ok := h.BodyState(checkID(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(st.Position.X))
	L.Push(lua.LNumber(st.Position.Y))
	return 2
}

func (e *Engine) luaVelocity(L *lua.LState) int {
	h := e.handle(L)
	st, ok := h.BodyState(checkID(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(st.Velocity.X))
	L.Push(lua.LNumber(st.Velocity.Y))
	return 2
}

func (e *Engine) luaImpulse(L *lua.LState) int {
	h := e.handle(L)
	id := checkID(L, 1)
	imp := physics.Vec2{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}
	L.Push(lua.LBool(h.ApplyImpulse(id, imp)))
	return 1
}

func (e *Engine) luaRemove(L *lua.LState) int {
	h := e.handle(L)
	L.Push(lua.LBool(h.RemoveBody(checkID(L, 1))))
	return 1
}

func (e *Engine) luaWatch(L *lua.LState) int {
	e.handle(L).BindWatcher(checkID(L, 1))
	return 0
}

func (e *Engine) luaName(L *lua.LState) int {
	b, ok := e.handle(L).Body(checkID(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.Name))
	return 1
}

func (e *Engine) luaSceneID(L *lua.LState) int {
	L.Push(lua.LNumber(e.handle(L).SceneID()))
	return 1
}
