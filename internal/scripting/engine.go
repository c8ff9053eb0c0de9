package scripting

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/scenekit/internal/engine"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as API_VERSION.
const APIVersion = 1

// Engine wraps a single gopher-lua VM shared by every scripted body.
// Single-goroutine access only (driver loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
	dir string

	loaded  map[string]*Behaviour
	current *engine.SceneHandle
	fatal   *engine.FatalError
}

// NewEngine creates the VM. Script names passed to Load are resolved
// against scriptsDir.
func NewEngine(scriptsDir string, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{
		vm:     vm,
		log:    log.Named("lua"),
		dir:    scriptsDir,
		loaded: make(map[string]*Behaviour),
	}
	e.registerSceneAPI()
	return e
}

// Load compiles a script file once and returns its behaviour. Every script
// runs in its own environment so top-level names do not collide.
func (e *Engine) Load(name string) (*Behaviour, error) {
	if b, ok := e.loaded[name]; ok {
		return b, nil
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.dir, name)
	}
	fn, err := e.vm.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return e.install(name, fn)
}

// LoadString is Load for source held in memory.
func (e *Engine) LoadString(name, src string) (*Behaviour, error) {
	if b, ok := e.loaded[name]; ok {
		return b, nil
	}
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return e.install(name, fn)
}

func (e *Engine) install(name string, fn *lua.LFunction) (*Behaviour, error) {
	env := e.vm.NewTable()
	meta := e.vm.NewTable()
	meta.RawSetString("__index", e.vm.G.Global)
	e.vm.SetMetatable(env, meta)
	fn.Env = env

	e.vm.Push(fn)
	if err := e.vm.PCall(0, 0, nil); err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	onStep, ok := env.RawGetString("on_step").(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("script %s does not define on_step", name)
	}
	b := &Behaviour{eng: e, name: name, env: env, onStep: onStep}
	e.loaded[name] = b
	e.log.Debug("loaded lua script", zap.String("script", name))
	return b, nil
}

// Loaded returns how many distinct scripts are cached.
func (e *Engine) Loaded() int { return len(e.loaded) }

func (e *Engine) Close() {
	e.vm.Close()
}

// Behaviour is a loaded script's on_step function. It satisfies
// engine.LifeStepOp, so several bodies can share one.
type Behaviour struct {
	eng    *Engine
	name   string
	env    *lua.LTable
	onStep *lua.LFunction
	errors int
}

func (b *Behaviour) Name() string { return b.name }

// Errors counts on_step calls that raised a Lua error.
func (b *Behaviour) Errors() int { return b.errors }

// Get reads a top-level variable of the script.
func (b *Behaviour) Get(key string) lua.LValue {
	return b.env.RawGetString(key)
}

// Step calls on_step(body_id, tick). Lua errors are logged and counted;
// they never stop the driver. An engine fatal raised through the scene API
// panics out of Step with the original *engine.FatalError.
func (b *Behaviour) Step(h *engine.SceneHandle, body uint64, tick uint64) {
	e := b.eng
	prev := e.current
	e.current = h
	defer func() {
		e.current = prev
		e.fatal = nil
	}()

	err := e.vm.CallByParam(lua.P{
		Fn:      b.onStep,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(body), lua.LNumber(tick))
	if e.fatal != nil {
		panic(e.fatal)
	}
	if err != nil {
		b.errors++
		e.log.Error("lua on_step error",
			zap.String("script", b.name),
			zap.Uint64("body", body),
			zap.Uint64("tick", tick),
			zap.Error(err))
	}
}
