// Package driver advances every scene of an engine tick by tick and routes
// window events, physics events and step notifications to the listeners
// installed through engine.SceneHandle.
package driver

import (
	"context"
	"fmt"

	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/window"
	"go.uber.org/zap"
)

type Driver struct {
	eng  *engine.Engine
	pump window.Pump
	cfg  Config
	log  *zap.Logger

	metrics   []Metric
	observers []Observer

	tick      uint64
	closing   bool
	recovered int
}

func New(eng *engine.Engine, pump window.Pump, cfg Config) (*Driver, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %v", cfg.Dt)
	}
	if pump == nil {
		pump = window.Idle{}
	}
	return &Driver{
		eng:  eng,
		pump: pump,
		cfg:  cfg,
		log:  eng.Logger().Named("driver"),
	}, nil
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Tick() uint64          { return d.tick }
func (d *Driver) Time() float64         { return float64(d.tick) * d.cfg.Dt }
func (d *Driver) Closing() bool         { return d.closing }
func (d *Driver) SetFocus(scene uint64) { d.cfg.Focus = scene }

// Step runs one tick across all scenes in ascending scene id order.
func (d *Driver) Step() {
	events := d.pump.Poll()
	for _, ev := range events {
		if _, ok := ev.(window.CloseRequested); ok {
			d.closing = true
		}
	}
	if _, ok := d.eng.Scene(d.cfg.Focus); ok {
		for _, ev := range events {
			d.guard("window event", func() { d.eng.DispatchWindowEvent(d.cfg.Focus, ev) })
		}
	} else if len(events) > 0 {
		d.log.Debug("no focused scene, dropping window events",
			zap.Uint64("focus", d.cfg.Focus), zap.Int("events", len(events)))
	}

	for _, id := range d.eng.SceneIDs() {
		d.stepScene(id)
	}

	t := float64(d.tick+1) * d.cfg.Dt
	d.observeWatcher(t)
	for _, o := range d.observers {
		o.OnTick(d.eng, d.tick, t)
	}
	d.tick++
}

func (d *Driver) stepScene(id uint64) {
	scene, ok := d.eng.Scene(id)
	if !ok {
		// removed by a listener earlier in this tick
		return
	}
	ev := scene.World.Step(d.cfg.Dt)

	for _, c := range ev.Collisions {
		if !d.deliverable(id, "collision", c.Collider1, c.Collider2) {
			continue
		}
		d.guard("collision", func() { d.eng.DispatchCollision(id, c) })
	}
	for _, f := range ev.Forces {
		if !d.deliverable(id, "contact force", f.Collider1, f.Collider2) {
			continue
		}
		d.guard("contact force", func() { d.eng.DispatchForce(id, f) })
	}

	h := d.eng.Handle(id)
	for _, bid := range d.eng.BodyIDs(id) {
		b, ok := d.eng.Body(bid)
		if !ok || b.LifeStepOp == nil {
			continue
		}
		op := b.LifeStepOp
		d.guard("life step", func() { op.Step(h, bid, d.tick) })
	}

	if _, ok := d.eng.Scene(id); ok {
		d.guard("step", func() { d.eng.DispatchStep(id, d.tick) })
	}
}

// deliverable reports whether a physics event can still reach the scene's
// handler. The scene may be gone and the colliders may belong to a body
// removed since the step, by an earlier listener or on a previous tick.
func (d *Driver) deliverable(id uint64, what string, c1, c2 physics.ColliderHandle) bool {
	scene, ok := d.eng.Scene(id)
	if !ok {
		return false
	}
	_, ok1 := scene.World.ColliderParent(c1)
	_, ok2 := scene.World.ColliderParent(c2)
	if !ok1 || !ok2 {
		d.log.Debug("dropping event for removed collider", zap.String("event", what),
			zap.Uint64("scene", id), zap.Uint64("collider1", uint64(c1)), zap.Uint64("collider2", uint64(c2)))
		return false
	}
	return true
}

func (d *Driver) observeWatcher(t float64) {
	if len(d.metrics) == 0 {
		return
	}
	id, ok := d.eng.Watcher()
	if !ok {
		return
	}
	b, ok := d.eng.Body(id)
	if !ok {
		return
	}
	st, ok := d.eng.Handle(b.Scene).BodyState(id)
	if !ok {
		return
	}
	for _, m := range d.metrics {
		m.Observe(st, t)
	}
}

func (d *Driver) guard(what string, fn func()) {
	if !d.cfg.RecoverListeners {
		fn()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.recovered++
			fields := []zap.Field{zap.String("listener", what), zap.Uint64("tick", d.tick)}
			if fe, ok := engine.AsFatal(r); ok {
				fields = append(fields, zap.Error(fe))
			} else {
				fields = append(fields, zap.Any("panic", r))
			}
			d.log.Warn("listener panicked", fields...)
		}
	}()
	fn()
}

// Run steps until ticks have elapsed, a window close is requested or ctx
// is done. ticks == 0 means no budget.
func (d *Driver) Run(ctx context.Context, ticks uint64) (*Result, error) {
	for _, m := range d.metrics {
		m.Reset()
	}
	start := d.tick
	result := &Result{Reason: StopBudget, Metrics: make(map[string]float64)}

	d.log.Info("run started", zap.Uint64("tick", start), zap.Uint64("budget", ticks),
		zap.Int("scenes", len(d.eng.SceneIDs())))

	var err error
loop:
	for ticks == 0 || d.tick-start < ticks {
		select {
		case <-ctx.Done():
			result.Reason = StopCanceled
			err = ctx.Err()
			break loop
		default:
		}

		d.Step()
		if d.closing {
			result.Reason = StopClosed
			break loop
		}
	}

	result.Ticks = d.tick - start
	result.Time = d.Time()
	result.Recovered = d.recovered
	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	d.log.Info("run finished", zap.Uint64("ticks", result.Ticks), zap.Stringer("reason", result.Reason))
	return result, err
}
