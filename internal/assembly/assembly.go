// Package assembly populates a scene from a config.SceneFile through the
// engine façade.
package assembly

import (
	"errors"
	"fmt"

	"github.com/san-kum/scenekit/internal/config"
	"github.com/san-kum/scenekit/internal/control"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/scripting"
)

var ErrNoScripting = errors.New("scene uses scripts but no script engine was given")

// Options carry what Build needs beyond the scene file.
type Options struct {
	Scripts *scripting.Engine
	// Dt is the tick length seen by controllers. Zero means config.DefaultDt.
	Dt float64
}

// Build adds every body, then every joint, then binds the watcher. Bodies
// receive ids in file order. The returned map goes from body name to id.
func Build(h *engine.SceneHandle, sf *config.SceneFile, opts Options) (map[string]uint64, error) {
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	if opts.Dt <= 0 {
		opts.Dt = config.DefaultDt
	}

	// Resolve behaviours first so a bad script leaves the scene untouched.
	ops := make([]engine.LifeStepOp, len(sf.Bodies))
	for i, spec := range sf.Bodies {
		switch {
		case spec.Control != nil:
			ops[i] = Controller(*spec.Control, opts.Dt)
		case spec.Script != "":
			if opts.Scripts == nil {
				return nil, fmt.Errorf("body %q: %w", spec.Name, ErrNoScripting)
			}
			b, err := opts.Scripts.Load(spec.Script)
			if err != nil {
				return nil, fmt.Errorf("body %q: %w", spec.Name, err)
			}
			ops[i] = b
		}
	}

	ids := make(map[string]uint64, len(sf.Bodies))
	for i, spec := range sf.Bodies {
		bb, err := BodyBuilder(spec)
		if err != nil {
			return nil, err
		}
		bb.LifeStepOp = ops[i]
		ids[spec.Name] = h.AddBody(bb)
	}

	for _, js := range sf.Joints {
		desc, err := JointDesc(js)
		if err != nil {
			return nil, err
		}
		h.AddJoint(engine.Joint{Body1: ids[js.Body1], Body2: ids[js.Body2], Desc: desc})
	}

	if sf.Watch != "" {
		h.BindWatcher(ids[sf.Watch])
	}
	return ids, nil
}

// BodyBuilder converts a body spec. The look is stored as the spec's
// config.LookSpec.
func BodyBuilder(spec config.BodySpec) (engine.BodyBuilder, error) {
	kind, err := physics.ParseBodyKind(spec.Kind)
	if err != nil {
		return engine.BodyBuilder{}, fmt.Errorf("body %q: %w", spec.Name, err)
	}
	colliders := make([]physics.ColliderDesc, 0, len(spec.Colliders))
	for _, cs := range spec.Colliders {
		cd, err := ColliderDesc(cs)
		if err != nil {
			return engine.BodyBuilder{}, fmt.Errorf("body %q: %w", spec.Name, err)
		}
		colliders = append(colliders, cd)
	}
	return engine.BodyBuilder{
		Rigid: physics.RigidBodyDesc{
			Kind:            kind,
			Position:        spec.Position.Physics(),
			Angle:           spec.Angle,
			Velocity:        spec.Velocity.Physics(),
			AngularVelocity: spec.AngularVelocity,
			Mass:            spec.Mass,
		},
		Colliders: colliders,
		Class:     engine.Class(spec.Class),
		Name:      spec.Name,
		Look:      spec.Look,
	}, nil
}

func ColliderDesc(cs config.ColliderSpec) (physics.ColliderDesc, error) {
	shape, err := physics.ParseShapeKind(cs.Shape)
	if err != nil {
		return physics.ColliderDesc{}, err
	}
	return physics.ColliderDesc{
		Shape:                 shape,
		Radius:                cs.Radius,
		Width:                 cs.Width,
		Height:                cs.Height,
		A:                     cs.A.Physics(),
		B:                     cs.B.Physics(),
		Offset:                cs.Offset.Physics(),
		Friction:              cs.Friction,
		Elasticity:            cs.Elasticity,
		Sensor:                cs.Sensor,
		CollisionEvents:       cs.Events,
		ContactForceThreshold: cs.ForceThreshold,
	}, nil
}

func JointDesc(js config.JointSpec) (physics.JointDesc, error) {
	kind, err := physics.ParseJointKind(js.Kind)
	if err != nil {
		return physics.JointDesc{}, err
	}
	return physics.JointDesc{
		Kind:      kind,
		AnchorA:   js.AnchorA.Physics(),
		AnchorB:   js.AnchorB.Physics(),
		Min:       js.Min,
		Max:       js.Max,
		Stiffness: js.Stiffness,
		Damping:   js.Damping,
	}, nil
}

// Controller builds the behaviour for a validated control spec.
func Controller(cs config.ControlSpec, dt float64) engine.LifeStepOp {
	hold := control.NewHold(cs.Target.Physics(), cs.Kp, cs.Ki, cs.Kd, dt)
	hold.MaxImpulse = cs.MaxImpulse
	return hold
}
