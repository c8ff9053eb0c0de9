package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/scenekit/internal/physics"
	"gopkg.in/yaml.v3"
)

// SceneFile describes one scene: its bodies, the joints between them and
// the body to watch. Bodies and joints refer to each other by name.
type SceneFile struct {
	Name   string      `yaml:"name"`
	Scene  uint64      `yaml:"scene"`
	Bodies []BodySpec  `yaml:"bodies"`
	Joints []JointSpec `yaml:"joints,omitempty"`
	Watch  string      `yaml:"watch,omitempty"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) Physics() physics.Vec2 { return physics.Vec2{X: v.X, Y: v.Y} }

type BodySpec struct {
	Name            string         `yaml:"name"`
	Class           string         `yaml:"class,omitempty"`
	Kind            string         `yaml:"kind,omitempty"`
	Position        Vec            `yaml:"position"`
	Angle           float64        `yaml:"angle,omitempty"`
	Velocity        Vec            `yaml:"velocity,omitempty"`
	AngularVelocity float64        `yaml:"angular_velocity,omitempty"`
	Mass            float64        `yaml:"mass,omitempty"`
	Colliders       []ColliderSpec `yaml:"colliders"`
	Script          string         `yaml:"script,omitempty"`
	Control         *ControlSpec   `yaml:"control,omitempty"`
	Look            LookSpec       `yaml:"look,omitempty"`
}

type ColliderSpec struct {
	Shape          string  `yaml:"shape"`
	Radius         float64 `yaml:"radius,omitempty"`
	Width          float64 `yaml:"width,omitempty"`
	Height         float64 `yaml:"height,omitempty"`
	A              Vec     `yaml:"a,omitempty"`
	B              Vec     `yaml:"b,omitempty"`
	Offset         Vec     `yaml:"offset,omitempty"`
	Friction       float64 `yaml:"friction,omitempty"`
	Elasticity     float64 `yaml:"elasticity,omitempty"`
	Sensor         bool    `yaml:"sensor,omitempty"`
	Events         bool    `yaml:"events,omitempty"`
	ForceThreshold float64 `yaml:"force_threshold,omitempty"`
}

type JointSpec struct {
	Kind      string  `yaml:"kind"`
	Body1     string  `yaml:"body1"`
	Body2     string  `yaml:"body2"`
	AnchorA   Vec     `yaml:"anchor_a,omitempty"`
	AnchorB   Vec     `yaml:"anchor_b,omitempty"`
	Min       float64 `yaml:"min,omitempty"`
	Max       float64 `yaml:"max,omitempty"`
	Stiffness float64 `yaml:"stiffness,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`
}

// ControlSpec attaches a built-in controller to a body. Only "pid" is
// known; it holds the body at Target.
type ControlSpec struct {
	Kind       string  `yaml:"kind"`
	Target     Vec     `yaml:"target"`
	Kp         float64 `yaml:"kp"`
	Ki         float64 `yaml:"ki,omitempty"`
	Kd         float64 `yaml:"kd,omitempty"`
	MaxImpulse float64 `yaml:"max_impulse,omitempty"`
}

type LookSpec struct {
	Glyph string `yaml:"glyph,omitempty"`
	Color string `yaml:"color,omitempty"`
}

var ErrInvalidScene = errors.New("invalid scene")

func LoadScene(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return sf, nil
}

func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

func SaveScene(path string, sf *SceneFile) error {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks names and kinds without touching any world.
func (sf *SceneFile) Validate() error {
	names := make(map[string]bool, len(sf.Bodies))
	for i, b := range sf.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidScene, i)
		}
		if names[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidScene, b.Name)
		}
		names[b.Name] = true
		if _, err := physics.ParseBodyKind(b.Kind); err != nil {
			return fmt.Errorf("%w: body %q: %v", ErrInvalidScene, b.Name, err)
		}
		for _, c := range b.Colliders {
			if _, err := physics.ParseShapeKind(c.Shape); err != nil {
				return fmt.Errorf("%w: body %q: %v", ErrInvalidScene, b.Name, err)
			}
		}
		if b.Control != nil {
			if b.Script != "" {
				return fmt.Errorf("%w: body %q has both a script and a controller", ErrInvalidScene, b.Name)
			}
			if b.Control.Kind != "pid" {
				return fmt.Errorf("%w: body %q: unknown controller %q", ErrInvalidScene, b.Name, b.Control.Kind)
			}
		}
	}
	for _, j := range sf.Joints {
		if _, err := physics.ParseJointKind(j.Kind); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		for _, n := range []string{j.Body1, j.Body2} {
			if !names[n] {
				return fmt.Errorf("%w: joint references unknown body %q", ErrInvalidScene, n)
			}
		}
	}
	if sf.Watch != "" && !names[sf.Watch] {
		return fmt.Errorf("%w: watch references unknown body %q", ErrInvalidScene, sf.Watch)
	}
	return nil
}
