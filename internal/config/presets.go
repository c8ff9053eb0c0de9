package config

import (
	"maps"
	"slices"
)

func ground() BodySpec {
	return BodySpec{
		Name: "ground", Class: "terrain", Kind: "static",
		Colliders: []ColliderSpec{{Shape: "segment", A: Vec{X: -20}, B: Vec{X: 20}, Friction: 0.8, Elasticity: 0.5}},
		Look:      LookSpec{Glyph: "=", Color: "#6c7086"},
	}
}

func ball(name string, x, y float64) BodySpec {
	return BodySpec{
		Name: name, Class: "ball", Position: Vec{X: x, Y: y}, Mass: 1,
		Colliders: []ColliderSpec{{Shape: "circle", Radius: 0.5, Friction: 0.5, Elasticity: 0.9, Events: true}},
		Look:      LookSpec{Glyph: "o", Color: "#f38ba8"},
	}
}

var Presets = map[string]*SceneFile{
	"drop": {
		Name: "drop",
		Bodies: []BodySpec{
			ground(),
			ball("ball", 0, 10),
		},
		Watch: "ball",
	},
	"pendulum": {
		Name: "pendulum",
		Bodies: []BodySpec{
			{
				Name: "pivot", Class: "anchor", Kind: "static", Position: Vec{Y: 10},
				Colliders: []ColliderSpec{{Shape: "circle", Radius: 0.1, Sensor: true}},
			},
			ball("bob", 4, 10),
		},
		Joints: []JointSpec{{Kind: "pin", Body1: "pivot", Body2: "bob"}},
		Watch:  "bob",
	},
	"cradle": {
		Name: "cradle",
		Bodies: []BodySpec{
			{
				Name: "bar", Class: "anchor", Kind: "static", Position: Vec{Y: 10},
				Colliders: []ColliderSpec{{Shape: "box", Width: 6, Height: 0.2, Sensor: true}},
			},
			ball("b1", -3, 5), ball("b2", -1, 5), ball("b3", 1, 5), ball("b4", 3, 5),
		},
		Joints: []JointSpec{
			{Kind: "pin", Body1: "bar", Body2: "b1", AnchorA: Vec{X: -3}},
			{Kind: "pin", Body1: "bar", Body2: "b2", AnchorA: Vec{X: -1}},
			{Kind: "pin", Body1: "bar", Body2: "b3", AnchorA: Vec{X: 1}},
			{Kind: "pin", Body1: "bar", Body2: "b4", AnchorA: Vec{X: 3}},
		},
		Watch: "b4",
	},
	"spring": {
		Name: "spring",
		Bodies: []BodySpec{
			ground(),
			{
				Name: "block", Class: "crate", Position: Vec{Y: 1}, Mass: 2,
				Colliders: []ColliderSpec{{Shape: "box", Width: 1, Height: 1, Friction: 0.3, ForceThreshold: 50}},
				Look:      LookSpec{Glyph: "#", Color: "#fab387"},
			},
			ball("weight", 0, 6),
		},
		Joints: []JointSpec{{Kind: "spring", Body1: "block", Body2: "weight", Min: 4, Stiffness: 40, Damping: 1.5}},
		Watch:  "weight",
	},
	"hover": {
		Name: "hover",
		Bodies: []BodySpec{
			ground(),
			{
				Name: "drone", Class: "craft", Position: Vec{X: -4, Y: 1}, Mass: 1,
				Colliders: []ColliderSpec{{Shape: "box", Width: 1, Height: 0.3}},
				Control:   &ControlSpec{Kind: "pid", Target: Vec{X: 2, Y: 6}, Kp: 6, Ki: 2, Kd: 4, MaxImpulse: 1},
				Look:      LookSpec{Glyph: "^", Color: "#a6e3a1"},
			},
		},
		Watch: "drone",
	},
}

func GetPreset(name string) *SceneFile {
	sf, ok := Presets[name]
	if !ok {
		return nil
	}
	return sf
}

func ListPresets() []string {
	return slices.Sorted(maps.Keys(Presets))
}
