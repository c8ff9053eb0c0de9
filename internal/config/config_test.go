package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Physics.Dt <= 0 {
		t.Error("dt should be positive")
	}
	s := cfg.Settings()
	if s.Gravity.Y != -9.81 || s.Iterations != DefaultIterations {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenekit.toml")
	data := `
[logging]
level = "debug"
format = "json"

[physics]
backend = "memory"
gravity = [0.0, -1.5]
integrator = "verlet"

[run]
ticks = 42
recover_listeners = true
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Physics.Backend != "memory" || cfg.Physics.Gravity[1] != -1.5 || cfg.Physics.Integrator != "verlet" {
		t.Errorf("physics = %+v", cfg.Physics)
	}
	// unset keys keep their defaults
	if cfg.Physics.Dt != DefaultDt || cfg.Run.DataDir != DefaultDataDir {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Run.Ticks != 42 || !cfg.Run.RecoverListeners {
		t.Errorf("run = %+v", cfg.Run)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	tests := map[string]string{
		"syntax":  "[physics\nbackend = 1",
		"backend": "[physics]\nbackend = \"box2d\"",
		"dt":      "[physics]\ndt = -1.0",
		"format":  "[logging]\nformat = \"xml\"",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			os.WriteFile(path, []byte(body), 0644)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

const sceneYAML = `
name: demo
scene: 2
bodies:
  - name: floor
    kind: static
    colliders:
      - shape: segment
        a: {x: -5, y: 0}
        b: {x: 5, y: 0}
  - name: ball
    position: {x: 0, y: 3}
    mass: 2
    script: bounce.lua
    colliders:
      - shape: circle
        radius: 0.5
        events: true
joints:
  - kind: spring
    body1: floor
    body2: ball
    stiffness: 10
watch: ball
`

func TestParseScene(t *testing.T) {
	sf, err := ParseScene([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sf.Name != "demo" || sf.Scene != 2 || len(sf.Bodies) != 2 || len(sf.Joints) != 1 {
		t.Fatalf("scene = %+v", sf)
	}
	ball := sf.Bodies[1]
	if ball.Position.Y != 3 || ball.Mass != 2 || ball.Script != "bounce.lua" {
		t.Errorf("ball = %+v", ball)
	}
	if !ball.Colliders[0].Events || ball.Colliders[0].Radius != 0.5 {
		t.Errorf("collider = %+v", ball.Colliders[0])
	}
	if sf.Bodies[0].Colliders[0].B.X != 5 {
		t.Errorf("segment = %+v", sf.Bodies[0].Colliders[0])
	}
}

func TestSceneValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(string) string
		want string
	}{
		{"unknown joint body", func(s string) string { return strings.Replace(s, "body2: ball", "body2: nope", 1) }, "nope"},
		{"bad shape", func(s string) string { return strings.Replace(s, "shape: circle", "shape: blob", 1) }, "blob"},
		{"bad kind", func(s string) string { return strings.Replace(s, "kind: static", "kind: ghost", 1) }, "ghost"},
		{"duplicate name", func(s string) string { return strings.Replace(s, "name: floor", "name: ball", 1) }, "duplicate"},
		{"unknown watch", func(s string) string { return strings.Replace(s, "watch: ball", "watch: moon", 1) }, "moon"},
		{"script and controller", func(s string) string {
			return strings.Replace(s, "script: bounce.lua", "script: bounce.lua\n    control: {kind: pid, kp: 1}", 1)
		}, "both"},
		{"bad controller", func(s string) string {
			return strings.Replace(s, "script: bounce.lua", "control: {kind: lqr, kp: 1}", 1)
		}, "lqr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tt.edit(sceneYAML)))
			if !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("err = %v, want ErrInvalidScene", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveAndLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drop.yaml")
	if err := SaveScene(path, GetPreset("drop")); err != nil {
		t.Fatal(err)
	}
	sf, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	if sf.Watch != "ball" || len(sf.Bodies) != 2 {
		t.Errorf("loaded = %+v", sf)
	}
}

func TestSceneControlRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hover.yaml")
	if err := SaveScene(path, GetPreset("hover")); err != nil {
		t.Fatal(err)
	}
	sf, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	c := sf.Bodies[1].Control
	if c == nil || c.Kind != "pid" || c.Target.Y != 6 || c.MaxImpulse != 1 {
		t.Errorf("control = %+v", c)
	}
	if sf.Bodies[0].Control != nil {
		t.Error("ground should have no controller")
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("names = %v", names)
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}
