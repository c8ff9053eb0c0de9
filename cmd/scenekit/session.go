package main

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/scenekit/internal/assembly"
	"github.com/san-kum/scenekit/internal/config"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/physics/chipmunk"
	"github.com/san-kum/scenekit/internal/physics/memworld"
	"github.com/san-kum/scenekit/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// session is one assembled scene ready to be driven.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	scene   *config.SceneFile
	eng     *engine.Engine
	scripts *scripting.Engine
	ids     map[string]uint64
}

func openSession(args []string) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	sf, dir, err := sceneSource(args)
	if err != nil {
		return nil, err
	}
	if scriptsDir != "" {
		dir = scriptsDir
	}

	eng, scripts, ids, err := buildScene(cfg, log, sf, dir)
	if err != nil {
		return nil, err
	}

	log.Info("scene assembled",
		zap.String("name", sf.Name),
		zap.String("backend", cfg.Physics.Backend),
		zap.Int("bodies", eng.BodyCount()),
		zap.Int("joints", eng.JointCount()),
		zap.Int("scripts", scripts.Loaded()))

	return &session{cfg: cfg, log: log, scene: sf, eng: eng, scripts: scripts, ids: ids}, nil
}

// buildScene creates a fresh engine with one world and assembles sf into
// it. Scripts are resolved against dir.
func buildScene(cfg *config.Config, log *zap.Logger, sf *config.SceneFile, dir string) (*engine.Engine, *scripting.Engine, map[string]uint64, error) {
	world, err := newWorld(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	eng := engine.New(log.Named("engine"))
	if err := eng.AddScene(sf.Scene, world); err != nil {
		return nil, nil, nil, err
	}

	scripts := scripting.NewEngine(dir, log.Named("scripting"))
	ids, err := assembly.Build(eng.Handle(sf.Scene), sf, assembly.Options{Scripts: scripts, Dt: cfg.Physics.Dt})
	if err != nil {
		scripts.Close()
		return nil, nil, nil, fmt.Errorf("scene %s: %w", sf.Name, err)
	}
	return eng, scripts, ids, nil
}

func (s *session) Close() {
	s.scripts.Close()
	_ = s.log.Sync()
}

// sceneSource returns the scene to run and the directory its scripts are
// resolved against.
func sceneSource(args []string) (*config.SceneFile, string, error) {
	switch {
	case preset != "" && len(args) > 0:
		return nil, "", fmt.Errorf("give either a scene file or --preset, not both")
	case preset != "":
		sf := config.GetPreset(preset)
		if sf == nil {
			return nil, "", fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		return sf, "scripts", nil
	case len(args) == 1:
		sf, err := config.LoadScene(args[0])
		if err != nil {
			return nil, "", err
		}
		return sf, filepath.Dir(args[0]), nil
	}
	return nil, "", fmt.Errorf("no scene given: pass a scene file or --preset")
}

func newWorld(cfg *config.Config) (physics.World, error) {
	settings := cfg.Settings()
	switch cfg.Physics.Backend {
	case "chipmunk":
		return chipmunk.New(settings), nil
	case "memory":
		return memworld.New(settings)
	}
	return nil, fmt.Errorf("unknown physics backend %q", cfg.Physics.Backend)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
