package main

import (
	"fmt"
	"os"

	"github.com/san-kum/scenekit/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	dataDir     string
	scriptsDir  string
	preset      string
	backend     string
	ticks       uint64
	record      bool
	plot        bool
	live        bool
	frameRate   int
	exportPath  string
	format      string
	snapshot    string
	recordEvery uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "scenekit",
		Short:         "physics-backed scene runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (overrides config)")

	runCmd := &cobra.Command{
		Use:   "run [scene.yaml]",
		Short: "run a scene headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().Uint64Var(&ticks, "ticks", 0, "tick budget, 0 keeps the config value")
	runCmd.Flags().BoolVar(&record, "record", false, "save the watched body's trajectory")
	runCmd.Flags().Uint64Var(&recordEvery, "every", 0, "record every n ticks, 0 keeps the config value")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the watched body after the run")
	runCmd.Flags().BoolVar(&live, "live", false, "redraw the scene in the terminal while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "live view frame rate")
	runCmd.Flags().StringVar(&snapshot, "snapshot", "", "write the final frame as svg")

	watchCmd := &cobra.Command{
		Use:   "watch [scene.yaml]",
		Short: "interactive view of a running scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchScene,
	}
	addSceneFlags(watchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [scene.yaml]",
		Short: "run a scene on every physics backend side by side",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareScene,
	}
	addSceneFlags(compareCmd)
	compareCmd.Flags().Uint64Var(&ticks, "ticks", 0, "tick budget, 0 keeps the config value")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE:  listPresets,
	}

	newCmd := &cobra.Command{
		Use:   "new [preset] [scene.yaml]",
		Short: "write a preset out as an editable scene file",
		Args:  cobra.ExactArgs(2),
		RunE:  newScene,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run, the latest if no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (default stdout, required for svg)")
	exportCmd.Flags().StringVar(&format, "format", "json", "json or svg")

	rootCmd.AddCommand(runCmd, watchCmd, compareCmd, presetsCmd, newCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "run a built-in scene instead of a file")
	cmd.Flags().StringVar(&backend, "backend", "", "physics backend: chipmunk or memory")
	cmd.Flags().StringVar(&scriptsDir, "scripts", "", "script directory (default: next to the scene file)")
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if backend != "" {
		cfg.Physics.Backend = backend
	}
	if dataDir != "" {
		cfg.Run.DataDir = dataDir
	}
	if ticks > 0 {
		cfg.Run.Ticks = ticks
	}
	if recordEvery > 0 {
		cfg.Run.RecordEvery = recordEvery
	}
	if record {
		cfg.Run.Record = true
	}
	return cfg, cfg.Validate()
}
