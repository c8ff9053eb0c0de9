package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/san-kum/scenekit/internal/config"
	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/export"
	"github.com/san-kum/scenekit/internal/metrics"
	"github.com/san-kum/scenekit/internal/scripting"
	"github.com/san-kum/scenekit/internal/storage"
	"github.com/san-kum/scenekit/internal/tui"
	"github.com/san-kum/scenekit/internal/viz"
	"github.com/san-kum/scenekit/internal/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runScene(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(args)
	if err != nil {
		return err
	}
	defer s.Close()
	defer recoverFatal(&err)

	cfg := s.cfg
	drv, err := driver.New(s.eng, nil, driver.Config{
		Dt:               cfg.Physics.Dt,
		Focus:            s.scene.Scene,
		RecoverListeners: cfg.Run.RecoverListeners,
	})
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard(cfg.Settings().Gravity) {
		drv.AddMetric(m)
	}

	var rec *driver.Recorder
	if cfg.Run.Record || plot {
		rec = driver.NewRecorder(cfg.Run.RecordEvery)
		drv.AddObserver(rec)
	}
	if live {
		lr := tui.NewLiveRenderer(os.Stdout, s.scene.Scene, frameRate)
		lr.Start()
		defer lr.Stop()
		drv.AddObserver(lr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := drv.Run(ctx, cfg.Run.Ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printResult(s, res)

	if snapshot != "" {
		if _, ok := s.eng.Scene(s.scene.Scene); ok {
			frame := viz.RenderScene(s.eng, s.scene.Scene, 70, 20)
			if err := export.WriteFile(snapshot, export.CanvasSVG(frame.Canvas, 4, string(viz.CurrentTheme.Primary))); err != nil {
				return err
			}
			fmt.Printf("snapshot: %s\n", snapshot)
		}
	}

	if cfg.Run.Record {
		st := storage.New(cfg.Run.DataDir)
		if err := st.Init(); err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		runID, err := st.Save(storage.RunMetadata{
			Scene:   s.scene.Name,
			Backend: cfg.Physics.Backend,
			Dt:      cfg.Physics.Dt,
			Ticks:   res.Ticks,
			Watched: s.scene.Watch,
			Bodies:  s.eng.BodyCount(),
			Joints:  s.eng.JointCount(),
			Stopped: res.Reason.String(),
			Metrics: res.Metrics,
		}, rec.Samples())
		if err != nil {
			return err
		}
		s.log.Info("run saved", zap.String("id", runID), zap.Int("samples", rec.Len()))
		fmt.Printf("saved: %s\n", runID)
	}

	if plot {
		fmt.Println()
		fmt.Println(viz.PlotSamples(rec.Samples(), 70, 12))
		fmt.Println()
		fmt.Println(viz.PlotSpeed(rec.Samples(), 70, 8))
	}
	return nil
}

// recoverFatal turns an engine precondition panic into a command error.
// Any other panic keeps unwinding.
func recoverFatal(err *error) {
	r := recover()
	if r == nil {
		return
	}
	fe, ok := engine.AsFatal(r)
	if !ok {
		panic(r)
	}
	*err = fe
}

func printResult(s *session, res *driver.Result) {
	fmt.Printf("scene:   %s\n", s.scene.Name)
	fmt.Printf("ticks:   %d (%.2fs, %s)\n", res.Ticks, res.Time, res.Reason)
	fmt.Printf("bodies:  %d\n", s.eng.BodyCount())
	fmt.Printf("joints:  %d\n", s.eng.JointCount())
	if res.Recovered > 0 {
		fmt.Printf("listener panics recovered: %d\n", res.Recovered)
	}
	if len(res.Metrics) == 0 {
		return
	}
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println()
	for _, name := range names {
		fmt.Println(viz.Metric(name, fmt.Sprintf("%.4f", res.Metrics[name])))
	}
}

func watchScene(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(args)
	if err != nil {
		return err
	}
	defer s.Close()
	defer recoverFatal(&err)

	queue := window.NewQueue()
	drv, err := driver.New(s.eng, queue, driver.Config{
		Dt:               s.cfg.Physics.Dt,
		Focus:            s.scene.Scene,
		RecoverListeners: true,
	})
	if err != nil {
		return err
	}
	return tui.Run(tui.NewWatch(s.eng, drv, queue, s.scene.Scene, s.scene.Name))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tJOINTS\tWATCH")
	for _, name := range config.ListPresets() {
		sf := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, len(sf.Bodies), len(sf.Joints), sf.Watch)
	}
	return w.Flush()
}

func newScene(cmd *cobra.Command, args []string) error {
	sf := config.GetPreset(args[0])
	if sf == nil {
		return fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
	}
	if err := config.SaveScene(args[1], sf); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.Run.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tTICKS\tDT\tBACKEND\tSTOPPED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Dt,
			run.Backend,
			run.Stopped,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	var meta *storage.RunMetadata
	if len(args) == 1 {
		meta, err = st.Load(args[0])
	} else {
		meta, err = st.Latest()
	}
	if err != nil {
		return err
	}

	samples, err := st.LoadStates(meta.ID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("run %s has no samples", meta.ID)
	}

	fmt.Printf("run:     %s\n", meta.ID)
	fmt.Printf("scene:   %s\n", meta.Scene)
	fmt.Printf("watched: %s\n", meta.Watched)
	fmt.Printf("samples: %d\n\n", len(samples))
	fmt.Println(viz.PlotSamples(samples, 70, 12))
	fmt.Println()
	fmt.Println(viz.PlotSpeed(samples, 70, 8))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadStates(meta.ID)
	if err != nil {
		return err
	}
	switch format {
	case "json":
		if exportPath == "" {
			return storage.ExportJSONStdout(*meta, samples)
		}
		if err := storage.ExportJSONFile(exportPath, *meta, samples); err != nil {
			return err
		}
	case "svg":
		if exportPath == "" {
			return fmt.Errorf("svg export needs --output")
		}
		if err := export.WriteFile(exportPath, export.TrajectorySVG(samples, 800, 600, string(viz.CurrentTheme.Secondary))); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	fmt.Printf("exported %d samples to %s\n", len(samples), exportPath)
	return nil
}

// compareScene runs the same scene on every backend at once and prints the
// metrics side by side.
func compareScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	sf, dir, err := sceneSource(args)
	if err != nil {
		return err
	}
	if scriptsDir != "" {
		dir = scriptsDir
	}
	budget := cfg.Run.Ticks
	if budget == 0 {
		budget = config.DefaultTicks
	}

	backends := []string{"chipmunk", "memory"}
	scripts := make([]*scripting.Engine, len(backends))
	jobs := make([]driver.Job, len(backends))
	for i, b := range backends {
		c := *cfg
		c.Physics.Backend = b
		jobs[i] = driver.Job{
			Name: b,
			Setup: func() (*driver.Driver, error) {
				eng, se, _, err := buildScene(&c, log.With(zap.String("backend", b)), sf, dir)
				if err != nil {
					return nil, err
				}
				scripts[i] = se
				d, err := driver.New(eng, nil, driver.Config{
					Dt:               c.Physics.Dt,
					Focus:            sf.Scene,
					RecoverListeners: c.Run.RecoverListeners,
				})
				if err != nil {
					return nil, err
				}
				for _, m := range metrics.Standard(c.Settings().Gravity) {
					d.AddMetric(m)
				}
				return d, nil
			},
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	results := driver.RunEnsemble(ctx, jobs, budget)
	for _, se := range scripts {
		if se != nil {
			se.Close()
		}
	}

	var names []string
	for _, r := range results {
		if r.Result != nil {
			for name := range r.Result.Metrics {
				if !slices.Contains(names, name) {
					names = append(names, name)
				}
			}
		}
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BACKEND\tTICKS\tSTOPPED\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		if r.Err != nil && r.Result == nil {
			fmt.Fprintf(w, "%s\t-\terror: %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s", r.Name, r.Result.Ticks, r.Result.Reason)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Result.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
