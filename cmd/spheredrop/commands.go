package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/san-kum/spheredrop/internal/export"
	"github.com/san-kum/spheredrop/internal/frame"
	"github.com/san-kum/spheredrop/internal/gui"
	"github.com/san-kum/spheredrop/internal/metrics"
	"github.com/san-kum/spheredrop/internal/sim"
	"github.com/san-kum/spheredrop/internal/storage"
	"github.com/san-kum/spheredrop/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig layers the scene config: defaults, then --preset, then
// --config, then any scene flag given on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.MustPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if loaded.Preset == "" {
			loaded.Preset = cfg.Preset
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("y") {
		cfg.Sphere.Position[1] = startY
	}
	if flags.Changed("mass") {
		cfg.Sphere.Mass = mass
	}
	if flags.Changed("radius") {
		cfg.Sphere.Radius = radius
	}
	if flags.Changed("gravity") {
		cfg.World.Gravity[1] = gravityY
	}
	if flags.Changed("restitution") {
		cfg.Sphere.Restitution = restitute
	}
	if flags.Changed("friction") {
		cfg.Sphere.Friction = friction
	}
	if flags.Changed("frames") {
		cfg.Loop.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.Loop.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

// frameLimit is the demo's frame budget. The bare demo runs until
// interrupted; a frame count from --frames, --preset or --config ends it.
func frameLimit(cmd *cobra.Command, cfg *config.Config) int {
	if cmd.Flags().Changed("frames") || preset != "" || configFile != "" {
		return cfg.Loop.Frames
	}
	return 0
}

// runDemo is the plain frame loop: one diagnostic line per frame on stdout.
func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	var driver dynamo.Driver = s
	if wallclock {
		driver = sim.NewWallClock(s, nil)
	}
	loop := frame.NewLoop(driver, s.Sphere, s.Mesh, os.Stdout)

	limit := frameLimit(cmd, cfg)

	var sched frame.Scheduler
	if realtime {
		sched = frame.NewTickerScheduler(cfg.Loop.FPS, limit)
	} else {
		if limit == 0 {
			return fmt.Errorf("--realtime=false needs a frame count: %w", dynamo.ErrParameterBounds)
		}
		sched = frame.NewCountScheduler(limit)
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	slog.Info("frame loop started", "preset", cfg.Preset, "fps", cfg.Loop.FPS, "frames", limit)
	err = loop.Run(ctx, sched)
	slog.Info("frame loop finished", "frames", loop.Frames(), "y", s.Mesh.Position.Y())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Loop.Frames == 0 {
		return fmt.Errorf("run needs a positive frame count: %w", dynamo.ErrParameterBounds)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	runner := sim.NewSimulator(s)
	for _, m := range metrics.Defaults(s) {
		runner.AddMetric(m)
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	result, err := runner.Run(ctx, sim.DefaultRunConfig(cfg.Loop.Frames))
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		slog.Warn("run stopped early", "err", e)
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	final, _ := result.Final()
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final y: %.4f\n", final.Height())
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %.4f\n", k, m[k])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg, cfg.Loop.FPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := interruptible(cmd)
	defer stop()
	err = gui.Run(ctx, cfg, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tDURATION\tFINAL Y")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Duration,
			run.FinalY,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	heights := make([]float64, len(samples))
	for i, sm := range samples {
		heights[i] = sm.Height()
	}
	graph := asciigraph.Plot(heights,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption("sphere y"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	format = strings.ToLower(format)
	if output == "" {
		output = runID + "." + format
	}

	st := storage.New(dataDir)
	switch format {
	case "json":
		if err := st.ExportJSON(runID, output); err != nil {
			return err
		}
	case "csv":
		if err := st.ExportCSV(runID, output); err != nil {
			return err
		}
	case "svg":
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		rest := meta.Radius
		svg := export.TraceToSVG(export.HeightTrace(samples), 800, 400, "#7aa2f7", &rest)
		if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
			return err
		}
	case "scene":
		cfg, err := st.LoadConfig(runID)
		if err != nil {
			return err
		}
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		if len(samples) == 0 {
			return fmt.Errorf("no data to export")
		}
		svg, err := export.SceneToSVG(cfg, samples[len(samples)-1], 4)
		if err != nil {
			return err
		}
		if output == runID+".scene" {
			output = runID + "_scene.svg"
		}
		if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (json, csv, svg, scene)", format)
	}

	abs, _ := filepath.Abs(output)
	slog.Info("exported run", "run", runID, "format", format, "path", abs)
	fmt.Println(output)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tGRAVITY\tMASS\tRADIUS\tSTART Y\tRESTITUTION\tFRICTION")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%.2f\t%.1f\t%.2f\t%.2f\n",
			name,
			c.World.Gravity[1],
			c.Sphere.Mass,
			c.Sphere.Radius,
			c.Sphere.Position[1],
			c.Sphere.Restitution,
			c.Sphere.Friction,
		)
	}
	w.Flush()
}

func comparePresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	configs := make([]*config.Config, 0, len(names))
	for _, name := range names {
		c, err := config.MustPreset(name)
		if err != nil {
			return err
		}
		c.Loop.Frames = compareSteps
		configs = append(configs, c)
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	ens := sim.NewEnsemble(configs, metrics.Defaults)
	ens.SetLimit(jobs)

	ctx, stop := interruptible(cmd)
	defer stop()

	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFINAL Y\tSETTLE\tIMPACTS\tMAX PEN\tENERGY LOSS")
	for i, res := range results {
		m := res.Metrics
		final, _ := res.Final()
		fmt.Fprintf(w, "%s\t%.4f\t%.2fs\t%.0f\t%.4f\t%.3f\n",
			names[i],
			final.Height(),
			m["settle_time"],
			m["impacts"],
			m["max_penetration"],
			m["energy_loss"],
		)
	}
	return w.Flush()
}
