package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	dataDir    string
	logLevel   string
	logFile    string
	configFile string
	preset     string
	frames     int
	frameRate  int
	startY     float64
	mass       float64
	radius     float64
	gravityY   float64
	restitute  float64
	friction   float64
	realtime   bool
	wallclock  bool

	compareSteps int
)

// main registers the spheredrop commands. With no subcommand it runs the
// demo frame loop on stdout.
func main() {
	rootCmd := &cobra.Command{
		Use:   "spheredrop",
		Short: "a sphere dropped onto a plane",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFile)
		},
		RunE:          runDemo,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spheredrop", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	addSceneFlags(rootCmd)
	rootCmd.Flags().BoolVar(&realtime, "realtime", true, "pace frames at --fps")
	rootCmd.Flags().BoolVar(&wallclock, "wallclock", false, "advance by elapsed real time instead of one step per frame")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save the trace",
		RunE:  runBatch,
	}
	addSceneFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the drop in the terminal",
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "watch the drop in a window",
		RunE:  runGUI,
	}
	addSceneFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the height trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().String("format", "json", "output format (json, csv, svg, scene)")
	exportCmd.Flags().StringP("output", "o", "", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Run:   listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "run presets side by side",
		RunE:  comparePresets,
	}
	compareCmd.Flags().IntVar(&compareSteps, "frames", 300, "steps per run")
	compareCmd.Flags().Int("jobs", 4, "runs in flight (0 = unlimited)")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&frames, "frames", 0, "frames to run (0 = config value)")
	cmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	cmd.Flags().Float64Var(&startY, "y", 10, "initial sphere height")
	cmd.Flags().Float64Var(&mass, "mass", 5, "sphere mass")
	cmd.Flags().Float64Var(&radius, "radius", 1, "sphere radius")
	cmd.Flags().Float64Var(&gravityY, "gravity", -9.82, "vertical gravity")
	cmd.Flags().Float64Var(&restitute, "restitution", 0, "sphere restitution")
	cmd.Flags().Float64Var(&friction, "friction", 0.3, "sphere friction")
}

// setupLogging routes slog to stderr, or to a size-rotated file when path is
// set. stdout stays reserved for diagnostic lines.
func setupLogging(level, path string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	if path != "" {
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}
