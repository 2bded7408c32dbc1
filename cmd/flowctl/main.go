package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/flowctl/internal/config"
	"github.com/san-kum/flowctl/internal/integrators"
)

// simFlags are the run options shared by every command that flies a plan.
// They override the preset or config file only when given explicitly.
type simFlags struct {
	configFile    string
	plan          string
	integrator    string
	duration      float64
	seed          int64
	observer      bool
	resetObserver bool
	logRate       float64
}

func (f *simFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&f.plan, "plan", config.DefaultPlan, "plan preset name or yaml file")
	fs.StringVar(&f.integrator, "integrator", config.DefaultIntegrator,
		"plant integrator ("+strings.Join(integrators.Names, ", ")+")")
	fs.Float64Var(&f.duration, "time", 0, "duration in seconds (0 flies the whole plan)")
	fs.Int64Var(&f.seed, "seed", 0, "sensor noise seed")
	fs.BoolVar(&f.observer, "observer", false, "start with the observer enabled")
	fs.BoolVar(&f.resetObserver, "reset-observer", false, "request an observer reset on the first tick")
	fs.Float64Var(&f.logRate, "log-rate", 100, "telemetry sample rate in Hz")
}

// resolve layers defaults, the named preset, the config file and finally
// explicitly set flags. The returned name labels the run.
func (f *simFlags) resolve(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "default"
	if len(args) > 0 {
		p, err := config.GetPreset(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		cfg, name = p, args[0]
	}
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(f.configFile), filepath.Ext(f.configFile))
	}

	changed := cmd.Flags().Changed
	if changed("plan") {
		cfg.Plan = f.plan
	}
	if changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if changed("time") {
		cfg.Duration = f.duration
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("observer") {
		cfg.UseObserver = f.observer
	}
	if changed("reset-observer") {
		cfg.ResetOnStart = f.resetObserver
	}
	if changed("log-rate") {
		cfg.LogRate = f.logRate
	}
	return cfg, name, nil
}

func newRootCmd() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:           "flowctl",
		Short:         "flight controller estimation and control lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flowctl", "data directory")

	rootCmd.AddCommand(
		newRunCmd(&dataDir),
		newLiveCmd(&dataDir),
		newServeCmd(&dataDir),
		newBenchCmd(),
		newListCmd(&dataDir),
		newPlotCmd(&dataDir),
		newAnalyzeCmd(&dataDir),
		newExportJSONCmd(&dataDir),
		newExportCSVCmd(&dataDir),
		newExportPNGCmd(&dataDir),
		newExportSVGCmd(&dataDir),
		newPresetsCmd(),
		newPlansCmd(),
	)
	return rootCmd
}

// main runs the flowctl CLI and exits with status 1 on error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
