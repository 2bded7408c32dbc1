package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/san-kum/flowctl/internal/config"
	"github.com/san-kum/flowctl/internal/controller"
	"github.com/san-kum/flowctl/internal/flightsim"
	"github.com/san-kum/flowctl/internal/metrics"
	"github.com/san-kum/flowctl/internal/monitoring"
	"github.com/san-kum/flowctl/internal/storage"
	"github.com/san-kum/flowctl/internal/telemetry"
	"github.com/san-kum/flowctl/internal/viz"
)

func build(cfg *config.Config) (*flightsim.Simulator, error) {
	sim, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		sim.AddMetric(m)
	}
	return sim, nil
}

// record saves res and prints a summary. A failed run is saved with its
// error before the error is returned.
func record(w io.Writer, dataDir string, cfg *config.Config, res *flightsim.Result, runErr error) error {
	if res == nil || errors.Is(runErr, context.Canceled) {
		return runErr
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Duration:    cfg.Duration,
		Integrator:  cfg.Integrator,
		UseObserver: cfg.UseObserver,
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}
	id, err := st.Save(meta, res)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "run id: %s\n", id)
	fmt.Fprintf(w, "ticks: %d (pipeline %d)\n", res.Ticks, res.Executed)
	if len(res.Metrics) > 0 {
		fmt.Fprintln(w, "\nmetrics:")
		names := make([]string, 0, len(res.Metrics))
		for name := range res.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %.6f\n", name, res.Metrics[name])
		}
	}
	return runErr
}

func newRunCmd(dataDir *string) *cobra.Command {
	var f simFlags
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "fly a plan and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			sim, err := build(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "running %s (plan %s)...\n", name, cfg.Plan)
			start := time.Now()
			res, runErr := sim.Run(cmd.Context(), cfg.Sim())
			fmt.Fprintf(out, "completed in %v\n", time.Since(start).Round(time.Millisecond))
			return record(out, *dataDir, cfg, res, runErr)
		},
	}
	f.register(cmd)
	return cmd
}

func newLiveCmd(dataDir *string) *cobra.Command {
	var f simFlags
	var save bool
	cmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "fly a plan in real time with a live view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			sim, err := build(cfg)
			if err != nil {
				return err
			}
			// Log lines would tear the alternate screen.
			monitoring.SetLogger(nil)
			defer monitoring.SetLogger(log.Printf)
			res, runErr := viz.Run(cmd.Context(), sim, cfg.Sim(), name)
			if !save {
				return runErr
			}
			return record(cmd.OutOrStdout(), *dataDir, cfg, res, runErr)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "store the run when it finishes")
	return cmd
}

// paramsHandler exposes the controller's parameter group: GET lists it,
// POST name=value pairs set it.
func paramsHandler(p *controller.Params) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for name, values := range r.PostForm {
				v, err := strconv.ParseFloat(values[len(values)-1], 64)
				if err != nil {
					http.Error(w, fmt.Sprintf("%s: %v", name, err), http.StatusBadRequest)
					return
				}
				if err := p.SetParam(name, v); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				monitoring.Logf("params: %s=%v", name, v)
			}
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p.GetParams())
	})
}

func newMux(sim *flightsim.Simulator) *http.ServeMux {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		telemetry.NewCollector("flowctl", sim.Telemetry()),
		prometheus.NewGoCollector(),
	)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/params", paramsHandler(sim.Params()))
	return mux
}

func newServeCmd(dataDir *string) *cobra.Command {
	var f simFlags
	var listen string
	cmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "fly a plan in real time and serve its telemetry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			sim, err := build(cfg)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:    listen,
				Handler: newMux(sim),
			}
			serveErr := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()
			monitoring.Logf("serving %s telemetry on %s/metrics", name, listen)

			simCfg := cfg.Sim()
			simCfg.RealTime = true
			res, runErr := sim.Run(cmd.Context(), simCfg)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				monitoring.Logf("HTTP server shutdown error: %v", err)
			}
			if err := <-serveErr; err != nil {
				return fmt.Errorf("serve %s: %w", listen, err)
			}
			return record(cmd.OutOrStdout(), *dataDir, cfg, res, runErr)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&listen, "listen", ":9464", "HTTP listen address")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var f simFlags
	var runs int
	cmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "fly a seeded ensemble and summarise its metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			if runs < 1 {
				return fmt.Errorf("runs must be positive, got %d", runs)
			}
			monitoring.SetLogger(nil)
			defer monitoring.SetLogger(log.Printf)

			ens := flightsim.NewEnsemble(func() (*flightsim.Simulator, error) { return build(cfg) }, runs, cfg.Seed)
			start := time.Now()
			results, err := ens.Run(cmd.Context(), cfg.Sim())
			elapsed := time.Since(start)
			if err != nil {
				return err
			}
			return benchReport(cmd.OutOrStdout(), name, results, elapsed)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	return cmd
}

func benchReport(out io.Writer, name string, results []*flightsim.Result, elapsed time.Duration) error {
	if len(results) == 0 {
		return nil
	}
	names := make([]string, 0, len(results[0].Metrics))
	for n := range results[0].Metrics {
		names = append(names, n)
	}
	sort.Strings(names)

	ticks := 0
	for _, r := range results {
		ticks += r.Ticks
	}
	fmt.Fprintf(out, "benchmarking %s: %d runs, %d ticks in %v (%.0f ticks/sec)\n\n",
		name, len(results), ticks, elapsed.Round(time.Millisecond), float64(ticks)/elapsed.Seconds())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, n := range names {
		var sum, sq float64
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range results {
			v := r.Metrics[n]
			sum += v
			sq += v * v
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		k := float64(len(results))
		mean := sum / k
		sd := math.Sqrt(math.Max(0, sq/k-mean*mean))
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.6f\n", n, mean, sd, lo, hi)
	}
	return w.Flush()
}
