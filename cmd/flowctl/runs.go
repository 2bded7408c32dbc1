package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flowctl/internal/analysis"
	"github.com/san-kum/flowctl/internal/config"
	"github.com/san-kum/flowctl/internal/export"
	"github.com/san-kum/flowctl/internal/plan"
	"github.com/san-kum/flowctl/internal/storage"
)

var defaultPlotFields = []string{"o_z", "o_z_des", "true_z", "f_z"}

// loadSeries resolves a run id prefix and loads its telemetry.
func loadSeries(dataDir, prefix string) (*storage.RunMetadata, *storage.Series, error) {
	st := storage.New(dataDir)
	id, err := st.Resolve(prefix)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(id)
	if err != nil {
		return nil, nil, err
	}
	return meta, series, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// output opens path for writing, with "" or "-" meaning w.
func output(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newListCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(*dataDir).List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPLAN\tTIME\tDURATION\tINTEG\tOBSERVER\tSTATUS")
			for _, run := range runs {
				status := "ok"
				if run.Error != "" {
					status = "failed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%s\t%v\t%s\n",
					shortID(run.ID),
					run.Plan,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					run.Integrator,
					run.UseObserver,
					status,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd(dataDir *string) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored telemetry in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, series, err := loadSeries(*dataDir, args[0])
			if err != nil {
				return err
			}
			if len(series.Rows) == 0 {
				return fmt.Errorf("no data to plot")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run: %s\n", meta.ID)
			fmt.Fprintf(out, "plan: %s\n", meta.Plan)
			fmt.Fprintf(out, "samples: %d\n\n", len(series.Rows))

			for _, name := range fields {
				data := series.Column(name)
				if data == nil {
					return fmt.Errorf("unknown field %q", name)
				}
				graph := asciigraph.Plot(data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(name),
				)
				fmt.Fprintln(out, graph)
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&fields, "fields", defaultPlotFields, "fields to plot")
	return cmd
}

func newAnalyzeCmd(dataDir *string) *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one telemetry field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, series, err := loadSeries(*dataDir, args[0])
			if err != nil {
				return err
			}
			data := series.Column(field)
			if data == nil {
				return fmt.Errorf("unknown field %q", field)
			}
			rate, err := analysis.SampleRate(series.Times)
			if err != nil {
				return err
			}
			ps, err := analysis.NewSpectrum(data, rate)
			if err != nil {
				return fmt.Errorf("%s: %w", field, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
			fmt.Fprintf(out, "plan: %s\n\n", meta.Plan)
			plotted := ps.Amplitude[:max(2, len(ps.Amplitude)/4)]
			graph := asciigraph.Plot(plotted,
				asciigraph.Height(15),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("amplitude spectrum (%s), 0-%.1f Hz", field, ps.Freq[len(plotted)-1])),
			)
			fmt.Fprintln(out, graph)
			fmt.Fprintln(out)

			freq, amp := ps.Dominant()
			fmt.Fprintf(out, "dominant frequency: %.3f hz (amplitude %.4g)\n", freq, amp)
			if freq > 0 {
				fmt.Fprintf(out, "period: %.3f s\n", 1/freq)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "o_z", "telemetry field")
	return cmd
}

func newExportJSONCmd(dataDir *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run telemetry as ground-station JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, series, err := loadSeries(*dataDir, args[0])
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := storage.ExportJSON(w, series); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExportCSVCmd(dataDir *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run telemetry as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, series, err := loadSeries(*dataDir, args[0])
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := storage.ExportCSV(w, series); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newExportPNGCmd(dataDir *string) *cobra.Command {
	var out string
	var fields []string
	cmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render run telemetry to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, series, err := loadSeries(*dataDir, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = shortID(meta.ID) + ".png"
			}
			if err := export.SeriesPNG(out, series, fields); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <run>.png)")
	cmd.Flags().StringSliceVar(&fields, "fields", defaultPlotFields, "fields to plot")
	return cmd
}

func newExportSVGCmd(dataDir *string) *cobra.Command {
	var out string
	var size int
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the run's ground track as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, series, err := loadSeries(*dataDir, args[0])
			if err != nil {
				return err
			}
			svg, err := export.TrackSVG(series, size, size)
			if err != nil {
				return err
			}
			w, closeFn, err := output(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, svg); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&size, "size", 600, "image side in pixels")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tPLAN\tOBSERVER\tINTEG")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", name, cfg.Plan, cfg.UseObserver, cfg.Integrator)
			}
			return w.Flush()
		},
	}
}

func newPlansCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "plans [name]",
		Short: "list built-in plans, or write one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				p, err := plan.Lookup(args[0])
				if err != nil {
					return fmt.Errorf("%w (available: %s)", err, strings.Join(plan.Names(), ", "))
				}
				if out == "" {
					out = args[0] + ".yaml"
				}
				if err := plan.Save(out, p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLAN\tSEGMENTS\tDURATION\tDESCRIPTION")
			for _, name := range plan.Names() {
				p, err := plan.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%.1fs\t%s\n", name, len(p.Segments), p.Duration(), p.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <name>.yaml)")
	return cmd
}
