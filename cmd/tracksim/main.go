package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/tracksim/internal/config"
	"github.com/san-kum/tracksim/internal/experiment"
	"github.com/san-kum/tracksim/internal/integrators"
	"github.com/san-kum/tracksim/internal/optim"
	"github.com/san-kum/tracksim/internal/report"
	"github.com/san-kum/tracksim/internal/sim"
	"github.com/san-kum/tracksim/internal/store"
	"github.com/san-kum/tracksim/internal/tracked"
	"github.com/san-kum/tracksim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	dt         float64
	duration   float64
	integrator string
	demand     float64
	ambient    float64
	seed       int64
	noSave     bool
	traceSteps int
	frameRate  int
	plotWidth  int
	plotHeight int
	columns    []string
	sweepArgs  []string
	metricName string
	svgColumn  string
	svgWidth   int
	svgHeight  int
)

var logger = log.New(io.Discard, "tracksim: ", log.LstdFlags)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "tracksim",
		Short:         "battery and motor simulation with write-checked state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetOutput(os.Stderr)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DataDir(), "data directory (env "+config.DataDirEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run a few steps and dump every cell with its write site",
		Args:  cobra.NoArgs,
		RunE:  traceSimulation,
	}
	addSimFlags(traceCmd)
	traceCmd.Flags().IntVar(&traceSteps, "steps", 1, "number of steps to run before dumping")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step a simulation interactively",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a parameter grid concurrently and report the best point",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepArgs, "param", nil,
		fmt.Sprintf("name=v1,v2 or name=start:stop:n, repeatable %v", optim.ParamNames()))
	sweepCmd.Flags().StringVar(&metricName, "metric", "peak_temp_k", "metric to minimise")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", []string{"battery.temperature", "battery.soc", "battery.power"}, "series to plot")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one series of a run as SVG on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgColumn, "column", "battery.temperature", "series to draw")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a config file from defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return config.Save(args[0], cfg)
		},
	}
	addSimFlags(configCmd)

	rootCmd.AddCommand(runCmd, traceCmd, liveCmd, sweepCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, fmt.Sprintf("thermal integrator %v", integrators.List()))
	cmd.Flags().Float64Var(&demand, "demand", config.DefaultDemandKW, "mechanical demand in kW (constant and sine profiles)")
	cmd.Flags().Float64Var(&ambient, "ambient", config.DefaultAmbientC, "ambient temperature in C")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed recorded with the run")
}

// loadConfig starts from a config file, a preset or the defaults, then
// applies any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "" && preset != "":
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("demand") {
		cfg.Profile.DemandKW = demand
	}
	if flags.Changed("ambient") {
		cfg.Profile.AmbientC = ambient
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, cfg.Validate()
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	exp.SetLogger(logger)
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		logger.Printf("run stopped early: %v", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Metrics(fmt.Sprintf("%s (%d steps)", cfg.Name, result.StepsTaken), result.Metrics))
	fmt.Fprintln(out, report.Cells(groups(exp.Components())...))

	if noSave {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, saveErr := st.Save(store.RunMetadata{
		Name:       cfg.Name,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
	}, result)
	if saveErr != nil {
		return saveErr
	}
	logger.Printf("saved run to %s", dataDir)
	fmt.Fprintf(out, "run id: %s\n", runID)

	return err
}

func traceSimulation(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	s := exp.Simulator()
	p := s.Profile()

	step := sim.Env{Dt: cfg.SimConfig().Dt}
	for i := 0; i < traceSteps; i++ {
		step.Inputs = p.At(step.Time)
		step.Step = i
		snap := s.Step(step)
		step.Time = snap.Time
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "after %d steps (t=%v):\n", traceSteps, step.Time)
	for _, g := range groups(exp.Components()) {
		if err := g.Dump(out); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	m := tui.New(exp.Config().Name, exp.Simulator(), exp.Config().SimConfig(), frameRate,
		"motor.elec_power", "battery.temperature", "battery.soc")
	return tui.Run(m)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepArgs) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sweepArgs))
	ranges := make([][]float64, 0, len(sweepArgs))
	for _, a := range sweepArgs {
		name, values, err := optim.ParseParam(a)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	build := func(p optim.Point) (*experiment.Experiment, error) {
		cfg := *base
		if err := optim.Apply(&cfg, p); err != nil {
			return nil, err
		}
		return experiment.New(&cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Printf("sweeping %d points", len(grid.Points()))
	best, trials, err := grid.Search(ctx, build, metricName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "POINT\t%s\n", metricName)
	for _, tr := range trials {
		fmt.Fprintf(w, "%s\t%g\n", tr.Point, tr.Metrics[metricName])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best.Point == nil {
		fmt.Fprintln(out, "no finite result")
		return nil
	}
	fmt.Fprintf(out, "\nbest: %s (%s = %g)\n", best.Point, metricName, best.Metrics[metricName])
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tINTEGRATOR")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Name, r.Timestamp.Format("2006-01-02 15:04:05"), r.Steps, r.Integrator)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Metrics(meta.Name, meta.Metrics))

	for _, col := range columns {
		values, ok := series.Values[col]
		if !ok {
			available := append([]string(nil), series.Columns...)
			sort.Strings(available)
			return fmt.Errorf("unknown column %s (available: %v)", col, available)
		}
		fmt.Fprintln(out, report.Plot(values, col, plotWidth, plotHeight))
		fmt.Fprintln(out)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return store.WriteJSON(cmd.OutOrStdout(), *meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{
		Columns: series.Columns,
		Times:   series.Times,
		Series:  series.Values,
	}
	return store.WriteCSV(cmd.OutOrStdout(), result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	values, ok := series.Values[svgColumn]
	if !ok {
		return fmt.Errorf("unknown column %s (available: %v)", svgColumn, series.Columns)
	}
	return report.SeriesSVG(cmd.OutOrStdout(), series.Times, values, svgWidth, svgHeight, "#00ff00")
}

func groups(components []sim.Component) []*tracked.Group {
	out := make([]*tracked.Group, 0, len(components))
	for _, c := range components {
		out = append(out, c.Cells())
	}
	return out
}
