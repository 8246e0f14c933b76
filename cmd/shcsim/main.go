package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/m-kovac/shcsim/internal/analysis"
	"github.com/m-kovac/shcsim/internal/config"
	"github.com/m-kovac/shcsim/internal/dsp"
	"github.com/m-kovac/shcsim/internal/dynamo"
	"github.com/m-kovac/shcsim/internal/experiment"
	"github.com/m-kovac/shcsim/internal/ripple"
	"github.com/m-kovac/shcsim/internal/shc"
	"github.com/m-kovac/shcsim/internal/storage"
	"github.com/m-kovac/shcsim/internal/tui"
	"github.com/m-kovac/shcsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	driveName  string
	driveAmp   float64
	driveStart float64
	driveStop  float64
	driveSlope float64
	driveMax   float64
	target     string
	validate   bool
	// Filter band
	lowHz  float64
	highHz float64
	order  int
	// Config file and preset
	configFile string
	preset     string
	// Sweep range
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	// Trace selection for plot/analyze
	stateName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shcsim",
		Short: "hippocampal sharp-wave-ripple circuit simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shcsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the circuit and store the trajectory",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&validate, "validate", false, "stop on NaN/Inf states")

	detectCmd := &cobra.Command{
		Use:   "detect [run_id]",
		Short: "detect ripple events in a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  detectRun,
	}
	addBandFlags(detectCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep cholinergic drive and count ripples per level",
		RunE:  sweepACh,
	}
	addSimFlags(sweepCmd)
	addBandFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.0, "lowest ACh drive level")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2.0, "highest ACh drive level")
	sweepCmd.Flags().IntVar(&sweepSteps, "levels", 9, "number of levels")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&stateName, "state", "ca1_pyr", "state variable to analyze")
	addBandFlags(analyzeCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&stateName, "state", "ca1_pyr", "state variable to plot")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return st.ExportStoredJSON(args[0], "")
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same run",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the circuit evolve with live parameter tuning",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	rootCmd.AddCommand(runCmd, detectCmd, sweepCmd, analyzeCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, compareCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (ms)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDurationMs, "duration (ms)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&driveName, "drive", "none", "external drive schedule (none, step, ramp)")
	cmd.Flags().StringVar(&target, "target", "ach", "drive target (ca3, ca1, ach)")
	cmd.Flags().Float64Var(&driveAmp, "amp", 1.0, "step drive amplitude")
	cmd.Flags().Float64Var(&driveStart, "start", 0.0, "drive onset (ms)")
	cmd.Flags().Float64Var(&driveStop, "stop", 0.0, "step drive offset (ms)")
	cmd.Flags().Float64Var(&driveSlope, "slope", 0.001, "ramp drive slope (per ms)")
	cmd.Flags().Float64Var(&driveMax, "max", 1.0, "ramp drive ceiling")
}

func addBandFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&lowHz, "low", config.DefaultLowHz, "bandpass low cutoff (Hz)")
	cmd.Flags().Float64Var(&highHz, "high", config.DefaultHighHz, "bandpass high cutoff (Hz)")
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "Butterworth order")
}

// loadConfig resolves preset, config file, and CLI flags in that priority
// order (flags win).
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.DurationMs = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	if cmd.Flags().Changed("validate") {
		cfg.Sim.Validate = validate
	}
	if cmd.Flags().Changed("drive") {
		cfg.Drive.Kind = driveName
	}
	if cmd.Flags().Changed("target") {
		cfg.Drive.Target = target
	}
	if cmd.Flags().Changed("amp") {
		cfg.Drive.Amp = driveAmp
	}
	if cmd.Flags().Changed("start") {
		cfg.Drive.StartMs = driveStart
	}
	if cmd.Flags().Changed("stop") {
		cfg.Drive.StopMs = driveStop
	}
	if cmd.Flags().Changed("slope") {
		cfg.Drive.Slope = driveSlope
	}
	if cmd.Flags().Changed("max") {
		cfg.Drive.Max = driveMax
	}
	if cmd.Flags().Changed("low") {
		cfg.Filter.LowHz = lowHz
	}
	if cmd.Flags().Changed("high") {
		cfg.Filter.HighHz = highHz
	}
	if cmd.Flags().Changed("order") {
		cfg.Filter.Order = order
	}

	return cfg, nil
}

func setup(cfg *config.Config) (*shc.Model, dynamo.Integrator, dynamo.DriveSource, error) {
	model, err := shc.New(cfg.Model)
	if err != nil {
		return nil, nil, nil, err
	}

	registry := experiment.NewRegistry()
	integ, err := registry.GetIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return nil, nil, nil, err
	}

	driveParams, err := cfg.DriveParams()
	if err != nil {
		return nil, nil, nil, err
	}
	drv, err := registry.GetDrive(cfg.Drive.Kind, driveParams)
	if err != nil {
		return nil, nil, nil, err
	}

	return model, integ, drv, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	model, integ, drv, err := setup(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(experiment.Config{
		Integrator: cfg.Sim.Integrator,
		Drive:      cfg.Drive.Kind,
		InitState:  model.DefaultState(),
		Dt:         cfg.Sim.Dt,
		Steps:      dynamo.StepsFor(cfg.Sim.DurationMs, cfg.Sim.Dt),
		Validate:   cfg.Sim.Validate,
	})
	if err := exp.Setup(model, integ, drv, registry.DefaultMetrics(model)); err != nil {
		return err
	}

	fmt.Printf("simulating %.0f ms at dt=%.3f ms...\n", cfg.Sim.DurationMs, cfg.Sim.Dt)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Dt:         cfg.Sim.Dt,
		Integrator: cfg.Sim.Integrator,
		Drive:      cfg.Drive.Kind,
		Preset:     preset,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.States))
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func detectRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data in run %s", runID)
	}

	trace := make([]float64, len(states))
	for i := range states {
		trace[i] = states[i][shc.CA1Pyr]
	}

	fsHz := 1000.0 / meta.Dt
	filtered, err := dsp.Bandpass(trace, lowHz, highHz, fsHz, order)
	if err != nil {
		return err
	}

	det := ripple.NewDetector()
	env, err := det.Envelope(filtered, meta.Dt)
	if err != nil {
		return err
	}
	threshold := det.Threshold(env)
	events := ripple.Segment(env, threshold, det.MinRun(meta.Dt))

	if err := st.SaveEvents(runID, events, meta.Dt); err != nil {
		return err
	}

	durMs := float64(len(states)-1) * meta.Dt
	fmt.Printf("run: %s  band: %.0f-%.0f Hz  threshold: %.4f\n\n", runID, lowHz, highHz, threshold)
	fmt.Println(viz.PlotEnvelope(env, threshold, "ripple-power envelope"))
	fmt.Println(viz.MarkEvents(events, len(env), 100))
	fmt.Println()
	fmt.Println(viz.EventTable(events, meta.Dt))
	fmt.Println(viz.SummarizeEvents(events, meta.Dt, durMs))

	return nil
}

func sweepACh(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if sweepSteps < 2 {
		return fmt.Errorf("need at least 2 levels, got %d", sweepSteps)
	}

	model, err := shc.New(cfg.Model)
	if err != nil {
		return err
	}

	levels := make([]float64, sweepSteps)
	for i := range levels {
		levels[i] = sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)
	}

	simCfg := dynamo.Config{
		Dt:    cfg.Sim.Dt,
		Steps: dynamo.StepsFor(cfg.Sim.DurationMs, cfg.Sim.Dt),
	}
	band := analysis.Band{LowHz: cfg.Filter.LowHz, HighHz: cfg.Filter.HighHz, Order: cfg.Filter.Order}

	fmt.Printf("sweeping ACh drive over %d levels [%.2f, %.2f]...\n\n", sweepSteps, sweepFrom, sweepTo)
	start := time.Now()

	points, err := analysis.SweepACh(context.Background(), cfg.Model, model.DefaultState(), simCfg, band, cfg.NewDetector(), levels)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACH_DRIVE\tEVENTS\tMEAN_DUR_MS\tEVENTS/S")
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%d\t%.1f\t%.2f\n", p.Level, p.Events, p.MeanDurMs, p.EventsPerS)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trace, err := loadTrace(st, runID, stateName)
	if err != nil {
		return err
	}

	fsHz := 1000.0 / meta.Dt

	fmt.Printf("frequency analysis: %s (%s)\n\n", runID, stateName)

	_, power := analysis.PowerSpectrum(trace, fsHz)
	plotEnd := len(power)
	if plotEnd > 400 {
		plotEnd = 400
	}
	fmt.Println(viz.PlotTrace(power[1:plotEnd], "magnitude spectrum"))
	fmt.Println()

	fmt.Printf("dominant frequency: %.2f Hz\n", analysis.DominantFrequency(trace, fsHz))
	fmt.Printf("ripple-band power (%.0f-%.0f Hz): %.4f\n",
		lowHz, highHz, analysis.BandPower(trace, fsHz, lowHz, highHz))

	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tINTEG\tDRIVE\tPRESET")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%s\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			run.Drive,
			run.Preset,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trace, err := loadTrace(st, runID, stateName)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  samples: %d\n\n", runID, len(trace))
	fmt.Println(viz.PlotTrace(trace, stateName))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	fmt.Printf("comparing integrators (dt=%.3f ms, %.0f ms)\n\n", cfg.Sim.Dt, cfg.Sim.DurationMs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_CA1\tSTATE_NORM\tTIME_MS")

	for _, name := range args {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		model, err := shc.New(cfg.Model)
		if err != nil {
			return err
		}

		sim := dynamo.New(model, integ, nil)
		simCfg := dynamo.Config{Dt: cfg.Sim.Dt, Steps: dynamo.StepsFor(cfg.Sim.DurationMs, cfg.Sim.Dt)}

		start := time.Now()
		result, err := sim.Run(context.Background(), model.DefaultState(), simCfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		final := result.States[len(result.States)-1]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2f\n",
			name, final[shc.CA1Pyr], final.Norm(), float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	model, integ, drv, err := setup(cfg)
	if err != nil {
		return err
	}

	m := tui.NewModel(model, integ, drv, model.DefaultState(), cfg.Sim.Dt)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func loadTrace(st *storage.Store, runID, name string) ([]float64, error) {
	idx, err := shc.StateIndex(name)
	if err != nil {
		return nil, err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("no data in run %s", runID)
	}
	trace := make([]float64, len(states))
	for i := range states {
		if idx >= len(states[i]) {
			return nil, fmt.Errorf("state %s missing from stored run (got %d columns)", name, len(states[i]))
		}
		trace[i] = states[i][idx]
	}
	return trace, nil
}
