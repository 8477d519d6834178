package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/trojansim/internal/analysis"
	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/config"
	"github.com/san-kum/trojansim/internal/propagate"
	"github.com/san-kum/trojansim/internal/resonance"
	"github.com/san-kum/trojansim/internal/storage"
	"github.com/san-kum/trojansim/internal/system"
	"github.com/san-kum/trojansim/internal/viz"
)

var (
	dataDir       string
	configFile    string
	propagator    string
	maxYears      int
	progressEvery int
	noSave        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trojansim",
		Short: "co-orbital exoplanet resonance simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trojansim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [file] [step] [margin]",
		Short: "simulate a system until its Trojan pair leaves resonance",
		Long: "Propagates the system read from file with a fixed time step (seconds)\n" +
			"until the Trojan periods diverge by more than margin percent, then\n" +
			"prints the number of stable years. step and margin may come from a\n" +
			"config file instead of the command line.",
		Args: cobra.RangeArgs(1, 3),
		RunE: runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&propagator, "propagator", config.DefaultPropagator, "propagation scheme (rk4, verlet)")
	runCmd.Flags().IntVar(&maxYears, "max-years", config.DefaultMaxYears, "stop after this many simulated years")
	runCmd.Flags().IntVar(&progressEvery, "progress", config.DefaultProgressEvery, "print a status line every N years (0 disables)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "parse an initial-condition file and print the system",
		Args:  cobra.ExactArgs(1),
		RunE:  validateSystem,
	}

	liveCmd := &cobra.Command{
		Use:   "live [file] [step] [margin]",
		Short: "run with a live terminal dashboard",
		Args:  cobra.RangeArgs(1, 3),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&propagator, "propagator", config.DefaultPropagator, "propagation scheme (rk4, verlet)")
	liveCmd.Flags().IntVar(&maxYears, "max-years", config.DefaultMaxYears, "stop after this many simulated years")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the Trojan period series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "libration analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the period series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rootCmd.AddCommand(runCmd, validateCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveRun merges config-file values and positional arguments into the
// effective run parameters. Positional arguments always win.
func resolveRun(cmd *cobra.Command, args []string) (*system.System, resonance.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, resonance.Config{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("propagator") || cfg.Propagator == "" {
		cfg.Propagator = propagator
	}
	if cmd.Flags().Changed("max-years") {
		cfg.MaxYears = maxYears
	}
	if cmd.Flags().Changed("progress") {
		cfg.ProgressEvery = progressEvery
	}

	cfg.File = args[0]
	if len(args) > 1 {
		step, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, resonance.Config{}, fmt.Errorf("step must be an integer number of seconds: %w", err)
		}
		cfg.Step = float64(step)
	}
	if len(args) > 2 {
		margin, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return nil, resonance.Config{}, fmt.Errorf("invalid margin: %w", err)
		}
		cfg.Margin = margin
	}

	propagator = cfg.Propagator
	progressEvery = cfg.ProgressEvery

	sys, err := system.ParseFile(cfg.File)
	if err != nil {
		return nil, resonance.Config{}, err
	}

	return sys, resonance.Config{
		Step:     cfg.Step,
		Margin:   cfg.Margin,
		MaxYears: cfg.MaxYears,
	}, nil
}

// progressPrinter reports periods every N years so long runs show signs of
// life. Reporting cadence is cosmetic and outside the physics contract.
type progressPrinter struct {
	every int
}

func (p *progressPrinter) OnYear(sample resonance.Sample) {
	if p.every <= 0 || sample.Year%p.every != 0 {
		return
	}
	fmt.Printf("%d years elapsed\n", sample.Year)
	fmt.Printf("P1 = %f\n", sample.P1)
	fmt.Printf("P2 = %f\n", sample.P2)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	sys, simCfg, err := resolveRun(cmd, args)
	if err != nil {
		return err
	}

	prop, err := propagate.New(propagator)
	if err != nil {
		return err
	}

	sim := resonance.New(sys, prop)
	if progressEvery > 0 {
		sim.AddObserver(&progressPrinter{every: progressEvery})
	}
	drift := resonance.NewDriftMonitor(sys)
	sim.AddObserver(drift)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := sim.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("\nThe Trojan pair remained stable for %d years.\n", result.Years)
	fmt.Printf("stop reason: %s\n", result.Reason)
	fmt.Printf("steps: %d (%v wall clock)\n", result.StepsTaken, elapsed)
	fmt.Printf("max energy drift: %.3e\n", drift.MaxEnergyDrift())
	fmt.Printf("max |h| drift: %.3e\n", drift.MaxAngularMomentumDrift())

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := sys.Star().Name
	if name == "" {
		name = "system"
	}
	runID, err := st.Save(name, simCfg, propagator, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func validateSystem(cmd *cobra.Command, args []string) error {
	sys, err := system.ParseFile(args[0])
	if err != nil {
		return err
	}

	star := sys.Star()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tTROJAN\tMASS (kg)\tPERIOD (d)\tSEMI-MAJOR (AU)\tECC")
	for _, b := range sys.Bodies {
		if b.IsStar() {
			fmt.Fprintf(w, "%s\t%s\t-\t%.4g\t-\t-\t-\n", b.Name, b.Kind, b.Mass)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%.4g\t%.4f\t%.4f\t%.5f\n",
			b.Name, b.Kind, b.Trojan, b.Mass,
			b.Period(star)/body.SecondsPerDay,
			b.SemiMajorAxis(star)/body.AU,
			b.Eccentricity(star),
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	sys, simCfg, err := resolveRun(cmd, args)
	if err != nil {
		return err
	}

	prop, err := propagate.New(propagator)
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, prop, simCfg)
	p := tea.NewProgram(m)
	_, err = p.Run()
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tSTEP\tMARGIN\tPROP\tYEARS\tREASON")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%.2f%%\t%s\t%d\t%s\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Step,
			run.Margin,
			run.Propagator,
			run.Years,
			run.Reason,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("stable years: %d (%s)\n\n", meta.Years, meta.Reason)

	p1 := make([]float64, len(series))
	p2 := make([]float64, len(series))
	for i, s := range series {
		p1[i] = s.P1
		p2[i] = s.P2
	}

	graph := asciigraph.PlotMany(
		[][]float64{p1, p2},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("period (days) vs. year"),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
	)
	fmt.Println(graph)

	diff := make([]float64, len(series))
	for i := range series {
		diff[i] = resonance.PercentDiff(series[i].P1, series[i].P2)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(diff,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("period divergence (%) vs. year"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("libration analysis: %s\n\n", meta.ID)

	// The libration signal is the difference between the two periods,
	// sampled once per year.
	diff := make([]float64, len(series))
	for i, s := range series {
		diff[i] = s.P1 - s.P2
	}

	n := 1
	for n < len(diff) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, diff)

	ps := analysis.PowerSpectrum(padded)
	plotData := ps[:len(ps)/4]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (P1-P2)"),
	))
	fmt.Println()

	if period, ok := analysis.DominantPeriod(diff, 1.0); ok {
		fmt.Printf("dominant libration period: %.1f years\n", period)
	} else {
		fmt.Println("no dominant libration component found")
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"year", "p1_days", "p2_days"}); err != nil {
		return err
	}
	for _, s := range series {
		row := []string{
			strconv.Itoa(s.Year),
			strconv.FormatFloat(s.P1, 'f', 6, 64),
			strconv.FormatFloat(s.P2, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}
