package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gssem/internal/analysis"
	"github.com/san-kum/gssem/internal/automation"
	"github.com/san-kum/gssem/internal/config"
	"github.com/san-kum/gssem/internal/experiment"
	"github.com/san-kum/gssem/internal/logging"
	"github.com/san-kum/gssem/internal/params"
	"github.com/san-kum/gssem/internal/report"
	"github.com/san-kum/gssem/internal/storage"
	"github.com/san-kum/gssem/internal/trajectory"
	"github.com/san-kum/gssem/internal/tui"
)

func showParams(cmd *cobra.Command, args []string) error {
	fmt.Println(report.ParamTable(params.Default().Describe()))
	return nil
}

func showDocs(cmd *cobra.Command, args []string) error {
	fmt.Println("model documentation:")
	fmt.Print(report.Docs)
	return nil
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("time") {
		cfg.Time = horizon
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("stochastic") {
		cfg.Stochastic = stochastic
	}
	if flags.Changed("no-duplicate-final-step") {
		cfg.DuplicateFinalStep = !noDuplicate
	}
	if flags.Changed("data") || cfg.OutputDir == "" {
		cfg.OutputDir = dataDir
	}

	// an explicit --log-level wins over the config file
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	} else if cfg.LogLevel != logLevel {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = logging.New(os.Stderr, level, noColor)
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	st := storage.New(cfg.OutputDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, preset, logger)
	var progress *tui.LiveProgress
	if live {
		progress = tui.NewLiveProgress(os.Stderr, cfg.EngineConfig().Iterations(), 20)
		exp.AddObserver(progress)
		progress.Start()
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, err := exp.Run(ctx)
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(result.Meta, result.Trajectory)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj := result.Trajectory
	rows, cols := traj.XShape()
	a, b, c := traj.YShape()
	fmt.Println("simulation completed.")
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("x shape: (%d, %d)\n", rows, cols)
	fmt.Printf("y shape: (%d, %d, %d)\n", a, b, c)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("written to: %s\n\n", st.Dir(runID))

	temp, _ := traj.SeriesByName("temp")
	fmt.Println(report.Summary(*meta, temp))

	if plotAfter {
		return printFigures(traj, runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	fmt.Println(report.RunTable(runs))
	return nil
}

func printFigures(traj *trajectory.Trajectory, runID string) error {
	figs, err := report.Figures(traj)
	if err != nil {
		return err
	}

	found := false
	for _, f := range figs {
		if figure != 0 && f.Number != figure {
			continue
		}
		found = true
		fmt.Println()
		fmt.Println(report.Render(f, plotWidth, plotHeight, !noColor))

		if svgDir == "" {
			continue
		}
		if err := os.MkdirAll(svgDir, 0755); err != nil {
			return err
		}
		path := filepath.Join(svgDir, fmt.Sprintf("%s_figure_%d.svg", runID, f.Number))
		if err := writeSVG(path, f); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	if !found {
		return fmt.Errorf("no figure %d (figures are 15-20)", figure)
	}
	return nil
}

func writeSVG(path string, f report.Figure) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := report.WriteSVG(file, f, 960, 540); err != nil {
		return err
	}
	return file.Close()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return printFigures(traj, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	runID := args[0]
	traj, err := storage.New(dataDir).LoadTrajectory(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".csv"
	}
	if err := storage.ExportCSV(path, traj); err != nil {
		return err
	}
	fmt.Printf("exported %d rows to %s\n", len(traj.Records), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.ExportJSONTo(os.Stdout, *meta, traj)
	}
	if err := storage.ExportJSON(outPath, *meta, traj); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func browseRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return tui.Browse(args[0], traj)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	series, err := traj.SeriesByName(seriesName)
	if err != nil {
		return err
	}

	ps, err := analysis.PowerSpectrum(series)
	if err != nil {
		return err
	}

	// skip the zero-frequency bin
	graph := asciigraph.Plot(ps.Power[1:],
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", seriesName)),
	)
	fmt.Println(graph)

	if period, ok := ps.DominantPeriod(); ok {
		fmt.Printf("\ndominant period: %.2f steps\n", period)
	} else {
		fmt.Println("\nno dominant period (flat series)")
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("ensemble started", "runs", ensembleRuns, "first_seed", cfg.Seed, "workers", ensembleWorkers)
	results, err := experiment.NewEnsemble(cfg, ensembleRuns, cfg.Seed, ensembleWorkers).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d members, seeds %d..%d\n\n", len(results), cfg.Seed, cfg.Seed+int64(len(results))-1)
	fmt.Printf("  %-20s %14s %14s %14s %14s\n", "metric", "mean", "std", "min", "max")
	for _, s := range experiment.Summarize(results) {
		fmt.Printf("  %-20s %14.6g %14.6g %14.6g %14.6g\n", s.Name, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, st, logger)
	for _, r := range results {
		fmt.Printf("  %-16s %s\n", r.Step, r.RunID)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      base,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  %-12s %16s %16s %12s\n", sweepParam, "peak_temperature", "final_households", "viability")
	for _, r := range results {
		fmt.Printf("  %-12.6g %16.6g %16.6g %12.3f\n", r.ParamValue,
			r.Metrics["peak_temperature"], r.Metrics["final_households"], r.Metrics["viability"])
	}
	return nil
}
