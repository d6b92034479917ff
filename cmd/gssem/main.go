package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/gssem/internal/config"
	"github.com/san-kum/gssem/internal/logging"
)

var (
	dataDir  string
	logLevel string
	noColor  bool

	// run
	horizon     int
	seed        int64
	stochastic  bool
	noDuplicate bool
	configFile  string
	preset      string
	plotAfter   bool
	live        bool
	saveConfig  string

	// plot
	plotWidth  int
	plotHeight int
	figure     int
	svgDir     string

	// export
	outPath string

	// analyze
	seriesName string

	// ensemble
	ensembleRuns    int
	ensembleWorkers int

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	logger *slog.Logger
)

// main runs the command tree and exits with status 1 when a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Malformed flags and arguments are
// reported with usage; handlers silence usage once their input is valid.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gssem",
		Short: "socio-economic-ecological simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.New(os.Stderr, level, noColor)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultOutputDir, "run output directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")

	showParamsCmd := &cobra.Command{
		Use:     "show-params",
		Aliases: []string{"show_params"},
		Short:   "print every model parameter",
		Args:    cobra.NoArgs,
		RunE:    showParams,
	}

	showDocsCmd := &cobra.Command{
		Use:     "show-docs",
		Aliases: []string{"show_docs"},
		Short:   "print the model documentation",
		Args:    cobra.NoArgs,
		RunE:    showDocs,
	}

	runCmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"run_simulation"},
		Short:   "run the simulation and store its arrays",
		Args:    cobra.NoArgs,
		RunE:    runSimulation,
	}
	runCmd.Flags().IntVar(&horizon, "time", config.DefaultTime, "number of time steps T")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the stochastic terms")
	runCmd.Flags().BoolVar(&stochastic, "stochastic", false, "enable mortality and birth shocks")
	runCmd.Flags().BoolVar(&noDuplicate, "no-duplicate-final-step", false, "stop after T-1 transitions")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&plotAfter, "plot", false, "render figures after the run")
	runCmd.Flags().BoolVar(&live, "live", false, "show a progress bar while running")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this path")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "figure width")
	runCmd.Flags().IntVar(&plotHeight, "height", 12, "figure height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot figures 15 to 20 for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "figure width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "figure height")
	plotCmd.Flags().IntVar(&figure, "figure", 0, "plot only this figure (15-20)")
	plotCmd.Flags().StringVar(&svgDir, "svg", "", "also write each figure as SVG into this directory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's flow records to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default stdout)")

	browseCmd := &cobra.Command{
		Use:   "browse [run_id]",
		Short: "browse a run's flow records",
		Args:  cobra.ExactArgs(1),
		RunE:  browseRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Printf("  %-12s time=%d stochastic=%v duplicate_final_step=%v\n",
					name, p.Time, p.Stochastic, p.DuplicateFinalStep)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "numHH", "series to analyze")
	analyzeCmd.Flags().IntVar(&plotWidth, "width", 80, "figure width")
	analyzeCmd.Flags().IntVar(&plotHeight, "height", 12, "figure height")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "repeat a stochastic run over consecutive seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&horizon, "time", config.DefaultTime, "number of time steps T")
	ensembleCmd.Flags().Int64Var(&seed, "seed", 0, "first seed")
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 10, "number of members")
	ensembleCmd.Flags().IntVar(&ensembleWorkers, "workers", 4, "members run concurrently")
	ensembleCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	ensembleCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and store every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run once per value of one parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter name")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&horizon, "time", config.DefaultTime, "number of time steps T")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.MarkFlagRequired("param")

	rootCmd.AddCommand(showParamsCmd, showDocsCmd, runCmd, listCmd, plotCmd, exportCSVCmd,
		exportJSONCmd, browseCmd, presetsCmd, analyzeCmd, ensembleCmd, scenarioCmd, sweepCmd)
	return rootCmd
}
