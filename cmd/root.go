package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/supplysim/supplysim/report"
	"github.com/supplysim/supplysim/sim"
	"github.com/supplysim/supplysim/sim/supplychain"
	"github.com/supplysim/supplysim/sim/trace"
)

var (
	// CLI flags for the run configuration
	seed         int64  // Seed for the shared random stream
	horizon      int64  // Last virtual time at which events execute
	collectAt    int64  // Time at which records are collected (0 = end of run)
	customers    int    // Number of customer processes
	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario file
	traceLevel   string // Scheduler trace level: none, steps

	// CLI flags for the four distributions: one value = constant, two = uniform [min,max]
	orderInterval     []int64
	orderQuantity     []int64
	manufacturingTime []int64
	transportTime     []int64

	// CLI flags for reports
	outputDir string   // Directory for report files; empty = no files
	formats   []string // Report formats to write
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "supplysim",
	Short: "Discrete-event simulator for a customer, manufacturer and distributor supply chain",
}

// runCmd executes one simulation using parameters from CLI flags and an optional scenario
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the supply chain simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := buildConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(cfg, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// versionCmd prints the scenario schema version this build reads and writes
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the scenario schema version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "supplysim scenario schema %s (reads %s)\n",
			ScenarioSchemaVersion, supportedScenarioVersions)
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildConfig starts from the defaults, overlays the scenario file if one is
// given, then applies every flag the user set explicitly.
func buildConfig(flags *pflag.FlagSet) (supplychain.Config, error) {
	cfg := supplychain.DefaultConfig()
	if scenarioPath != "" {
		sc, err := LoadScenario(scenarioPath)
		if err != nil {
			return cfg, err
		}
		sc.Apply(&cfg)
	}

	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("collect-at") {
		cfg.CollectAt = collectAt
	}
	if flags.Changed("customers") {
		cfg.Customers = customers
	}
	if flags.Changed("trace") {
		cfg.TraceLevel = trace.TraceLevel(traceLevel)
	}
	for _, f := range []struct {
		name string
		vals []int64
		dst  *sim.DistSpec
	}{
		{"order-interval", orderInterval, &cfg.OrderInterval},
		{"order-quantity", orderQuantity, &cfg.OrderQuantity},
		{"manufacturing-time", manufacturingTime, &cfg.ManufacturingTime},
		{"transport-time", transportTime, &cfg.TransportTime},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		spec, err := distFromFlag(f.vals)
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = spec
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, f := range formats {
		if !report.IsValidFormat(f) {
			return cfg, fmt.Errorf("unknown report format %q; valid: %s", f, strings.Join(report.ValidFormats, ", "))
		}
	}
	return cfg, nil
}

func distFromFlag(vals []int64) (sim.DistSpec, error) {
	switch len(vals) {
	case 1:
		return sim.Constant(vals[0]), nil
	case 2:
		return sim.Uniform(vals[0], vals[1]), nil
	default:
		return sim.DistSpec{}, fmt.Errorf("expected VALUE or MIN,MAX, got %d values", len(vals))
	}
}

// runSimulation runs cfg, prints the summary to w and writes the report
// files when an output directory is set.
func runSimulation(cfg supplychain.Config, w io.Writer) error {
	logrus.Infof("Starting simulation with %d customers, seed=%d, horizon=%d, collect_at=%d, "+
		"order_interval=%s, order_quantity=%s, manufacturing_time=%s, transport_time=%s",
		cfg.Customers, cfg.Seed, cfg.Horizon, cfg.CollectAt,
		cfg.OrderInterval, cfg.OrderQuantity, cfg.ManufacturingTime, cfg.TransportTime)

	startTime := time.Now()
	s, err := supplychain.NewSimulation(cfg)
	if err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}

	if err := report.PrintSummary(w, report.Summarize(res)); err != nil {
		return fmt.Errorf("printing summary: %w", err)
	}
	if res.Trace != nil {
		ts := trace.Summarize(res.Trace)
		fmt.Fprintf(w, "Trace: %d steps (%d dropped), %d processes, monotonic=%t\n",
			ts.TotalSteps, ts.Dropped, ts.UniqueOwners, ts.Monotonic)
	}
	if outputDir != "" {
		paths, err := report.Write(outputDir, res, formats)
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		for _, p := range paths {
			logrus.Infof("wrote %s", p)
		}
	}

	logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags attaches the configuration flags shared by run and watch.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", supplychain.DefaultSeed, "Seed for the shared random stream")
	cmd.Flags().Int64Var(&horizon, "horizon", supplychain.DefaultHorizon, "Simulation horizon (in ticks)")
	cmd.Flags().Int64Var(&collectAt, "collect-at", supplychain.DefaultCollectAt, "Tick at which records are collected (0 = end of run)")
	cmd.Flags().IntVar(&customers, "customers", supplychain.DefaultCustomers, "Number of customers")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; explicit flags override its values")
	cmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Scheduler trace level (none, steps)")

	// Distributions
	cmd.Flags().Int64SliceVar(&orderInterval, "order-interval", []int64{1, 5}, "Ticks between a customer's orders: VALUE or MIN,MAX")
	cmd.Flags().Int64SliceVar(&orderQuantity, "order-quantity", []int64{1, 10}, "Units per order: VALUE or MIN,MAX")
	cmd.Flags().Int64SliceVar(&manufacturingTime, "manufacturing-time", []int64{2, 5}, "Manufacturing lead time in ticks: VALUE or MIN,MAX")
	cmd.Flags().Int64SliceVar(&transportTime, "transport-time", []int64{1, 3}, "Transport time in ticks: VALUE or MIN,MAX")

	// Reports
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for report files (none written when empty)")
	cmd.Flags().StringSliceVar(&formats, "format", []string{report.FormatJSON}, "Report formats (json, csv, yaml, xlsx, png)")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)
	registerRunFlags(watchCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
