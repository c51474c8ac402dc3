package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/dc-sim/dc-sim/sim"
)

var (
	// CLI flags for scenario selection
	configPath string // Path to the scenario YAML
	ordersPath string // Path to the order feed JSON
	outPath    string // Where to write the KPI summary JSON, "-" for stdout
	month      int    // Which month bucket of the feed to simulate
	days       int    // Simulation horizon in days
	seed       int64  // Master seed for all random draws
	logLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dc-sim",
	Short: "Discrete-event simulator for distribution-center dock and labor capacity",
}

// runCmd executes one scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a distribution-center scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := LoadScenario(configPath)
		if err != nil {
			logrus.Fatalf("unable to read scenario config: %v", err)
		}

		feed, err := sim.LoadOrderFeed(ordersPath)
		if err != nil {
			logrus.Fatalf("unable to read order feed: %v", err)
		}
		orders, err := feed.OrdersForMonth(month)
		if err != nil {
			logrus.Fatalf("invalid order feed: %v", err)
		}

		logrus.Infof("Starting scenario %q: %d orders, month=%d, horizon=%dd, seed=%d",
			cfg.Name, len(orders), month, days, seed)

		startTime := time.Now()

		s, err := sim.NewSimulator(cfg, orders, seed, days)
		if err != nil {
			logrus.Fatalf("simulator setup failed: %v", err)
		}
		if err := s.Run(); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		summary := s.Summary()
		if err := writeSummary(summary, outPath); err != nil {
			logrus.Fatalf("unable to write summary: %v", err)
		}

		logrus.Infof("Simulation complete in %v: %d/%d orders completed, on-time (completed) %.1f%%",
			time.Since(startTime), summary.CompletedOrders, summary.TotalOrders,
			100*summary.OnTimeRateCompleted)
	},
}

// writeSummary serializes the KPI summary as indented JSON.
func writeSummary(summary *sim.Summary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "scenario.yaml", "Path to the scenario YAML")
	runCmd.Flags().StringVar(&ordersPath, "orders", "orders.json", "Path to the order feed JSON")
	runCmd.Flags().StringVar(&outPath, "out", "-", "Where to write the KPI summary JSON (\"-\" for stdout)")
	runCmd.Flags().IntVar(&month, "month", 1, "Month bucket of the order feed to simulate")
	runCmd.Flags().IntVar(&days, "days", 31, "Simulation horizon in days")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all random draws")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
