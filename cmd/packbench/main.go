// Package main provides the CLI entry point for packbench, a micro-benchmark
// comparing bit-packed boolean storage against byte-per-flag storage.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/packbench/bench"
	"github.com/weiihann/packbench/report"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "packbench",
		Short: "Bit-packed vs byte-per-flag boolean storage benchmark",
		Long: `Packbench measures the steady-state cost of random read-modify-write
access to a bit-packed boolean store versus a byte-per-flag store. Both cases
replay the same random index sequence over eagerly pre-faulted memory, so the
measured windows contain per-access cost only, with no first-touch page faults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		items      int
		accesses   int
		seed       int64
		showReport bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both storage cases against a shared random workload",
		Long: `Generate one random index workload and replay it through the raw
byte store and the packed bit store, timing each case in isolation.

Each case is measured single-shot, with no warm-up or repetition; pin the
process to a CPU externally (e.g. taskset) for stabler numbers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, runConfig{
				items:      items,
				accesses:   accesses,
				seed:       seed,
				showReport: showReport,
				outputJSON: outputJSON,
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&items, "items", 8096,
		"Size of the boolean domain")
	flags.IntVar(&accesses, "accesses", 20_000_000,
		"Number of timed read-modify-write operations")
	flags.Int64Var(&seed, "seed", 0,
		"Workload random seed (0 = use current time)")
	flags.BoolVar(&showReport, "report", false,
		"Print a comparison table after the timing lines")
	flags.BoolVar(&outputJSON, "json", false,
		"Print results as JSON after the timing lines")

	return cmd
}

type runConfig struct {
	items      int
	accesses   int
	seed       int64
	showReport bool
	outputJSON bool
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg runConfig,
) error {
	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("items", cfg.items),
		slog.Int("accesses", cfg.accesses),
		slog.Int64("seed", seed),
	)

	runner := bench.NewRunner(logger, os.Stdout)

	results, err := runner.Run(bench.Config{
		ItemCount:   cfg.items,
		AccessCount: cfg.accesses,
		Seed:        seed,
	})
	if err != nil {
		return fmt.Errorf("run benchmark: %w", err)
	}

	if cfg.outputJSON {
		if err := report.GenerateJSON(os.Stdout, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else if cfg.showReport {
		if err := report.Generate(os.Stdout, results); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}
