package main

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/risor-io/expr"
)

// BenchResult holds benchmark statistics.
type BenchResult struct {
	Source     string  `json:"source"`
	Iterations int     `json:"iterations"`
	Warmup     int     `json:"warmup"`
	CompileNs  int64   `json:"compile_ns"`
	TotalNs    int64   `json:"total_ns"`
	OpsPerSec  float64 `json:"ops_per_sec"`
	MinNs      int64   `json:"min_ns"`
	MaxNs      int64   `json:"max_ns"`
	AvgNs      int64   `json:"avg_ns"`
	MedianNs   int64   `json:"median_ns"`
	P95Ns      int64   `json:"p95_ns"`
	P99Ns      int64   `json:"p99_ns"`
	Result     string  `json:"result"`
}

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [expression]",
		Short: "Compile an expression once and time repeated evaluation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.getSource(cmd, args)
			if err != nil {
				return err
			}
			format, err := checkFormat(flagString(cmd, "output"))
			if err != nil {
				return err
			}
			iterations, _ := cmd.Flags().GetInt("iterations")
			warmup, _ := cmd.Flags().GetInt("warmup")
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			result, err := runBench(cmd, engine, source, iterations, warmup)
			if err != nil {
				return a.formatError(err)
			}
			if format == "json" {
				return writeJSON(a.out, result)
			}
			printBench(a, result)
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().IntP("iterations", "n", 100000, "Number of timed evaluations")
	cmd.Flags().IntP("warmup", "w", 1000, "Untimed evaluations before timing")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	return cmd
}

func runBench(cmd *cobra.Command, engine *expr.Engine, source string, iterations, warmup int) (BenchResult, error) {
	if iterations <= 0 {
		iterations = 1
	}
	if warmup < 0 {
		warmup = 0
	}
	ctx := cmd.Context()

	start := time.Now()
	code, err := engine.Compile(source)
	if err != nil {
		return BenchResult{}, err
	}
	compileTime := time.Since(start)

	// Verify before timing so errors are reported once.
	value, err := engine.Evaluate(ctx, code, nil)
	if err != nil {
		return BenchResult{}, err
	}
	for i := 0; i < warmup; i++ {
		_, _ = engine.Evaluate(ctx, code, nil)
	}
	runtime.GC()

	durations := make([]time.Duration, iterations)
	var total time.Duration
	for i := range durations {
		start := time.Now()
		_, _ = engine.Evaluate(ctx, code, nil)
		durations[i] = time.Since(start)
		total += durations[i]
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var opsPerSec float64
	if total > 0 {
		opsPerSec = float64(iterations) / total.Seconds()
	}
	percentile := func(p float64) time.Duration {
		return durations[int(float64(iterations-1)*p)]
	}
	return BenchResult{
		Source:     source,
		Iterations: iterations,
		Warmup:     warmup,
		CompileNs:  compileTime.Nanoseconds(),
		TotalNs:    total.Nanoseconds(),
		OpsPerSec:  opsPerSec,
		MinNs:      durations[0].Nanoseconds(),
		MaxNs:      durations[iterations-1].Nanoseconds(),
		AvgNs:      (total / time.Duration(iterations)).Nanoseconds(),
		MedianNs:   percentile(0.5).Nanoseconds(),
		P95Ns:      percentile(0.95).Nanoseconds(),
		P99Ns:      percentile(0.99).Nanoseconds(),
		Result:     value.String(),
	}, nil
}

func printBench(a *app, r BenchResult) {
	title := color.New(color.FgYellow, color.Bold)
	label := color.New(color.FgMagenta)
	value := color.New(color.FgGreen)
	line := func(name string, v any) {
		fmt.Fprintf(a.out, "%s %s\n", label.Sprintf("%-12s", name+":"), value.Sprint(v))
	}
	ns := func(n int64) time.Duration { return time.Duration(n) }

	fmt.Fprintln(a.out, title.Sprint("Benchmark"))
	line("Expression", r.Source)
	line("Result", r.Result)
	line("Iterations", r.Iterations)
	line("Compile", ns(r.CompileNs))
	line("Total", ns(r.TotalNs).Round(time.Microsecond))
	line("Ops/sec", fmt.Sprintf("%.0f", r.OpsPerSec))
	line("Min", ns(r.MinNs))
	line("Max", ns(r.MaxNs))
	line("Avg", ns(r.AvgNs))
	line("Median", ns(r.MedianNs))
	line("p95", ns(r.P95Ns))
	line("p99", ns(r.P99Ns))
}
