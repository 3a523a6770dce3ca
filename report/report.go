// Package report formats benchmark results into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/weiihann/packbench/bench"
)

// Generate writes a markdown comparison table for the given results.
func Generate(w io.Writer, results []bench.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fastestMs := findFastest(results)

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Case | Elapsed | Footprint | Accesses "+
		"| ns/access | Slowdown |")
	fmt.Fprintln(w, "|------|---------|-----------|----------"+
		"|-----------|----------|")

	for _, r := range results {
		slowdown := 1.0
		if fastestMs > 0 && r.ElapsedMs > 0 {
			slowdown = r.ElapsedMs / fastestMs
		}

		fmt.Fprintf(w, "| %s | %s | %s | %d | %s | %.2fx |\n",
			r.Case,
			formatMs(r.ElapsedMs),
			formatBytes(r.FootprintBytes),
			r.Accesses,
			formatNsPerAccess(r),
			slowdown,
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "True reads (sink): %s\n", formatTrueReads(results))

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []bench.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func findFastest(results []bench.Result) float64 {
	fastest := math.Inf(1)
	for _, r := range results {
		if r.ElapsedMs > 0 && r.ElapsedMs < fastest {
			fastest = r.ElapsedMs
		}
	}

	if math.IsInf(fastest, 1) {
		return 0
	}

	return fastest
}

func formatMs(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.2fms", ms)
	}

	return fmt.Sprintf("%.2fs", ms/1000)
}

func formatNsPerAccess(r bench.Result) string {
	if r.Accesses == 0 {
		return "-"
	}

	return fmt.Sprintf("%.2f", r.ElapsedMs*1e6/float64(r.Accesses))
}

func formatTrueReads(results []bench.Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s=%d", r.Case, r.TrueReads))
	}

	return strings.Join(parts, ", ")
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
