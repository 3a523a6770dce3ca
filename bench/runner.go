package bench

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/weiihann/packbench/alloc"
	"github.com/weiihann/packbench/timer"
	"github.com/weiihann/packbench/workload"
)

// Case labels, as they appear in the timing report lines.
const (
	RawCase    = "Raw bytes (1 byte/flag)"
	PackedCase = "Packed bits (64 flags/block)"
)

// Config holds the tunables for one benchmark run.
type Config struct {
	// ItemCount is the size of the boolean domain.
	ItemCount int

	// AccessCount is the number of timed read-modify-write operations.
	AccessCount int

	// Seed for workload index generation.
	Seed int64
}

// Runner sequences one benchmark run: generate the workload once, then run
// the raw case and the packed case against it, each timed in isolation.
// The run is strictly sequential; the two cases' buffers never coexist.
type Runner struct {
	Logger *slog.Logger
	Out    io.Writer
}

// NewRunner creates a Runner writing measured output to out and diagnostics
// to logger.
func NewRunner(logger *slog.Logger, out io.Writer) *Runner {
	return &Runner{Logger: logger, Out: out}
}

// Run executes both cases and returns their results in run order. Each
// case allocates pre-faulted storage before its timer scope opens and
// releases it only after the scope's report has been emitted, so neither
// first-touch page faults nor teardown land inside a measured window.
func (r *Runner) Run(cfg Config) ([]Result, error) {
	gen := workload.NewGenerator(workload.Config{
		ItemCount:   cfg.ItemCount,
		AccessCount: cfg.AccessCount,
		Seed:        cfg.Seed,
	})

	indices, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate workload: %w", err)
	}

	fmt.Fprintf(r.Out, "Generated %d random indices.\n", len(indices))
	fmt.Fprintln(r.Out)

	results := make([]Result, 0, 2)

	rawResult, err := r.runRaw(cfg.ItemCount, indices)
	if err != nil {
		return nil, fmt.Errorf("run raw case: %w", err)
	}

	results = append(results, rawResult)

	packedResult, err := r.runPacked(cfg.ItemCount, indices)
	if err != nil {
		return nil, fmt.Errorf("run packed case: %w", err)
	}

	results = append(results, packedResult)

	fmt.Fprintln(r.Out)

	return results, nil
}

func (r *Runner) runRaw(itemCount int, indices []int) (Result, error) {
	allocator, err := alloc.New(1, alloc.EagerCommit)
	if err != nil {
		return Result{}, err
	}

	store, err := NewRawByteStore(allocator, itemCount)
	if err != nil {
		return Result{}, err
	}
	defer store.Close()

	r.Logger.Debug("buffer pre-faulted",
		slog.String("case", RawCase),
		slog.Uint64("bytes", store.FootprintBytes()),
	)

	var sink uint64

	scope := timer.Begin(r.Out, RawCase)

	for _, idx := range indices {
		store.Flip(idx)

		if store.Get(idx) {
			sink++
		}
	}

	scope.End()

	// Consuming the sink here keeps the access loop observably live.
	r.Logger.Debug("case finished",
		slog.String("case", RawCase),
		slog.Float64("elapsed_ms", scope.ElapsedMs()),
		slog.Uint64("true_reads", sink),
	)

	result := Result{
		Case:           RawCase,
		ElapsedMs:      scope.ElapsedMs(),
		Accesses:       len(indices),
		FootprintBytes: store.FootprintBytes(),
		TrueReads:      sink,
	}

	// Teardown stays outside the measured interval.
	if err := store.Close(); err != nil {
		return Result{}, err
	}

	return result, nil
}

func (r *Runner) runPacked(itemCount int, indices []int) (Result, error) {
	allocator, err := alloc.New(8, alloc.EagerCommit)
	if err != nil {
		return Result{}, err
	}

	store, err := NewPackedBooleanStore(allocator, itemCount)
	if err != nil {
		return Result{}, err
	}
	defer store.Close()

	r.Logger.Debug("buffer pre-faulted",
		slog.String("case", PackedCase),
		slog.Uint64("bytes", store.FootprintBytes()),
	)

	var sink uint64

	scope := timer.Begin(r.Out, PackedCase)

	for _, idx := range indices {
		store.Flip(idx)

		if store.Get(idx) {
			sink++
		}
	}

	scope.End()

	r.Logger.Debug("case finished",
		slog.String("case", PackedCase),
		slog.Float64("elapsed_ms", scope.ElapsedMs()),
		slog.Uint64("true_reads", sink),
	)

	result := Result{
		Case:           PackedCase,
		ElapsedMs:      scope.ElapsedMs(),
		Accesses:       len(indices),
		FootprintBytes: store.FootprintBytes(),
		TrueReads:      sink,
	}

	if err := store.Close(); err != nil {
		return Result{}, err
	}

	return result, nil
}
