// Package bench runs the storage benchmark cases: a byte-per-flag store and
// a bit-packed store, driven by one shared random index workload.
package bench

// Result holds the measurement from a single benchmark case.
type Result struct {
	Case           string  `json:"case"`
	ElapsedMs      float64 `json:"elapsed_ms"`
	Accesses       int     `json:"accesses"`
	FootprintBytes uint64  `json:"footprint_bytes"`

	// TrueReads counts how many post-toggle reads observed true. It is the
	// observation sink for the access loop: reported alongside the timing
	// so the reads are observably used and cannot be proven dead.
	TrueReads uint64 `json:"true_reads"`
}
