package reembed

import (
	"fmt"
	"sync/atomic"
)

// Report aggregates the outcome of a regeneration run. Counters are safe
// for concurrent updates from parallel batch workers.
type Report struct {
	processed atomic.Int64
	updated   atomic.Int64
	skipped   atomic.Int64
	errors    atomic.Int64
}

// Processed is the number of profiles examined.
func (r *Report) Processed() int { return int(r.processed.Load()) }

// Updated is the number of profiles that received a fresh embedding.
func (r *Report) Updated() int { return int(r.updated.Load()) }

// Skipped is the number of profiles with no text to embed.
func (r *Report) Skipped() int { return int(r.skipped.Load()) }

// Errors is the number of profiles whose regeneration failed.
func (r *Report) Errors() int { return int(r.errors.Load()) }

func (r *Report) String() string {
	return fmt.Sprintf("processed=%d updated=%d skipped=%d errors=%d",
		r.Processed(), r.Updated(), r.Skipped(), r.Errors())
}

func (r *Report) addProcessed(n int) { r.processed.Add(int64(n)) }
func (r *Report) addUpdated(n int)   { r.updated.Add(int64(n)) }
func (r *Report) addSkipped(n int)   { r.skipped.Add(int64(n)) }
func (r *Report) addErrors(n int)    { r.errors.Add(int64(n)) }
