package history

import "github.com/jrh3k5/multichain-txn-export/internal/chain"

// Status is the outcome of exporting one chain.
type Status int

const (
	StatusSucceeded Status = iota // records fetched (possibly partially) and written
	StatusFailed                  // fetching or writing failed; nothing was written
	StatusSkipped                 // the chain identifier is not supported
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ChainResult reports what happened to one requested chain.
type ChainResult struct {
	Chain      chain.ID // the chain identifier as requested
	Status     Status   // the outcome
	Records    int      // the number of records written
	OutputPath string   // the CSV file written; empty unless succeeded
	Err        error    // the reason for a failed or skipped chain
}

// Counts tallies results by status.
func Counts(results []ChainResult) map[Status]int {
	counts := make(map[Status]int)
	for _, result := range results {
		counts[result.Status]++
	}

	return counts
}
