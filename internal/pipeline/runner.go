// Package pipeline runs a transform chain over batches of data records,
// one worker per record. Records are independent: a failure aborts only its
// own record's chain.
package pipeline

import (
	"github.com/curie-ml/curie/internal/logging"
	"github.com/curie-ml/curie/internal/parallel"
	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/transform"
)

// Result pairs a transformed record with the error that aborted it, if any.
type Result struct {
	Record record.Record
	Err    error
}

// Runner applies Chain to every record in a batch. Workers below 1 means
// one worker per CPU. The chain's transforms must be reentrant, which holds
// for all transforms in this module as long as their readers and default
// loaders are.
type Runner struct {
	Chain   transform.Transform
	Workers int
}

// NewRunner builds a runner.
func NewRunner(chain transform.Transform, workers int) *Runner {
	return &Runner{Chain: chain, Workers: workers}
}

// Run transforms the batch and returns one result per input record, in
// input order.
func (r *Runner) Run(recs []record.Record) []Result {
	results := make([]Result, len(recs))

	parallel.For(len(recs), func(i int) {
		out, err := r.Chain.Apply(recs[i])
		if err != nil {
			logging.L().Warn("record transform failed", "index", i, "err", err)
		}
		results[i] = Result{Record: out, Err: err}
	}, parallel.PerItem(r.Workers))

	return results
}
