// Package bench runs the two-phase insert/retrieve benchmark against a
// sharded_hashmap.Table and reports it in the line format the execution
// harness parses.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"parallel_hashtable/concurrent"
	"parallel_hashtable/keys"
	"parallel_hashtable/sharded_hashmap"
)

// ErrInvalidThreads is returned when the thread count is not positive.
var ErrInvalidThreads = errors.New("bench: number of threads must be positive")

// cancelCheckInterval is how many operations a worker performs between
// checks of the run's context.
const cancelCheckInterval = 1024

type Options struct {
	Table   sharded_hashmap.Table
	Keys    []uint64
	Threads int
	// Out receives the report lines. Defaults to io.Discard.
	Out    io.Writer
	Logger *zap.Logger
}

// Result summarizes one run.
type Result struct {
	Threads      int
	Total        uint64
	Found        uint64
	Lost         uint64
	InsertTime   time.Duration
	RetrieveTime time.Duration
}

// Elapsed is the combined duration of both phases.
func (r Result) Elapsed() time.Duration {
	return r.InsertTime + r.RetrieveTime
}

// Run inserts every key into opts.Table with opts.Threads threads, waits for
// all of them, then retrieves every key with the same number of threads and
// counts the ones that are missing. Each thread inserts and retrieves the
// keys at indices tid, tid+Threads, ..., using its tid as the value.
//
// The table is destroyed when Run returns.
//
// Lost keys are not an error; they are reported in Result.Lost. Run only
// fails if ctx is done before the run completes, the options are invalid or
// a report line cannot be written.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Threads <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidThreads, opts.Threads)
	}
	if opts.Table == nil {
		return Result{}, errors.New("bench: no table")
	}
	defer opts.Table.Destroy()

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(
		zap.Stringer("protocol", opts.Table.Protocol()),
		zap.Stringer("lock", opts.Table.LockKind()),
		zap.Int("threads", opts.Threads))
	out := newReporter(opts.Out)

	res := Result{Threads: opts.Threads, Total: uint64(len(opts.Keys))}

	start := time.Now()
	concurrent.SpawnN(opts.Threads, func(tid int) uint64 {
		insertShare(ctx, opts.Table, opts.Keys, tid, opts.Threads)
		return 0
	})
	res.InsertTime = time.Since(start)
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("bench: insert phase: %w", err)
	}
	log.Debug("insert phase done", zap.Duration("elapsed", res.InsertTime))
	out.printf("[main] Inserted %d keys in %f seconds\n", len(opts.Keys), res.InsertTime.Seconds())

	lost := concurrent.NewCounter()
	start = time.Now()
	concurrent.SpawnN(opts.Threads, func(tid int) uint64 {
		l := retrieveShare(ctx, opts.Table, opts.Keys, tid, opts.Threads)
		out.printf("[thread %d] %d keys lost!\n", tid, l)
		lost.Add(l)
		return l
	})
	res.RetrieveTime = time.Since(start)
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("bench: retrieve phase: %w", err)
	}
	res.Lost = lost.Get()
	res.Found = res.Total - res.Lost
	log.Debug("retrieve phase done",
		zap.Duration("elapsed", res.RetrieveTime),
		zap.Uint64("lost", res.Lost))
	if res.Lost > 0 {
		log.Warn("keys lost", zap.Uint64("lost", res.Lost), zap.Uint64("total", res.Total))
	}
	out.printf("[main] Retrieved %d/%d keys in %f seconds\n", res.Found, res.Total, res.RetrieveTime.Seconds())

	if err := out.err(); err != nil {
		return res, fmt.Errorf("bench: write report: %w", err)
	}
	return res, nil
}

func insertShare(ctx context.Context, t sharded_hashmap.Table, ks []uint64, tid int, numThreads int) {
	var ops = 0
	keys.Stride(tid, numThreads, len(ks), func(i int) bool {
		t.Insert(ks[i], uint64(tid))
		ops++
		return ops%cancelCheckInterval != 0 || ctx.Err() == nil
	})
}

// retrieveShare returns how many of the thread's keys were not found.
func retrieveShare(ctx context.Context, t sharded_hashmap.Table, ks []uint64, tid int, numThreads int) uint64 {
	var lost uint64 = 0
	var ops = 0
	keys.Stride(tid, numThreads, len(ks), func(i int) bool {
		if _, ok := t.Retrieve(ks[i]); !ok {
			lost++
		}
		ops++
		return ops%cancelCheckInterval != 0 || ctx.Err() == nil
	})
	return lost
}
