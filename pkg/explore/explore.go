// Package explore implements a concurrent breadth-first search over a
// space of canonically-keyed states. It is generic over the state type:
// the diagram package supplies the concrete space, the engine only sees
// signatures, a decoder and an expansion function.
//
// The search is level synchronous. Each level's frontier is distributed
// across a fixed worker pool; every worker decodes its frontier signature
// into a private state, expands it, and claims novel child signatures via
// an insert-if-absent on the shared visited set, so the caller's visit
// function runs exactly once per distinct signature. Levels are separated
// by a barrier, which keeps the frontier a plain slice and the memory
// footprint proportional to one level.
package explore

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/skeinlab/skein/pkg/observability"
)

// Space describes a search space to the engine. Signature must be a
// complete key: two states with equal signatures are interchangeable.
// Decode must accept anything Signature produced. Expand feeds each
// neighbour of a state to emit, stopping early when emit returns true.
type Space[D any] interface {
	Signature(D) string
	Decode(sig string) (D, error)
	Expand(d D, maxSize int, emit func(D) bool) bool
}

// Status reports how a run ended. None of the three outcomes is an error.
type Status int

const (
	// Completed means the frontier was exhausted: every state reachable
	// under the size cap was visited.
	Completed Status = iota
	// StoppedByCallback means the visit callback asked to stop.
	StoppedByCallback
	// Cancelled means the context was cancelled; in-flight frontier items
	// were finished, the rest were abandoned.
	Cancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case StoppedByCallback:
		return "stopped"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Options tune a run. The zero value is usable.
type Options struct {
	// MaxSize caps the size of produced states; the space's Expand
	// receives it verbatim.
	MaxSize int
	// Workers is the pool size. Defaults to runtime.NumCPU().
	Workers int
	// Logger, when set, receives per-level debug output.
	Logger *log.Logger
	// OnProgress, when set, is called at the start of each level with the
	// level number, frontier length and visited count so far.
	OnProgress func(level, frontier, visited int)
	// RunID identifies the run in logs and results. A fresh UUID is
	// generated when empty.
	RunID string
}

// Result summarizes a finished run.
type Result struct {
	// Status tells how the run ended.
	Status Status
	// Visited is the number of distinct signatures seen, the start
	// included.
	Visited int
	// Levels is the number of fully processed BFS levels.
	Levels int
	// RunID identifies the run in logs and census entries, either the
	// caller's or a generated UUID.
	RunID string
}

// Run explores the space breadth-first from start. visit is called
// exactly once per distinct signature, the start's included, from worker
// goroutines; returning true stops the run. The error is non-nil only
// when the space itself misbehaves (a signature it produced fails to
// decode).
func Run[D any](ctx context.Context, start D, space Space[D], visit func(sig string, d D) bool, opts Options) (Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	var (
		mu       sync.Mutex
		visited  = make(map[string]struct{})
		frontier []string
		next     []string
		stop     atomic.Bool
		status   atomic.Int32 // set-once terminal status
		decodeMu sync.Mutex
		decodeEr error
	)
	halt := func(s Status) {
		if stop.CompareAndSwap(false, true) {
			status.Store(int32(s))
		}
	}

	sig0 := space.Signature(start)
	started := time.Now()
	hooks := observability.Engine()
	hooks.OnRunStart(ctx, runID, sig0, opts.MaxSize)

	visited[sig0] = struct{}{}
	if visit(sig0, start) {
		res := Result{Status: StoppedByCallback, Visited: 1, RunID: runID}
		hooks.OnRunEnd(ctx, runID, res.Status.String(), res.Visited, time.Since(started), nil)
		return res, nil
	}
	frontier = []string{sig0}

	if logger != nil {
		logger.Debug("exploration started", "run", runID, "workers", workers, "max_size", opts.MaxSize)
	}

	levels := 0
	for len(frontier) > 0 && !stop.Load() {
		mu.Lock()
		n := len(visited)
		mu.Unlock()
		hooks.OnLevelStart(ctx, runID, levels, len(frontier), n)
		if opts.OnProgress != nil {
			opts.OnProgress(levels, len(frontier), n)
		}

		jobs := make(chan string)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for sig := range jobs {
					if stop.Load() {
						continue
					}
					d, err := space.Decode(sig)
					if err != nil {
						decodeMu.Lock()
						if decodeEr == nil {
							decodeEr = fmt.Errorf("decode %q: %w", sig, err)
						}
						decodeMu.Unlock()
						halt(Completed) // status is overridden by the error return
						continue
					}
					space.Expand(d, opts.MaxSize, func(child D) bool {
						if stop.Load() {
							return true
						}
						csig := space.Signature(child)
						mu.Lock()
						if _, seen := visited[csig]; seen {
							mu.Unlock()
							return false
						}
						visited[csig] = struct{}{}
						mu.Unlock()
						if visit(csig, child) {
							halt(StoppedByCallback)
							return true
						}
						mu.Lock()
						next = append(next, csig)
						mu.Unlock()
						return false
					})
				}
			}()
		}

	feed:
		for _, sig := range frontier {
			select {
			case <-ctx.Done():
				halt(Cancelled)
				break feed
			case jobs <- sig:
			}
		}
		close(jobs)
		wg.Wait()

		frontier, next = next, nil
		levels++
		if logger != nil {
			mu.Lock()
			n := len(visited)
			mu.Unlock()
			logger.Debug("level done", "run", runID, "level", levels, "next_frontier", len(frontier), "visited", n)
		}
	}

	if decodeEr != nil {
		hooks.OnRunEnd(ctx, runID, "error", len(visited), time.Since(started), decodeEr)
		return Result{}, decodeEr
	}
	res := Result{
		Status:  Status(status.Load()),
		Visited: len(visited),
		Levels:  levels,
		RunID:   runID,
	}
	hooks.OnRunEnd(ctx, runID, res.Status.String(), res.Visited, time.Since(started), nil)
	if logger != nil {
		logger.Info("exploration finished", "run", runID, "status", res.Status, "visited", res.Visited, "levels", res.Levels)
	}
	return res, nil
}
