package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/pkg/cache"
	"github.com/skeinlab/skein/pkg/census"
	"github.com/skeinlab/skein/pkg/diagram"
	skerrors "github.com/skeinlab/skein/pkg/errors"
	"github.com/skeinlab/skein/pkg/explore"
	"github.com/skeinlab/skein/pkg/observability"
)

// exploreSummary is the cached/printed result of an exploration run.
type exploreSummary struct {
	Start   string `json:"start"`
	MaxSize int    `json:"max_size"`
	Status  string `json:"status"`
	Visited int    `json:"visited"`
	Levels  int    `json:"levels"`
	Largest int    `json:"largest"`
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		maxSize int
		workers int
		limit   int
		output  string
		mongo   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore <name|signature>",
		Short: "Enumerate diagrams reachable by Reidemeister moves",
		Long: `Explore runs a breadth-first search from a starting diagram, applying
every legal Reidemeister move whose result stays within the crossing cap.
Discovered diagrams are recorded in a census (JSONL file or MongoDB).

The start is either a named diagram (unknot, trefoil, figure8, identity,
horizontal) or a signature string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			start, err := resolveDiagram(args[0])
			if err != nil {
				return err
			}
			if maxSize == 0 {
				maxSize = c.Config.MaxSize
			}
			if workers == 0 {
				workers = c.Config.Workers
			}
			if mongo == "" {
				mongo = c.Config.MongoURI
			}

			startSig := start.Signature()
			resultCache := cache.NewScoped(c.newCache(noCache), "explore:")
			defer resultCache.Close()

			key := cache.ExploreKey(startSig, maxSize)
			if data, hit, err := resultCache.Get(ctx, key); err == nil && hit {
				var s exploreSummary
				if json.Unmarshal(data, &s) == nil {
					printSummary(s, true)
					return nil
				}
			}

			store, err := c.newCensusStore(ctx, output, mongo)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			p := newProgress(logger)
			spin := newSpinnerWithContext(ctx, fmt.Sprintf("exploring from %s", args[0]))
			spin.Start()

			runID := uuid.NewString()
			var (
				largest int64
				found   int64
			)
			visit := func(sig string, d *diagram.Diagram) bool {
				n := int64(d.Size())
				for {
					cur := atomic.LoadInt64(&largest)
					if n <= cur || atomic.CompareAndSwapInt64(&largest, cur, n) {
						break
					}
				}
				observability.Engine().OnDiscover(ctx, runID, sig, d.Size())
				e := census.Entry{
					Signature:  sig,
					Crossings:  d.Size(),
					Writhe:     d.Writhe(),
					Components: d.Components(),
					Origin:     startSig,
					RunID:      runID,
					Found:      time.Now().UTC(),
				}
				if err := store.Put(ctx, e); err != nil {
					logger.Error("census write failed", "err", err)
				}
				return limit > 0 && atomic.AddInt64(&found, 1) >= int64(limit)
			}

			res, err := explore.Run(ctx, start, diagram.Space{}, visit, explore.Options{
				MaxSize: maxSize,
				Workers: workers,
				Logger:  logger,
				RunID:   runID,
			})
			spin.Stop()
			if err != nil {
				return skerrors.Wrap(skerrors.ErrCodeInternal, err, "exploration failed")
			}

			s := exploreSummary{
				Start:   startSig,
				MaxSize: maxSize,
				Status:  res.Status.String(),
				Visited: res.Visited,
				Levels:  res.Levels,
				Largest: int(atomic.LoadInt64(&largest)),
			}
			if res.Status == explore.Completed {
				if data, err := json.Marshal(s); err == nil {
					_ = resultCache.Set(ctx, key, data, 0)
				}
			}
			p.done(fmt.Sprintf("Visited %d diagrams over %d levels", res.Visited, res.Levels))
			printSummary(s, false)
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxSize, "max-size", "n", 0, "crossing cap for produced diagrams (default from config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker pool size (default NumCPU)")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many discoveries (0 = exhaust)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "census JSONL file path")
	cmd.Flags().StringVar(&mongo, "mongo", "", "MongoDB URI for the census store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")

	return cmd
}

// newCensusStore picks the census backend: Mongo when a URI is given,
// a JSONL file when a path is given, otherwise in-memory.
func (c *CLI) newCensusStore(ctx context.Context, output, mongo string) (census.Store, error) {
	switch {
	case mongo != "":
		return census.NewMongoStore(ctx, mongo, c.Config.MongoDatabase, "census")
	case output != "":
		if err := skerrors.ValidateOutputPath(output); err != nil {
			return nil, err
		}
		return census.NewFileStore(output)
	default:
		return census.NewMemoryStore(), nil
	}
}

// resolveDiagram turns a CLI argument into a diagram: a known name, or a
// signature.
func resolveDiagram(arg string) (*diagram.Diagram, error) {
	if err := skerrors.ValidateDiagramName(arg); err == nil {
		if d, err := diagram.ByName(arg); err == nil {
			return d, nil
		}
	}
	if err := skerrors.ValidateSignatureInput(arg); err != nil {
		return nil, err
	}
	d, err := diagram.FromSignature(arg)
	if err != nil {
		return nil, skerrors.Wrap(skerrors.ErrCodeInvalidSignature, err, "cannot parse %q", arg)
	}
	return d, nil
}

// printSummary prints an exploration result.
func printSummary(s exploreSummary, cached bool) {
	printSuccess("Exploration %s", s.Status)
	printKeyValue("start", s.Start)
	printKeyValue("max size", fmt.Sprintf("%d", s.MaxSize))
	printKeyValue("visited", fmt.Sprintf("%d", s.Visited))
	printKeyValue("levels", fmt.Sprintf("%d", s.Levels))
	printKeyValue("largest", fmt.Sprintf("%d crossings", s.Largest))
	printStats(s.Visited, s.Levels, cached)
}
