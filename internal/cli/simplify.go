package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/pkg/cache"
	"github.com/skeinlab/skein/pkg/diagram"
	"github.com/skeinlab/skein/pkg/explore"
)

// simplifyCommand creates the simplify command.
func (c *CLI) simplifyCommand() *cobra.Command {
	var (
		slack   int
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "simplify <name|signature>",
		Short: "Reduce a diagram to fewer crossings",
		Long: `Simplify first applies greedy R1/R2 reductions, then explores the
neighbourhood breadth-first, allowing the crossing count to rise by a
small slack to escape local minima, and reports the smallest diagram
found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			d, err := resolveDiagram(args[0])
			if err != nil {
				return err
			}
			if workers == 0 {
				workers = c.Config.Workers
			}

			original := d.Size()
			startSig := d.Signature()

			resultCache := cache.NewScoped(c.newCache(noCache), "simplify:")
			defer resultCache.Close()

			key := cache.SimplifyKey(startSig, original+slack)
			if data, hit, err := resultCache.Get(ctx, key); err == nil && hit {
				if cached, err := diagram.FromSignature(string(data)); err == nil {
					if cached.Size() < original {
						printSuccess("Simplified %d -> %d crossings", original, cached.Size())
					} else {
						printInfo("Already minimal at %d crossings", original)
					}
					printKeyValue("signature", string(data))
					return nil
				}
			}

			d.Reduce()

			best, bestSig := d.Size(), d.Signature()
			var mu sync.Mutex
			visit := func(sig string, child *diagram.Diagram) bool {
				// A reduced clone may beat the raw child.
				r := child.Clone()
				r.Reduce()
				mu.Lock()
				if r.Size() < best {
					best, bestSig = r.Size(), r.Signature()
				}
				mu.Unlock()
				return false
			}

			p := newProgress(logger)
			res, err := explore.Run(ctx, d, diagram.Space{}, visit, explore.Options{
				MaxSize: d.Size() + slack,
				Workers: workers,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Searched %d diagrams", res.Visited))

			if res.Status == explore.Completed {
				_ = resultCache.Set(ctx, key, []byte(bestSig), 0)
			}

			if best < original {
				printSuccess("Simplified %d -> %d crossings", original, best)
			} else {
				printInfo("Already minimal at %d crossings", original)
			}
			printKeyValue("signature", bestSig)
			return nil
		},
	}

	cmd.Flags().IntVar(&slack, "slack", 2, "extra crossings allowed during the search")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker pool size (default NumCPU)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")

	return cmd
}
