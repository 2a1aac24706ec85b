package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/pkg/cache"
	skerrors "github.com/skeinlab/skein/pkg/errors"
	"github.com/skeinlab/skein/pkg/observability"
	"github.com/skeinlab/skein/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render <name|signature>",
		Short: "Draw a diagram as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDiagram(args[0])
			if err != nil {
				return err
			}

			if format != "dot" && format != "svg" {
				return skerrors.New(skerrors.ErrCodeInvalidFormat, "unknown format %q (dot, svg)", format)
			}

			sig := d.Signature()

			// SVG output is deterministic per signature, so finished
			// artifacts are cached. DOT is cheap enough to redo.
			artifacts := cache.NewScoped(c.newCache(noCache || format != "svg"), "render:")
			defer artifacts.Close()

			key := cache.RenderKey(sig, format)
			if detailed {
				key = cache.RenderKey(sig, format+":detailed")
			}

			data, hit, cerr := artifacts.Get(cmd.Context(), key)
			if cerr != nil || !hit {
				started := time.Now()
				observability.Render().OnRenderStart(cmd.Context(), sig, format)
				dot := render.ToDOT(d, render.Options{Detailed: detailed})
				data = []byte(dot)
				if format == "svg" {
					data, err = render.SVG(cmd.Context(), dot)
				}
				observability.Render().OnRenderComplete(cmd.Context(), sig, format, len(data), time.Since(started), err)
				if err != nil {
					return skerrors.Wrap(skerrors.ErrCodeInternal, err, "svg render failed")
				}
				_ = artifacts.Set(cmd.Context(), key, data, 0)
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := skerrors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			printSuccess("Rendered %d crossings", d.Size())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label edges with strand levels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the artifact cache")

	return cmd
}
