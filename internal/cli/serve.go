package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/skeinlab/skein/internal/api"
	"github.com/skeinlab/skein/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		redis string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes explore and simplify as JSON endpoints. With --redis,
results are cached in Redis so multiple instances share work.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if redis == "" {
				redis = c.Config.RedisAddr
			}

			var resultCache cache.Cache = cache.NewNullCache()
			if redis != "" {
				rc, err := cache.NewRedisCache(ctx, redis)
				if err != nil {
					return err
				}
				resultCache = rc
			}
			defer resultCache.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(c.Logger, resultCache, c.Config.MaxSize).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			c.Logger.Info("listening", "addr", addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return ctx.Err()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redis, "redis", "", "Redis address for the shared result cache")

	return cmd
}
