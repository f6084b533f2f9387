package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/statboard/statboard/pkg/cache"
	"github.com/statboard/statboard/pkg/chartdata"
	"github.com/statboard/statboard/pkg/config"
	"github.com/statboard/statboard/pkg/editor"
	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/server"
	"github.com/statboard/statboard/pkg/store"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the statboard HTTP API",
		Long:  `Serve the statboard API: report storage, layout resolution, publish validation, and rendered report views.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, cleanup, err := c.buildServer(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe(cfg.Server.Addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				c.Logger.Info("shutting down")
				return srv.Shutdown(context.Background())
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// buildServer assembles the server from config. The returned cleanup
// closes the store and cache.
func (c *CLI) buildServer(ctx context.Context, cfg config.Config) (*server.Server, func(), error) {
	engine, err := c.newEngine(cfg)
	if err != nil {
		return nil, nil, err
	}

	cc, err := buildCache(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("cache: %w", err)
	}

	st, err := buildStore(ctx, cfg)
	if err != nil {
		_ = cc.Close()
		return nil, nil, fmt.Errorf("store: %w", err)
	}

	var src chartdata.Source
	switch {
	case cfg.Charts.StaticFile != "":
		if src, err = chartdata.LoadStatic(cfg.Charts.StaticFile); err != nil {
			_ = cc.Close()
			_ = st.Close(ctx)
			return nil, nil, fmt.Errorf("charts: %w", err)
		}
	case cfg.Charts.BaseURL != "":
		src = chartdata.NewClient(cfg.Charts.BaseURL, cache.NewScoped(cc, "charts"), nil)
	}

	runner := pipeline.NewRunner(cache.NewScoped(cc, "layouts"), nil, src, engine, c.Logger)
	validator := editor.New(engine)
	if cfg.Layout.PreviewWidthPx > 0 {
		validator.PreviewWidthPx = cfg.Layout.PreviewWidthPx
	}

	cleanup := func() {
		_ = runner.Close()
		_ = st.Close(context.Background())
	}
	return server.New(st, runner, validator, c.Logger), cleanup, nil
}

// buildCache constructs the configured cache backend.
func buildCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "file":
		return cache.NewFileCache(cfg.Cache.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	default:
		return cache.NewNullCache(), nil
	}
}

// buildStore constructs the configured report store backend.
func buildStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
	default:
		return store.NewMemoryStore(), nil
	}
}
