package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/config"
	"github.com/matzehuels/techradar/pkg/server"
	"github.com/matzehuels/techradar/pkg/textrender"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		seed    uint64
		noCache bool
		src     sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the radar and its interaction API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := src.apply(&cfg.Source); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("seed") {
				cfg.Render.Seed = seed
			}
			return c.runServe(cmd.Context(), cfg, noCache, src.refresh)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "placement seed")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	src.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, noCache, refresh bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, cleanup := c.newSource(ctx, cfg.Source, runner, refresh)
	defer cleanup()

	opts := baseOptions(cfg)
	opts.Source = src
	srv, err := server.New(runner, opts, logger, server.WithTextRenderer(textrender.New()))
	if err != nil {
		return err
	}
	if _, err := srv.Refresh(ctx); err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      server.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		printSuccess("Serving radar on %s", StyleHighlight.Render(cfg.Server.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
