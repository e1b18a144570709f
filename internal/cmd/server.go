package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/cobra"

	"github.com/PauloHFS/blogicum/internal/config"
	"github.com/PauloHFS/blogicum/internal/db"
	"github.com/PauloHFS/blogicum/internal/logging"
	"github.com/PauloHFS/blogicum/internal/middleware"
	"github.com/PauloHFS/blogicum/internal/policies"
	"github.com/PauloHFS/blogicum/internal/services"
	"github.com/PauloHFS/blogicum/internal/telemetry"
	"github.com/PauloHFS/blogicum/internal/view"
	"github.com/PauloHFS/blogicum/internal/web"
	"github.com/PauloHFS/blogicum/web/static/assets"
)

func init() {
	RootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web server (default)",
	Args:  cobra.NoArgs,
	RunE:  runServer,
}

// NewHandler monta o mux e a cadeia de middlewares sobre um pool já migrado.
func NewHandler(cfg *config.Config, pool *db.DualPool, renderer *view.Renderer) http.Handler {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(pool.Write)
	sessionManager.Lifetime = 14 * 24 * time.Hour
	sessionManager.Cookie.Secure = cfg.IsProd()
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	deps := web.HandlerDeps{
		DB:             pool,
		Blog:           services.NewBlogService(pool.Queries(), pool.QueriesWrite(), policies.New()),
		Auth:           services.NewAuthService(pool.Queries(), pool.QueriesWrite()),
		SessionManager: sessionManager,
		Config:         cfg,
		Renderer:       renderer,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.FS))))
	web.RegisterRoutes(mux, deps)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler := middleware.Recovery(renderer)(
		limiter.Middleware(
			middleware.SecurityHeaders(cfg.IsProd())(
				middleware.Tracing(
					middleware.Logger(
						middleware.Locale(
							sessionManager.LoadAndSave(
								middleware.LoadUser(sessionManager, pool.Queries())(
									middleware.CSRF(middleware.Route(mux), cfg.IsProd()),
								),
							),
						),
					),
				),
			),
		),
	)

	return gzhttp.GzipHandler(handler)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, pool, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger := logging.Get()

	shutdownTracing, err := telemetry.Init(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	renderer, err := view.NewRenderer(cfg.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	if cfg.TemplatesDir != "" {
		go func() {
			if err := renderer.Watch(ctx); err != nil {
				logger.Error("template watcher stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewHandler(cfg, pool, renderer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("server stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited properly")
	return nil
}
