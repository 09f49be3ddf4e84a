package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-cms/pkg/handlers"
	"portfolio-cms/pkg/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cfg.SessionSecret == "" {
			return errors.New("SESSION_SECRET must be set to serve the admin API")
		}
		if cfg.GinMode != "" {
			gin.SetMode(cfg.GinMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer b.Close()
		if b.db == nil {
			logger.Warn("DATABASE_URL is not set; serving file documents and built-in reviews",
				zap.Bool("fallback_to_filesystem", cfg.FallbackToFiles))
		}

		h := handlers.New(b.projects(), b.blogs(), b.reviews(),
			services.NewMedia(cfg.MediaDir, cfg.MediaURLPrefix, cfg.MediaMaxBytes),
			cfg.FallbackToFiles, logger)
		auth := handlers.NewAuth(cfg.AdminPasswordHash, cfg.OAuth, cfg.AdminGitHubLogin, cfg.AdminRedirectURL, logger)

		router := handlers.NewRouter(h, auth, handlers.RouterOptions{
			SessionSecret:  cfg.SessionSecret,
			SecureCookies:  strings.HasPrefix(cfg.AppURL, "https://"),
			MediaDir:       cfg.MediaDir,
			MediaURLPrefix: cfg.MediaURLPrefix,
			GitHubLogin:    cfg.GitHubEnabled(),
			Limiter:        handlers.NewIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst),
			Logger:         logger,
		})

		srv := &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("addr", cfg.ListenAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
