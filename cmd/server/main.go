package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/logging"
	"yatube/internal/models"
	"yatube/internal/router"
	"yatube/internal/seed"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	// Initialize Database
	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	svc := services.New(conn, cfg.MediaRoot, cfg.MaxUploadBytes())
	svc.Images.SetMaxPixels(cfg.MaxImagePixels())
	ctx := context.Background()

	// yatube promote-admin <username>
	if len(os.Args) == 3 && os.Args[1] == "promote-admin" {
		return promoteAdmin(ctx, svc, os.Args[2])
	}

	if err := svc.Groups.Seed(ctx, cfg.GroupSeeds()); err != nil {
		return err
	}

	// yatube seed-demo
	if len(os.Args) == 2 && os.Args[1] == "seed-demo" {
		res, err := seed.Demo(ctx, svc, seed.DefaultOptions())
		if err != nil {
			return err
		}
		fmt.Printf("created %d users (password %q), %d posts, %d comments\n",
			res.Users, seed.DemoPassword, res.Posts, res.Comments)
		return nil
	}

	pageCache, err := newPageCache(cfg)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := router.New(router.Options{
		Services:      svc,
		PageCache:     pageCache,
		PageCacheTTL:  cfg.PageCacheTTL(),
		Logger:        logger,
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("yatube server starting", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPageCache picks Redis when REDIS_URL is set, otherwise an in-process LRU.
func newPageCache(cfg *config.Config) (cache.PageCache, error) {
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		slog.Info("page cache backed by redis")
		return cache.NewRedis(client, "yatube:"), nil
	}
	return cache.NewLRU(cfg.PageCacheSize)
}

func promoteAdmin(ctx context.Context, svc *services.Services, username string) error {
	user, err := svc.Users.ByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := svc.Users.SetRole(ctx, user, models.RoleAdmin); err != nil {
		return err
	}
	fmt.Printf("%s is now an administrator\n", user.Username)
	return nil
}
