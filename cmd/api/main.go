package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg := config.MustLoad()

	// Logger
	err := observability.InitLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics and OTLP logs
	shutdownOps, err := initTelemetry(ctx, cfg)
	if err != nil {
		panic(err)
	}

	// Router
	router := server.NewRouter(cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	shutdownOps["http-server"] = srv.Shutdown

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, shutdownOps)
	code := <-wait

	observability.Logger.Info("server stopped", zap.Int("exit_code", code))
	observability.SyncLogger()
	os.Exit(code)
}
