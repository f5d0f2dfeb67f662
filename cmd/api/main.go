package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/devflow/backend/internal/auth"
	"github.com/emilythestrangee/devflow/backend/internal/config"
	"github.com/emilythestrangee/devflow/backend/internal/database"
	"github.com/emilythestrangee/devflow/backend/internal/handlers"
	"github.com/emilythestrangee/devflow/backend/internal/logging"
	"github.com/emilythestrangee/devflow/backend/internal/server"
	"github.com/emilythestrangee/devflow/backend/internal/store"
	"github.com/emilythestrangee/devflow/backend/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer := logging.New(cfg.Log)
	defer closer.Close()
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Setup(cfg.TraceExporter)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("tracer shutdown", "error", err)
		}
	}()

	db, err := database.New(cfg.DB, log)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db.GetDB(), log)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	oauth := handlers.NewOAuthClient()
	handler := handlers.NewHandler(st, tokens, oauth, oauth)

	srv := server.NewServer(cfg, log, db, handler, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
