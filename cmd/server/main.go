package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"guestalbum/config"
	_ "guestalbum/docs"
	"guestalbum/internal/adapters/auth"
	"guestalbum/internal/app"
	deliveryhttp "guestalbum/internal/delivery/http"
	"guestalbum/internal/delivery/http/controllers"
)

// @title Guest Album API
// @version 1.0
// @description Event lifecycle, guest uploads and album retention.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	svcs, err := app.New(cfg, db, logger)
	if err != nil {
		log.Fatalf("wire services: %v", err)
	}

	if cfg.LifecycleCron != "" {
		scheduler := cron.New(
			cron.WithLocation(svcs.Evaluator.Location()),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		)
		_, err := scheduler.AddFunc(cfg.LifecycleCron, func() {
			runCtx, cancel := context.WithTimeout(ctx, cfg.LifecycleSweepTimeout)
			defer cancel()
			if _, err := svcs.Lifecycle.Run(runCtx); err != nil {
				logger.Error("scheduled lifecycle sweep failed", "err", err)
			}
		})
		if err != nil {
			log.Fatalf("invalid LIFECYCLE_CRON %q: %v", cfg.LifecycleCron, err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
		logger.Info("lifecycle sweep scheduled", "spec", cfg.LifecycleCron)
	}

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Events:         controllers.NewEventController(logger, svcs.Events),
		Public:         controllers.NewPublicController(logger, svcs.Events, svcs.Media),
		Lifecycle:      controllers.NewLifecycleController(logger, svcs.Lifecycle),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
