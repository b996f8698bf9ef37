// Command lifecycle-sweep runs one lifecycle sweep and exits. It is meant to be
// invoked by an external scheduler. With -mint-token it prints a bearer token
// for POST /internal/lifecycle/run instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guestalbum/config"
	"guestalbum/internal/adapters/auth"
	"guestalbum/internal/app"
	"guestalbum/internal/domain"
)

func main() {
	mint := flag.Bool("mint-token", false, "print a scheduler token and exit")
	ttl := flag.Duration("token-ttl", 365*24*time.Hour, "lifetime of the minted token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	if *mint {
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET is required")
		}
		token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(domain.SchedulerSubject, "", *ttl)
		if err != nil {
			log.Fatalf("mint token: %v", err)
		}
		fmt.Println(token)
		return
	}

	os.Exit(sweep(cfg, logger))
}

// sweep runs once and returns the exit code: 1 when the sweep could not run
// to completion, 2 when some results failed.
func sweep(cfg *config.Config, logger *slog.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.LifecycleSweepTimeout)
	defer cancel()

	db, err := app.OpenDB(ctx, cfg, logger)
	if err != nil {
		logger.Error("database", "err", err)
		return 1
	}
	defer db.Close()

	svcs, err := app.New(cfg, db, logger)
	if err != nil {
		logger.Error("wire services", "err", err)
		return 1
	}

	report, err := svcs.Lifecycle.Run(ctx)
	if report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	}
	if err != nil {
		logger.Error("lifecycle sweep failed", "err", err)
		return 1
	}
	if report.Failed() > 0 {
		return 2
	}
	return 0
}
