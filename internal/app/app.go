// Package app wires repositories, adapters and services from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"guestalbum/config"
	"guestalbum/internal/adapters/email"
	"guestalbum/internal/domain"
	"guestalbum/internal/lifecycle"
	"guestalbum/internal/repository/postgres"
	"guestalbum/internal/services"
)

// Services is the assembled application.
type Services struct {
	Events    domain.EventService
	Media     domain.MediaService
	Lifecycle domain.LifecycleJobService
	Evaluator *lifecycle.Evaluator
}

// New builds the services on top of db.
func New(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	mediaRepo := postgres.NewMediaRepository(db)
	var ledger domain.MilestoneLedger
	if cfg.DedupeMilestones {
		ledger = postgres.NewMilestoneRepository(db)
	}

	clock := domain.SystemClock{}
	evaluator := lifecycle.NewEvaluator(loc)
	cascade := services.NewCascadeService(
		postgres.NewNotificationRepository(db),
		postgres.NewWishRepository(db),
		mediaRepo,
		postgres.NewHighlightRepository(db),
		eventRepo,
		logger,
	)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	return &Services{
		Events:    services.NewEventService(eventRepo, cascade, evaluator, clock, cfg.RequestTimeout),
		Media:     services.NewMediaService(eventRepo, mediaRepo, evaluator, clock, cfg.RequestTimeout),
		Evaluator: evaluator,
		Lifecycle: services.NewLifecycleJobService(
			eventRepo, mediaRepo, emailService, cascade, ledger, evaluator, clock, logger,
			services.LifecycleJobConfig{
				AppBaseURL:    cfg.AppBaseURL,
				OperatorEmail: cfg.OperatorEmail,
				SendDelay:     cfg.EmailSendDelay,
			},
		),
	}, nil
}

// OpenDB opens and pings the postgres pool and, when enabled, applies the schema.
func OpenDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("database schema applied")
	}
	return db, nil
}
