package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"praisetabernacle/config"
	"praisetabernacle/internal/adapters/auth"
	"praisetabernacle/internal/adapters/email"
	"praisetabernacle/internal/content"
	deliveryhttp "praisetabernacle/internal/delivery/http"
	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/events"
	"praisetabernacle/internal/metrics"
	"praisetabernacle/internal/ratelimit"
	"praisetabernacle/internal/repository/jsonfile"
	"praisetabernacle/internal/repository/postgres"
	"praisetabernacle/internal/security"
	"praisetabernacle/internal/services"
)

const rateLimitKeyPrefix = "tabernacle:rl:"

type repositories struct {
	submissions domain.SubmissionRepository
	prayer      domain.PrayerWallRepository
	rsvps       domain.RsvpRepository
}

// app is the composed server. Close releases every connection it opened.
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	loc, err := time.LoadLocation(cfg.SiteTimezone)
	if err != nil {
		return nil, fmt.Errorf("load site time zone: %w", err)
	}
	catalog, err := content.Load(cfg.ContentDir, loc)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	m := metrics.New()

	repos, err := a.openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	limiter, err := a.openLimiter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	publisher, err := a.openPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	var admin domain.AdminAuthenticator
	if cfg.AdminPasswordHash != "" {
		admin, err = auth.NewAdminAuthenticator(cfg.AdminUsername, cfg.AdminPasswordHash)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
	} else {
		logger.Warn("ADMIN_PASSWORD_HASH not set, admin routes disabled")
	}

	csrf := security.NewCSRF(auth.NewCSRFSigner(cfg.CSRFSecret, cfg.CSRFTokenTTL), cfg.CSRFTokenTTL, cfg.IsProduction())
	emailService := services.NewEmailService(mailer, renderer, m, logger)

	a.handler = deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:      logger,
		Metrics:     m,
		Origins:     cfg.SiteOrigins,
		Guard:       security.NewGuard(security.NewOriginPolicy(cfg.SiteOrigins), csrf),
		CSRF:        csrf,
		Limiter:     limiter,
		Admin:       admin,
		Submissions: services.NewSubmissionService(repos.submissions, catalog, publisher, m, logger),
		Rsvps: services.NewRsvpService(repos.rsvps, catalog, emailService, publisher, m, logger, services.RsvpConfig{
			AdminNotifyEmail: cfg.AdminNotifyEmail,
			Location:         loc,
		}),
		Prayer:   services.NewPrayerWallService(repos.prayer, publisher, m, logger),
		Events:   services.NewEventService(catalog, repos.rsvps),
		Promises: services.NewPromiseService(catalog.Promises(), loc),

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	switch cfg.StorageBackend {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := postgres.Migrate(db); err != nil {
			return nil, err
		}
		logger.Info("storage ready", "backend", "postgres")
		return &repositories{
			submissions: postgres.NewSubmissionRepository(db),
			prayer:      postgres.NewPrayerWallRepository(db),
			rsvps:       postgres.NewRsvpRepository(db),
		}, nil
	default:
		db, err := jsonfile.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info("storage ready", "backend", "jsonfile", "dir", db.Dir())
		return &repositories{
			submissions: jsonfile.NewSubmissionRepository(db),
			prayer:      jsonfile.NewPrayerWallRepository(db),
			rsvps:       jsonfile.NewRsvpRepository(db),
		}, nil
	}
}

func (a *app) openLimiter(ctx context.Context, cfg *config.Config) (domain.RateLimiter, error) {
	if cfg.RateLimitBackend != "redis" {
		return ratelimit.NewMemoryLimiter(), nil
	}
	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	return ratelimit.NewRedisLimiter(client, rateLimitKeyPrefix), nil
}

func (a *app) openPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, error) {
	if cfg.NatsURL == "" {
		return events.NoopPublisher{}, nil
	}
	pub, err := events.NewNATSPublisher(cfg.NatsURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pub.Close)
	logger.Info("publishing domain events to NATS", "url", cfg.NatsURL)
	return pub, nil
}
