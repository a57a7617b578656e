// Package container wires the application together with samber/do. Each
// concern registers through its own Package function so binaries compose
// only what they need.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/upsearch/upsearch/internal/analytics"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/handlers"
	"github.com/upsearch/upsearch/internal/health"
	"github.com/upsearch/upsearch/internal/messaging"
	"github.com/upsearch/upsearch/internal/middleware"
	"github.com/upsearch/upsearch/internal/notify"
	"github.com/upsearch/upsearch/internal/ratelimit"
	"github.com/upsearch/upsearch/internal/store"
	"go.uber.org/zap"
)

// Options configures all binaries. Server flags are parsed by humacli.
type Options struct {
	Port            int    `default:"8888"           help:"Port to listen on"                              short:"p"`
	SitesDir        string `default:"data/sites"     help:"Directory for site documents"`
	ReportsDir      string `default:"data/reports"   help:"Directory for report documents"`
	CooldownMinutes int    `default:"5"              help:"Submission cooldown per address in minutes"`
	RateLimit       int64  `default:"60"             help:"Requests per client per minute"`
	RedisAddr       string `default:"localhost:6379" help:"Redis server address"                           short:"r"`
	PostgresURL     string `default:""               help:"Postgres connection string for analytics"`
	WebhookURL      string `default:""               help:"Discord-compatible webhook for notifications"`
	LogFormat       string `default:"console"        help:"Log format: console or json"`
}

// LoggerPackage registers the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage registers the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{Addr: opts.RedisAddr}), nil
	})
}

// PostgresPackage registers the analytics connection pool when configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.PostgresURL == "" {
			return nil, nil
		}

		return pgxpool.New(context.Background(), opts.PostgresURL)
	})
}

// StorePackage registers the file-backed site and report stores and the
// moderation audit log.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (directory.SiteRepository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		cooldown := time.Duration(opts.CooldownMinutes) * time.Minute

		return store.NewFileSiteStore(opts.SitesDir, cooldown, logger)
	})

	do.Provide(injector, func(i *do.Injector) (directory.ReportRepository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		generateID, err := nanoid.Standard(16)
		if err != nil {
			return nil, fmt.Errorf("create id generator: %w", err)
		}

		return store.NewFileReportStore(opts.ReportsDir, generateID, logger)
	})

	do.Provide(injector, func(i *do.Injector) (*store.AuditLog, error) {
		opts := do.MustInvoke[*Options](i)

		return store.NewAuditLog(opts.ReportsDir + "/management.log"), nil
	})
}

// RateLimitPackage registers the Redis-backed API rate limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		opts := do.MustInvoke[*Options](i)
		client := do.MustInvoke[*redis.Client](i)

		return ratelimit.NewSlidingWindowLimiter(ratelimit.NewRedisStore(client), opts.RateLimit, time.Minute), nil
	})
}

// PublisherPackage registers the watermill publisher and the typed publish
// functions used by the handlers.
func PublisherPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, fmt.Errorf("create publisher: %w", err)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.SiteSubmittedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.SiteSubmittedEvent](group.Publisher(), analytics.TopicSiteSubmitted), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.ReportFiledEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.ReportFiledEvent](group.Publisher(), analytics.TopicReportFiled), nil
	})
}

// HTTPPackage registers the router, the API, and all route handlers.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		limiter := do.MustInvoke[ratelimit.Limiter](i)
		sites := do.MustInvoke[directory.SiteRepository](i)
		reports := do.MustInvoke[directory.ReportRepository](i)
		redisClient := do.MustInvoke[*redis.Client](i)

		api := humachi.New(router, huma.DefaultConfig("UpSearch", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.RateLimiter(api, limiter))

		siteHandler := handlers.NewSiteHandler(
			sites,
			do.MustInvoke[messaging.Publish[analytics.SiteSubmittedEvent]](i),
			logger,
		)
		searchHandler := handlers.NewSearchHandler(sites, logger)
		reportHandler := handlers.NewReportHandler(
			reports,
			do.MustInvoke[messaging.Publish[analytics.ReportFiledEvent]](i),
			logger,
		)

		handlers.RegisterRoutes(api, siteHandler, searchHandler, reportHandler)

		healthHandler := health.NewHandler(
			health.NewRedisChecker(redisClient),
			health.NewDataDirChecker(opts.SitesDir),
		)
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}

// ConsumerGroupPackage registers the event consumers: analytics persistence
// plus best-effort webhook notification.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		pool := do.MustInvoke[*pgxpool.Pool](i)
		if pool == nil {
			return analytics.NewNoopStore(logger), nil
		}

		return analytics.NewPostgresStore(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		client := do.MustInvoke[*redis.Client](i)
		analyticsStore := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: "upsearch-consumer",
			},
			watermill.NopLogger{},
		)
		if err != nil {
			return nil, fmt.Errorf("create subscriber: %w", err)
		}

		webhook := notify.NewWebhook(opts.WebhookURL)

		group := messaging.NewConsumerGroup(subscriber, logger)

		group.Add(messaging.NewConsumer(subscriber, analytics.TopicSiteSubmitted,
			func(ctx context.Context, event *analytics.SiteSubmittedEvent) error {
				if webhook.Enabled() {
					if err := webhook.SiteSubmitted(ctx, event); err != nil {
						logger.Warn("webhook delivery failed", zap.Error(err))
					}
				}

				return analyticsStore.SaveSiteSubmitted(ctx, event)
			}, logger))

		group.Add(messaging.NewConsumer(subscriber, analytics.TopicReportFiled,
			func(ctx context.Context, event *analytics.ReportFiledEvent) error {
				if webhook.Enabled() {
					if err := webhook.ReportFiled(ctx, event); err != nil {
						logger.Warn("webhook delivery failed", zap.Error(err))
					}
				}

				return analyticsStore.SaveReportFiled(ctx, event)
			}, logger))

		return group, nil
	})
}
