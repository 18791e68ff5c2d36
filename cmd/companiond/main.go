package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/companion/internal/ai"
	"github.com/md-rashed-zaman/companion/internal/events"
	"github.com/md-rashed-zaman/companion/internal/handlers"
	"github.com/md-rashed-zaman/companion/internal/notify"
	"github.com/md-rashed-zaman/companion/internal/quotes"
	"github.com/md-rashed-zaman/companion/internal/reminder"
	"github.com/md-rashed-zaman/companion/internal/store"
	"github.com/md-rashed-zaman/companion/libs/config"
	"github.com/md-rashed-zaman/companion/libs/db"
	"github.com/md-rashed-zaman/companion/libs/httpx"
	"github.com/md-rashed-zaman/companion/libs/kafkax"
	otelx "github.com/md-rashed-zaman/companion/libs/otel"
	"github.com/md-rashed-zaman/companion/libs/runtime"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "companiond")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	jwtSecret, err := config.RequiredString("JWT_SECRET")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL, int32(config.Int("DB_MAX_CONNS", 10)))
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
	}

	users := store.NewUserRepository(pool)
	appts := store.NewAppointmentStore(pool)
	docs := store.NewDocStore(pool)
	metrics := events.NewMetrics(pool, rdb)

	brokers := config.String("KAFKA_BROKERS", "")
	publisher := events.NewPublisher(brokers, logger)
	defer publisher.Close()

	if publisher != nil {
		consumer := events.NewConsumer(logger, events.NewInbox(pool), events.ConsumerConfig{
			Brokers: brokers,
			GroupID: config.String("KAFKA_GROUP_ID", "companiond"),
			Topic:   events.TopicReminderFired,
		}, events.ReminderFiredHandler(metrics))
		go consumer.Run(ctx)
	}

	var sink reminder.Sink = notify.NewNoopSink()
	if url := config.String("PUSH_WEBHOOK_URL", ""); url != "" {
		sink = notify.NewWebhookSink(docs, url, config.String("PUSH_WEBHOOK_TOKEN", ""), logger)
	} else {
		logger.Warn("push delivery disabled (no webhook url configured)")
	}

	sched := reminder.NewScheduler(appts, sink, logger, reminder.Config{
		Interval:      config.Seconds("REMINDER_SCAN_SECONDS", 30*time.Second),
		WindowMinutes: config.Int("REMINDER_WINDOW_MINUTES", reminder.DefaultWindowMinutes),
	})
	sched.OnFired(publisher.ReminderFired)
	go sched.Run(ctx)

	feed := quotes.NewFeed(config.String("QUOTE_FEED_URL", ""), logger)
	if feedURL := config.String("QUOTE_FEED_URL", ""); feedURL != "" {
		go func() {
			refreshCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			if err := feed.Refresh(refreshCtx); err != nil {
				logger.Warn("initial quote refresh failed", "err", err)
			}
		}()

		c := cron.New()
		spec := config.String("QUOTE_REFRESH_CRON", "0 5 * * *")
		if _, err := c.AddFunc(spec, func() {
			refreshCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			if err := feed.Refresh(refreshCtx); err != nil {
				logger.Warn("quote refresh failed", "err", err)
			}
		}); err != nil {
			logger.Error("invalid quote refresh schedule", "err", err, "spec", spec)
		} else {
			c.Start()
			defer c.Stop()
		}
	}

	prioritize := ai.NewPrioritizeClient(config.String("AI_PRIORITIZE_URL", ""))
	chat := ai.NewChatClient(config.String("AI_CHAT_URL", ""), config.String("AI_CHAT_KEY", ""))

	apiHandler := handlers.New(users, appts, docs, metrics, prioritize, chat, feed, logger, handlers.Config{
		JWTSecret: jwtSecret,
		TokenTTL:  config.Seconds("TOKEN_TTL_SECONDS", 24*time.Hour),
	})

	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if brokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}
	mux := runtime.NewBaseMuxWithReady(readyChecks...)
	apiHandler.Register(mux)

	rateLimit := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	var limiter httpx.Middleware
	if rdb != nil {
		limiter = httpx.NewRedisRateLimiter(rdb, rateLimit, time.Minute, "ratelimit").Middleware(logger, true)
	} else {
		limiter = httpx.NewRateLimiter(rateLimit, time.Minute).Middleware()
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		limiter,
		httpx.WithBodyLimit(1<<20),
		httpx.WithTimeout(30*time.Second),
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: splitOrigins(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         10 * time.Minute,
		}),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "companiond")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
