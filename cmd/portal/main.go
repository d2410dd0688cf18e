package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/clinicport/backend/internal/handlers"
	"github.com/clinicport/backend/internal/outbox"
	"github.com/clinicport/backend/internal/storage"
	"github.com/clinicport/backend/libs/config"
	"github.com/clinicport/backend/libs/db"
	"github.com/clinicport/backend/libs/httpx"
	"github.com/clinicport/backend/libs/kafkax"
	otelx "github.com/clinicport/backend/libs/otel"
	"github.com/clinicport/backend/libs/runtime"
)

func main() {
	service := config.String("SERVICE_NAME", "portal")
	port, err := config.Port("PORT", "5000")
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

	jwtSecret, err := config.RequiredString("JWT_SECRET")
	if err != nil {
		panic(err)
	}
	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, config.String("MIGRATIONS_FILE", "db/migrations/001_init.sql")); err != nil {
		logger.Warn("migration skipped", "err", err)
	} else {
		logger.Info("migration applied")
	}

	outboxRepo := outbox.NewRepository(pool)
	treatmentRepo := storage.NewTreatmentRepository(pool)
	bookingRepo := storage.NewBookingRepository(pool, outboxRepo)
	userRepo := storage.NewUserRepository(pool)
	doctorRepo := storage.NewDoctorRepository(pool)
	paymentRepo := storage.NewPaymentRepository(pool, outboxRepo)

	kafkaBrokers := config.String("KAFKA_BROKERS", "")
	publisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   kafkaBrokers,
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go publisher.Run(ctx)

	h := handlers.New(treatmentRepo, bookingRepo, userRepo, doctorRepo, paymentRepo, logger, handlers.Config{
		JWTSecret:       jwtSecret,
		StripeSecretKey: config.String("STRIPE_SECRET_KEY", ""),
	})

	readyChecks := []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}
	if kafkaBrokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(kafkaBrokers)})
	}
	mux := runtime.NewBaseMuxWithReady(readyChecks...)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("API is connected"))
	})
	mux.HandleFunc("GET /appointments", h.Appointments)
	mux.Handle("POST /treatments", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.CreateTreatment))))
	mux.HandleFunc("GET /specialty", h.Specialty)
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.Handle("GET /myAppointment", h.RequireAuth(http.HandlerFunc(h.MyAppointments)))
	mux.HandleFunc("GET /jwt", h.IssueToken)
	mux.HandleFunc("POST /users", h.CreateUser)
	mux.Handle("GET /users", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.ListUsers))))
	mux.HandleFunc("GET /users/admin/{email}", h.IsAdmin)
	mux.Handle("PUT /users/admin/{id}", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.PromoteAdmin))))
	mux.Handle("POST /doctors", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.CreateDoctor))))
	mux.Handle("GET /doctors", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.ListDoctors))))
	mux.Handle("DELETE /doctors/{id}", h.RequireAuth(h.RequireAdmin(http.HandlerFunc(h.DeleteDoctor))))
	mux.HandleFunc("GET /payment/{id}", h.BookingForPayment)
	mux.HandleFunc("POST /create-payment-intent", h.CreatePaymentIntent)
	mux.HandleFunc("POST /payment", h.RecordPayment)

	var rateLimitMW httpx.Middleware
	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 60)
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	handler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))),
		httpx.WithTimeout(time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 10))*time.Second),
		rateLimitMW,
	)
	handler = otelhttp.NewHandler(handler, service)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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

func parseList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
