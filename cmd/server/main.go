package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agencysite/internal/api"
	"agencysite/internal/assistant"
	"agencysite/internal/audit"
	"agencysite/internal/auth"
	"agencysite/internal/booking"
	"agencysite/internal/content"
	"agencysite/internal/metrics"
	"agencysite/internal/users"
	"agencysite/pkg/config"
	"agencysite/pkg/db"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfg := config.LoadConfig()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	var (
		store      content.Store
		userRepo   users.UserStore
		auditStore audit.Store
	)
	switch cfg.StoreDriver {
	case "memory":
		logrus.Warn("using in-memory storage, all data is lost on restart")
		store = content.NewMemoryStore()
		userRepo = users.NewMemoryRepository()
		auditStore = audit.NewMemoryRepository()
	case "postgres":
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			logrus.Fatalf("error connecting to database: %v", err)
		}
		defer database.Close()
		store = content.NewPostgresStore(database)
		userRepo = users.NewRepository(database)
		auditStore = audit.NewRepository(database)
	default:
		logrus.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.OpenAIKey == "" {
		logrus.Warn("OPENAI_KEY is not set, chat requests will fail")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	userService := users.NewService(userRepo)
	contentService := content.NewService(store)
	auditService := audit.NewService(auditStore)

	assistantService := assistant.NewService(
		assistant.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL),
		store,
		assistant.Config{
			Model:         cfg.ChatModel,
			MaxIterations: cfg.AdminMaxIterations,
			Audit:         auditService,
			Metrics:       m,
		},
	)

	var mailer booking.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = booking.NewResendClient(cfg.ResendAPIKey, cfg.ResendBaseURL)
	} else {
		logrus.Warn("RESEND_API_KEY is not set, bookings will be rejected")
	}
	bookingService := booking.NewService(mailer, cfg.BookingFrom, cfg.BookingTo)

	apiHandler := api.NewHandler(
		userService,
		contentService,
		assistantService,
		bookingService,
		auditService,
		m,
		cfg.JWTSigningKey,
	)
	resolver := assistant.NewResolver(auth.NewVerifier(cfg.JWTSigningKey), userService)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           api.NewRouter(apiHandler, resolver, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping server: %v", err)
	}
	logrus.Info("server stopped")
}
