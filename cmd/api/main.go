package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Okojas/MediCare-doctor-appointment/internal/config"
	"github.com/Okojas/MediCare-doctor-appointment/internal/email"
	"github.com/Okojas/MediCare-doctor-appointment/internal/handler"
	adminHandler "github.com/Okojas/MediCare-doctor-appointment/internal/handler/admin"
	appointmentHandler "github.com/Okojas/MediCare-doctor-appointment/internal/handler/appointment"
	authHandler "github.com/Okojas/MediCare-doctor-appointment/internal/handler/auth"
	doctorHandler "github.com/Okojas/MediCare-doctor-appointment/internal/handler/doctor"
	paymentHandler "github.com/Okojas/MediCare-doctor-appointment/internal/handler/payment"
	recordHandler "github.com/Okojas/MediCare-doctor-appointment/internal/handler/record"
	"github.com/Okojas/MediCare-doctor-appointment/internal/middleware"
	"github.com/Okojas/MediCare-doctor-appointment/internal/repository/postgres"
	"github.com/Okojas/MediCare-doctor-appointment/internal/router"
	appointmentService "github.com/Okojas/MediCare-doctor-appointment/internal/service/appointment"
	authService "github.com/Okojas/MediCare-doctor-appointment/internal/service/auth"
	"github.com/Okojas/MediCare-doctor-appointment/internal/service/directory"
	paymentService "github.com/Okojas/MediCare-doctor-appointment/internal/service/payment"
	recordService "github.com/Okojas/MediCare-doctor-appointment/internal/service/record"
	reportService "github.com/Okojas/MediCare-doctor-appointment/internal/service/report"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/auth"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/logger"
	redisbroker "github.com/Okojas/MediCare-doctor-appointment/pkg/messaging/redis"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/metrics"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/security"
	"github.com/Okojas/MediCare-doctor-appointment/pkg/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db, outboxRepo)
	recordRepo := postgres.NewMedicalRecordRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Email
	var sender email.Service
	if cfg.SMTP.Host != "" {
		sender = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, appLogger)
	} else {
		sender = email.NewNoopService()
	}
	notifier := email.NewBookingNotifier(userRepo, sender, appLogger)

	m := metrics.New("medicare")

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(12)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	directorySvc := directory.NewService(doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, directorySvc, notifier, m)
	paymentSvc := paymentService.NewService(appointmentSvc, cfg.Payment.GatewayKey, cfg.Payment.Currency)
	reportSvc := reportService.NewService(reportRepo)

	recordSvc, err := recordService.NewService(recordRepo, cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init record service")
	}

	// Handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.New(
		authMiddleware,
		handler.NewHandler(db),
		m,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORS:           middleware.DefaultCORSConfig(),
		},
		[]router.Handler{
			authHandler.NewHandler(authSvc, authMiddleware),
			doctorHandler.NewHandler(directorySvc),
		},
		[]router.Handler{
			appointmentHandler.NewHandler(appointmentSvc),
			recordHandler.NewHandler(recordSvc),
			paymentHandler.NewHandler(paymentSvc),
			adminHandler.NewHandler(reportSvc),
		},
	)
	r.Setup()

	// Outbox worker publishing lifecycle events, when a broker is
	// configured.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.Redis.Enabled {
		zl := log.Logger
		broker, err := redisbroker.NewBroker(redisbroker.Config{
			URL:      cfg.Redis.URL,
			PoolSize: cfg.Redis.PoolSize,
		}, &zl)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: cfg.Outbox.PollInterval,
		}, appLogger, m)
		go processor.Start(workerCtx)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
