package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rentaltrack/rental-api/config"
	"github.com/rentaltrack/rental-api/internal/email"
	"github.com/rentaltrack/rental-api/internal/handler"
	authhandler "github.com/rentaltrack/rental-api/internal/handler/auth"
	contacthandler "github.com/rentaltrack/rental-api/internal/handler/contact"
	leasehandler "github.com/rentaltrack/rental-api/internal/handler/lease"
	propertyhandler "github.com/rentaltrack/rental-api/internal/handler/property"
	reminderhandler "github.com/rentaltrack/rental-api/internal/handler/reminder"
	"github.com/rentaltrack/rental-api/internal/repository/postgres"
	"github.com/rentaltrack/rental-api/internal/router"
	"github.com/rentaltrack/rental-api/internal/scheduler"
	authservice "github.com/rentaltrack/rental-api/internal/service/auth"
	contactservice "github.com/rentaltrack/rental-api/internal/service/contact"
	leaseservice "github.com/rentaltrack/rental-api/internal/service/lease"
	propertyservice "github.com/rentaltrack/rental-api/internal/service/property"
	reminderservice "github.com/rentaltrack/rental-api/internal/service/reminder"
	"github.com/rentaltrack/rental-api/pkg/auth"
	"github.com/rentaltrack/rental-api/pkg/cache"
	"github.com/rentaltrack/rental-api/pkg/logger"
)

func main() {
	// .env is optional, environment wins either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var statsCache *cache.Client
	if cfg.Redis.URL != "" {
		statsCache, err = cache.New(cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, stats caching disabled")
		} else {
			defer statsCache.Close()
		}
	}

	location, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Reminder.Timezone).Msg("invalid reminder timezone")
	}

	realtorRepo := postgres.NewRealtorRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	propertyRepo := postgres.NewPropertyRepository(db)
	leaseRepo := postgres.NewLeaseRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)

	tokens := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	mailer := email.NewSMTPService(email.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		From:        cfg.SMTP.From,
		CompanyName: cfg.SMTP.CompanyName,
	})

	authSvc := authservice.NewService(realtorRepo, tokens)
	contactSvc := contactservice.NewService(contactRepo)
	propertySvc := propertyservice.NewService(propertyRepo)
	leaseSvc := leaseservice.NewService(leaseRepo, propertyRepo, contactRepo)
	reminderSvc := reminderservice.NewService(leaseRepo, reminderRepo, mailer, reminderservice.Config{
		LenientDedupCheck: cfg.Reminder.LenientDedupCheck,
		Location:          location,
	}, statsCache, logger.New("reminder"))

	engine := router.New(cfg, tokens, router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Auth:     authhandler.NewHandler(authSvc),
		Contact:  contacthandler.NewHandler(contactSvc),
		Property: propertyhandler.NewHandler(propertySvc),
		Lease:    leasehandler.NewHandler(leaseSvc),
		Reminder: reminderhandler.NewHandler(reminderSvc),
	})

	var sched *scheduler.Scheduler
	if cfg.Reminder.Enabled {
		sched = scheduler.New(reminderSvc, location, logger.New("scheduler"))
		if err := sched.Start(cfg.Reminder.Schedule); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Reminder.Schedule).Msg("failed to start reminder scheduler")
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
