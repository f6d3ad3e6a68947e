// Command worker runs one reminder sweep and exits. It is meant for
// external schedulers (Kubernetes CronJob, systemd timer) as an
// alternative to the in-process cron in the API server.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/rentaltrack/rental-api/config"
	"github.com/rentaltrack/rental-api/internal/email"
	"github.com/rentaltrack/rental-api/internal/repository/postgres"
	reminderservice "github.com/rentaltrack/rental-api/internal/service/reminder"
	"github.com/rentaltrack/rental-api/pkg/logger"
)

type workerConfig struct {
	DBHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DBUser     string `envconfig:"DATABASE_USER" default:"postgres"`
	DBPassword string `envconfig:"DATABASE_PASSWORD"`
	DBName     string `envconfig:"DATABASE_NAME" default:"rentaltrack"`
	DBSSLMode  string `envconfig:"DATABASE_SSLMODE" default:"disable"`

	SMTPHost     string `envconfig:"SMTP_HOST" required:"true"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" required:"true"`
	CompanyName  string `envconfig:"SMTP_COMPANY_NAME" default:"Rental Tracker"`

	Timezone          string        `envconfig:"REMINDER_TIMEZONE" default:"UTC"`
	LenientDedupCheck bool          `envconfig:"REMINDER_LENIENT_DEDUP_CHECK" default:"true"`
	Timeout           time.Duration `envconfig:"SWEEP_TIMEOUT" default:"10m"`
}

func main() {
	_ = godotenv.Load()
	logger.Setup(nil)

	var cfg workerConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker config")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	mailer := email.NewSMTPService(email.Config{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUsername,
		Password:    cfg.SMTPPassword,
		From:        cfg.SMTPFrom,
		CompanyName: cfg.CompanyName,
	})

	svc := reminderservice.NewService(
		postgres.NewLeaseRepository(db),
		postgres.NewReminderRepository(db),
		mailer,
		reminderservice.Config{
			LenientDedupCheck: cfg.LenientDedupCheck,
			Location:          location,
		},
		nil,
		logger.New("worker"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	result, err := svc.CheckAndSendReminders(ctx)
	if result == nil {
		log.Error().Err(err).Msg("sweep aborted")
		os.Exit(1)
	}
	if err != nil {
		log.Warn().Err(err).Msg("sweep completed with scan errors")
	}

	summary := result.Summary()
	log.Info().
		Int("processed", summary.TotalProcessed).
		Int("sent", summary.Sent).
		Int("already_sent", summary.AlreadySent).
		Int("errors", summary.Errors).
		Msg("sweep finished")

	if err != nil {
		os.Exit(2)
	}
}
