package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/civicdesk/civicdesk-api/internal/config"
	"github.com/civicdesk/civicdesk-api/internal/logging"
	"github.com/civicdesk/civicdesk-api/internal/repository/postgres"
	"github.com/civicdesk/civicdesk-api/internal/sentry"
	"github.com/civicdesk/civicdesk-api/internal/service"
	transporthttp "github.com/civicdesk/civicdesk-api/internal/transport/http"
	"github.com/civicdesk/civicdesk-api/internal/transport/notify"
	"github.com/civicdesk/civicdesk-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	if err := sentry.Init(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Printf("Warning: sentry disabled: %v", err)
	}
	defer sentry.Flush()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	complaintRepo := postgres.NewComplaintRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	var sender service.OTPSender = notify.NewConsoleSender()
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	jwtManager := util.NewJWTManager(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, sessionRepo, jwtManager, cfg.SessionTTL, cfg.ResetSessionTTL)
	resetService := service.NewResetService(userRepo, sessionRepo, sender, cfg.OTPTTL)
	complaintService := service.NewComplaintService(complaintRepo, userRepo)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterReset(e, authService, resetService)
	transporthttp.RegisterComplaints(e, authService, complaintService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
