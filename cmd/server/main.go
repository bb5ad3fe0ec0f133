package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"bananabill/internal/billing"
	"bananabill/internal/config"
	"bananabill/internal/handler"
	"bananabill/internal/port"
	"bananabill/internal/repository/postgres"
	"bananabill/internal/router"
	"bananabill/internal/service"
	"bananabill/internal/sms/fast2sms"
	"bananabill/internal/sms/noop"
	s3storage "bananabill/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	farmerRepo := postgres.NewFarmerRepo(db)
	billRepo := postgres.NewBillRepo(db)
	tokenRepo := postgres.NewRefreshTokenRepo(db)
	otpRepo := postgres.NewOTPRepo(db)
	historyRepo := postgres.NewPaymentHistoryRepo(db)
	seqRepo := postgres.NewSequenceRepo(db)

	// Initialize storage and SMS delivery
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var smsSender port.SMSSender
	switch cfg.SMS.Provider {
	case "fast2sms":
		smsSender = fast2sms.NewFast2SMSSender(cfg.SMS.APIKey, cfg.SMS.BaseURL)
	default:
		smsSender = noop.NewNoopSender()
	}

	// Initialize services
	calc := billing.NewCalculator(cfg.Billing.BoxWeightKg, cfg.Billing.DandaPercent)
	authSvc := service.NewAuthService(userRepo, tokenRepo, cfg.JWT)
	otpSvc := service.NewOTPService(otpRepo, smsSender)
	farmerSvc := service.NewFarmerService(farmerRepo, billRepo)
	billSvc := service.NewBillService(billRepo, farmerRepo, seqRepo, calc, cfg.Billing)
	paymentSvc := service.NewPaymentService(billRepo, historyRepo, userRepo, cfg.Billing)
	reportSvc := service.NewReportService(billRepo, farmerRepo)
	imageSvc := service.NewImageService(billRepo, s3Client, &cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	otpH := handler.NewOTPHandler(otpSvc, authSvc)
	farmerH := handler.NewFarmerHandler(farmerSvc)
	billH := handler.NewBillHandler(billSvc, paymentSvc, imageSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, otpH, farmerH, billH, reportH, healthH)

	go purgeExpiredSessions(authSvc)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// purgeExpiredSessions deletes expired refresh tokens once at startup and
// then hourly.
func purgeExpiredSessions(authSvc service.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		n, err := authSvc.PurgeExpiredSessions(context.Background())
		if err != nil {
			log.Printf("purging expired sessions: %v", err)
		} else if n > 0 {
			log.Printf("purged %d expired sessions", n)
		}
		<-ticker.C
	}
}
