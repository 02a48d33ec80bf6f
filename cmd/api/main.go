package main

import (
	"net/http"
	"os"
	"time"

	"database/sql"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/jobboard/internal/config"
	"github.com/hirewire/jobboard/internal/handler"
	"github.com/hirewire/jobboard/internal/notify"
	"github.com/hirewire/jobboard/internal/repository"
	"github.com/hirewire/jobboard/internal/service"
	"github.com/hirewire/jobboard/internal/token"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	tokens, err := token.NewService(cfg.JWTSecret)
	if err != nil {
		logger.Fatalf("Failed to initialize token service: %v", err)
	}

	var notifier service.Notifier
	var sender *notify.Sender
	if cfg.SMTPEnabled() {
		sender = notify.NewSender(cfg, logger)
		notifier = sender
	} else {
		logger.Info("SMTP not configured, email notifications disabled")
	}

	svc := service.NewService(repo, tokens, notifier, logger)
	h := handler.NewHandler(svc, cfg.PublicBaseURL, db)
	r := handler.NewRouter(h, svc)

	// Daily application digest for employers
	if sender != nil {
		c := cron.New()
		digest := notify.NewDigest(repo, sender, logger)
		if _, err := c.AddFunc(cfg.DigestSchedule, digest.Run); err != nil {
			logger.Fatalf("Failed to schedule digest: %v", err)
		}
		c.Start()
		defer c.Stop()
	}

	// CORS for the separate front-end client
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillahandlers.AllowCredentials(),
	)

	// Start server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      cors(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
