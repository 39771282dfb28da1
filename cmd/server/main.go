package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelbook-service/internal/domain/repository"
	"travelbook-service/internal/infrastructure/auth"
	"travelbook-service/internal/infrastructure/config"
	"travelbook-service/internal/infrastructure/persistence"
	storeRepo "travelbook-service/internal/interface/repository"
	"travelbook-service/internal/interface/rest"
	"travelbook-service/internal/usecase"
	"travelbook-service/pkg/logger"
	"travelbook-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Travelbook Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	durability, err := repository.ParseDurability(cfg.SignupDurability)
	if err != nil {
		log.Fatal("Invalid signup durability", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up the audit trail; the service runs without it when no
	// Postgres DSN is configured.
	var auditRepo repository.AuditRepository
	if cfg.PostgresURI != "" {
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		auditRepo, err = storeRepo.NewGormAuditRepository(gormDB)
		if err != nil {
			log.Fatal("Failed to set up audit repository", "error", err)
		}
	} else {
		log.Warn("POSTGRES_DSN not set, audit trail disabled")
	}

	// Set up store and capabilities
	documentStore := storeRepo.NewMongoDocumentStore(db, log)
	hasher := auth.NewBcryptHasher()
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenExpiry)

	// Set up managers
	accountManager := usecase.NewAccountManager(documentStore, hasher, tokenIssuer, auditRepo, log)
	bookingManager := usecase.NewBookingManager(documentStore, auditRepo, log)

	// Set up HTTP server
	m := metrics.NewMetrics("travelbook")
	handler := rest.NewHandler(accountManager, bookingManager, tokenIssuer, durability, m, log)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Travelbook Service stopped")
}
