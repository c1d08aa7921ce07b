package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "leaseflow-backend/internal/api/http"
	"leaseflow-backend/internal/config"
	"leaseflow-backend/internal/finance"
	"leaseflow-backend/internal/logger"
	"leaseflow-backend/internal/repository/postgres"
	"leaseflow-backend/internal/security"
	"leaseflow-backend/internal/service"
	"leaseflow-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LeaseFlow Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Storage Service
	storageService, err := storage.NewLocalStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Using local document storage", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Coefficient resolution strategy
	var coefficients finance.CoefficientResolver
	switch cfg.Finance.CoefficientStrategy {
	case "table":
		coefficients = finance.TableCoefficient{}
		logger.Info("Using leaser grid coefficient resolution")
	default:
		fixed := cfg.Finance.FixedCoefficient
		if fixed <= 0 {
			fixed = finance.DefaultCoefficient
		}
		coefficients = finance.FixedCoefficient(fixed)
		logger.Info("Using fixed coefficient", "coefficient", fixed)
	}

	// Payment mandate provider
	mandateRegistry := service.NewMandateRegistry(
		service.NewNoopMandateProvider(),
		service.NewHostedMandateProvider(service.ProviderMollie, cfg.Mandate.APIKey),
		service.NewHostedMandateProvider(service.ProviderGoCardless, cfg.Mandate.APIKey),
		service.NewHostedMandateProvider(service.ProviderBillit, cfg.Mandate.APIKey),
	)
	mandates, err := mandateRegistry.Get(cfg.Mandate.Provider)
	if err != nil {
		logger.Error("Failed to resolve mandate provider", "error", err)
		log.Fatalf("Failed to resolve mandate provider: %v", err)
	}
	logger.Info("Payment mandate provider selected", "provider", mandates.Name())

	// Initialize Services
	offerSvc := service.NewOfferService(
		store.Offers,
		store.Contracts,
		store.WorkflowLogs,
		store.Users,
		store.Leasers,
		store.CommissionLevels,
		store.DocumentRequests,
		emailSvc,
		mandates,
		coefficients,
	)
	contractSvc := service.NewContractService(store.Contracts, store.WorkflowLogs)
	commissionSvc := service.NewCommissionService(store.CommissionLevels)
	leaserSvc := service.NewLeaserService(store.Leasers)
	authSvc := service.NewAuthService(store.Users, tokenManager)

	// Build router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Offers:     offerSvc,
		Documents:  offerSvc,
		Contracts:  contractSvc,
		Commission: commissionSvc,
		Leasers:    leaserSvc,
		Auth:       authSvc,
		Tokens:     tokenManager,
		Storage:    storageService,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
