package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/audit"
	"github.com/btcbarkeep/ainareports/pkg/auth"
	"github.com/btcbarkeep/ainareports/pkg/config"
	"github.com/btcbarkeep/ainareports/pkg/database"
	"github.com/btcbarkeep/ainareports/pkg/handlers"
	"github.com/btcbarkeep/ainareports/pkg/middleware"
	"github.com/btcbarkeep/ainareports/pkg/reporting"
	"github.com/btcbarkeep/ainareports/pkg/repositories"
	"github.com/btcbarkeep/ainareports/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("reporting_base_url", cfg.Reporting.BaseURL),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewConnection(ctx, &database.Config{
		URL: cfg.Database.ConnectionString(),
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Migrations run over database/sql; the pool above is for repositories.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, migrationsPath, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	_ = migrationDB.Close()

	buildingRepo := repositories.NewBuildingRepository(db)
	unitRepo := repositories.NewUnitRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	contractorRepo := repositories.NewContractorRepository(db)
	userRepo := repositories.NewUserRepository(db)

	reportingClient := reporting.NewClient(reporting.Config{
		BaseURL: cfg.Reporting.BaseURL,
		Token:   cfg.Reporting.Token,
	}, logger)

	buildingReports := services.NewBuildingReportService(reportingClient, buildingRepo, unitRepo, eventRepo, documentRepo, contractorRepo, userRepo, logger)
	unitReports := services.NewUnitReportService(buildingRepo, unitRepo, eventRepo, documentRepo, contractorRepo, userRepo, logger)
	search := services.NewSearchService(buildingRepo, unitRepo, logger)

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)
	recentStore := auth.NewRecentStore(sessionSecret(cfg, logger), cfg.Env != "local")
	auditor := audit.NewSecurityAuditor(logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewBuildingHandler(buildingReports, unitReports, recentStore, auditor, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewSearchHandler(search, auditor, logger).RegisterRoutes(mux)
	handlers.NewDocumentHandler(documentRepo, cfg.Storage.BaseURL, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("starting ainareports", zap.String("addr", addr), zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// sessionSecret returns the configured cookie secret, or a per-process random
// one. Recently-viewed cookies do not survive a restart in the latter case.
func sessionSecret(cfg *config.Config, logger *zap.Logger) string {
	if cfg.SessionSecret != "" {
		return cfg.SessionSecret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatal("failed to generate session secret", zap.Error(err))
	}
	logger.Warn("SESSION_SECRET not set, using ephemeral session key")
	return hex.EncodeToString(buf)
}
