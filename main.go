package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/modeldoc/modeldoc-engine/pkg/apperrors"
	"github.com/modeldoc/modeldoc-engine/pkg/config"
	"github.com/modeldoc/modeldoc-engine/pkg/database"
	"github.com/modeldoc/modeldoc-engine/pkg/handlers"
	"github.com/modeldoc/modeldoc-engine/pkg/logging"
	"github.com/modeldoc/modeldoc-engine/pkg/repositories"
	"github.com/modeldoc/modeldoc-engine/pkg/schemaload"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	dbCfg := &database.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Database,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: cfg.Database.MaxConnections,
	}

	logger.Info("Connecting to database",
		zap.String("dsn", logging.SanitizeConnectionString(dbCfg.DSN())))

	migrationDB, err := sql.Open("pgx", dbCfg.DSN())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = migrationDB.Close()

	db, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.SchemaDir != "" {
		if err := syncSchemas(ctx, cfg.SchemaDir, repositories.NewSchemaRepository(db), logger); err != nil {
			logger.Fatal("Failed to sync schemas", zap.Error(err))
		}
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting modeldoc-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("environment", cfg.Env))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// syncSchemas loads the authored schema files and upserts them into the
// schema store. Authoring happens out-of-band; this is the only write path
// in the process.
func syncSchemas(ctx context.Context, dir string, repo repositories.SchemaRepository, logger *zap.Logger) error {
	schemas, err := schemaload.LoadDir(dir)
	if err != nil {
		return err
	}
	for _, schema := range schemas {
		err := repo.Create(ctx, schema)
		if errors.Is(err, apperrors.ErrConflict) {
			err = repo.Update(ctx, schema)
		}
		if err != nil {
			return err
		}
		logger.Info("Synced schema",
			zap.String("owner_key", string(schema.OwnerKey)),
			zap.Int("questions", schema.QuestionCount()))
	}
	return nil
}
