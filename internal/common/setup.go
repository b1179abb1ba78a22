package common

import (
	"context"
	"log"
	"os"
	"strings"

	"currency-data-sync/internal/database"
	"currency-data-sync/internal/models"
	"currency-data-sync/internal/postgres"
	"currency-data-sync/internal/store"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

// InitializeLogger installs a production zap logger as the global logger.
// When cfg.File is set, entries are also written to a size-rotated file.
func InitializeLogger(cfg models.LogConfig) (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	var rotator *lumberjack.Logger
	if cfg.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zap.InfoLevel,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
		if rotator != nil {
			_ = rotator.Close()
		}
	}

	return logger, cleanup
}

// NewRunContext tags ctx with a fresh run id and returns a logger carrying it
func NewRunContext(ctx context.Context, job string) (context.Context, *zap.Logger) {
	rc := &models.RunContext{RunId: uuid.New().String(), Job: job}
	return models.WithRunContext(ctx, rc), zap.L().With(zap.String("job", rc.Job), zap.String("run_id", rc.RunId))
}

// InitializeStore opens the backend selected by cfg.Url
func InitializeStore(ctx context.Context, cfg models.DatabaseConfig) (store.RatesStore, error) {
	if postgres.IsPostgresUrl(cfg.Url) {
		return postgres.NewService(ctx, cfg)
	}
	return database.NewService(ctx, cfg)
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device") ||
		strings.Contains(msg, os.ErrInvalid.Error())
}
