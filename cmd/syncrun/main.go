package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/NINAnor/nva-sync/config"
	"github.com/NINAnor/nva-sync/services"
	"github.com/NINAnor/nva-sync/storage"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// syncrun führt genau einen Sync-Lauf aus und schreibt den Report als
// JSON auf stdout. Gedacht für Cron-Jobs außerhalb des Services und für
// manuelle Läufe.
func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	stagingDB, err := gorm.Open(postgres.Open(cfg.StagingDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to staging database", zap.Error(err))
	}
	pbaseDB, err := gorm.Open(postgres.Open(cfg.PbaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to Pbase database", zap.Error(err))
	}

	syncService := services.NewSyncService(
		storage.NewStagingStore(stagingDB, logging),
		storage.NewCristinStore(pbaseDB, logging),
		cfg.RegistrationBaseURL,
		logging,
	)

	ctx := context.Background()
	report, runErr := syncService.Run(ctx)

	if cfg.ArchiveEnabled() && report != nil {
		s3Client, s3err := storage.NewS3Client(cfg)
		if s3err != nil {
			logging.Error("S3-Client für Report-Archiv fehlgeschlagen", zap.Error(s3err))
		} else if key, archErr := storage.ArchiveReport(ctx, s3Client, cfg.ReportsS3Bucket, report); archErr != nil {
			logging.Error("Report-Archivierung fehlgeschlagen", zap.Error(archErr))
		} else {
			logging.Info("Report archiviert", zap.String("s3_key", key))
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logging.Error("Report konnte nicht ausgegeben werden", zap.Error(err))
	}

	if runErr != nil {
		os.Exit(1)
	}
}
