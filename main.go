package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/NINAnor/nva-sync/config"
	"github.com/NINAnor/nva-sync/models"
	"github.com/NINAnor/nva-sync/services"
	"github.com/NINAnor/nva-sync/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	insertedCounter  prometheus.Counter
	duplicateCounter prometheus.Counter
	invalidCounter   prometheus.Counter
	failedRunCounter prometheus.Counter
)

func init() {
	insertedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nva_sync_publications_inserted_total",
		Help: "Total number of new publications inserted into Cristin.",
	})
	duplicateCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nva_sync_publications_skipped_duplicate_total",
		Help: "Total number of staging records skipped as duplicates.",
	})
	invalidCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nva_sync_publications_skipped_invalid_total",
		Help: "Total number of staging records skipped for missing required fields.",
	})
	failedRunCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nva_sync_runs_failed_total",
		Help: "Total number of sync runs that ended in FAILED.",
	})
	prometheus.MustRegister(insertedCounter, duplicateCounter, invalidCounter, failedRunCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

// syncRunner serialisiert die Sync-Läufe: Deduplicator und IDAllocator
// werden beim Start aus dem Zielbestand geseedet, parallele Läufe gegen
// dasselbe Ziel sind daher nicht erlaubt.
type syncRunner struct {
	mu      sync.Mutex
	service *services.SyncService
	reports *storage.ReportStore
	cfg     *config.Config
	logger  *zap.Logger
}

// run führt einen Lauf aus, speichert den Report und aktualisiert die
// Metriken. Läuft bereits ein Sync, kommt (nil, false) zurück.
func (r *syncRunner) run(ctx context.Context) (*models.SyncReport, bool) {
	if !r.mu.TryLock() {
		return nil, false
	}
	defer r.mu.Unlock()

	report, err := r.service.Run(ctx)
	if err != nil {
		failedRunCounter.Inc()
	} else {
		insertedCounter.Add(float64(report.Inserted))
		duplicateCounter.Add(float64(report.SkippedDuplicate))
		invalidCounter.Add(float64(report.SkippedInvalid))
	}

	if saveErr := r.reports.Save(ctx, report); saveErr != nil {
		r.logger.Error("Report konnte nicht gespeichert werden", zap.Error(saveErr))
	}

	if r.cfg.ArchiveEnabled() {
		s3Client, s3err := storage.NewS3Client(r.cfg)
		if s3err != nil {
			r.logger.Error("S3-Client für Report-Archiv fehlgeschlagen", zap.Error(s3err))
		} else if key, archErr := storage.ArchiveReport(ctx, s3Client, r.cfg.ReportsS3Bucket, report); archErr != nil {
			r.logger.Error("Report-Archivierung fehlgeschlagen", zap.Error(archErr))
		} else {
			r.logger.Info("Report archiviert", zap.String("s3_key", key))
		}
	}

	return report, true
}

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

	// Setup Database Connections
	stagingDB, err := gorm.Open(postgres.Open(cfg.StagingDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to staging database", zap.Error(err))
	}
	logging.Info("Successfully connected to NVA staging database.")

	pbaseDB, err := gorm.Open(postgres.Open(cfg.PbaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to Pbase database", zap.Error(err))
	}
	logging.Info("Successfully connected to Pbase database.")

	// Nur die eigene Report-Tabelle migrieren; die Cristin-Tabelle
	// gehört dem Pbase-Replikations-Tool.
	if err := pbaseDB.AutoMigrate(&models.SyncReport{}); err != nil {
		logging.Fatal("Report table migration failed", zap.Error(err))
	}

	// Setup Services
	stagingStore := storage.NewStagingStore(stagingDB, logging)
	cristinStore := storage.NewCristinStore(pbaseDB, logging)
	reportStore := storage.NewReportStore(pbaseDB)
	syncService := services.NewSyncService(stagingStore, cristinStore, cfg.RegistrationBaseURL, logging)

	runner := &syncRunner{
		service: syncService,
		reports: reportStore,
		cfg:     cfg,
		logger:  logging,
	}

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupSyncRoutes(router, runner)
	setupReportRoutes(router, reportStore, logging)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled sync...")
		report, started := runner.run(context.Background())
		if !started {
			logging.Warn("Scheduled sync skipped, another run is active")
			return
		}
		if report.State == models.RunStateFailed {
			logging.Error("Scheduled sync failed", zap.String("error", report.Error))
		} else {
			logging.Info("Scheduled sync completed", zap.Int("inserted", report.Inserted))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupSyncRoutes(router *gin.Engine, runner *syncRunner) {
	// POST /sync stößt einen Lauf sofort an und liefert den Report.
	router.POST("/sync", func(c *gin.Context) {
		report, started := runner.run(c.Request.Context())
		if !started {
			c.JSON(http.StatusConflict, gin.H{"error": "a sync run is already in progress"})
			return
		}
		if report.State == models.RunStateFailed {
			c.JSON(http.StatusInternalServerError, report)
			return
		}
		c.JSON(http.StatusOK, report)
	})
}

func setupReportRoutes(router *gin.Engine, reports *storage.ReportStore, log *zap.Logger) {
	rg := router.Group("/reports")

	rg.GET("/", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		list, err := reports.List(c.Request.Context(), limit)
		if err != nil {
			log.Error("Database query for reports failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
			return
		}
		report, err := reports.Get(c.Request.Context(), uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusOK, report)
	})
}
