package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/NINAnor/nva-sync/models"
)

// ReportStore persistiert die Sync-Reports in der Pbase-Datenbank.
type ReportStore struct {
	DB *gorm.DB
}

// NewReportStore erstellt einen neuen ReportStore.
func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{DB: db}
}

// Save speichert einen abgeschlossenen Report.
func (r *ReportStore) Save(ctx context.Context, report *models.SyncReport) error {
	return r.DB.WithContext(ctx).Save(report).Error
}

// List liefert die letzten Reports, neueste zuerst.
func (r *ReportStore) List(ctx context.Context, limit int) ([]models.SyncReport, error) {
	if limit <= 0 {
		limit = 20
	}
	var reports []models.SyncReport
	err := r.DB.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

// Get liefert einen Report per ID.
func (r *ReportStore) Get(ctx context.Context, id uint) (*models.SyncReport, error) {
	var report models.SyncReport
	if err := r.DB.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
