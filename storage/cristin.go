package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NINAnor/nva-sync/models"
)

// CristinStore ist der Zugriff auf die Cristin-Tabelle in Pbase. Das
// Schema gehört dem Replikations-Tool; wir lesen den Bestand und fügen
// neue Zeilen in einer Transaktion hinzu.
type CristinStore struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewCristinStore erstellt einen neuen CristinStore.
func NewCristinStore(db *gorm.DB, logger *zap.Logger) *CristinStore {
	return &CristinStore{DB: db, Logger: logger}
}

// identityRow trägt die beiden Spalten des Duplikat-Fingerprints.
type identityRow struct {
	Tittel          string `gorm:"column:Tittel"`
	Publiseringsaar *int   `gorm:"column:Publiseringsaar"`
}

// IdentityKeys liefert die (normalisierter Titel, Jahr)-Keys aller
// vorhandenen Zeilen. Zeilen ohne Titel oder Jahr können nie matchen und
// werden übersprungen.
func (c *CristinStore) IdentityKeys(ctx context.Context) (map[models.IdentityKey]struct{}, error) {
	var rows []identityRow
	err := c.DB.WithContext(ctx).
		Model(&models.CristinRow{}).
		Select(`"Tittel", "Publiseringsaar"`).
		Where(`"Tittel" IS NOT NULL`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading identity keys: %w", err)
	}

	keys := make(map[models.IdentityKey]struct{}, len(rows))
	for _, r := range rows {
		if r.Publiseringsaar == nil {
			continue
		}
		keys[models.IdentityKey{
			Title: models.NormalizeTitle(r.Tittel),
			Year:  *r.Publiseringsaar,
		}] = struct{}{}
	}
	return keys, nil
}

// MaxPubID liefert die größte vergebene PubID, 0 bei leerer Tabelle.
func (c *CristinStore) MaxPubID(ctx context.Context) (int64, error) {
	var maxID int64
	err := c.DB.WithContext(ctx).
		Model(&models.CristinRow{}).
		Select(`COALESCE(MAX("PubID"), 0)`).
		Scan(&maxID).Error
	if err != nil {
		return 0, fmt.Errorf("reading max PubID: %w", err)
	}
	return maxID, nil
}

// Count liefert die Zeilenzahl der Cristin-Tabelle.
func (c *CristinStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := c.DB.WithContext(ctx).Model(&models.CristinRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return count, nil
}

// InsertRows schreibt alle Zeilen in einer Transaktion: schlägt eine
// fehl, wird komplett zurückgerollt und Cristin bleibt unverändert.
func (c *CristinStore) InsertRows(ctx context.Context, rows []*models.CristinRow) error {
	if len(rows) == 0 {
		return nil
	}
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return fmt.Errorf("inserting %d rows: %w", len(rows), err)
	}
	c.Logger.Info("Neue Zeilen in Cristin geschrieben", zap.Int("rows", len(rows)))
	return nil
}
