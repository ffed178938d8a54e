package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NINAnor/nva-sync/models"
)

// Tabellennamen, wie dlt sie beim Landen der NVA-Daten anlegt: eine
// flache resources-Tabelle plus Child-Tabellen für Listenfelder.
const (
	resourcesTable    = "resources"
	contributorsTable = "resources__entity_description__contributors"
	isbnListTable     = "resources__entity_description__reference__publication_context__isbn_list"

	// isbnListField ist der geflachte Feldname, unter dem die ISBN-Liste
	// wieder in den Record eingehängt wird.
	isbnListField = "entity_description__reference__publication_context__isbn_list"
)

// StagingStore liest das geharvestete NVA-Dataset aus der Staging-DB.
// Der Store ist read-only; er verändert die Staging-Daten nie.
type StagingStore struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewStagingStore erstellt einen neuen StagingStore.
func NewStagingStore(db *gorm.DB, logger *zap.Logger) *StagingStore {
	return &StagingStore{DB: db, Logger: logger}
}

// contributorRow ist eine Zeile der Contributors-Child-Tabelle.
type contributorRow struct {
	ParentID string `gorm:"column:_dlt_parent_id"`
	ListIdx  int    `gorm:"column:_dlt_list_idx"`
	Name     string `gorm:"column:identity__name"`
}

// isbnRow ist eine Zeile der ISBN-Child-Tabelle.
type isbnRow struct {
	ParentID string `gorm:"column:_dlt_parent_id"`
	ListIdx  int    `gorm:"column:_dlt_list_idx"`
	Value    string `gorm:"column:value"`
}

// Records liest alle Staging-Records in der natürlichen Reihenfolge der
// resources-Tabelle und hängt Beiträger und ISBN-Listen aus den
// Child-Tabellen an.
func (s *StagingStore) Records(ctx context.Context) ([]models.StagingRecord, error) {
	var rows []map[string]any
	if err := s.DB.WithContext(ctx).Table(resourcesTable).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading %s: %w", resourcesTable, err)
	}

	contributors, err := s.loadContributors(ctx)
	if err != nil {
		return nil, err
	}
	isbns, err := s.loadISBNs(ctx)
	if err != nil {
		// Die ISBN-Child-Tabelle existiert nur, wenn mindestens ein
		// Record eine ISBN-Liste hatte.
		s.Logger.Debug("ISBN-Tabelle nicht lesbar, Feld bleibt leer", zap.Error(err))
		isbns = nil
	}

	records := make([]models.StagingRecord, 0, len(rows))
	for _, fields := range rows {
		dltID := asString(fields["_dlt_id"])
		if list := isbns[dltID]; len(list) > 0 {
			fields[isbnListField] = list
		}

		id := asString(fields["identifier"])
		if id == "" {
			id = asString(fields["id"])
		}
		records = append(records, models.StagingRecord{
			ID:           id,
			Fields:       fields,
			Contributors: contributors[dltID],
		})
	}

	s.Logger.Info("Staging-Dataset gelesen",
		zap.Int("records", len(records)),
		zap.Int("records_with_contributors", len(contributors)))
	return records, nil
}

// loadContributors lädt alle Beiträger, gruppiert nach Parent-Record und
// in Originalreihenfolge.
func (s *StagingStore) loadContributors(ctx context.Context) (map[string][]models.Contributor, error) {
	var rows []contributorRow
	err := s.DB.WithContext(ctx).
		Table(contributorsTable).
		Order("_dlt_parent_id, _dlt_list_idx").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", contributorsTable, err)
	}

	byParent := make(map[string][]models.Contributor)
	for _, r := range rows {
		byParent[r.ParentID] = append(byParent[r.ParentID], models.Contributor{
			Name:     r.Name,
			Sequence: r.ListIdx,
		})
	}
	return byParent, nil
}

// loadISBNs lädt die ISBN-Listen, gruppiert nach Parent-Record.
func (s *StagingStore) loadISBNs(ctx context.Context) (map[string][]any, error) {
	var rows []isbnRow
	err := s.DB.WithContext(ctx).
		Table(isbnListTable).
		Order("_dlt_parent_id, _dlt_list_idx").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]any)
	for _, r := range rows {
		byParent[r.ParentID] = append(byParent[r.ParentID], r.Value)
	}
	return byParent, nil
}

// asString liest einen Map-Wert als String; nil und fremde Typen werden
// zu "".
func asString(v any) string {
	s, _ := v.(string)
	return s
}
