package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NINAnor/nva-sync/models"
)

// StagingSource liefert die geharvesteten NVA-Records. Die Reihenfolge
// ist die natürliche Iterationsreihenfolge des Staging-Datasets; sie
// bestimmt sowohl das First-seen-wins-Dedup als auch die ID-Vergabe.
type StagingSource interface {
	Records(ctx context.Context) ([]models.StagingRecord, error)
}

// CristinTarget ist die Sicht des Syncs auf die Cristin-Tabelle.
// InsertRows muss alle Zeilen in einer Transaktion schreiben: entweder
// alle oder keine.
type CristinTarget interface {
	IdentityKeys(ctx context.Context) (map[models.IdentityKey]struct{}, error)
	MaxPubID(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	InsertRows(ctx context.Context, rows []*models.CristinRow) error
}

// SyncService führt einen kompletten Merge-Lauf NVA → Cristin aus:
// mappen, deduplizieren, IDs vergeben, in einer Transaktion schreiben.
type SyncService struct {
	Source StagingSource
	Target CristinTarget
	Logger *zap.Logger

	// RegistrationBaseURL ist der Präfix für die öffentliche NVA-URL
	// neuer Zeilen.
	RegistrationBaseURL string
}

// NewSyncService erstellt einen neuen SyncService.
func NewSyncService(source StagingSource, target CristinTarget, registrationBaseURL string, logger *zap.Logger) *SyncService {
	return &SyncService{
		Source:              source,
		Target:              target,
		Logger:              logger,
		RegistrationBaseURL: registrationBaseURL,
	}
}

// Run führt genau einen Sync-Lauf aus und liefert den Report. Läufe sind
// idempotent: Deduplicator und IDAllocator werden pro Lauf frisch aus
// dem Cristin-Bestand geseedet. Parallele Läufe gegen dasselbe Ziel sind
// nicht erlaubt (die Seeds sind Snapshots).
func (s *SyncService) Run(ctx context.Context) (*models.SyncReport, error) {
	report := &models.SyncReport{
		State:     models.RunStateInit,
		StartedAt: time.Now().UTC(),
	}
	log := s.Logger.With(zap.Time("run_started", report.StartedAt))
	log.Info("Starte NVA → Cristin Sync-Lauf")

	// INIT: lauf-lokale Helfer aus dem Zielbestand seeden.
	languages := NewLanguageResolver(log)
	authors := NewAuthorFormatter(log)
	mapper := NewSchemaMapper(languages, authors, s.RegistrationBaseURL, log)

	existing, err := s.Target.IdentityKeys(ctx)
	if err != nil {
		return s.fail(report, languages, authors, nil, fmt.Errorf("loading identity keys: %w", err))
	}
	maxID, err := s.Target.MaxPubID(ctx)
	if err != nil {
		return s.fail(report, languages, authors, nil, fmt.Errorf("loading max PubID: %w", err))
	}
	report.RowsBefore, err = s.Target.Count(ctx)
	if err != nil {
		return s.fail(report, languages, authors, nil, fmt.Errorf("counting target rows: %w", err))
	}
	dedup := NewDeduplicator(existing)
	alloc := NewIDAllocator(maxID)
	log.Info("Zielbestand geladen",
		zap.Int("existing_keys", dedup.Size()),
		zap.Int64("max_pub_id", maxID),
		zap.Int64("rows_before", report.RowsBefore))

	// LOADING: das Staging-Dataset einmal komplett lesen.
	report.State = models.RunStateLoading
	records, err := s.Source.Records(ctx)
	if err != nil {
		return s.fail(report, languages, authors, nil, fmt.Errorf("loading staging records: %w", err))
	}
	log.Info("Staging-Records geladen", zap.Int("count", len(records)))

	// MAPPING: mappen, prüfen, IDs vergeben.
	report.State = models.RunStateMapping
	var pending []*models.CristinRow
	var skips []models.SkipReason

	for _, rec := range records {
		report.Processed++

		row, err := mapper.MapRecord(rec)
		if err != nil {
			var mapErr *MappingError
			if !errors.As(err, &mapErr) {
				return s.fail(report, languages, authors, skips, err)
			}
			report.SkippedInvalid++
			skips = append(skips, models.SkipReason{
				SourceID: rec.ID,
				Kind:     "invalid",
				Detail:   "missing required field " + mapErr.Field,
			})
			log.Debug("Record übersprungen: Pflichtfeld fehlt",
				zap.String("source_id", rec.ID), zap.String("field", mapErr.Field))
			continue
		}

		key, ok := row.Identity()
		if !ok {
			// Kann nach erfolgreichem Mapping nicht passieren, die
			// Pflichtfelder sind genau Titel und Jahr.
			report.SkippedInvalid++
			skips = append(skips, models.SkipReason{SourceID: rec.ID, Kind: "invalid", Detail: "no identity key"})
			continue
		}
		if !dedup.IsNew(key) {
			report.SkippedDuplicate++
			skips = append(skips, models.SkipReason{SourceID: rec.ID, Kind: "duplicate"})
			continue
		}

		// Erst nach der Annahme: ID vergeben und Key sofort sperren,
		// damit Duplikate innerhalb der Charge nur einmal landen.
		row.PubID = alloc.Next()
		dedup.Add(key)
		pending = append(pending, row)
	}
	report.Inserted = len(pending)

	// WRITING: alles oder nichts.
	report.State = models.RunStateWriting
	if len(pending) > 0 {
		if err := s.Target.InsertRows(ctx, pending); err != nil {
			report.Inserted = 0
			return s.fail(report, languages, authors, skips, fmt.Errorf("writing %d rows: %w", len(pending), err))
		}
	}

	report.RowsAfter, err = s.Target.Count(ctx)
	if err != nil {
		// Die Zeilen sind committed; nur die Nachzählung fehlt.
		report.RowsAfter = report.RowsBefore + int64(len(pending))
		log.Warn("Nachzählung fehlgeschlagen, Wert berechnet", zap.Error(err))
	}

	report.State = models.RunStateReported
	s.finalize(report, languages, authors, skips)
	log.Info("Sync-Lauf abgeschlossen",
		zap.Int("processed", report.Processed),
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped_duplicate", report.SkippedDuplicate),
		zap.Int("skipped_invalid", report.SkippedInvalid),
		zap.Int64("rows_after", report.RowsAfter))
	return report, nil
}

// fail schließt den Report im Zustand FAILED ab und reicht den Fehler
// an den Aufrufer weiter; es wurde nichts (Teil-)geschrieben.
func (s *SyncService) fail(report *models.SyncReport, languages *LanguageResolver, authors *AuthorFormatter, skips []models.SkipReason, err error) (*models.SyncReport, error) {
	report.State = models.RunStateFailed
	report.Error = err.Error()
	s.finalize(report, languages, authors, skips)
	s.Logger.Error("Sync-Lauf fehlgeschlagen", zap.Error(err))
	return report, err
}

// finalize friert die Detail-Spalten des Reports ein.
func (s *SyncService) finalize(report *models.SyncReport, languages *LanguageResolver, authors *AuthorFormatter, skips []models.SkipReason) {
	now := time.Now().UTC()
	report.FinishedAt = &now

	if len(skips) > 0 {
		report.SkipReasons, _ = json.Marshal(skips)
	}
	if gaps := languages.Gaps(); len(gaps) > 0 {
		report.MappingGaps, _ = json.Marshal(gaps)
	}
	if warnings := authors.Warnings(); len(warnings) > 0 {
		report.AuthorWarnings, _ = json.Marshal(warnings)
	}
}
