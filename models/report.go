package models

import (
	"time"

	"gorm.io/datatypes"
)

// RunState beschreibt den Zustand eines Sync-Laufs.
type RunState string

const (
	RunStateInit     RunState = "INIT"
	RunStateLoading  RunState = "LOADING"
	RunStateMapping  RunState = "MAPPING"
	RunStateWriting  RunState = "WRITING"
	RunStateReported RunState = "REPORTED"
	RunStateFailed   RunState = "FAILED"
)

// SkipReason dokumentiert, warum ein Staging-Record nicht eingefügt wurde.
type SkipReason struct {
	// SourceID ist der NVA-Identifier des Records.
	SourceID string `json:"source_id"`
	// Kind ist "duplicate" oder "invalid".
	Kind string `json:"kind"`
	// Detail benennt z.B. das fehlende Pflichtfeld.
	Detail string `json:"detail,omitempty"`
}

// SyncReport fasst einen Sync-Lauf zusammen. Wird inkrementell während
// des Laufs befüllt und nach Abschluss nicht mehr verändert.
type SyncReport struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	State      RunState   `json:"state" gorm:"index"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	Processed        int `json:"processed"`
	Inserted         int `json:"inserted"`
	SkippedDuplicate int `json:"skipped_duplicate"`
	SkippedInvalid   int `json:"skipped_invalid"`

	// Zeilenzahl der Cristin-Tabelle vor und nach dem Lauf.
	RowsBefore int64 `json:"rows_before"`
	RowsAfter  int64 `json:"rows_after"`

	// Fehlertext, falls der Lauf in FAILED endete.
	Error string `json:"error,omitempty" gorm:"type:text"`

	// Details als JSON-Spalten.
	SkipReasons    datatypes.JSON `json:"skip_reasons,omitempty" gorm:"type:jsonb"`
	MappingGaps    datatypes.JSON `json:"mapping_gaps,omitempty" gorm:"type:jsonb"`
	AuthorWarnings datatypes.JSON `json:"author_warnings,omitempty" gorm:"type:jsonb"`
}

// TableName gibt explizit den Tabellennamen an.
func (SyncReport) TableName() string {
	return "sync_reports"
}
