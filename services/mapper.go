package services

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NINAnor/nva-sync/models"
)

// cristinDateLayout ist das Datumsformat der Cristin-Tabelle.
const cristinDateLayout = "2006-01-02 15:04:05"

// MappingError meldet, dass ein Record wegen eines fehlenden
// Pflichtfelds nicht gemappt werden konnte. Der Record wird übersprungen,
// nicht der Lauf abgebrochen.
type MappingError struct {
	SourceID string
	Field    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("record %s: required field %s is absent", e.SourceID, e.Field)
}

// SchemaMapper konvertiert Staging-Records in Cristin-Zeilen. Er wird
// vollständig von der deklarativen Mapping-Tabelle getrieben; fehlende
// optionale Quellen werden zu NULL, nie zu Fehlern.
type SchemaMapper struct {
	languages *LanguageResolver
	authors   *AuthorFormatter
	logger    *zap.Logger

	// registrationBaseURL ist der Präfix für die öffentliche NVA-URL,
	// z.B. "https://nva.sikt.no/registration/".
	registrationBaseURL string
}

// NewSchemaMapper erstellt einen neuen SchemaMapper.
func NewSchemaMapper(languages *LanguageResolver, authors *AuthorFormatter, registrationBaseURL string, logger *zap.Logger) *SchemaMapper {
	return &SchemaMapper{
		languages:           languages,
		authors:             authors,
		registrationBaseURL: registrationBaseURL,
		logger:              logger,
	}
}

// MapRecord erzeugt aus einem Staging-Record eine Cristin-Zeile ohne
// PubID; die vergibt der IDAllocator erst nach der Duplikatsprüfung.
// Bei fehlendem Pflichtfeld kommt ein *MappingError zurück.
func (sm *SchemaMapper) MapRecord(rec models.StagingRecord) (*models.CristinRow, error) {
	row := &models.CristinRow{}
	rv := reflect.ValueOf(row).Elem()

	for _, fm := range models.CristinFieldMappings {
		value, ok := sm.resolve(rec, fm)
		if !ok {
			if fm.Required {
				return nil, &MappingError{SourceID: rec.ID, Field: fm.Field}
			}
			continue // Default NULL: nil-Pointer bleibt stehen
		}

		field := rv.FieldByName(fm.Field)
		if !field.IsValid() || field.Kind() != reflect.Pointer {
			// Tabellenfehler, kein Datenfehler: Mapping-Tabelle und
			// CristinRow müssen zusammenpassen.
			return nil, fmt.Errorf("mapping table references unknown field %q", fm.Field)
		}
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(reflect.ValueOf(value))
		field.Set(ptr)
	}

	return row, nil
}

// resolve extrahiert und transformiert den Wert für ein Mapping. ok=false
// bedeutet Absent; die Spalte bleibt dann NULL.
func (sm *SchemaMapper) resolve(rec models.StagingRecord, fm models.FieldMapping) (any, bool) {
	switch fm.Transform {
	case models.TransformNull:
		return nil, false

	case models.TransformAuthors:
		return okString(sm.authors.Format(rec.Contributors))

	case models.TransformPages:
		// Paths sind hier (begin, end), kein Fallback.
		if len(fm.Paths) != 2 {
			sm.logger.Warn("pages mapping braucht genau zwei Pfade", zap.String("field", fm.Field), zap.Int("paths", len(fm.Paths)))
			return nil, false
		}
		begin, _ := Extract(rec.Fields, fm.Paths[0])
		end, _ := Extract(rec.Fields, fm.Paths[1])
		return okString(combinePages(stringify(begin), stringify(end)))

	case models.TransformLanguage:
		v, ok := ExtractFirst(rec.Fields, fm.Paths...)
		if !ok {
			return nil, false
		}
		return okString(sm.languages.Resolve(stringify(v)))

	case models.TransformURL:
		v, ok := ExtractFirst(rec.Fields, fm.Paths...)
		if !ok {
			return nil, false
		}
		return sm.registrationBaseURL + stringify(v), true

	case models.TransformYear:
		v, ok := ExtractFirst(rec.Fields, fm.Paths...)
		if !ok {
			return nil, false
		}
		year, err := parseYear(v)
		if err != nil {
			sm.logger.Debug("Publikationsjahr nicht parsebar", zap.String("source_id", rec.ID), zap.Error(err))
			return nil, false
		}
		return year, true

	case models.TransformDatetime:
		v, ok := ExtractFirst(rec.Fields, fm.Paths...)
		if !ok {
			return nil, false
		}
		return okString(formatDatetime(v))

	case models.TransformVolume:
		v, ok := ExtractFirst(rec.Fields, fm.Paths...)
		if !ok {
			return nil, false
		}
		return okString(extractVolume(v))

	default: // identity
		v, ok := ExtractFirst(rec.Fields, fm.Paths...)
		if !ok {
			return nil, false
		}
		return okString(stringify(v), true)
	}
}

// okString filtert leere Strings zu Absent.
func okString(s string, ok bool) (any, bool) {
	if !ok || s == "" {
		return nil, false
	}
	return s, true
}

// combinePages kombiniert Seitenangaben zu "begin-end"; einseitige
// Angaben bleiben, wie sie sind.
func combinePages(begin, end string) (string, bool) {
	switch {
	case begin != "" && end != "":
		return begin + "-" + end, true
	case begin != "":
		return begin, true
	case end != "":
		return end, true
	}
	return "", false
}

// extractVolume liest den Band sicher aus: NVA liefert mal einen String,
// mal ein Objekt mit "start".
func extractVolume(v any) (string, bool) {
	if m, ok := v.(map[string]any); ok {
		start, ok := m["start"]
		if !ok || start == nil {
			return "", false
		}
		v = start
	}
	s := stringify(v)
	return s, s != ""
}

// formatDatetime bringt einen ISO-8601-Zeitstempel (oder time.Time aus
// dem DB-Scan) in das Cristin-Format. Unparsebare Werte werden zu Absent.
func formatDatetime(v any) (string, bool) {
	if t, ok := v.(time.Time); ok {
		return t.Format(cristinDateLayout), true
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return "", false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, cristinDateLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(cristinDateLayout), true
		}
	}
	return "", false
}

// parseYear parst das Publikationsjahr aus den Typen, die der DB-Scan
// liefern kann.
func parseYear(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	}
	return 0, fmt.Errorf("unsupported year type %T", v)
}

// stringify konvertiert skalare DB-Werte in Strings; für nicht-skalare
// Typen kommt "" zurück.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
