package services

import (
	"sync"

	"go.uber.org/zap"
)

// languageCodes ist die feste Übersetzung von NVA-Sprach-URIs auf
// Cristin-Kurzcodes. Neue Codes werden explizit ergänzt, nie aus der URI
// geraten.
var languageCodes = map[string]string{
	"http://lexvo.org/id/iso639-3/eng": "EN",
	"http://lexvo.org/id/iso639-3/nor": "NO",
	"http://lexvo.org/id/iso639-3/nob": "NOB",
	"http://lexvo.org/id/iso639-3/nno": "NN",
	"http://lexvo.org/id/iso639-3/dan": "DA",
	"http://lexvo.org/id/iso639-3/swe": "SV",
	"http://lexvo.org/id/iso639-3/deu": "DE",
	"http://lexvo.org/id/iso639-3/fra": "FR",
}

// LanguageResolver übersetzt NVA-Sprach-URIs in Cristin-Codes und
// sammelt unbekannte URIs als Mapping-Lücken für den Report.
type LanguageResolver struct {
	logger *zap.Logger

	mu   sync.Mutex
	gaps map[string]int
}

// NewLanguageResolver erstellt einen neuen LanguageResolver.
func NewLanguageResolver(logger *zap.Logger) *LanguageResolver {
	return &LanguageResolver{logger: logger, gaps: make(map[string]int)}
}

// Resolve liefert den Cristin-Code zur URI. Unbekannte, nicht-leere URIs
// werden als Lücke registriert und als nicht aufgelöst gemeldet; der
// Aufrufer schreibt dann NULL.
func (lr *LanguageResolver) Resolve(uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	if code, ok := languageCodes[uri]; ok {
		return code, true
	}

	lr.mu.Lock()
	lr.gaps[uri]++
	lr.mu.Unlock()
	lr.logger.Warn("Unbekannte Sprach-URI, Feld bleibt NULL", zap.String("uri", uri))
	return "", false
}

// Gaps liefert alle in diesem Lauf gesehenen, nicht gemappten URIs mit
// ihrer Häufigkeit.
func (lr *LanguageResolver) Gaps() map[string]int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	out := make(map[string]int, len(lr.gaps))
	for uri, n := range lr.gaps {
		out[uri] = n
	}
	return out
}
