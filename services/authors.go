package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NINAnor/nva-sync/models"
)

// AuthorFormatter rendert Beiträgerlisten als Cristin-Autorenstring und
// sammelt Warnungen über Namen, die sich nicht zerlegen ließen.
type AuthorFormatter struct {
	logger *zap.Logger

	warnings []string
}

// NewAuthorFormatter erstellt einen neuen AuthorFormatter.
func NewAuthorFormatter(logger *zap.Logger) *AuthorFormatter {
	return &AuthorFormatter{logger: logger}
}

// Format baut aus der geordneten Beiträgerliste den Autorenstring:
// jeder Name als "Nachname, V.", getrennt mit ", ", das letzte Paar mit
// " & ". Beispiel: "Aas, Ø., Einum, S., Klemetsen, A. & Skurdal, J.".
// Eine leere Liste liefert ok=false (NULL in der Zielspalte).
func (af *AuthorFormatter) Format(contributors []models.Contributor) (string, bool) {
	var parts []string
	for _, c := range contributors {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		parts = append(parts, af.formatName(name))
	}
	if len(parts) == 0 {
		return "", false
	}
	if len(parts) == 1 {
		return parts[0], true
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " & " + parts[len(parts)-1], true
}

// formatName zerlegt einen Anzeigenamen: das letzte Token ist der
// Nachname, alle vorangehenden Tokens steuern nur ihre Initiale bei
// (mehrteilige Vornamen ergeben mehrere Initialen). Einzelne,
// unzerlegbare Tokens werden unverändert übernommen und als Warnung
// notiert.
func (af *AuthorFormatter) formatName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		af.warnings = append(af.warnings, fmt.Sprintf("kein Nachname erkennbar: %q", name))
		af.logger.Debug("Autorname nicht zerlegbar, wird unverändert übernommen", zap.String("name", name))
		return name
	}

	last := tokens[len(tokens)-1]
	var initials []string
	for _, t := range tokens[:len(tokens)-1] {
		initials = append(initials, string([]rune(t)[0])+".")
	}
	return last + ", " + strings.Join(initials, " ")
}

// Warnings liefert die in diesem Lauf gesammelten Format-Warnungen.
func (af *AuthorFormatter) Warnings() []string {
	return af.warnings
}
