package services

import "github.com/NINAnor/nva-sync/models"

// Deduplicator entscheidet anhand des IdentityKeys (normalisierter
// Titel + Jahr), ob eine Kandidatenzeile neu ist. Er wird einmal pro
// Lauf aus dem Bestand von Cristin aufgebaut und danach verworfen.
type Deduplicator struct {
	seen map[models.IdentityKey]struct{}
}

// NewDeduplicator erstellt einen Deduplicator mit den Keys der bereits
// vorhandenen Cristin-Zeilen.
func NewDeduplicator(existing map[models.IdentityKey]struct{}) *Deduplicator {
	seen := make(map[models.IdentityKey]struct{}, len(existing))
	for key := range existing {
		seen[key] = struct{}{}
	}
	return &Deduplicator{seen: seen}
}

// IsNew meldet, ob der Key weder in Cristin noch früher in diesem Lauf
// gesehen wurde.
func (d *Deduplicator) IsNew(key models.IdentityKey) bool {
	_, exists := d.seen[key]
	return !exists
}

// Add registriert einen akzeptierten Key, damit Duplikate innerhalb
// derselben Staging-Charge nur einmal eingefügt werden (first seen wins).
func (d *Deduplicator) Add(key models.IdentityKey) {
	d.seen[key] = struct{}{}
}

// Size liefert die Anzahl bekannter Keys.
func (d *Deduplicator) Size() int {
	return len(d.seen)
}
