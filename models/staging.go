package models

// StagingRecord ist eine geharvestete NVA-Publikation aus der Staging-DB.
// Die Felder liegen so vor, wie dlt sie abgelegt hat: flache Spalten mit
// Doppel-Unterstrich-Pfaden (z.B. "entity_description__main_title"),
// Werte können aber auch verschachtelte Maps oder Arrays sein. Der Record
// ist für den Sync read-only.
type StagingRecord struct {
	// ID ist der NVA-Identifier der Publikation (Spalte "identifier").
	ID string

	// Fields enthält alle Spalten der resources-Tabelle.
	Fields map[string]any

	// Contributors sind die Beiträger aus der Child-Tabelle, in
	// Originalreihenfolge (_dlt_list_idx).
	Contributors []Contributor
}

// Contributor ist eine Beiträger-Identität einer Publikation.
type Contributor struct {
	// Name ist der Anzeigename (identity__name), z.B. "Øystein Aas".
	Name string

	// Sequence ist die Position innerhalb der Publikation.
	Sequence int
}
