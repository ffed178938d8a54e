package models

// Transform benennt die Umformung, die ein extrahierter Quellwert vor dem
// Schreiben in die Cristin-Spalte durchläuft.
type Transform string

const (
	// TransformIdentity übernimmt den Wert unverändert als String.
	TransformIdentity Transform = "identity"
	// TransformYear parst das Publikationsjahr als Ganzzahl.
	TransformYear Transform = "year"
	// TransformDatetime formatiert einen ISO-8601-Zeitstempel als
	// "YYYY-MM-DD HH:MM:SS".
	TransformDatetime Transform = "datetime"
	// TransformLanguage übersetzt eine NVA-Sprach-URI in den Cristin-Code.
	TransformLanguage Transform = "language"
	// TransformAuthors rendert die Beiträgerliste als Autoren-String.
	TransformAuthors Transform = "authors"
	// TransformPages kombiniert pages.begin und pages.end zu "begin-end".
	TransformPages Transform = "pages"
	// TransformVolume liest aus einem volume-Objekt den "start"-Wert.
	TransformVolume Transform = "volume"
	// TransformURL stellt dem NVA-Identifier die Registrations-URL voran.
	TransformURL Transform = "url"
	// TransformNull schreibt immer NULL (kein NVA-Äquivalent).
	TransformNull Transform = "null"
)

// FieldMapping beschreibt eine Zielspalte deklarativ: Quellpfad(e),
// Transformation und ob das Feld Pflicht ist. Paths werden der Reihe nach
// probiert (primärer Pfad, dann Fallback gegen Schema-Drift). Der Default
// bei fehlender Quelle ist immer NULL.
type FieldMapping struct {
	// Field ist der Go-Feldname in CristinRow.
	Field string
	// Paths sind die Quellpfade in Punktnotation, in Prioritätsreihenfolge.
	Paths []string
	// Transform ist die anzuwendende Umformung.
	Transform Transform
	// Required markiert Pflichtfelder; fehlt die Quelle, wird der ganze
	// Record als invalid übersprungen.
	Required bool
}

// CristinFieldMappings ist die Mapping-Tabelle NVA → Cristin. Sie ist
// Daten, nicht Code: neue Spalten oder Umbelegungen sind Tabellenedits.
// Reihenfolge entspricht dem Cristin-Schema.
var CristinFieldMappings = []FieldMapping{
	{Field: "Tittel", Paths: []string{"entity_description.main_title"}, Transform: TransformIdentity, Required: true},
	{Field: "Publiseringsaar", Paths: []string{"entity_description.publication_date.year"}, Transform: TransformYear, Required: true},
	{Field: "DatoRegistrert", Paths: []string{"created_date"}, Transform: TransformDatetime},
	{Field: "DatoEndret", Paths: []string{"modified_date"}, Transform: TransformDatetime},
	{Field: "Kategori", Paths: []string{"entity_description.reference.publication_context.type"}, Transform: TransformIdentity},
	// identifier ist die nackte UUID; id wäre die volle API-URI und gäbe
	// nach dem Präfixen eine doppelte URL.
	{Field: "URL", Paths: []string{"identifier"}, Transform: TransformURL},
	{Field: "KategoriNavn", Transform: TransformNull},
	{Field: "Underkategori", Paths: []string{"entity_description.reference.publication_instance.type"}, Transform: TransformIdentity},
	{Field: "Rapportserie", Paths: []string{"entity_description.reference.publication_context.series_number"}, Transform: TransformIdentity},
	{Field: "Tidsskrift", Paths: []string{"entity_description.reference.publication_context.name"}, Transform: TransformIdentity},
	{Field: "TidsskriftNiva", Paths: []string{"entity_description.reference.publication_context.scientific_value"}, Transform: TransformIdentity},
	{Field: "Hefte", Paths: []string{"entity_description.reference.publication_instance.issue"}, Transform: TransformIdentity},
	{Field: "Volum", Paths: []string{"entity_description.reference.publication_instance.volume"}, Transform: TransformVolume},
	// Bei TransformPages sind die Paths kein Fallback, sondern (begin, end).
	{Field: "Sider", Paths: []string{
		"entity_description.reference.publication_instance.pages.begin",
		"entity_description.reference.publication_instance.pages.end",
	}, Transform: TransformPages},
	{Field: "ISSN", Paths: []string{
		"entity_description.reference.publication_context.series.online_issn",
		"entity_description.reference.publication_context.online_issn",
	}, Transform: TransformIdentity},
	{Field: "ForedragArr", Transform: TransformNull},
	{Field: "Foredragsdato", Transform: TransformNull},
	{Field: "Authors", Transform: TransformAuthors},
	{Field: "Skjul", Transform: TransformNull},
	{Field: "Featured", Transform: TransformNull},
	{Field: "Timestamp", Transform: TransformNull},
	{Field: "Tekst", Paths: []string{"entity_description.abstract", "entity_description.description"}, Transform: TransformIdentity},
	{Field: "Eier", Paths: []string{"resource_owner.owner"}, Transform: TransformIdentity},
	{Field: "DateLastModified", Paths: []string{"modified_date"}, Transform: TransformDatetime},
	{Field: "ISBN", Paths: []string{
		"entity_description.reference.publication_context.isbn_list[0]",
		"entity_description.reference.publication_instance.isbn_list[0]",
	}, Transform: TransformIdentity},
	{Field: "Forlag", Transform: TransformNull},
	{Field: "BokNiva", Transform: TransformNull},
	{Field: "Referanse", Transform: TransformNull},
	{Field: "DOI", Paths: []string{"entity_description.reference.doi"}, Transform: TransformIdentity},
	{Field: "TilPubliste", Transform: TransformNull},
	// Utgiver ist bewusst NICHT auf publication_context.name gemappt: die
	// Quell-Doku hatte Tidsskrift und Utgiver zeitweise aliasiert, wir
	// nehmen den Publisher-Identifier.
	{Field: "Utgiver", Paths: []string{"publisher.id", "entity_description.reference.publication_context.publisher.id"}, Transform: TransformIdentity},
	{Field: "Sprak", Paths: []string{"entity_description.language"}, Transform: TransformLanguage},
}
