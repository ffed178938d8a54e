package models

import "strings"

// CristinRow ist eine Zeile der Cristin-Publikationstabelle in Pbase.
// Die Tabelle selbst wird vom Replikations-Tool angelegt; wir fügen nur
// neue Zeilen hinzu. Spaltennamen folgen exakt dem Pbase-Schema.
type CristinRow struct {
	PubID            int64   `json:"pub_id" gorm:"column:PubID;primaryKey"`
	Tittel           *string `json:"tittel" gorm:"column:Tittel"`
	Publiseringsaar  *int    `json:"publiseringsaar" gorm:"column:Publiseringsaar"`
	DatoRegistrert   *string `json:"dato_registrert,omitempty" gorm:"column:DatoRegistrert"`
	DatoEndret       *string `json:"dato_endret,omitempty" gorm:"column:DatoEndret"`
	Kategori         *string `json:"kategori,omitempty" gorm:"column:Kategori"`
	URL              *string `json:"url,omitempty" gorm:"column:URL"`
	KategoriNavn     *string `json:"kategori_navn,omitempty" gorm:"column:KategoriNavn"`
	Underkategori    *string `json:"underkategori,omitempty" gorm:"column:Underkategori"`
	Rapportserie     *string `json:"rapportserie,omitempty" gorm:"column:Rapportserie"`
	Tidsskrift       *string `json:"tidsskrift,omitempty" gorm:"column:Tidsskrift"`
	TidsskriftNiva   *string `json:"tidsskrift_niva,omitempty" gorm:"column:TidsskriftNiva"`
	Hefte            *string `json:"hefte,omitempty" gorm:"column:hefte"`
	Volum            *string `json:"volum,omitempty" gorm:"column:volum"`
	Sider            *string `json:"sider,omitempty" gorm:"column:sider"`
	ISSN             *string `json:"issn,omitempty" gorm:"column:issn"`
	ForedragArr      *string `json:"foredrag_arr,omitempty" gorm:"column:ForedragArr"`
	Foredragsdato    *string `json:"foredragsdato,omitempty" gorm:"column:Foredragsdato"`
	Authors          *string `json:"authors,omitempty" gorm:"column:Authors"`
	Skjul            *string `json:"skjul,omitempty" gorm:"column:Skjul"`
	Featured         *string `json:"featured,omitempty" gorm:"column:Featured"`
	Timestamp        *string `json:"timestamp,omitempty" gorm:"column:Timestamp"`
	Tekst            *string `json:"tekst,omitempty" gorm:"column:Tekst"`
	Eier             *string `json:"eier,omitempty" gorm:"column:Eier"`
	DateLastModified *string `json:"date_last_modified,omitempty" gorm:"column:DateLastModified"`
	ISBN             *string `json:"isbn,omitempty" gorm:"column:isbn"`
	Forlag           *string `json:"forlag,omitempty" gorm:"column:Forlag"`
	BokNiva          *string `json:"bok_niva,omitempty" gorm:"column:BokNiva"`
	Referanse        *string `json:"referanse,omitempty" gorm:"column:Referanse"`
	DOI              *string `json:"doi,omitempty" gorm:"column:doi"`
	TilPubliste      *string `json:"til_publiste,omitempty" gorm:"column:TilPubliste"`
	Utgiver          *string `json:"utgiver,omitempty" gorm:"column:Utgiver"`
	Sprak            *string `json:"sprak,omitempty" gorm:"column:sprak"`
}

// TableName gibt explizit den Tabellennamen an.
func (CristinRow) TableName() string {
	return "Cristin"
}

// IdentityKey identifiziert eine Publikation über Titel und Jahr.
// Zwei Zeilen mit gleichem Key gelten als dieselbe Publikation.
type IdentityKey struct {
	Title string
	Year  int
}

// NormalizeTitle normalisiert einen Titel für den Duplikatsvergleich.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Identity berechnet den IdentityKey der Zeile. Fehlt der Titel oder das
// Jahr, ist der zweite Rückgabewert false.
func (r *CristinRow) Identity() (IdentityKey, bool) {
	if r.Tittel == nil || r.Publiseringsaar == nil {
		return IdentityKey{}, false
	}
	return IdentityKey{Title: NormalizeTitle(*r.Tittel), Year: *r.Publiseringsaar}, true
}
