package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Die Mapping-Tabelle muss jede CristinRow-Spalte außer PubID genau
// einmal belegen; PubID vergibt der Allocator.
func TestMappingTableCoversAllColumnsOnce(t *testing.T) {
	mapped := make(map[string]int)
	for _, fm := range CristinFieldMappings {
		mapped[fm.Field]++
	}

	rowType := reflect.TypeOf(CristinRow{})
	for i := 0; i < rowType.NumField(); i++ {
		name := rowType.Field(i).Name
		if name == "PubID" {
			assert.Zero(t, mapped[name], "PubID darf nicht in der Mapping-Tabelle stehen")
			continue
		}
		assert.Equal(t, 1, mapped[name], "Spalte %s", name)
	}
	assert.Len(t, mapped, rowType.NumField()-1)
}

func TestMappingTableRequiredFields(t *testing.T) {
	var required []string
	for _, fm := range CristinFieldMappings {
		if fm.Required {
			required = append(required, fm.Field)
		}
	}
	assert.ElementsMatch(t, []string{"Tittel", "Publiseringsaar"}, required)
}

func TestMappingTableEntriesHavePathsOrNull(t *testing.T) {
	for _, fm := range CristinFieldMappings {
		switch fm.Transform {
		case TransformNull, TransformAuthors:
			// keine Quellpfade
		case TransformPages:
			assert.Len(t, fm.Paths, 2, "Feld %s braucht das Pfadpaar (begin, end)", fm.Field)
		default:
			assert.NotEmpty(t, fm.Paths, "Feld %s braucht mindestens einen Quellpfad", fm.Field)
		}
	}
}

// Die öffentliche URL wird aus der nackten UUID gebaut; die volle
// API-URI in "id" würde eine Doppel-URL ergeben.
func TestMappingTableURLReadsIdentifier(t *testing.T) {
	for _, fm := range CristinFieldMappings {
		if fm.Field != "URL" {
			continue
		}
		assert.Equal(t, []string{"identifier"}, fm.Paths)
		assert.Equal(t, TransformURL, fm.Transform)
		return
	}
	t.Fatal("URL fehlt in der Mapping-Tabelle")
}

func TestIdentityKeyFromRow(t *testing.T) {
	title := "  En Tittel "
	year := 2020
	row := CristinRow{Tittel: &title, Publiseringsaar: &year}

	key, ok := row.Identity()
	require.True(t, ok)
	assert.Equal(t, IdentityKey{Title: "en tittel", Year: 2020}, key)

	_, ok = (&CristinRow{Tittel: &title}).Identity()
	assert.False(t, ok)
}
