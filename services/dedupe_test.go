package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NINAnor/nva-sync/models"
)

func TestDeduplicatorAgainstExistingRows(t *testing.T) {
	existing := map[models.IdentityKey]struct{}{
		{Title: "sjøørret i norge", Year: 2020}: {},
	}
	d := NewDeduplicator(existing)

	assert.False(t, d.IsNew(models.IdentityKey{Title: "sjøørret i norge", Year: 2020}))
	assert.True(t, d.IsNew(models.IdentityKey{Title: "sjøørret i norge", Year: 2021}))
	assert.True(t, d.IsNew(models.IdentityKey{Title: "en annen tittel", Year: 2020}))
}

func TestDeduplicatorIntraBatch(t *testing.T) {
	d := NewDeduplicator(nil)
	key := models.IdentityKey{Title: "ny publikasjon", Year: 2023}

	assert.True(t, d.IsNew(key))
	d.Add(key)
	// Derselbe Key später in der Charge: nur die erste Zeile gewinnt.
	assert.False(t, d.IsNew(key))
}

func TestDeduplicatorSeedIsCopied(t *testing.T) {
	existing := map[models.IdentityKey]struct{}{}
	d := NewDeduplicator(existing)
	d.Add(models.IdentityKey{Title: "x", Year: 1})

	// Das Seeding-Set des Aufrufers bleibt unberührt.
	assert.Empty(t, existing)
	assert.Equal(t, 1, d.Size())
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "sjøørret i norge", models.NormalizeTitle("  Sjøørret i Norge "))
}
