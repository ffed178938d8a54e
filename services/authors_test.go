package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NINAnor/nva-sync/models"
)

func contributors(names ...string) []models.Contributor {
	out := make([]models.Contributor, len(names))
	for i, n := range names {
		out[i] = models.Contributor{Name: n, Sequence: i}
	}
	return out
}

func TestFormatMultipleAuthors(t *testing.T) {
	af := NewAuthorFormatter(zap.NewNop())

	s, ok := af.Format(contributors("Øystein Aas", "Stig Einum", "Anders Klemetsen", "Jostein Skurdal"))
	require.True(t, ok)
	assert.Equal(t, "Aas, Ø., Einum, S., Klemetsen, A. & Skurdal, J.", s)
	assert.Empty(t, af.Warnings())
}

func TestFormatSingleAuthor(t *testing.T) {
	af := NewAuthorFormatter(zap.NewNop())

	s, ok := af.Format(contributors("Jostein Skurdal"))
	require.True(t, ok)
	assert.Equal(t, "Skurdal, J.", s)
}

func TestFormatTwoAuthorsUsesAmpersand(t *testing.T) {
	af := NewAuthorFormatter(zap.NewNop())

	s, ok := af.Format(contributors("Øystein Aas", "Stig Einum"))
	require.True(t, ok)
	assert.Equal(t, "Aas, Ø. & Einum, S.", s)
}

func TestFormatMultiPartFirstName(t *testing.T) {
	af := NewAuthorFormatter(zap.NewNop())

	s, ok := af.Format(contributors("Jan Ove Gjershaug"))
	require.True(t, ok)
	assert.Equal(t, "Gjershaug, J. O.", s)
}

func TestFormatEmptyListIsAbsent(t *testing.T) {
	af := NewAuthorFormatter(zap.NewNop())

	_, ok := af.Format(nil)
	assert.False(t, ok)

	_, ok = af.Format(contributors("", "   "))
	assert.False(t, ok)
}

func TestFormatSingleTokenNameKeptVerbatim(t *testing.T) {
	af := NewAuthorFormatter(zap.NewNop())

	s, ok := af.Format(contributors("NINA", "Stig Einum"))
	require.True(t, ok)
	assert.Equal(t, "NINA & Einum, S.", s)
	require.Len(t, af.Warnings(), 1)
	assert.Contains(t, af.Warnings()[0], "NINA")
}
