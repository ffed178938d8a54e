package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolveKnownLanguages(t *testing.T) {
	lr := NewLanguageResolver(zap.NewNop())

	tests := []struct {
		uri  string
		code string
	}{
		{"http://lexvo.org/id/iso639-3/eng", "EN"},
		{"http://lexvo.org/id/iso639-3/nor", "NO"},
		{"http://lexvo.org/id/iso639-3/nob", "NOB"},
	}
	for _, tt := range tests {
		code, ok := lr.Resolve(tt.uri)
		require.True(t, ok, tt.uri)
		assert.Equal(t, tt.code, code)
	}
	assert.Empty(t, lr.Gaps())
}

func TestResolveUnknownURIRecordsGap(t *testing.T) {
	lr := NewLanguageResolver(zap.NewNop())

	code, ok := lr.Resolve("http://lexvo.org/id/iso639-3/smj")
	assert.False(t, ok)
	assert.Empty(t, code)

	lr.Resolve("http://lexvo.org/id/iso639-3/smj")

	gaps := lr.Gaps()
	require.Len(t, gaps, 1)
	assert.Equal(t, 2, gaps["http://lexvo.org/id/iso639-3/smj"])
}

func TestResolveEmptyURIIsNoGap(t *testing.T) {
	lr := NewLanguageResolver(zap.NewNop())

	_, ok := lr.Resolve("")
	assert.False(t, ok)
	assert.Empty(t, lr.Gaps())
}
