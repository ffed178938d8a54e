package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFlattenedColumn(t *testing.T) {
	fields := map[string]any{
		"entity_description__main_title": "Brown trout in regulated rivers",
	}

	v, ok := Extract(fields, "entity_description.main_title")
	require.True(t, ok)
	assert.Equal(t, "Brown trout in regulated rivers", v)
}

func TestExtractNestedTraversal(t *testing.T) {
	fields := map[string]any{
		"entity_description": map[string]any{
			"publication_date": map[string]any{"year": "2021"},
		},
	}

	v, ok := Extract(fields, "entity_description.publication_date.year")
	require.True(t, ok)
	assert.Equal(t, "2021", v)
}

func TestExtractAbsent(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		path   string
	}{
		{"missing key", map[string]any{"a": "x"}, "b"},
		{"nil value", map[string]any{"a": nil}, "a"},
		{"empty string", map[string]any{"a": "   "}, "a"},
		{"empty array", map[string]any{"a": []any{}}, "a"},
		{"missing segment", map[string]any{"a": map[string]any{"b": "x"}}, "a.c"},
		{"scalar in path", map[string]any{"a": "x"}, "a.b"},
		{"empty fields", nil, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Extract(tt.fields, tt.path)
			assert.False(t, ok)
		})
	}
}

func TestExtractListIndex(t *testing.T) {
	fields := map[string]any{
		"entity_description__reference__publication_context__isbn_list": []any{"978-82-426-3180-2", "978-82-426-3181-9"},
	}

	v, ok := Extract(fields, "entity_description.reference.publication_context.isbn_list[0]")
	require.True(t, ok)
	assert.Equal(t, "978-82-426-3180-2", v)

	_, ok = Extract(fields, "entity_description.reference.publication_context.isbn_list[5]")
	assert.False(t, ok)
}

func TestExtractFirstFallback(t *testing.T) {
	fields := map[string]any{
		"entity_description__reference__publication_context__online_issn": "1504-3312",
	}

	v, ok := ExtractFirst(fields,
		"entity_description.reference.publication_context.series.online_issn",
		"entity_description.reference.publication_context.online_issn",
	)
	require.True(t, ok)
	assert.Equal(t, "1504-3312", v)

	_, ok = ExtractFirst(fields, "x", "y")
	assert.False(t, ok)
}
