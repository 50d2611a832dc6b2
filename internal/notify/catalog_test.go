package notify

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "ru-RU"}, c.Locales())

	for _, key := range []string{"EventStart", "EventCompleted", "EventEnded", "EliminateGuards"} {
		_, ok := c.Message("en-US", key)
		assert.True(t, ok, key)
		_, ok = c.Message("ru-RU", key)
		assert.True(t, ok, key)
	}
}

func TestCatalog_MessageFallsBackToBase(t *testing.T) {
	t.Parallel()

	c, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/events.yaml": {Data: []byte("locale: en-US\nnamespace: events\nmessages:\n  A: alpha\n  B: beta\n")},
		"locales/de-DE/events.yaml": {Data: []byte("locale: de-DE\nnamespace: events\nmessages:\n  A: Alpha-de\n")},
	})
	require.NoError(t, err)

	v, ok := c.Message("de-DE", "A")
	require.True(t, ok)
	assert.Equal(t, "Alpha-de", v)

	v, ok = c.Message("de-DE", "B")
	require.True(t, ok)
	assert.Equal(t, "beta", v)

	_, ok = c.Message("de-DE", "C")
	assert.False(t, ok)
}

func TestLoadFromFS_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{"empty", fstest.MapFS{}},
		{"no base locale", fstest.MapFS{
			"locales/ru-RU/events.yaml": {Data: []byte("locale: ru-RU\nnamespace: events\nmessages:\n  A: a\n")},
		}},
		{"locale mismatch", fstest.MapFS{
			"locales/en-US/events.yaml": {Data: []byte("locale: en-GB\nnamespace: events\nmessages:\n  A: a\n")},
		}},
		{"namespace mismatch", fstest.MapFS{
			"locales/en-US/events.yaml": {Data: []byte("locale: en-US\nnamespace: admin\nmessages:\n  A: a\n")},
		}},
		{"duplicate key", fstest.MapFS{
			"locales/en-US/a.yaml": {Data: []byte("locale: en-US\nnamespace: a\nmessages:\n  K: one\n")},
			"locales/en-US/b.yaml": {Data: []byte("locale: en-US\nnamespace: b\nmessages:\n  K: two\n")},
		}},
		{"bad yaml", fstest.MapFS{
			"locales/en-US/events.yaml": {Data: []byte("locale: [\n")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromFS(tt.fs)
			assert.Error(t, err)
		})
	}
}
