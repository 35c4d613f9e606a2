package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkeye/imposter/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	b := content.Default()

	assert.Equal(t,
		[]string{"Locations", "Food", "Animals", "Objects", "Movies", "Sports"},
		b.Categories())

	words, ok := b.Words("Locations")
	require.True(t, ok)
	assert.Len(t, words, 10)
	assert.Contains(t, words, "Cathedral")

	objects, _ := b.Words("Objects")
	assert.Contains(t, objects, "Water Bottle")

	_, ok = b.Words("Nope")
	assert.False(t, ok)
}

func TestHints(t *testing.T) {
	const doc = `
categories:
  - name: Places
    hints: ["somewhere"]
    words:
      - { word: Beach, hints: ["sand", "waves"] }
      - { word: Attic }
  - name: Bare
    words:
      - { word: Thing }
`
	b, err := content.Parse([]byte(doc))
	require.NoError(t, err)

	tests := []struct {
		name     string
		word     string
		category string
		want     []string
	}{
		{"word pool", "Beach", "Places", []string{"sand", "waves"}},
		{"category fallback", "Attic", "Places", []string{"somewhere"}},
		{"global fallback", "Thing", "Bare", []string{"think broadly"}},
		{"unknown category", "Beach", "Nope", []string{"think broadly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Hints(tt.word, tt.category))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no categories", "categories: []", content.ErrNoCategories},
		{"empty category", "categories: [{name: A, words: []}]", content.ErrEmptyCategory},
		{"duplicate category", "categories: [{name: A, words: [{word: x}]}, {name: A, words: [{word: y}]}]", content.ErrDuplicateEntry},
		{"duplicate word", "categories: [{name: A, words: [{word: x}, {word: x}]}]", content.ErrDuplicateEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := content.Parse([]byte("categories: {"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [{name: Colors, words: [{word: Red}]}]"), 0o600))

	b, err := content.Load(path)
	require.NoError(t, err)
	assert.True(t, b.Has("Colors"))
	assert.False(t, b.Has("Locations"))

	_, err = content.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWordsReturnsCopy(t *testing.T) {
	b := content.Default()
	words, _ := b.Words("Food")
	words[0] = "mutated"

	again, _ := b.Words("Food")
	assert.Equal(t, "Pizza", again[0])
}
