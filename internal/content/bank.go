// Package content is the word and hint bank rooms draw their secret words from.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoCategories   = errors.New("content: no categories")
	ErrEmptyCategory  = errors.New("content: category has no words")
	ErrDuplicateEntry = errors.New("content: duplicate entry")
)

//go:embed words.yaml
var defaultDocument []byte

var defaultFallback = []string{"think broadly"}

// Bank is a read-only lookup keyed by category.
type Bank interface {
	Categories() []string
	Words(category string) ([]string, bool)
	// Hints returns the hint pool for a word: its own hints when present,
	// else the category's generic hints, else a global fallback. Never empty.
	Hints(word, category string) []string
}

type document struct {
	FallbackHints []string   `yaml:"fallback_hints"`
	Categories    []category `yaml:"categories"`
}

type category struct {
	Name  string   `yaml:"name"`
	Hints []string `yaml:"hints"`
	Words []entry  `yaml:"words"`
}

type entry struct {
	Word  string   `yaml:"word"`
	Hints []string `yaml:"hints"`
}

// StaticBank is an immutable Bank built from a YAML document.
type StaticBank struct {
	order         []string
	words         map[string][]string
	wordHints     map[string]map[string][]string
	categoryHints map[string][]string
	fallback      []string
}

// Parse builds a bank from a YAML document.
func Parse(data []byte) (*StaticBank, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, ErrNoCategories
	}

	b := &StaticBank{
		words:         make(map[string][]string, len(doc.Categories)),
		wordHints:     make(map[string]map[string][]string, len(doc.Categories)),
		categoryHints: make(map[string][]string, len(doc.Categories)),
		fallback:      nonEmpty(doc.FallbackHints),
	}
	if len(b.fallback) == 0 {
		b.fallback = defaultFallback
	}

	for _, c := range doc.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, errors.New("content: category without a name")
		}
		if _, dup := b.words[name]; dup {
			return nil, fmt.Errorf("%w: category %q", ErrDuplicateEntry, name)
		}
		hints := make(map[string][]string, len(c.Words))
		words := make([]string, 0, len(c.Words))
		for _, e := range c.Words {
			w := strings.TrimSpace(e.Word)
			if w == "" {
				continue
			}
			if _, dup := hints[w]; dup {
				return nil, fmt.Errorf("%w: word %q in %q", ErrDuplicateEntry, w, name)
			}
			words = append(words, w)
			hints[w] = nonEmpty(e.Hints)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyCategory, name)
		}
		b.order = append(b.order, name)
		b.words[name] = words
		b.wordHints[name] = hints
		b.categoryHints[name] = nonEmpty(c.Hints)
	}
	return b, nil
}

// Load reads a YAML bank from disk.
func Load(path string) (*StaticBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the bank compiled into the binary.
func Default() *StaticBank {
	b, err := Parse(defaultDocument)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *StaticBank) Categories() []string { return slices.Clone(b.order) }

func (b *StaticBank) Has(category string) bool {
	_, ok := b.words[category]
	return ok
}

func (b *StaticBank) Words(category string) ([]string, bool) {
	w, ok := b.words[category]
	if !ok {
		return nil, false
	}
	return slices.Clone(w), true
}

func (b *StaticBank) Hints(word, category string) []string {
	if h := b.wordHints[category][word]; len(h) > 0 {
		return slices.Clone(h)
	}
	if h := b.categoryHints[category]; len(h) > 0 {
		return slices.Clone(h)
	}
	return slices.Clone(b.fallback)
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
