// Package vocab serves the controlled vocabularies the rule sets normalize
// against: arXiv categories, INSPIRE field terms, position ranks and degree
// types. The data ships embedded; loading happens once and the parsed tables
// are immutable, so lookups are safe for concurrent use across passes.
package vocab

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yml
var vocabYAML []byte

type data struct {
	Arxiv struct {
		Categories []string          `yaml:"categories"`
		Aliases    map[string]string `yaml:"aliases"`
	} `yaml:"arxiv"`
	Schemas map[string][]string `yaml:"schemas"`
	Ranks   map[string][]string `yaml:"ranks"`
	Degrees map[string][]string `yaml:"degrees"`
}

type tables struct {
	arxivCategories []string
	arxivCanonical  map[string]string // lower-cased name or alias -> canonical
	schemas         map[string][]string
	ranks           map[string]string // upper-cased raw -> normalized
	degrees         map[string]string // raw label -> machine value
}

var load = sync.OnceValues(func() (*tables, error) {
	var d data
	if err := yaml.Unmarshal(vocabYAML, &d); err != nil {
		return nil, fmt.Errorf("vocab: parsing embedded vocabulary: %w", err)
	}

	t := &tables{
		arxivCategories: d.Arxiv.Categories,
		arxivCanonical:  map[string]string{},
		schemas:         d.Schemas,
		ranks:           map[string]string{},
		degrees:         map[string]string{},
	}
	for _, c := range d.Arxiv.Categories {
		t.arxivCanonical[strings.ToLower(c)] = c
	}
	for obsolete, current := range d.Arxiv.Aliases {
		t.arxivCanonical[strings.ToLower(obsolete)] = current
	}
	for normalized, raws := range d.Ranks {
		for _, raw := range raws {
			t.ranks[strings.ToUpper(raw)] = normalized
		}
	}
	for machine, labels := range d.Degrees {
		for _, label := range labels {
			t.degrees[label] = machine
		}
	}
	return t, nil
})

// Enumerated returns the legal values for the enumerated element at
// schemaPath (e.g. "elements/inspire_field"). An unknown path is an error:
// the calling pass cannot classify without its vocabulary.
func Enumerated(schemaPath string) ([]string, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	values, ok := t.schemas[schemaPath]
	if !ok {
		return nil, fmt.Errorf("vocab: no enumerated values for schema %q", schemaPath)
	}
	return values, nil
}

// ValidArxivCategories returns the embedded arXiv category list.
func ValidArxivCategories() ([]string, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	return t.arxivCategories, nil
}

// NormalizeArxivCategory canonicalizes an arXiv category: case folding and
// obsolete-name aliases both resolve to the current canonical name. Unknown
// categories yield "".
func NormalizeArxivCategory(category string) (string, error) {
	t, err := load()
	if err != nil {
		return "", err
	}
	return t.arxivCanonical[strings.ToLower(category)], nil
}

// NormalizeRank maps a raw position rank through the rank vocabulary. The
// empty string stays empty; recognized values (case-insensitive) map to
// their normalized rank; anything else degrades to "OTHER".
func NormalizeRank(rank string) string {
	if rank == "" {
		return ""
	}
	t, err := load()
	if err != nil {
		return "OTHER"
	}
	key := strings.TrimRight(strings.ToUpper(strings.TrimSpace(rank)), ".")
	if normalized, ok := t.ranks[key]; ok {
		return normalized
	}
	return "OTHER"
}

// NormalizeDegreeType maps a free-text degree label to its machine value
// (bachelor, master, phd). Unmapped labels, including the empty string,
// degrade to "other".
func NormalizeDegreeType(label string) string {
	t, err := load()
	if err != nil {
		return "other"
	}
	if machine, ok := t.degrees[label]; ok {
		return machine
	}
	return "other"
}
