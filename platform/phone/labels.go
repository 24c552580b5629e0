package phone

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

// LabelSet holds the localized strings used to render a Location.
type LabelSet struct {
	Keys    LabelKeys             `yaml:"keys"`
	Unknown string                `yaml:"unknown"`
	Invalid string                `yaml:"invalid"`
	Types   map[NumberType]string `yaml:"types"`

	// FixedLineCarrier replaces Unknown for Chinese fixed lines without carrier data.
	FixedLineCarrier string `yaml:"fixed_line_carrier"`
}

// LabelKeys are the mapping keys of a rendered Location.
type LabelKeys struct {
	Country  string `yaml:"country"`
	Region   string `yaml:"region"`
	Location string `yaml:"location"`
	Carrier  string `yaml:"carrier"`
	Type     string `yaml:"type"`
	Error    string `yaml:"error"`
}

// TypeLabel translates a number type, falling back to the unknown type label.
func (s *LabelSet) TypeLabel(t NumberType) string {
	if label, ok := s.Types[t]; ok && label != "" {
		return label
	}
	return s.Types[TypeUnknown]
}

type labelCatalog struct {
	tags    []language.Tag
	sets    []*LabelSet
	matcher language.Matcher
}

var labels = mustLoadLabels(labelsYAML)

func mustLoadLabels(data []byte) *labelCatalog {
	catalog, err := loadLabels(data)
	if err != nil {
		panic("phone: " + err.Error())
	}
	return catalog
}

func loadLabels(data []byte) (*labelCatalog, error) {
	var doc struct {
		Languages []string             `yaml:"languages"`
		Sets      map[string]*LabelSet `yaml:"sets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	if len(doc.Languages) == 0 {
		return nil, fmt.Errorf("label table lists no languages")
	}

	catalog := &labelCatalog{}
	for _, lang := range doc.Languages {
		set, ok := doc.Sets[lang]
		if !ok || set == nil {
			return nil, fmt.Errorf("no labels for language %s", lang)
		}
		if set.Keys.Error == "" || set.Invalid == "" {
			return nil, fmt.Errorf("labels for %s miss the error entry", lang)
		}
		if _, ok := set.Types[TypeUnknown]; !ok {
			return nil, fmt.Errorf("labels for %s miss the unknown type", lang)
		}
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("label language %s: %w", lang, err)
		}
		catalog.tags = append(catalog.tags, tag)
		catalog.sets = append(catalog.sets, set)
	}
	catalog.matcher = language.NewMatcher(catalog.tags)
	return catalog, nil
}

// resolve parses lang (DefaultLang when empty or malformed) and picks the
// closest label set. The returned tag is the table's, so country names and
// labels always come out in the same language.
func (c *labelCatalog) resolve(lang string) (language.Tag, *LabelSet) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if strings.TrimSpace(lang) == "" || err != nil {
		tag = language.MustParse(DefaultLang)
	}
	_, index, _ := c.matcher.Match(tag)
	if index < 0 || index >= len(c.sets) {
		index = 0
	}
	return c.tags[index], c.sets[index]
}

// Labels returns the label set that best matches lang.
func Labels(lang string) *LabelSet {
	_, set := labels.resolve(lang)
	return set
}

// SupportedLanguages lists the languages that have their own label table.
func SupportedLanguages() []string {
	out := make([]string, 0, len(labels.tags))
	for _, tag := range labels.tags {
		out = append(out, tag.String())
	}
	return out
}
