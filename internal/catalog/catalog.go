// Package catalog provides the fixed enumerations used by entry forms:
// transaction categories, investment types, goal categories, priorities,
// plan tiers and month abbreviations.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Option is a stored value with its display label.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Plan is an access tier and the feature areas it unlocks.
type Plan struct {
	Name     string   `yaml:"name" json:"name"`
	Label    string   `yaml:"label" json:"label"`
	Features []string `yaml:"features" json:"features"`
}

type Catalog struct {
	FallbackCategory string              `yaml:"fallback_category" json:"fallback_category"`
	Categories       map[string][]string `yaml:"categories" json:"categories"`
	InvestmentTypes  []Option            `yaml:"investment_types" json:"investment_types"`
	GoalCategories   []string            `yaml:"goal_categories" json:"goal_categories"`
	Priorities       []Option            `yaml:"priorities" json:"priorities"`
	Plans            []Plan              `yaml:"plans" json:"plans"`
	Months           []string            `yaml:"months" json:"months"`
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if len(c.Months) != 12 {
		return nil, fmt.Errorf("catalog needs 12 month abbreviations, got %d", len(c.Months))
	}

	if len(c.Plans) == 0 {
		return nil, fmt.Errorf("catalog has no plans")
	}

	return &c, nil
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(err)
	}

	return c
})

// Default returns the embedded catalog.
func Default() *Catalog {
	return loadDefault()
}

// Load reads a catalog file, or returns the embedded catalog when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return Parse(data)
}

// CategoriesFor lists the categories offered for a transaction kind.
func (c *Catalog) CategoriesFor(kind string) []string {
	return c.Categories[kind]
}

func (c *Catalog) HasCategory(kind, category string) bool {
	return slices.Contains(c.Categories[kind], category)
}

func (c *Catalog) HasInvestmentType(value string) bool {
	return slices.ContainsFunc(c.InvestmentTypes, func(o Option) bool { return o.Value == value })
}

// InvestmentLabel returns the display label of an investment type, or the
// raw value when the type is unknown.
func (c *Catalog) InvestmentLabel(value string) string {
	return labelOf(c.InvestmentTypes, value)
}

func (c *Catalog) HasGoalCategory(category string) bool {
	return slices.Contains(c.GoalCategories, category)
}

func (c *Catalog) HasPriority(value string) bool {
	return slices.ContainsFunc(c.Priorities, func(o Option) bool { return o.Value == value })
}

func (c *Catalog) PriorityLabel(value string) string {
	return labelOf(c.Priorities, value)
}

// Plan looks up a tier by name.
func (c *Catalog) Plan(name string) (Plan, bool) {
	i := slices.IndexFunc(c.Plans, func(p Plan) bool { return p.Name == name })
	if i < 0 {
		return Plan{}, false
	}

	return c.Plans[i], true
}

// MonthAbbrev returns the short month name, e.g. "fev".
func (c *Catalog) MonthAbbrev(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}

	return c.Months[m-1]
}

func labelOf(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}

	return value
}
