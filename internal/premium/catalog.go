// Package premium describes the premium tier offered on the /premium page.
package premium

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Feature struct {
	Key         string `yaml:"key" json:"key"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Plan struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	PriceCents  int    `yaml:"price_cents" json:"price_cents"`
	Period      string `yaml:"period" json:"period"`
	Recommended bool   `yaml:"recommended" json:"recommended"`
	// Filled in by Load.
	Price   string `yaml:"-" json:"price"`
	Savings string `yaml:"-" json:"savings,omitempty"`
}

type Guarantee struct {
	Days int    `yaml:"days" json:"days"`
	Text string `yaml:"text" json:"text"`
}

type Catalog struct {
	Title     string    `yaml:"title" json:"title"`
	Subtitle  string    `yaml:"subtitle" json:"subtitle"`
	Features  []Feature `yaml:"features" json:"features"`
	Plans     []Plan    `yaml:"plans" json:"plans"`
	Included  []string  `yaml:"included" json:"included"`
	Guarantee Guarantee `yaml:"guarantee" json:"guarantee"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse reads a catalog and derives display prices and the yearly saving
// against twelve monthly payments.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse premium catalog: %w", err)
	}
	if len(c.Plans) == 0 {
		return nil, fmt.Errorf("premium catalog has no plans")
	}

	var monthly int
	for _, p := range c.Plans {
		if p.Period == "mês" {
			monthly = p.PriceCents
		}
	}
	for i := range c.Plans {
		p := &c.Plans[i]
		p.Price = FormatBRL(p.PriceCents)
		if p.Period == "ano" && monthly > 0 {
			full := monthly * 12
			if pct := (full - p.PriceCents) * 100 / full; pct > 0 {
				p.Savings = fmt.Sprintf("Economize %d%%", pct)
			}
		}
	}
	return &c, nil
}

// FormatBRL renders cents as "R$ 1.234,56".
func FormatBRL(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := fmt.Sprintf("%d", cents/100)
	var groups []string
	for len(reais) > 3 {
		groups = append([]string{reais[len(reais)-3:]}, groups...)
		reais = reais[:len(reais)-3]
	}
	groups = append([]string{reais}, groups...)
	return fmt.Sprintf("%sR$ %s,%02d", sign, strings.Join(groups, "."), cents%100)
}
