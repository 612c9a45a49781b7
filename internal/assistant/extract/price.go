package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"shop-assistant/internal/models"
)

// DefaultAroundFactor is the relative width of an "around X" range.
const DefaultAroundFactor = 0.2

// number matches an amount with optional "$", thousands separators and cents.
const number = `\$?(\d[\d,]*(?:\.\d{1,2})?)`

type priceRule struct {
	name    string
	pattern *regexp.Regexp
	build   func(amounts []float64, factor float64) *models.PriceRange
}

// priceRules are tried in order; the first match wins.
var priceRules = []priceRule{
	{
		name:    "upper_bound",
		pattern: regexp.MustCompile(`\b(?:under|below|less\s+than)\s+` + number),
		build: func(a []float64, _ float64) *models.PriceRange {
			return &models.PriceRange{Max: models.Float(a[0])}
		},
	},
	{
		name:    "dash_range",
		pattern: regexp.MustCompile(number + `\s*-\s*` + number),
		build:   ordered,
	},
	{
		name:    "between",
		pattern: regexp.MustCompile(`\bbetween\s+` + number + `\s+and\s+` + number),
		build:   ordered,
	},
	{
		name:    "around",
		pattern: regexp.MustCompile(`\b(?:around|about)\s+` + number),
		build: func(a []float64, f float64) *models.PriceRange {
			return &models.PriceRange{
				Min: models.Float(roundCents(a[0] * (1 - f))),
				Max: models.Float(roundCents(a[0] * (1 + f))),
			}
		},
	},
}

func ordered(a []float64, _ float64) *models.PriceRange {
	lo, hi := a[0], a[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return &models.PriceRange{Min: models.Float(lo), Max: models.Float(hi)}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// PriceParser turns price expressions into a PriceRange.
type PriceParser struct {
	aroundFactor float64
}

// NewPriceParser returns a parser whose "around X" ranges span X·(1±factor).
// Factors outside (0, 1) fall back to DefaultAroundFactor.
func NewPriceParser(factor float64) *PriceParser {
	if factor <= 0 || factor >= 1 {
		factor = DefaultAroundFactor
	}
	return &PriceParser{aroundFactor: factor}
}

// Parse returns the range described by the first matching rule, or nil.
func (p *PriceParser) Parse(message string) *models.PriceRange {
	r, _ := p.ParseRule(message)
	return r
}

// ParseRule is Parse that also names the rule that fired.
func (p *PriceParser) ParseRule(message string) (*models.PriceRange, string) {
	lower := strings.ToLower(message)
	for _, rule := range priceRules {
		m := rule.pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		amounts := make([]float64, 0, len(m)-1)
		for _, raw := range m[1:] {
			v, err := parseAmount(raw)
			if err != nil {
				// unreachable: the pattern only admits digits, commas and one dot
				return nil, ""
			}
			amounts = append(amounts, v)
		}
		return rule.build(amounts, p.aroundFactor), rule.name
	}
	return nil, ""
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}
