// Package intent resolves the single purpose of a chat message with an
// ordered keyword decision list.
package intent

import (
	"strings"

	"shop-assistant/internal/models"
)

// Rule maps a keyword bucket to an intent.
type Rule struct {
	Intent   models.Intent
	Keywords []string
}

// browseCategory maps a browse keyword to the catalog category it lists.
type browseCategory struct {
	keyword  string
	category string
}

var browseCategories = []browseCategory{
	{"electronics", "Electronics"},
	{"computers", "Computers"},
	{"laptops", "Computers"},
	{"audio", "Audio"},
	{"gaming", "Gaming"},
	{"phones", "Electronics"},
}

func browseKeywords() []string {
	kw := make([]string, len(browseCategories))
	for i, b := range browseCategories {
		kw[i] = b.keyword
	}
	return kw
}

// DefaultRules is the decision list in priority order. Messages matching no
// rule resolve to models.IntentFallback.
var DefaultRules = []Rule{
	{models.IntentFindOrSearch, []string{"find", "search", "show", "looking for", "need", "want", "get", "buy"}},
	{models.IntentPriceCompare, []string{"compare", "cheaper", "expensive", "price", "cost", "budget"}},
	{models.IntentRecommend, []string{"recommend", "suggest", "best", "top", "popular", "good"}},
	{models.IntentCategoryBrowse, browseKeywords()},
	{models.IntentGreeting, []string{"hello", "hi", "hey", "help", "start"}},
}

// Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier keeps rules in the order given, with keywords lowercased.
func NewClassifier(rules []Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		c.rules = append(c.rules, Rule{Intent: r.Intent, Keywords: kws})
	}
	return c
}

// normalize lowercases message and collapses whitespace runs to one space so
// multi-word keywords survive tabs and double spaces.
func normalize(message string) string {
	return strings.Join(strings.Fields(strings.ToLower(message)), " ")
}

// Classify returns the intent of the first rule with a keyword contained in
// message.
func (c *Classifier) Classify(message string) models.Intent {
	intent, _ := c.Explain(message)
	return intent
}

// Explain is Classify plus the keyword that fired ("" for Fallback).
// Keywords match as plain substrings: "recommendations" fires "recommend".
func (c *Classifier) Explain(message string) (models.Intent, string) {
	lower := normalize(message)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Intent, kw
			}
		}
	}
	return models.IntentFallback, ""
}

// BrowseCategory returns the category of the first browse keyword, in map
// order, contained in message, or "".
func (c *Classifier) BrowseCategory(message string) string {
	lower := normalize(message)
	for _, b := range browseCategories {
		if strings.Contains(lower, b.keyword) {
			return b.category
		}
	}
	return ""
}
