package extract

import "strings"

type categoryHint struct {
	keyword  string
	category string
}

// categoryHints is scanned in declared order; the first keyword found as a
// substring decides the category.
var categoryHints = []categoryHint{
	{"phone", "Electronics"},
	{"smartphone", "Electronics"},
	{"tablet", "Electronics"},
	{"laptop", "Computers"},
	{"computer", "Computers"},
	{"desktop", "Computers"},
	{"headphone", "Audio"},
	{"speaker", "Audio"},
	{"earbuds", "Audio"},
	{"gaming", "Gaming"},
	{"console", "Gaming"},
	{"camera", "Cameras"},
	{"watch", "Wearables"},
	{"smart home", "Smart Home"},
}

// Category returns the catalog category hinted at by message, or "".
func Category(message string) string {
	lower := strings.ToLower(message)
	for _, h := range categoryHints {
		if strings.Contains(lower, h.keyword) {
			return h.category
		}
	}
	return ""
}

// Categories lists the distinct hint categories in declaration order.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, h := range categoryHints {
		if !seen[h.category] {
			seen[h.category] = true
			out = append(out, h.category)
		}
	}
	return out
}
