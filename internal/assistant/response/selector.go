// Package response picks the canned reply for a resolved message.
package response

import (
	"fmt"
	"strings"

	"shop-assistant/internal/models"
)

const (
	SearchFound        = "I found %d products that match your search. Here are some great options:"
	SearchAlternatives = "I couldn't find any products matching your search. Here are some popular alternatives you might like:"
	SearchEmpty        = "I couldn't find any products matching your search. Try different keywords or browse our categories."
	PriceCompare       = "Here are some products to compare. I can help you find the best value based on your needs!"
	Recommend          = "Here are my top recommendations based on customer ratings and reviews:"
	CategoryBrowse     = "Here are some great %s products:"
	Fallback           = "I can help you find products, compare prices, and get recommendations. Try asking me to 'find smartphones' or 'show me laptops under $1000'."
)

// Greeting is the help menu listing the supported request types.
const Greeting = "Hello! I'm here to help you find the perfect products. You can ask me to:\n" +
	"• Search for specific items\n" +
	"• Compare products and prices\n" +
	"• Get recommendations\n" +
	"• Browse by category\n\n" +
	"What are you looking for today?"

// Select maps the outcome of a resolution to its reply. count is the number
// of products returned and category the browsed category, if any.
func Select(intent models.Intent, count int, fallbackUsed bool, category string) string {
	switch intent {
	case models.IntentFindOrSearch:
		switch {
		case count > 0 && fallbackUsed:
			return SearchAlternatives
		case count > 0:
			return fmt.Sprintf(SearchFound, count)
		default:
			return SearchEmpty
		}
	case models.IntentPriceCompare:
		return PriceCompare
	case models.IntentRecommend:
		return Recommend
	case models.IntentCategoryBrowse:
		return fmt.Sprintf(CategoryBrowse, strings.ToLower(category))
	case models.IntentGreeting:
		return Greeting
	default:
		return Fallback
	}
}
