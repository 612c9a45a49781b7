// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import "shop-assistant/internal/models"

// Products returns a fresh copy of the sample catalog. Rating ties and an
// out-of-stock item are deliberate.
func Products() []models.Product {
	return []models.Product{
		{ID: 1, Name: "iPhone 15 Pro", Description: "Titanium smartphone with A17 Pro chip", Price: 999, Category: "Electronics", Brand: "Apple", Rating: 4.8, Stock: 50, Features: []string{"5G", "ProMotion display", "USB-C"}},
		{ID: 2, Name: "Galaxy S24", Description: "Android smartphone with AI camera features", Price: 799, Category: "Electronics", Brand: "Samsung", Rating: 4.6, Stock: 40, Features: []string{"5G", "AMOLED", "wireless charging"}},
		{ID: 3, Name: "MacBook Air M3", Description: "Thin and light laptop with all-day battery", Price: 1099, Category: "Computers", Brand: "Apple", Rating: 4.9, Stock: 25, Features: []string{"M3 chip", "18h battery", "Retina display"}},
		{ID: 4, Name: "XPS 13", Description: "Compact Windows laptop with InfinityEdge display", Price: 1199, Category: "Computers", Brand: "Dell", Rating: 4.5, Stock: 15, Features: []string{"OLED option", "Thunderbolt 4"}},
		{ID: 5, Name: "WH-1000XM5", Description: "Wireless noise cancelling headphones", Price: 399, Category: "Audio", Brand: "Sony", Rating: 4.7, Stock: 60, Features: []string{"noise cancelling", "30h battery", "wireless"}},
		{ID: 6, Name: "QuietComfort Earbuds II", Description: "Quiet wireless earbuds with custom fit", Price: 279, Category: "Audio", Brand: "Bose", Rating: 4.4, Stock: 0, Features: []string{"noise cancelling", "wireless"}},
		{ID: 7, Name: "PlayStation 5", Description: "Next-gen gaming console with 4K output", Price: 499, Category: "Gaming", Brand: "Sony", Rating: 4.8, Stock: 10, Features: []string{"4K", "ray tracing", "SSD"}},
		{ID: 8, Name: "Switch OLED", Description: "Hybrid handheld gaming console", Price: 349, Category: "Gaming", Brand: "Nintendo", Rating: 4.7, Stock: 30, Features: []string{"OLED screen", "portable"}},
		{ID: 9, Name: "EOS R6 Mark II", Description: "Full-frame mirrorless camera", Price: 2499, Category: "Cameras", Brand: "Canon", Rating: 4.9, Stock: 5, Features: []string{"full frame", "4K video", "IBIS"}},
		{ID: 10, Name: "Apple Watch Series 9", Description: "Smartwatch with health tracking", Price: 399, Category: "Wearables", Brand: "Apple", Rating: 4.6, Stock: 35, Features: []string{"ECG", "GPS", "always-on display"}},
		{ID: 11, Name: "Echo Dot", Description: "Compact smart speaker with Alexa", Price: 49.99, Category: "Smart Home", Brand: "Amazon", Rating: 4.3, Stock: 100, Features: []string{"voice assistant", "smart home hub"}},
		{ID: 12, Name: "Galaxy Tab S9", Description: "Android tablet with S Pen", Price: 799, Category: "Electronics", Brand: "Samsung", Rating: 4.5, Stock: 20, Features: []string{"AMOLED", "S Pen", "water resistant"}},
	}
}
