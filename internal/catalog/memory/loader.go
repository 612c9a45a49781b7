package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shop-assistant/internal/models"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the wrapped fixture form: {"products": [...]}.
type fixtureFile struct {
	Products []models.Product `json:"products" yaml:"products"`
}

// LoadFile reads a product fixture. ".json" files are decoded as JSON and
// ".yaml"/".yml" as YAML; both accept a bare list or a {products: [...]} object.
func LoadFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		products, err = decodeJSON(data)
	case ".yaml", ".yml":
		products, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported fixture extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := Validate(products); err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}
	return products, nil
}

func decodeJSON(data []byte) ([]models.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []models.Product
		err := json.Unmarshal(trimmed, &products)
		return products, err
	}
	var f fixtureFile
	err := json.Unmarshal(trimmed, &f)
	return f.Products, err
}

func decodeYAML(data []byte) ([]models.Product, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var products []models.Product
		err := node.Content[0].Decode(&products)
		return products, err
	}
	var f fixtureFile
	err := node.Decode(&f)
	return f.Products, err
}

// Validate checks ids are positive and unique and values are in range.
func Validate(products []models.Product) error {
	seen := make(map[int64]bool, len(products))
	for i, p := range products {
		switch {
		case p.ID <= 0:
			return fmt.Errorf("product %d: id must be positive", i)
		case seen[p.ID]:
			return fmt.Errorf("product %d: duplicate id %d", i, p.ID)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("product %d: name is empty", p.ID)
		case p.Price < 0:
			return fmt.Errorf("product %d: negative price", p.ID)
		case p.Rating < 0 || p.Rating > 5:
			return fmt.Errorf("product %d: rating %.1f out of range", p.ID, p.Rating)
		case p.Stock < 0:
			return fmt.Errorf("product %d: negative stock", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
