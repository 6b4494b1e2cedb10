package catalog

import "strings"

// ProductTypeProduction marks products that are live and exportable.
const ProductTypeProduction = "Production"

// Product is one entry from the customer product list.
type Product struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ProductType string `json:"productType"`
}

// Option is one concrete choice for a Feature.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Feature is a configurable aspect of a product (e.g. material, finish).
type Feature struct {
	Code    string   `json:"code"`
	Options []Option `json:"options"`
}

// FeatureGroup is the API-declared exclusivity mechanism: the listed feature
// codes are alternative choices of a single combinable slot.
type FeatureGroup struct {
	Code     string   `json:"code"`
	Features []string `json:"features"`
}

// Configuration is the per-product configuration payload.
type Configuration struct {
	Enabled       bool           `json:"enabled"`
	Features      []Feature      `json:"features"`
	FeatureGroups []FeatureGroup `json:"featureGroups"`
}

// FilterProduction returns only products with productType "Production".
func FilterProduction(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ProductType == ProductTypeProduction {
			out = append(out, p)
		}
	}
	return out
}

// FilterBySubstring returns products whose code contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterBySubstring(products []Product, query string) []Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Code), q) {
			out = append(out, p)
		}
	}
	return out
}
