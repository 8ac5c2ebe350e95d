package catalog

import "strings"

// Filter returns the products in category whose name or description contains
// query, case-insensitively. Catalog order is preserved.
func Filter(products []Product, category Category, query string) []Product {
	q := strings.ToLower(query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != All && category != "" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Summary flattens products into "name ($price)" entries joined by ", ".
func Summary(products []Product) string {
	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(" ($")
		b.WriteString(p.Price.String())
		b.WriteString(")")
	}
	return b.String()
}
