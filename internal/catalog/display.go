package catalog

import (
	"strings"

	"github.com/lucysperfumery/admin/internal/models"
)

const (
	VariesLabel       = "Varies"
	LowStockThreshold = 5
)

// DisplayPrice is the price column: a fixed two-decimal amount for flat
// products, VariesLabel when variants decide the price.
func DisplayPrice(p *models.Product) string {
	if p.PricingMode() == models.PricingVariant {
		return VariesLabel
	}
	return p.Price.StringFixed(2)
}

// DisplayStock sums variant stock when the product has variants and falls
// back to the base stock field otherwise.
func DisplayStock(p *models.Product) int {
	if len(p.Variants) == 0 {
		return p.Stock
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

func LowStock(p *models.Product) bool {
	return DisplayStock(p) <= LowStockThreshold
}

// Filter keeps products whose name or category contains query, ignoring
// case. An empty query keeps everything.
func Filter(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
