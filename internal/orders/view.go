package orders

import (
	"sort"
	"strings"

	"github.com/lucysperfumery/admin/internal/models"
)

// SortNewestFirst orders by creation time, most recent first. Ties keep
// their API order.
func SortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// Filter matches customer name or email case-insensitively, or any part of
// the order id.
func Filter(orders []models.Order, query string) []models.Order {
	q := strings.TrimSpace(query)
	if q == "" {
		return orders
	}
	lower := strings.ToLower(q)

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.Customer.Name), lower) ||
			strings.Contains(strings.ToLower(o.Customer.Email), lower) ||
			strings.Contains(o.ID, q) {
			out = append(out, o)
		}
	}
	return out
}

// Replace swaps the held copy of updated in place, so a status change can be
// reflected without listing again. It reports whether the order was found.
func Replace(orders []models.Order, updated *models.Order) bool {
	for i := range orders {
		if orders[i].ID == updated.ID {
			orders[i] = *updated
			return true
		}
	}
	return false
}
