package orders

import (
	"testing"
	"time"

	"github.com/lucysperfumery/admin/internal/models"
	"github.com/stretchr/testify/assert"
)

func at(day int) time.Time {
	return time.Date(2025, 1, day, 12, 0, 0, 0, time.UTC)
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestSortNewestFirst(t *testing.T) {
	orders := []models.Order{
		{ID: "a", CreatedAt: at(3)},
		{ID: "b", CreatedAt: at(9)},
		{ID: "c", CreatedAt: at(1)},
		{ID: "d", CreatedAt: at(9)},
	}
	SortNewestFirst(orders)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(orders))
}

func TestFilter(t *testing.T) {
	orders := []models.Order{
		{ID: "665fAAA", Customer: models.Customer{Name: "Ama Mensah", Email: "ama@example.com"}},
		{ID: "665fBBB", Customer: models.Customer{Name: "Kofi Boateng", Email: "kofi@shop.gh"}},
	}

	assert.Equal(t, []string{"665fAAA", "665fBBB"}, ids(Filter(orders, "")))
	assert.Equal(t, []string{"665fAAA"}, ids(Filter(orders, "MENSAH")))
	assert.Equal(t, []string{"665fBBB"}, ids(Filter(orders, "shop.gh")))
	assert.Equal(t, []string{"665fBBB"}, ids(Filter(orders, "BBB")))
	assert.Empty(t, Filter(orders, "bbb"), "id match is case sensitive")
}

func TestReplace(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", Status: models.OrderStatusPending},
		{ID: "o2", Status: models.OrderStatusPending},
	}

	assert.True(t, Replace(orders, &models.Order{ID: "o2", Status: models.OrderStatusFailed}))
	assert.Equal(t, models.OrderStatusFailed, orders[1].Status)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)

	assert.False(t, Replace(orders, &models.Order{ID: "o9"}))
}
