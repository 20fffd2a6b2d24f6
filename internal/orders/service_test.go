package orders

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lucysperfumery/admin/internal/apiclient"
	"github.com/lucysperfumery/admin/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderJSON = `{
	"_id": "665f1c2e9b1e8a0012a3b4c5",
	"orderNumber": "LP-1042",
	"customer": {"name": "Ama Mensah", "email": "ama@example.com", "phone": "+233200000000"},
	"items": [
		{"productId": "p1", "name": "Oud Wood 50ml", "quantity": 2, "price": 120.5},
		{"productId": "p2", "name": "Rose 100ml", "quantity": 1, "price": 80}
	],
	"totalAmount": 321,
	"currency": "GHS",
	"status": "pending",
	"paystackReference": "T123456789",
	"metadata": {"deliveryMethod": "delivery", "deliveryAddress": "12 Ring Rd", "country": "Ghana"},
	"createdAt": "2025-02-11T09:30:00.000Z",
	"updatedAt": "2025-02-11T09:30:00.000Z"
}`

type call struct {
	method string
	path   string
	query  string
	body   string
}

func newTestService(t *testing.T, status int, response string) (*Service, *[]call) {
	t.Helper()
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(b)})
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return NewService(apiclient.New(srv.URL, 5*time.Second, nil)), &calls
}

func TestListOrders(t *testing.T) {
	svc, calls := newTestService(t, http.StatusOK, `{"data":[`+orderJSON+`]}`)

	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, "/api/orders", (*calls)[0].path)
	assert.Equal(t, "limit=1000", (*calls)[0].query)

	o := orders[0]
	assert.Equal(t, "665f1c2e9b1e8a0012a3b4c5", o.ID)
	assert.Equal(t, "LP-1042", o.OrderNumber)
	assert.Equal(t, "Ama Mensah", o.Customer.Name)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, "T123456789", o.PaymentReference)
	assert.Equal(t, "GHS", o.Currency)
	require.NotNil(t, o.Metadata)
	assert.Equal(t, "Ghana", o.Metadata.Country)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(321)))
	assert.True(t, o.Items[0].Subtotal().Equal(decimal.NewFromInt(241)))
	assert.Equal(t, time.Date(2025, 2, 11, 9, 30, 0, 0, time.UTC), o.CreatedAt.UTC())
}

func TestListOrdersEmpty(t *testing.T) {
	svc, _ := newTestService(t, http.StatusOK, `{"success":true,"data":[]}`)

	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestGetOrderBareBody(t *testing.T) {
	svc, calls := newTestService(t, http.StatusOK, orderJSON)

	o, err := svc.Get(context.Background(), "665f1c2e9b1e8a0012a3b4c5")
	require.NoError(t, err)
	assert.Equal(t, "LP-1042", o.OrderNumber)
	assert.Equal(t, "/api/orders/665f1c2e9b1e8a0012a3b4c5", (*calls)[0].path)
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t, http.StatusNotFound, `{"message":"Order not found"}`)

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, "Order not found", err.Error())
}

func TestSetStatus(t *testing.T) {
	updated := `{"data":{"_id":"o1","status":"completed","orderNumber":"LP-1"}}`
	svc, calls := newTestService(t, http.StatusOK, updated)

	o, err := svc.SetStatus(context.Background(), "o1", models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, o.Status)

	c := (*calls)[0]
	assert.Equal(t, http.MethodPatch, c.method)
	assert.Equal(t, "/api/orders/o1/status", c.path)
	assert.JSONEq(t, `{"status":"completed"}`, c.body)
}

func TestSetStatusAnyTransition(t *testing.T) {
	svc, calls := newTestService(t, http.StatusOK, `{"_id":"o1","status":"pending"}`)

	// Reopening a completed or failed order is allowed.
	for _, status := range models.OrderStatuses {
		_, err := svc.SetStatus(context.Background(), "o1", status)
		require.NoError(t, err)
	}
	assert.Len(t, *calls, 3)
}

func TestSetStatusRejectsUnknownStatusLocally(t *testing.T) {
	svc, calls := newTestService(t, http.StatusOK, `{}`)

	_, err := svc.SetStatus(context.Background(), "o1", models.OrderStatus("shipped"))
	assert.Error(t, err)

	_, err = svc.SetStatus(context.Background(), "", models.OrderStatusFailed)
	assert.ErrorIs(t, err, ErrMissingID)

	assert.Empty(t, *calls)
}
